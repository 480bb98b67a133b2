package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skool-scraper/models"
)

// utf8BOM prefixes every output file so spreadsheet tools load non-ASCII
// community names correctly; it is stripped again on read.
const utf8BOM = "\uFEFF"

var (
	listingColumns = []string{"Full URL", "Community Name", "Status", "Members", "Price"}
	creatorColumns = []string{"Full URL", "Community Name", "Status", "Members", "Price",
		"Creator Profile URL"}
	profileColumns = []string{"Full URL", "Community Name", "Status", "Members", "Price",
		"Creator Profile URL", "Followers", "Contributions",
		"Instagram", "Twitter", "YouTube", "Facebook", "LinkedIn", "Website"}
)

// CSVStore reads and writes the staged record tables. Row order is
// preserved exactly as written; the pipeline depends on it.
type CSVStore struct {
	dir string
}

// NewCSVStore creates the output directory if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir %q: %w", dir, err)
	}
	return &CSVStore{dir: dir}, nil
}

// WriteListings persists the discovery-stage table.
func (s *CSVStore) WriteListings(path string, listings []*models.Listing) error {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []string{l.FullURL, l.Name, l.Status, l.Members, l.Price})
	}
	return s.writeTable(path, listingColumns, rows)
}

// ReadListings loads the discovery-stage table in stored row order.
func (s *CSVStore) ReadListings(path string) ([]*models.Listing, error) {
	t, err := s.readTable(path, listingColumns)
	if err != nil {
		return nil, err
	}

	listings := make([]*models.Listing, 0, len(t.rows))
	for _, row := range t.rows {
		listings = append(listings, &models.Listing{
			FullURL: t.get(row, "Full URL"),
			Name:    t.get(row, "Community Name"),
			Status:  t.get(row, "Status"),
			Members: t.get(row, "Members"),
			Price:   t.get(row, "Price"),
		})
	}
	return listings, nil
}

// WriteCreatorLinks persists the resolve-stage table.
func (s *CSVStore) WriteCreatorLinks(path string, links []*models.CreatorLink) error {
	rows := make([][]string, 0, len(links))
	for _, l := range links {
		rows = append(rows, []string{l.FullURL, l.Name, l.Status, l.Members, l.Price,
			l.CreatorProfileURL})
	}
	return s.writeTable(path, creatorColumns, rows)
}

// ReadCreatorLinks loads the resolve-stage table in stored row order.
func (s *CSVStore) ReadCreatorLinks(path string) ([]*models.CreatorLink, error) {
	t, err := s.readTable(path, creatorColumns)
	if err != nil {
		return nil, err
	}

	links := make([]*models.CreatorLink, 0, len(t.rows))
	for _, row := range t.rows {
		links = append(links, &models.CreatorLink{
			Listing: models.Listing{
				FullURL: t.get(row, "Full URL"),
				Name:    t.get(row, "Community Name"),
				Status:  t.get(row, "Status"),
				Members: t.get(row, "Members"),
				Price:   t.get(row, "Price"),
			},
			CreatorProfileURL: t.get(row, "Creator Profile URL"),
		})
	}
	return links, nil
}

// WriteProfiles persists the detail-stage and final tables (same columns).
func (s *CSVStore) WriteProfiles(path string, profiles []*models.CommunityProfile) error {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{p.FullURL, p.Name, p.Status, p.Members, p.Price,
			p.CreatorProfileURL, p.Followers, p.Contributions,
			p.Instagram, p.Twitter, p.YouTube, p.Facebook, p.LinkedIn, p.Website})
	}
	return s.writeTable(path, profileColumns, rows)
}

// ReadProfiles loads a detail-stage or final table in stored row order.
func (s *CSVStore) ReadProfiles(path string) ([]*models.CommunityProfile, error) {
	t, err := s.readTable(path, profileColumns)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.CommunityProfile, 0, len(t.rows))
	for _, row := range t.rows {
		profiles = append(profiles, &models.CommunityProfile{
			CreatorLink: models.CreatorLink{
				Listing: models.Listing{
					FullURL: t.get(row, "Full URL"),
					Name:    t.get(row, "Community Name"),
					Status:  t.get(row, "Status"),
					Members: t.get(row, "Members"),
					Price:   t.get(row, "Price"),
				},
				CreatorProfileURL: t.get(row, "Creator Profile URL"),
			},
			Followers:     t.get(row, "Followers"),
			Contributions: t.get(row, "Contributions"),
			Instagram:     t.get(row, "Instagram"),
			Twitter:       t.get(row, "Twitter"),
			YouTube:       t.get(row, "YouTube"),
			Facebook:      t.get(row, "Facebook"),
			LinkedIn:      t.get(row, "LinkedIn"),
			Website:       t.get(row, "Website"),
		})
	}
	return profiles, nil
}

func (s *CSVStore) writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("csv: write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// table gives column-name access over positional CSV rows.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) get(row []string, column string) string {
	return row[t.index[column]]
}

func (s *CSVStore) readTable(path string, required []string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM)))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %q has no header row", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv: %q is missing column %q", filepath.Base(path), col)
		}
	}

	return &table{index: index, rows: records[1:]}, nil
}
