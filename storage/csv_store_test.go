package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skool-scraper/models"
)

func newTestStore(t *testing.T) (*CSVStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewCSVStore(dir)
	if err != nil {
		t.Fatalf("NewCSVStore: %v", err)
	}
	return store, dir
}

func TestListingsRoundTripNonASCII(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, "listings.csv")

	in := []*models.Listing{
		{FullURL: "https://www.skool.com/日本語", Name: "日本語コミュニティ", Status: "Public",
			Members: "1200", Price: "¥2900"},
		{FullURL: "https://www.skool.com/café", Name: "Café Crüe", Status: models.Sentinel,
			Members: models.Sentinel, Price: models.Sentinel},
	}

	if err := store.WriteListings(path, in); err != nil {
		t.Fatalf("WriteListings: %v", err)
	}

	out, err := store.ReadListings(path)
	if err != nil {
		t.Fatalf("ReadListings: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("rows: got %d, want %d", len(out), len(in))
	}
	for i := range in {
		if *out[i] != *in[i] {
			t.Errorf("row %d: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestWriteStartsWithBOM(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, "bom.csv")

	if err := store.WriteListings(path, nil); err != nil {
		t.Fatalf("WriteListings: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "\uFEFF") {
		t.Error("output file should start with a UTF-8 BOM")
	}
}

func TestProfilesRoundTripPreservesAbsents(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, "profiles.csv")

	in := []*models.CommunityProfile{
		{
			CreatorLink: models.CreatorLink{
				Listing: models.Listing{FullURL: "https://www.skool.com/a", Name: "A",
					Status: "Public", Members: "1200", Price: "$29"},
				CreatorProfileURL: "https://www.skool.com/@a",
			},
			Followers:     "12.4k",
			Contributions: "532",
			Instagram:     "https://instagram.com/a",
		},
		{
			CreatorLink: models.CreatorLink{
				Listing: models.Listing{FullURL: "https://www.skool.com/b", Name: "B",
					Status: "Private", Members: "340", Price: "Free"},
			},
		},
	}

	if err := store.WriteProfiles(path, in); err != nil {
		t.Fatalf("WriteProfiles: %v", err)
	}
	out, err := store.ReadProfiles(path)
	if err != nil {
		t.Fatalf("ReadProfiles: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("rows: got %d, want 2", len(out))
	}
	for i := range in {
		if *out[i] != *in[i] {
			t.Errorf("row %d: got %+v, want %+v", i, out[i], in[i])
		}
	}
	if out[1].CreatorProfileURL != "" || out[1].Website != "" {
		t.Error("absent fields must round-trip as empty strings")
	}
}

func TestReadRejectsMissingColumn(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, "bad.csv")

	if err := os.WriteFile(path, []byte("Full URL,Community Name\nx,y\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := store.ReadListings(path); err == nil {
		t.Error("ReadListings should reject a table missing required columns")
	}
}

func TestReadMissingFileFails(t *testing.T) {
	store, dir := newTestStore(t)
	if _, err := store.ReadListings(filepath.Join(dir, "nope.csv")); err == nil {
		t.Error("reading a missing input table should fail")
	}
}
