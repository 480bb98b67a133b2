package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"skool-scraper/models"
	"skool-scraper/services"
)

// PostgresWriter persists the final normalized dataset to PostgreSQL for
// downstream analysis.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS communities (
			id                  SERIAL PRIMARY KEY,
			full_url            TEXT UNIQUE NOT NULL,
			name                TEXT NOT NULL DEFAULT '',
			status              TEXT NOT NULL DEFAULT '',
			members             NUMERIC,
			price               TEXT NOT NULL DEFAULT '',
			creator_profile_url TEXT NOT NULL DEFAULT '',
			followers           NUMERIC,
			contributions       NUMERIC,
			instagram           TEXT NOT NULL DEFAULT '',
			twitter             TEXT NOT NULL DEFAULT '',
			youtube             TEXT NOT NULL DEFAULT '',
			facebook            TEXT NOT NULL DEFAULT '',
			linkedin            TEXT NOT NULL DEFAULT '',
			website             TEXT NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_communities_members   ON communities(members);
		CREATE INDEX IF NOT EXISTS idx_communities_followers ON communities(followers);
		CREATE INDEX IF NOT EXISTS idx_communities_status    ON communities(status);
	`)
	return err
}

// Clear deletes all existing communities from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM communities")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts ALL final records, clearing old data first.
func (pw *PostgresWriter) Write(profiles []*models.CommunityProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(profiles); i += batchSize {
		end := i + batchSize
		if end > len(profiles) {
			end = len(profiles)
		}
		if err := pw.insertBatch(profiles[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.CommunityProfile) error {
	const cols = 14
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, p := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			p.FullURL, p.Name, p.Status, nullCount(p.Members), p.Price,
			p.CreatorProfileURL, nullCount(p.Followers), nullCount(p.Contributions),
			p.Instagram, p.Twitter, p.YouTube, p.Facebook, p.LinkedIn, p.Website)
	}

	query := fmt.Sprintf(`
		INSERT INTO communities (full_url, name, status, members, price,
			creator_profile_url, followers, contributions,
			instagram, twitter, youtube, facebook, linkedin, website)
		VALUES %s
		ON CONFLICT (full_url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored communities — used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.CommunityProfile, error) {
	rows, err := pw.db.Query(`
		SELECT full_url, name, status, members, price, creator_profile_url,
		       followers, contributions,
		       instagram, twitter, youtube, facebook, linkedin, website
		FROM communities
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var profiles []*models.CommunityProfile
	for rows.Next() {
		p := &models.CommunityProfile{}
		var members, followers, contributions sql.NullFloat64
		if err := rows.Scan(
			&p.FullURL, &p.Name, &p.Status, &members, &p.Price, &p.CreatorProfileURL,
			&followers, &contributions,
			&p.Instagram, &p.Twitter, &p.YouTube, &p.Facebook, &p.LinkedIn, &p.Website,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		p.Members = countText(members)
		p.Followers = countText(followers)
		p.Contributions = countText(contributions)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// nullCount converts normalized count text to a nullable numeric; sentinel,
// absent and malformed values store as NULL.
func nullCount(s string) sql.NullFloat64 {
	v, err := services.NormalizeCount(s)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func countText(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return services.FormatCount(v.Float64)
}
