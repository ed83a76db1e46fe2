// internal/database/postgres.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"book-codex/internal/models"
)

// DB archives finished chapter records in Postgres. The JSON interchange
// file remains the canonical artifact between pipeline stages; the archive
// exists for downstream consumers that want queryable chapters.
type DB struct {
	Pool *pgxpool.Pool
}

// NewDB creates a new database connection.
func NewDB(connStr string) (*DB, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Initialize sets up the chapters table.
func (db *DB) Initialize(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS chapters (
            number INTEGER PRIMARY KEY,
            title TEXT NOT NULL,
            slug TEXT NOT NULL,
            english_text TEXT NOT NULL,
            portuguese_text TEXT,
            keywords JSONB NOT NULL DEFAULT '[]'
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create chapters table: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS chapters_slug_idx ON chapters (slug)
	`)
	if err != nil {
		return fmt.Errorf("failed to create slug index: %w", err)
	}

	return nil
}

// StoreChapter upserts one chapter record keyed by its number.
func (db *DB) StoreChapter(ctx context.Context, record *models.ChapterRecord) error {
	kw := record.Keywords
	if kw == nil {
		kw = []models.KeywordPair{}
	}
	keywordsJSON, err := json.Marshal(kw)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
        INSERT INTO chapters (number, title, slug, english_text, portuguese_text, keywords)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (number) DO UPDATE SET
            title = EXCLUDED.title,
            slug = EXCLUDED.slug,
            english_text = EXCLUDED.english_text,
            portuguese_text = EXCLUDED.portuguese_text,
            keywords = EXCLUDED.keywords
    `,
		record.Number,
		record.Title,
		record.Slug,
		record.EnglishText,
		record.PortugueseText,
		keywordsJSON)

	return err
}

// StoreChapters archives all records, failing on the first error.
func (db *DB) StoreChapters(ctx context.Context, records []models.ChapterRecord) error {
	for i := range records {
		if err := db.StoreChapter(ctx, &records[i]); err != nil {
			return fmt.Errorf("failed to store chapter %d: %w", records[i].Number, err)
		}
	}
	return nil
}

// ListChapters returns all archived chapters in number order.
func (db *DB) ListChapters(ctx context.Context) ([]models.ChapterRecord, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT number, title, slug, english_text, portuguese_text, keywords
        FROM chapters
        ORDER BY number
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	return scanChapters(rows)
}

func scanChapters(rows pgx.Rows) ([]models.ChapterRecord, error) {
	defer rows.Close()

	var records []models.ChapterRecord
	for rows.Next() {
		var record models.ChapterRecord
		var keywordsJSON []byte
		err := rows.Scan(
			&record.Number,
			&record.Title,
			&record.Slug,
			&record.EnglishText,
			&record.PortugueseText,
			&keywordsJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter row: %w", err)
		}
		if err := json.Unmarshal(keywordsJSON, &record.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for chapter %d: %w", record.Number, err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}
