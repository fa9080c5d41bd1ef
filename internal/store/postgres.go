// Package store persists imported villas in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/poolvilladirect/villaimport/internal/logger"
	"github.com/poolvilladirect/villaimport/pkg/importer"
)

// StoredVilla is a persisted villa row.
type StoredVilla struct {
	ID        int64                  `json:"id"`
	CreatedAt time.Time              `json:"createdAt"`
	Villa     importer.ImportedVilla `json:"villa"`
}

// Store wraps the villas table.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL and pings it.
func Open(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("connected to PostgreSQL")
	return &Store{db: db}, nil
}

// Migrate creates the villas table if it doesn't exist.
func (s *Store) Migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS villas (
		id                       SERIAL PRIMARY KEY,
		name                     TEXT    NOT NULL,
		location                 TEXT    NOT NULL,
		beds                     INTEGER NOT NULL DEFAULT 1,
		baths                    INTEGER NOT NULL DEFAULT 1,
		description              TEXT,
		main_video_id            TEXT,
		gallery                  JSONB   NOT NULL DEFAULT '[]',
		accounting_summary       JSONB   NOT NULL DEFAULT '[]',
		estimated_annual_revenue BIGINT,
		source_url               TEXT    NOT NULL,
		created_at               TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_villas_source_url ON villas (source_url);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	logger.Info("table 'villas' is ready")
	return nil
}

// CreateVilla inserts an imported villa and returns its id.
func (s *Store) CreateVilla(ctx context.Context, v *importer.ImportedVilla) (int64, error) {
	gallery, err := json.Marshal(v.Gallery)
	if err != nil {
		return 0, fmt.Errorf("failed to encode gallery: %w", err)
	}
	accounting, err := json.Marshal(v.AccountingSummary)
	if err != nil {
		return 0, fmt.Errorf("failed to encode accounting summary: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO villas
			(name, location, beds, baths, description, main_video_id,
			 gallery, accounting_summary, estimated_annual_revenue, source_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		v.Name,
		v.Location,
		v.Beds,
		v.Baths,
		v.Description,
		v.MainVideoID,
		gallery,
		accounting,
		v.EstimatedAnnualRevenue,
		v.SourceURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert villa: %w", err)
	}

	logger.Info("villa stored", "id", id, "name", v.Name)
	return id, nil
}

// ListVillas returns all stored villas, newest first.
func (s *Store) ListVillas(ctx context.Context) ([]StoredVilla, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, location, beds, baths, description, main_video_id,
		       gallery, accounting_summary, estimated_annual_revenue, source_url, created_at
		FROM villas
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query villas: %w", err)
	}
	defer rows.Close()

	var out []StoredVilla
	for rows.Next() {
		var (
			sv         StoredVilla
			gallery    []byte
			accounting []byte
		)
		if err := rows.Scan(
			&sv.ID,
			&sv.Villa.Name,
			&sv.Villa.Location,
			&sv.Villa.Beds,
			&sv.Villa.Baths,
			&sv.Villa.Description,
			&sv.Villa.MainVideoID,
			&gallery,
			&accounting,
			&sv.Villa.EstimatedAnnualRevenue,
			&sv.Villa.SourceURL,
			&sv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan villa: %w", err)
		}
		if err := json.Unmarshal(gallery, &sv.Villa.Gallery); err != nil {
			return nil, fmt.Errorf("failed to decode gallery: %w", err)
		}
		if err := json.Unmarshal(accounting, &sv.Villa.AccountingSummary); err != nil {
			return nil, fmt.Errorf("failed to decode accounting summary: %w", err)
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
