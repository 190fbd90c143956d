package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq"

	"github.com/labsense/risk-engine/internal/domain"
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL analysis store.
// It expects the database and schema to already exist.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL creates a new PostgreSQL analysis store from
// a connection URL, with the pool settings from the storage config.
func NewPostgresStoreFromURL(databaseURL string, cfg *domain.StorageConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Save stores or updates an analysis keyed by its analysis ID.
func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO analyses (
			analysis_id, patient_name, risk_level, risk_score,
			total_tests, critical_count, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (analysis_id) DO UPDATE SET
			patient_name = EXCLUDED.patient_name,
			risk_level = EXCLUDED.risk_level,
			risk_score = EXCLUDED.risk_score,
			total_tests = EXCLUDED.total_tests,
			critical_count = EXCLUDED.critical_count,
			payload = EXCLUDED.payload
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		record.AnalysisID,
		record.PatientName,
		string(record.RiskLevel),
		record.RiskScore,
		record.TotalTests,
		record.CriticalCount,
		string(record.Payload),
		record.CreatedAt,
	).Scan(&record.ID)

	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// Get retrieves an analysis by its analysis ID.
func (s *PostgresStore) Get(ctx context.Context, analysisID string) (*Record, error) {
	query := `
		SELECT id, analysis_id, patient_name, risk_level, risk_score,
			total_tests, critical_count, payload, created_at
		FROM analyses
		WHERE analysis_id = $1
		LIMIT 1
	`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, analysisID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return rec, nil
}

// List returns stored analyses newest first, with pagination.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	query := `
		SELECT id, analysis_id, patient_name, risk_level, risk_score,
			total_tests, critical_count, payload, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Count returns the total number of stored analyses.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count)
	return count, err
}

// Delete removes an analysis by its analysis ID.
func (s *PostgresStore) Delete(ctx context.Context, analysisID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE analysis_id = $1", analysisID)
	return err
}

// ExportJSON exports all stored analyses to a JSON writer.
func (s *PostgresStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	all, err := s.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	export := &Export{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Count:      len(all),
		Analyses:   all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// Close closes the store and releases resources.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
