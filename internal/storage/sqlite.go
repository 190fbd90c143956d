package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/labsense/risk-engine/internal/domain"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite analysis store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord scans a row into a Record struct.
func scanRecord(s scanner) (*Record, error) {
	rec := &Record{}
	var riskLevel string
	var payload []byte

	err := s.Scan(
		&rec.ID, &rec.AnalysisID, &rec.PatientName,
		&riskLevel, &rec.RiskScore, &rec.TotalTests, &rec.CriticalCount,
		&payload, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.RiskLevel = domain.RiskLevel(riskLevel)
	rec.Payload = json.RawMessage(payload)
	return rec, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		analysis_id TEXT NOT NULL UNIQUE,
		patient_name TEXT DEFAULT '',
		risk_level TEXT NOT NULL,
		risk_score INTEGER NOT NULL DEFAULT 0,
		total_tests INTEGER NOT NULL DEFAULT 0,
		critical_count INTEGER NOT NULL DEFAULT 0,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_risk_level ON analyses(risk_level);
	CREATE INDEX IF NOT EXISTS idx_created_at ON analyses(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Save stores or updates an analysis keyed by its analysis ID.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	// Check if exists
	var existingID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM analyses WHERE analysis_id = ?",
		record.AnalysisID,
	).Scan(&existingID)

	if err == nil {
		record.ID = existingID
		_, err = s.db.ExecContext(ctx, `
			UPDATE analyses SET
				patient_name = ?,
				risk_level = ?,
				risk_score = ?,
				total_tests = ?,
				critical_count = ?,
				payload = ?,
				created_at = ?
			WHERE id = ?
		`,
			record.PatientName,
			string(record.RiskLevel),
			record.RiskScore,
			record.TotalTests,
			record.CriticalCount,
			string(record.Payload),
			record.CreatedAt,
			existingID,
		)
		return err
	}

	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			analysis_id, patient_name, risk_level, risk_score,
			total_tests, critical_count, payload, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.AnalysisID,
		record.PatientName,
		string(record.RiskLevel),
		record.RiskScore,
		record.TotalTests,
		record.CriticalCount,
		string(record.Payload),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	record.ID = id

	return nil
}

// Get retrieves an analysis by its analysis ID.
func (s *SQLiteStore) Get(ctx context.Context, analysisID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, analysis_id, patient_name, risk_level, risk_score,
			total_tests, critical_count, payload, created_at
		FROM analyses
		WHERE analysis_id = ?
		LIMIT 1
	`, analysisID)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return rec, nil
}

// List returns stored analyses newest first, with pagination.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, analysis_id, patient_name, risk_level, risk_score,
			total_tests, critical_count, payload, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
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
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count)
	return count, err
}

// Delete removes an analysis by its analysis ID.
func (s *SQLiteStore) Delete(ctx context.Context, analysisID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE analysis_id = ?", analysisID)
	return err
}

// maxExportLimit is the maximum number of entries to export at once.
const maxExportLimit = 1000000

// ExportJSON exports all stored analyses to a JSON writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
