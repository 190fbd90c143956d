// Package storage persists completed risk analyses so uploaded reports
// can be re-fetched and audited after the fact. The engine itself never
// touches storage; the API layer saves results after analysis.
package storage

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/labsense/risk-engine/internal/domain"
)

// Record is one persisted risk analysis. The full analysis is stored
// as its JSON payload; the indexed columns exist for listing and
// filtering without deserializing every row.
type Record struct {
	ID            int64            `json:"id,omitempty"`
	AnalysisID    string           `json:"analysis_id"`
	PatientName   string           `json:"patient_name,omitempty"`
	RiskLevel     domain.RiskLevel `json:"risk_level"`
	RiskScore     int              `json:"risk_score"`
	TotalTests    int              `json:"total_tests"`
	CriticalCount int              `json:"critical_count"`
	Payload       json.RawMessage  `json:"payload"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewRecord builds a storage record from a completed analysis.
func NewRecord(analysis *domain.RiskAnalysis, patientName string) (*Record, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return nil, err
	}
	return &Record{
		AnalysisID:    analysis.ID,
		PatientName:   patientName,
		RiskLevel:     analysis.RiskLevel,
		RiskScore:     analysis.RiskScore,
		TotalTests:    analysis.TotalTests,
		CriticalCount: analysis.CriticalCount,
		Payload:       payload,
		CreatedAt:     analysis.CalculatedAt,
	}, nil
}

// Analysis deserializes the stored payload.
func (r *Record) Analysis() (*domain.RiskAnalysis, error) {
	var analysis domain.RiskAnalysis
	if err := json.Unmarshal(r.Payload, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Store defines the interface for analysis persistence.
type Store interface {
	// Save stores or updates an analysis keyed by its analysis ID.
	Save(ctx context.Context, record *Record) error

	// Get retrieves an analysis by its analysis ID. Returns
	// domain.ErrNotFound when no such analysis exists.
	Get(ctx context.Context, analysisID string) (*Record, error)

	// List returns stored analyses newest first, with pagination.
	List(ctx context.Context, limit, offset int) ([]*Record, error)

	// Count returns the total number of stored analyses.
	Count(ctx context.Context) (int64, error)

	// Delete removes an analysis by its analysis ID.
	Delete(ctx context.Context, analysisID string) error

	// ExportJSON exports all stored analyses to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// Close closes the store and releases resources.
	Close() error
}

// Export is the JSON export format.
type Export struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Count      int       `json:"count"`
	Analyses   []*Record `json:"analyses"`
}
