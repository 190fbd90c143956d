package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labsense/risk-engine/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := NewSQLiteStore(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	return store
}

func sampleRecord(t *testing.T, analysisID string, level domain.RiskLevel) *Record {
	t.Helper()

	analysis := &domain.RiskAnalysis{
		ID:            analysisID,
		RiskLevel:     level,
		RiskScore:     45,
		TotalTests:    3,
		CriticalCount: 1,
		Flags:         map[string]bool{"potassium_critical": true},
		Justification: []string{"1 test(s) at critical levels requiring immediate attention"},
		CalculatedAt:  time.Now().UTC(),
	}
	rec, err := NewRecord(analysis, "Test Patient")
	require.NoError(t, err)
	return rec
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)

	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	rec := sampleRecord(t, "analysis-001", domain.RiskHigh)

	err := store.Save(ctx, rec)
	require.NoError(t, err)
	assert.NotZero(t, rec.ID, "ID should be assigned")

	got, err := store.Get(ctx, "analysis-001")
	require.NoError(t, err)
	assert.Equal(t, "analysis-001", got.AnalysisID)
	assert.Equal(t, domain.RiskHigh, got.RiskLevel)
	assert.Equal(t, 45, got.RiskScore)
	assert.Equal(t, "Test Patient", got.PatientName)

	analysis, err := got.Analysis()
	require.NoError(t, err)
	assert.True(t, analysis.Flags["potassium_critical"])
}

func TestSQLiteStore_SaveUpdatesExisting(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	rec := sampleRecord(t, "analysis-001", domain.RiskHigh)
	require.NoError(t, store.Save(ctx, rec))
	originalID := rec.ID

	updated := sampleRecord(t, "analysis-001", domain.RiskModerate)
	require.NoError(t, store.Save(ctx, updated))
	assert.Equal(t, originalID, updated.ID, "update keeps the row ID")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got, err := store.Get(ctx, "analysis-001")
	require.NoError(t, err)
	assert.Equal(t, domain.RiskModerate, got.RiskLevel)
}

func TestSQLiteStore_GetNotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_ListPagination(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		rec := sampleRecord(t, fmt.Sprintf("analysis-%03d", i), domain.RiskLow)
		rec.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Save(ctx, rec))
	}

	page, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "analysis-004", page[0].AnalysisID, "newest first")

	rest, err := store.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleRecord(t, "analysis-001", domain.RiskLow)))

	require.NoError(t, store.Delete(ctx, "analysis-001"))

	_, err := store.Get(ctx, "analysis-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_ExportJSON(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleRecord(t, "analysis-001", domain.RiskHigh)))
	require.NoError(t, store.Save(ctx, sampleRecord(t, "analysis-002", domain.RiskLow)))

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))

	var export Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &export))
	assert.Equal(t, "1.0", export.Version)
	assert.Equal(t, 2, export.Count)
	assert.Len(t, export.Analyses, 2)
}
