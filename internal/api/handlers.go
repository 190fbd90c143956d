package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/labsense/risk-engine/internal/domain"
	"github.com/labsense/risk-engine/internal/storage"
)

// AnalyzeRequest is the analysis request body: the extracted test list
// plus optional patient demographics.
type AnalyzeRequest struct {
	PatientInfo domain.PatientContext `json:"patient_info"`
	LabTests    []domain.TestRecord   `json:"lab_tests"`
}

// ListResponse is the paginated listing envelope.
type ListResponse struct {
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Analyses []*storage.Record `json:"analyses"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// handleAnalyze runs the risk engine over a submitted report and
// persists the result.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrCodeInvalidInput,
			"Request body is not valid JSON",
			err.Error(),
			c.GetString("request_id"),
		))
		return
	}

	analysis := s.engine.Analyze(req.LabTests, req.PatientInfo)

	record, err := storage.NewRecord(analysis, req.PatientInfo.Name)
	if err == nil {
		err = s.store.Save(c.Request.Context(), record)
	}
	if err != nil {
		// The analysis itself succeeded; surface it anyway and log the
		// persistence failure.
		s.logger.WithFields(logrus.Fields{
			"analysis_id": analysis.ID,
			"error":       err,
		}).Error("Failed to persist analysis")
	}

	c.JSON(http.StatusOK, analysis)
}

// handleGetAnalysis returns a stored analysis by ID.
func (s *Server) handleGetAnalysis(c *gin.Context) {
	record, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, domain.NewAPIError(
			domain.ErrCodeNotFound,
			"Analysis not found",
			"",
			c.GetString("request_id"),
		))
		return
	}
	if err != nil {
		s.storageError(c, err)
		return
	}

	analysis, err := record.Analysis()
	if err != nil {
		s.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// handleDeleteAnalysis removes a stored analysis.
func (s *Server) handleDeleteAnalysis(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.storageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleListAnalyses returns stored analyses newest first.
func (s *Server) handleListAnalyses(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 20, 1, 100)
	offset := parseQueryInt(c, "offset", 0, 0, 1<<30)

	records, err := s.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.storageError(c, err)
		return
	}

	total, err := s.store.Count(c.Request.Context())
	if err != nil {
		s.storageError(c, err)
		return
	}

	if records == nil {
		records = []*storage.Record{}
	}
	c.JSON(http.StatusOK, ListResponse{
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		Analyses: records,
	})
}

// handleExportAnalyses streams all stored analyses as JSON.
func (s *Server) handleExportAnalyses(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="analyses.json"`)

	if err := s.store.ExportJSON(c.Request.Context(), c.Writer); err != nil {
		s.logger.WithField("error", err).Error("Failed to export analyses")
		c.Status(http.StatusInternalServerError)
	}
}

func (s *Server) storageError(c *gin.Context, err error) {
	s.logger.WithFields(logrus.Fields{
		"path":  c.Request.URL.Path,
		"error": err,
	}).Error("Storage operation failed")

	c.JSON(http.StatusInternalServerError, domain.NewAPIError(
		domain.ErrCodeStorage,
		"Storage operation failed",
		"",
		c.GetString("request_id"),
	))
}

func parseQueryInt(c *gin.Context, name string, def, min, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return def
	}
	if v > max {
		return max
	}
	return v
}
