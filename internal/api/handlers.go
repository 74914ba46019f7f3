package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ivf-outcome-server/internal/domain"
	"github.com/ivf-outcome-server/internal/service"
)

// PredictResponse wraps the engine output with the optional snapshot ID
// assigned when the caller requested persistence.
type PredictResponse struct {
	SnapshotID string                   `json:"snapshot_id,omitempty"`
	Results    domain.PredictionResults `json:"results"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// handlePredict runs the prediction cascade. The engine never fails: invalid
// clinical inputs return 200 with the zeroed error-result convention. Only a
// malformed request body is an HTTP error.
func (s *Server) handlePredict(c *gin.Context) {
	var inputs domain.PredictionInputs
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "Malformed request body", err.Error(), s.correlationID(c)))
		return
	}

	key := service.InputKey(inputs)

	var results domain.PredictionResults
	if s.resultCache != nil {
		if cached, ok := s.resultCache.Get(c.Request.Context(), key); ok {
			results = *cached
		} else {
			results = s.predictor.Predict(inputs)
			s.resultCache.Set(c.Request.Context(), key, results)
		}
	} else {
		results = s.predictor.Predict(inputs)
	}

	response := PredictResponse{Results: results}

	if c.Query("save") == "true" && s.store != nil {
		snapshot := &domain.Snapshot{
			ID:        uuid.New().String(),
			Inputs:    inputs,
			Results:   results,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.Save(c.Request.Context(), snapshot); err != nil {
			s.logger.WithError(err).Error("Failed to save prediction snapshot")
			c.JSON(http.StatusInternalServerError, domain.NewAPIError(
				domain.ErrDatabaseError, "Failed to save prediction", "", s.correlationID(c)))
			return
		}
		response.SnapshotID = snapshot.ID
	}

	c.JSON(http.StatusOK, response)
}

// handleGetSnapshot retrieves a stored prediction snapshot
func (s *Server) handleGetSnapshot(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotImplemented, domain.NewAPIError(
			domain.ErrDatabaseError, "Snapshot storage is not configured", "", s.correlationID(c)))
		return
	}

	snapshot, err := s.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, domain.NewAPIError(
				domain.ErrInvalidInput, "Snapshot not found", "", s.correlationID(c)))
			return
		}
		s.logger.WithError(err).Error("Failed to get snapshot")
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrDatabaseError, "Failed to retrieve snapshot", "", s.correlationID(c)))
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// handleListSnapshots lists stored snapshots, newest first
func (s *Server) handleListSnapshots(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotImplemented, domain.NewAPIError(
			domain.ErrDatabaseError, "Snapshot storage is not configured", "", s.correlationID(c)))
		return
	}

	limit := parseQueryInt(c, "limit", 20)
	if limit > 100 {
		limit = 100
	}
	offset := parseQueryInt(c, "offset", 0)

	snapshots, err := s.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list snapshots")
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrDatabaseError, "Failed to list snapshots", "", s.correlationID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}

// handleReferences returns the static bibliography
func (s *Server) handleReferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"references": service.References(),
	})
}

func (s *Server) correlationID(c *gin.Context) string {
	if id, ok := c.Get("correlation_id"); ok {
		if str, ok := id.(string); ok {
			return str
		}
	}
	return ""
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
