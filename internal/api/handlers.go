package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/history"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
	historySaveTimeout  = 5 * time.Second
)

// handleSymptomCheck runs the initial analysis pass.
func (s *Server) handleSymptomCheck(c *gin.Context) {
	req := &domain.SymptomCheckRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Request body is required"})
		return
	}

	analysis, err := s.analyzer.Analyze(req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.saveHistory(c, analysis)
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

// handleSymptomFollowup re-runs an analysis with follow-up answers.
func (s *Server) handleSymptomFollowup(c *gin.Context) {
	req := &domain.FollowupRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Request body is required"})
		return
	}

	analysis, err := s.analyzer.Refine(req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.saveHistory(c, analysis)
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

// handleSuggestions returns the autocomplete symptom list.
func (s *Server) handleSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"suggestions":   s.suggester.Suggestions(),
		"synonym_count": s.suggester.SynonymCount(),
	})
}

// handlePredict proxies a feature vector to the external statistical
// prediction service.
func (s *Server) handlePredict(c *gin.Context) {
	req := &domain.PredictionRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Request body is required"})
		return
	}
	if req.ConditionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "condition_id is required"})
		return
	}

	result, err := s.predictor.Predict(c.Request.Context(), req.ConditionID, req.Features)
	if err != nil {
		s.logger.WithError(err).Error("Prediction request failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": domain.NewTriageError(domain.ErrExternalAPI,
				"Prediction service unavailable", "", c.GetString("correlation_id")),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "prediction": result})
}

// handleHistory lists recent screening records.
func (s *Server) handleHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be a positive integer"})
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	records, err := s.store.List(c.Request.Context(), limit)
	if err != nil {
		s.logger.WithError(err).Error("History listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": domain.NewTriageError(domain.ErrDatabaseError,
				"Failed to load screening history", "", c.GetString("correlation_id")),
		})
		return
	}

	total, err := s.store.Count(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("History count failed")
		total = len(records)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": records, "total": total})
}

// handleHistoryRecord returns one stored analysis payload.
func (s *Server) handleHistoryRecord(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Screening record not found"})
			return
		}
		s.logger.WithError(err).Error("History lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": domain.NewTriageError(domain.ErrDatabaseError,
				"Failed to load screening record", "", c.GetString("correlation_id")),
		})
		return
	}

	c.Header("Content-Type", "application/json")
	c.String(http.StatusOK, `{"success": true, "record": %s}`, rec.Analysis)
}

// respondError maps engine errors to HTTP responses. Validation errors
// surface their message verbatim; anything else is an internal error.
func (s *Server) respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Message})
		return
	}

	s.logger.WithError(err).Error("Analysis failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": domain.NewTriageError(domain.ErrInternalServer,
			"Internal server error", "", c.GetString("correlation_id")),
	})
}

// saveHistory persists the analysis asynchronously. A failed save is
// logged, never surfaced: history is best-effort and must not block or
// fail the screening response.
func (s *Server) saveHistory(c *gin.Context, analysis *domain.SymptomAnalysis) {
	rec, err := history.NewRecord(uuid.New().String(), analysis)
	if err != nil {
		s.logger.WithError(err).Error("Failed to build history record")
		return
	}

	correlationID := c.GetString("correlation_id")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), historySaveTimeout)
		defer cancel()
		if err := s.store.Save(ctx, rec); err != nil {
			s.logger.WithFields(logrus.Fields{
				"record_id":      rec.ID,
				"correlation_id": correlationID,
			}).WithError(err).Error("Failed to save screening history")
		}
	}()
}
