package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumina-app/backend/internal/analytics"
	"github.com/lumina-app/backend/internal/apierror"
	"github.com/lumina-app/backend/internal/logger"
	"github.com/lumina-app/backend/internal/service"
)

type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetSummary handles GET /api/v1/insights/summary?days=30
func (h *InsightsHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, err := parseDays(c)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
		return
	}

	summary, err := h.insightsService.GetSummary(c.Request.Context(), userID, days)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTrends handles GET /api/v1/insights/trends?metric=mood&granularity=day&start_date=...&end_date=...
func (h *InsightsHandler) GetTrends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requestID := apierror.GetRequestID(c)

	metric := c.DefaultQuery("metric", "mood")

	granularity := analytics.Granularity(c.DefaultQuery("granularity", string(analytics.GranularityDay)))
	switch granularity {
	case analytics.GranularityDay, analytics.GranularityWeek, analytics.GranularityMonth:
	default:
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			fmt.Sprintf("granularity must be one of day, week, month, got %q", granularity)))
		return
	}

	// Zero times mean the service's default window, computed on its own
	// clock
	var start, end time.Time

	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				"start_date must be an RFC 3339 timestamp"))
			return
		}
		start = parsed
	}

	if s := c.Query("end_date"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				"end_date must be an RFC 3339 timestamp"))
			return
		}
		end = parsed
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			"end_date must not be before start_date"))
		return
	}

	trends, err := h.insightsService.GetTrends(c.Request.Context(), userID, metric, granularity, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

// GetCorrelations handles GET /api/v1/insights/correlations?days=30
func (h *InsightsHandler) GetCorrelations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, err := parseDays(c)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
		return
	}

	correlations, err := h.insightsService.GetCorrelations(c.Request.Context(), userID, days)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, correlations)
}

// GetPatterns handles GET /api/v1/insights/patterns?metric=mood&days=30
func (h *InsightsHandler) GetPatterns(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, err := parseDays(c)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
		return
	}

	metric := c.DefaultQuery("metric", "mood")

	patterns, err := h.insightsService.GetPatterns(c.Request.Context(), userID, metric, days)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, patterns)
}

// GetMoodDistribution handles GET /api/v1/insights/distribution?days=30
func (h *InsightsHandler) GetMoodDistribution(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, err := parseDays(c)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
		return
	}

	distribution, err := h.insightsService.GetMoodDistribution(c.Request.Context(), userID, days)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

// parseDays reads the optional days query parameter. Zero means the service
// default window.
func parseDays(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("days must be a positive integer, got %q", raw)
	}

	return days, nil
}

func (h *InsightsHandler) writeError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrUnknownMetric):
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
	case errors.Is(err, analytics.ErrInvalidInput):
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
	default:
		logger.Ctx(c.Request.Context()).Error("insights request failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
