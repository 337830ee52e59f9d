package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumina-app/backend/internal/apierror"
	"github.com/lumina-app/backend/internal/logger"
	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/internal/service"
)

type TrackingHandler struct {
	trackingService service.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingService service.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// CreateMoodEntry handles POST /api/v1/mood
func (h *TrackingHandler) CreateMoodEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, bindingErrors(err)))
		return
	}

	entry, err := h.trackingService.CreateMoodEntry(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err, "mood entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetMoodEntries handles GET /api/v1/mood
func (h *TrackingHandler) GetMoodEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.trackingService.GetMoodEntries(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "mood entry")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeleteMoodEntry handles DELETE /api/v1/mood/:id
func (h *TrackingHandler) DeleteMoodEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID := c.Param("id")
	if err := service.ValidateEntryID(entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, entryID))
		return
	}

	if err := h.trackingService.DeleteMoodEntry(c.Request.Context(), userID, entryID); err != nil {
		h.writeError(c, err, "mood entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateSleepEntry handles POST /api/v1/sleep
func (h *TrackingHandler) CreateSleepEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateSleepEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, bindingErrors(err)))
		return
	}

	entry, err := h.trackingService.CreateSleepEntry(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err, "sleep entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetSleepEntries handles GET /api/v1/sleep
func (h *TrackingHandler) GetSleepEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.trackingService.GetSleepEntries(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "sleep entry")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeleteSleepEntry handles DELETE /api/v1/sleep/:id
func (h *TrackingHandler) DeleteSleepEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID := c.Param("id")
	if err := service.ValidateEntryID(entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, entryID))
		return
	}

	if err := h.trackingService.DeleteSleepEntry(c.Request.Context(), userID, entryID); err != nil {
		h.writeError(c, err, "sleep entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateStressEntry handles POST /api/v1/stress
func (h *TrackingHandler) CreateStressEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateStressEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, bindingErrors(err)))
		return
	}

	entry, err := h.trackingService.CreateStressEntry(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err, "stress entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetStressEntries handles GET /api/v1/stress
func (h *TrackingHandler) GetStressEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.trackingService.GetStressEntries(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "stress entry")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeleteStressEntry handles DELETE /api/v1/stress/:id
func (h *TrackingHandler) DeleteStressEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID := c.Param("id")
	if err := service.ValidateEntryID(entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, entryID))
		return
	}

	if err := h.trackingService.DeleteStressEntry(c.Request.Context(), userID, entryID); err != nil {
		h.writeError(c, err, "stress entry")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TrackingHandler) writeError(c *gin.Context, err error, resource string) {
	requestID := apierror.GetRequestID(c)

	if errors.Is(err, service.ErrNotFound) {
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, c.Param("id")))
		return
	}

	logger.Ctx(c.Request.Context()).Error("tracking request failed", logger.Err(err))
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}
