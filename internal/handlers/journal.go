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

type JournalHandler struct {
	journalService service.JournalService
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalService service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// CreateEntry handles POST /api/v1/journal
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, bindingErrors(err)))
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntries handles GET /api/v1/journal
func (h *JournalHandler) GetEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.journalService.GetUserEntries(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetEntry handles GET /api/v1/journal/:id
func (h *JournalHandler) GetEntry(c *gin.Context) {
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

	entry, err := h.journalService.GetEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpdateEntry handles PUT /api/v1/journal/:id
func (h *JournalHandler) UpdateEntry(c *gin.Context) {
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

	var req models.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, bindingErrors(err)))
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), userID, entryID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/v1/journal/:id
func (h *JournalHandler) DeleteEntry(c *gin.Context) {
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

	if err := h.journalService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JournalHandler) writeError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "journal entry", c.Param("id")))
	case errors.Is(err, service.ErrEncryptionNotReady):
		logger.Ctx(c.Request.Context()).Warn("journal write refused, encryption not ready", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewEncryptionUnavailableError(requestID))
	default:
		logger.Ctx(c.Request.Context()).Error("journal request failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
