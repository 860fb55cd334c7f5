package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/partyops/jumpkitchen/internal/domain/models"
	"github.com/partyops/jumpkitchen/internal/pdf"
	"github.com/partyops/jumpkitchen/internal/service/schedule"
)

// ScheduleHandler adapts the schedule service to HTTP.
type ScheduleHandler struct {
	svc    *schedule.Service
	logger *zap.Logger
}

// NewScheduleHandler constructs the HTTP handler adapter.
func NewScheduleHandler(svc *schedule.Service, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{svc: svc, logger: logger}
}

// Upload ingests a schedule PDF and replaces the venue's reservation list.
func (h *ScheduleHandler) Upload(c *gin.Context) {
	venue := c.Param("venue")

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing pdf file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Warn("failed opening uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer func() { _ = file.Close() }()

	count, err := h.svc.Ingest(c.Request.Context(), venue, file, fileHeader.Size)
	if errors.Is(err, pdf.ErrSourceUnreadable) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "source document unreadable"})
		return
	}
	if err != nil {
		h.logger.Error("ingestion failed", zap.String("venue", venue), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// Reservations returns the venue's full document.
func (h *ScheduleHandler) Reservations(c *gin.Context) {
	doc, err := h.svc.Document(c.Request.Context(), c.Param("venue"))
	if err != nil {
		h.logger.Error("failed loading document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservations"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Kitchen returns the kitchen-facing pending subset.
func (h *ScheduleHandler) Kitchen(c *gin.Context) {
	view, err := h.svc.Kitchen(c.Request.Context(), c.Param("venue"))
	if err != nil {
		h.logger.Error("failed building kitchen view", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load kitchen view"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update applies a partial edit to one reservation.
func (h *ScheduleHandler) Update(c *gin.Context) {
	var update models.ReservationUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("venue"), c.Param("id"), update)
	if errors.Is(err, schedule.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		h.logger.Error("update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update reservation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reservation": updated})
}

// Done marks a reservation as completed by the kitchen.
func (h *ScheduleHandler) Done(c *gin.Context) {
	err := h.svc.MarkDone(c.Request.Context(), c.Param("venue"), c.Param("id"))
	if errors.Is(err, schedule.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		h.logger.Error("mark done failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark reservation done"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes a reservation.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("venue"), c.Param("id"))
	if errors.Is(err, schedule.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		h.logger.Error("delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type validationRequest struct {
	ReservationID string `json:"reservationId" binding:"required"`
	Type          string `json:"type" binding:"required"`
}

// Validate sets a validation mark.
func (h *ScheduleHandler) Validate(c *gin.Context) {
	h.setValidation(c, true)
}

// Unvalidate clears a validation mark.
func (h *ScheduleHandler) Unvalidate(c *gin.Context) {
	h.setValidation(c, false)
}

func (h *ScheduleHandler) setValidation(c *gin.Context, value bool) {
	var req validationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid validation payload"})
		return
	}

	venue := c.Param("venue")
	var err error
	if value {
		err = h.svc.Validate(c.Request.Context(), venue, req.ReservationID, req.Type)
	} else {
		err = h.svc.Unvalidate(c.Request.Context(), venue, req.ReservationID, req.Type)
	}
	if err != nil {
		h.logger.Error("validation update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update validation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reset clears the venue's document.
func (h *ScheduleHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context(), c.Param("venue")); err != nil {
		h.logger.Error("reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Export pushes the venue's schedule to the catering spreadsheet.
func (h *ScheduleHandler) Export(c *gin.Context) {
	err := h.svc.Export(c.Request.Context(), c.Param("venue"))
	if errors.Is(err, schedule.ErrExportNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export is not configured"})
		return
	}
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
