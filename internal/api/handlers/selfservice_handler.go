package handlers

import (
	"net/http"
	"time"

	"lesson-reservations/internal/api/middleware"
	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SelfServiceHandler handles participant self-service HTTP requests. The
// acting participant comes from the authenticated token, never the body.
type SelfServiceHandler struct {
	registrationService *service.RegistrationService
}

// NewSelfServiceHandler creates a new self-service handler
func NewSelfServiceHandler(registrationService *service.RegistrationService) *SelfServiceHandler {
	return &SelfServiceHandler{
		registrationService: registrationService,
	}
}

func (h *SelfServiceHandler) participantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.ParticipantID(c)
	if !ok {
		c.JSON(http.StatusForbidden, APIResponse{
			Success: false,
			Message: "No participant linked to this account",
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondResult writes a structured policy outcome. Declined results are
// 200s with success=false; the request itself was handled fine.
func respondResult(c *gin.Context, result *domain.SelfServiceResult) {
	if !result.Success {
		c.JSON(http.StatusOK, APIResponse{
			Success: false,
			Message: result.Error,
		})
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    result.Registration,
	})
}

// SelfRegisterRequest names the lesson to register for.
type SelfRegisterRequest struct {
	LessonID uuid.UUID `json:"lesson_id" validate:"required"`
}

// Register handles POST /api/v1/me/registrations
func (h *SelfServiceHandler) Register(c *gin.Context) {
	participantID, ok := h.participantID(c)
	if !ok {
		return
	}

	var req SelfRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	result, err := h.registrationService.SelfRegister(c.Request.Context(), participantID, req.LessonID)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	respondResult(c, result)
}

// Cancel handles POST /api/v1/me/registrations/:id/cancel
func (h *SelfServiceHandler) Cancel(c *gin.Context) {
	participantID, ok := h.participantID(c)
	if !ok {
		return
	}
	registrationID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.registrationService.SelfCancel(c.Request.Context(), participantID, registrationID, time.Now())
	if err != nil {
		respondError(c, err, "Cancellation failed")
		return
	}
	respondResult(c, result)
}

// TransferRequest names the replacement lesson.
type TransferRequest struct {
	NewLessonID uuid.UUID `json:"new_lesson_id" validate:"required"`
}

// Transfer handles POST /api/v1/me/registrations/:id/transfer
func (h *SelfServiceHandler) Transfer(c *gin.Context) {
	participantID, ok := h.participantID(c)
	if !ok {
		return
	}
	registrationID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	result, err := h.registrationService.Transfer(c.Request.Context(), participantID, registrationID, req.NewLessonID, time.Now())
	if err != nil {
		respondError(c, err, "Transfer failed")
		return
	}
	respondResult(c, result)
}

// AvailableLessons handles GET /api/v1/me/lessons/available
func (h *SelfServiceHandler) AvailableLessons(c *gin.Context) {
	participantID, ok := h.participantID(c)
	if !ok {
		return
	}

	lessons, err := h.registrationService.GetAvailableLessonsForParticipant(c.Request.Context(), participantID)
	if err != nil {
		respondError(c, err, "Failed to list available lessons")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    lessons,
	})
}

// Registrations handles GET /api/v1/me/registrations
func (h *SelfServiceHandler) Registrations(c *gin.Context) {
	participantID, ok := h.participantID(c)
	if !ok {
		return
	}

	registrations, err := h.registrationService.GetParticipantRegistrations(c.Request.Context(), participantID)
	if err != nil {
		respondError(c, err, "Failed to list registrations")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    registrations,
	})
}
