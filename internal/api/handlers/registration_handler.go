package handlers

import (
	"net/http"
	"time"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/service"
	"lesson-reservations/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegistrationHandler handles registration HTTP requests
type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
	}
}

// RegisterRequest carries the participant details and target lesson.
type RegisterRequest struct {
	LessonID       uuid.UUID               `json:"lesson_id" validate:"required"`
	Participant    domain.ParticipantInput `json:"participant" validate:"required"`
	MissedLessonID *uuid.UUID              `json:"missed_lesson_id,omitempty"`
}

// Register handles POST /api/v1/registrations
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req.Participant); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	participant := domain.NewParticipant(req.Participant)

	var (
		registration *domain.Registration
		err          error
	)
	if req.MissedLessonID != nil {
		registration, err = h.registrationService.RegisterForSubstitution(c.Request.Context(), req.LessonID, participant, *req.MissedLessonID)
	} else {
		registration, err = h.registrationService.Register(c.Request.Context(), req.LessonID, participant)
	}
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Registration processed successfully",
		Data:    registration,
	})
}

// BulkRegisterRequest carries one lesson and many participants.
type BulkRegisterRequest struct {
	LessonID     uuid.UUID                 `json:"lesson_id" validate:"required"`
	Participants []domain.ParticipantInput `json:"participants" validate:"required,min=1"`
}

// BulkRegister handles POST /api/v1/registrations/bulk
func (h *RegistrationHandler) BulkRegister(c *gin.Context) {
	var req BulkRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	participants := make([]*domain.Participant, 0, len(req.Participants))
	for _, input := range req.Participants {
		if err := validator.ValidateStruct(&input); err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{
				Success: false,
				Message: "Validation failed",
				Errors:  validator.FormatValidationError(err),
			})
			return
		}
		participants = append(participants, domain.NewParticipant(input))
	}

	registrations, err := h.registrationService.BulkRegister(c.Request.Context(), req.LessonID, participants)
	if err != nil {
		respondError(c, err, "Bulk registration failed")
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Participants registered successfully",
		Data:    registrations,
	})
}

// Cancel handles POST /api/v1/registrations/:id/cancel
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.registrationService.Cancel(c.Request.Context(), id, time.Now()); err != nil {
		respondError(c, err, "Cancellation failed")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Registration cancelled successfully",
	})
}

// GetLessonRegistrations handles GET /api/v1/lessons/:id/registrations
func (h *RegistrationHandler) GetLessonRegistrations(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	registrations, err := h.registrationService.GetRegistrationsForLesson(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list registrations")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    registrations,
	})
}

// GetParticipantRegistrations handles GET /api/v1/participants/:id/registrations
func (h *RegistrationHandler) GetParticipantRegistrations(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	registrations, err := h.registrationService.GetParticipantRegistrations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list registrations")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    registrations,
	})
}

// GetSubstitutionLessons handles GET /api/v1/lessons/substitutions
func (h *RegistrationHandler) GetSubstitutionLessons(c *gin.Context) {
	ageGroup := c.Query("age_group")
	if ageGroup == "" {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "age_group is required",
		})
		return
	}

	lessons, err := h.registrationService.GetAvailableSubstitutionLessons(c.Request.Context(), ageGroup)
	if err != nil {
		respondError(c, err, "Failed to list substitution lessons")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    lessons,
	})
}
