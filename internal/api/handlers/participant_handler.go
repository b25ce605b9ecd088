package handlers

import (
	"net/http"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/validator"

	"github.com/gin-gonic/gin"
)

// ParticipantHandler handles participant directory HTTP requests
type ParticipantHandler struct {
	participantRepo domain.ParticipantRepository
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(participantRepo domain.ParticipantRepository) *ParticipantHandler {
	return &ParticipantHandler{
		participantRepo: participantRepo,
	}
}

// CreateParticipant handles POST /api/v1/participants
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var input domain.ParticipantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&input); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	participant := domain.NewParticipant(input)
	if err := h.participantRepo.Create(c.Request.Context(), participant); err != nil {
		respondError(c, err, "Failed to create participant")
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Participant created successfully",
		Data:    participant,
	})
}

// GetParticipant handles GET /api/v1/participants/:id
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	participant, err := h.participantRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get participant")
		return
	}
	if participant == nil {
		respondError(c, domain.ErrParticipantNotFound, "Participant not found")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    participant,
	})
}

// GetParticipants handles GET /api/v1/participants
func (h *ParticipantHandler) GetParticipants(c *gin.Context) {
	participants, err := h.participantRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list participants")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    participants,
	})
}
