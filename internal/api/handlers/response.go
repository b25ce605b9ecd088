package handlers

import (
	"errors"
	"net/http"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// parseUUIDParam reads a path parameter as a UUID, writing a 400 response
// and returning false when it is malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid " + name,
			Errors:  err.Error(),
		})
		return uuid.Nil, false
	}
	return id, true
}

// errorStatus maps domain errors to HTTP status codes. Policy failures
// surfaced as result values never reach this; only hard errors do.
func errorStatus(err error) int {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrParticipantNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateRegistration),
		errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCancelDeadlinePassed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, message string) {
	c.JSON(errorStatus(err), APIResponse{
		Success: false,
		Message: message,
		Errors:  err.Error(),
	})
}
