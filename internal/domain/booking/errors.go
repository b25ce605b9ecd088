package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// Matches #RGB or #RRGGBB, case-insensitive.
var hexColorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}){1,2}$`)

// Not-found conditions are hard failures from the low-level primitives.
// Handlers and self-service operations convert them into structured results
// before they reach the transport layer.
var (
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrUserNotFound         = errors.New("user not found")

	// ErrEmailTaken signals a conflict on the unique user email column.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDuplicateRegistration is returned by the direct registration path
	// only when duplicate checking is enabled for it via configuration.
	ErrDuplicateRegistration = errors.New("participant already has an active registration for this lesson")

	// ErrCancelDeadlinePassed is the deadline policy failure. Self-service
	// callers translate it into a declined result; admin cancellation
	// bypasses the deadline entirely.
	ErrCancelDeadlinePassed = errors.New("cannot cancel after deadline")
)

// ValidationError reports which input field failed construction-time checks.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
