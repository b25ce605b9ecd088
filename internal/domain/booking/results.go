package domain

import "github.com/google/uuid"

// SelfServiceResult is the outcome of a participant-facing operation.
// Policy and authorization failures are reported here as values, never as
// errors: a declined registration is an expected outcome, not a fault.
type SelfServiceResult struct {
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Registration *Registration `json:"registration,omitempty"`
}

// Declined builds a failed result with a user-facing message.
func Declined(message string) *SelfServiceResult {
	return &SelfServiceResult{Success: false, Error: message}
}

// Accepted builds a successful result carrying the created registration.
func Accepted(reg *Registration) *SelfServiceResult {
	return &SelfServiceResult{Success: true, Registration: reg}
}

// AdminRegisterResult is the outcome of an admin force registration. The
// Overrides list names every participant-facing constraint that was bypassed.
type AdminRegisterResult struct {
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Registration *Registration `json:"registration,omitempty"`
	Overrides    []string      `json:"admin_overrides,omitempty"`
}

// AdminBulkRegisterResult reports one participant registered across many lessons.
type AdminBulkRegisterResult struct {
	Requested     int             `json:"requested"`
	Registered    int             `json:"registered"`
	Registrations []*Registration `json:"registrations"`
}

// AvailableLesson annotates a lesson with its computed free-seat count.
type AvailableLesson struct {
	Lesson
	AvailableSpots int `json:"available_spots"`
}

// BulkAssignmentError records one failed (participant, lesson) pair.
type BulkAssignmentError struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	LessonID      uuid.UUID `json:"lesson_id"`
	Error         string    `json:"error"`
}

// BulkAssignmentResult aggregates a cohort fan-out across a set of lessons.
// TotalRegistrations is always the full cross-product size; the error list
// coexists with whatever subset of pairs succeeded.
type BulkAssignmentResult struct {
	TotalRegistrations int                   `json:"total_registrations"`
	Successful         int                   `json:"successful"`
	Skipped            int                   `json:"skipped"`
	Waitlisted         int                   `json:"waitlisted"`
	Errors             []BulkAssignmentError `json:"errors"`
}
