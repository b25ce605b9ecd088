package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LessonFilter selects lessons by exact field match. Nil fields are ignored.
// Typed predicates keep the bulk update/delete contract statically checkable.
type LessonFilter struct {
	LessonID  *uuid.UUID
	CourseID  *uuid.UUID
	DayOfWeek *string
	AgeGroup  *string
	Location  *string
}

// LessonUpdate carries the administratively editable lesson fields.
// Nil fields are left untouched.
type LessonUpdate struct {
	Title    *string
	Time     *string
	Location *string
	Capacity *int
}

// LessonRepository defines the interface for lesson data access.
// Lookup methods return (nil, nil) when the record does not exist.
type LessonRepository interface {
	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id uuid.UUID) (*Lesson, error)
	GetAll(ctx context.Context) ([]*Lesson, error)
	GetByDay(ctx context.Context, dayOfWeek string) ([]*Lesson, error)
	GetByCourse(ctx context.Context, courseID uuid.UUID) ([]*Lesson, error)
	Update(ctx context.Context, lesson *Lesson) error
	BulkUpdate(ctx context.Context, filter LessonFilter, updates LessonUpdate) (int64, error)
	BulkDelete(ctx context.Context, filter LessonFilter) (int64, error)

	// ReserveSeat atomically increments the enrolled count while it is still
	// below capacity. It reports whether a seat was taken; false means the
	// lesson is full and the caller should waitlist.
	ReserveSeat(ctx context.Context, id uuid.UUID) (bool, error)
	// ForceSeat increments the enrolled count unconditionally, allowing
	// over-capacity enrollment for admin overrides.
	ForceSeat(ctx context.Context, id uuid.UUID) error
	// ReleaseSeat decrements the enrolled count, floored at zero.
	ReleaseSeat(ctx context.Context, id uuid.UUID) error
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	Create(ctx context.Context, participant *Participant) error
	// Ensure persists the participant unless a record with the same
	// identifier already exists. Idempotent on participant identity.
	Ensure(ctx context.Context, participant *Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Participant, error)
	GetAll(ctx context.Context) ([]*Participant, error)
}

// CourseRepository defines the interface for course templates and cohort membership
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	GetAll(ctx context.Context) ([]*Course, error)
	AddMember(ctx context.Context, courseID, participantID uuid.UUID) error
	GetMemberIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
}

// RegistrationRepository defines the interface for registration data access.
// Lookup methods return (nil, nil) when the record does not exist.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*Registration, error)
	GetByLesson(ctx context.Context, lessonID uuid.UUID) ([]*Registration, error)
	GetByParticipant(ctx context.Context, participantID uuid.UUID) ([]*Registration, error)
	// GetByParticipantAndLesson returns the most recent registration for the
	// pair regardless of status.
	GetByParticipantAndLesson(ctx context.Context, participantID, lessonID uuid.UUID) (*Registration, error)
	// GetActiveByParticipantAndLesson returns a confirmed or waitlisted
	// registration for the pair, if one exists.
	GetActiveByParticipantAndLesson(ctx context.Context, participantID, lessonID uuid.UUID) (*Registration, error)
	Update(ctx context.Context, registration *Registration) error
}

// UserRepository defines the interface for authentication accounts
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// NotificationService consumes (participant, lesson, status) triples.
// Implementations must tolerate being no-ops; the engine dispatches these
// asynchronously and never lets a send failure reach the registration caller.
type NotificationService interface {
	SendParticipantConfirmation(ctx context.Context, participant *Participant, lesson *Lesson, status RegistrationStatus) error
	SendAdminNotification(ctx context.Context, participant *Participant, lesson *Lesson, status RegistrationStatus) error
}

// AvailabilityCache holds short-lived copies of availability listings.
// Registration decisions never read from it; the repositories stay the sole
// source of truth for capacity.
type AvailabilityCache interface {
	GetAvailableLessons(ctx context.Context, ageGroup string) ([]*AvailableLesson, error)
	SetAvailableLessons(ctx context.Context, ageGroup string, lessons []*AvailableLesson, ttl time.Duration) error
	InvalidateAvailability(ctx context.Context) error
}
