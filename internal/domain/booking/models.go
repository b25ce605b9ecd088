package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for lesson dates.
const DateLayout = "2006-01-02"

// Lesson represents one scheduled occurrence of an activity
type Lesson struct {
	LessonID      uuid.UUID  `json:"lesson_id" gorm:"type:uuid;primary_key"`
	CourseID      *uuid.UUID `json:"course_id,omitempty" gorm:"type:uuid;index"`
	Title         string     `json:"title" gorm:"not null"`
	Date          string     `json:"date" gorm:"not null;index"`
	DayOfWeek     string     `json:"day_of_week" gorm:"not null;index"`
	Time          string     `json:"time" gorm:"not null"`
	Location      string     `json:"location" gorm:"not null"`
	AgeGroup      string     `json:"age_group" gorm:"not null;index"`
	Capacity      int        `json:"capacity" gorm:"not null;check:capacity > 0"`
	EnrolledCount int        `json:"enrolled_count" gorm:"not null;default:0;check:enrolled_count >= 0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsFull reports whether every seat counted against capacity is taken.
func (l *Lesson) IsFull() bool {
	return l.EnrolledCount >= l.Capacity
}

// AvailableSpots returns the number of free seats, never negative.
func (l *Lesson) AvailableSpots() int {
	if spots := l.Capacity - l.EnrolledCount; spots > 0 {
		return spots
	}
	return 0
}

// CancellationDeadline returns local midnight at the start of the lesson date.
// Participant cancellations must happen strictly before this instant.
func (l *Lesson) CancellationDeadline() (time.Time, error) {
	return time.ParseInLocation(DateLayout, l.Date, time.Local)
}

// Participant represents a registered attendee
type Participant struct {
	ParticipantID uuid.UUID `json:"participant_id" gorm:"type:uuid;primary_key"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null"`
	Phone         string    `json:"phone" gorm:"not null"`
	AgeGroup      string    `json:"age_group" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Course is a template defining shared attributes for a family of lessons
type Course struct {
	CourseID    uuid.UUID `json:"course_id" gorm:"type:uuid;primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	AgeGroup    string    `json:"age_group" gorm:"not null"`
	Color       string    `json:"color" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CourseMember links a participant to a course cohort, independent of any lesson
type CourseMember struct {
	CourseID      uuid.UUID `json:"course_id" gorm:"type:uuid;primaryKey"`
	ParticipantID uuid.UUID `json:"participant_id" gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// RegistrationStatus represents the status of a registration
type RegistrationStatus string

const (
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusWaitlist  RegistrationStatus = "waitlist"
	StatusCancelled RegistrationStatus = "cancelled"
)

// IsActive reports whether the status still counts as a live registration.
func (s RegistrationStatus) IsActive() bool {
	return s == StatusConfirmed || s == StatusWaitlist
}

// Registration represents a participant's registration for a lesson
type Registration struct {
	RegistrationID uuid.UUID          `json:"registration_id" gorm:"type:uuid;primary_key"`
	LessonID       uuid.UUID          `json:"lesson_id" gorm:"type:uuid;not null;index"`
	ParticipantID  uuid.UUID          `json:"participant_id" gorm:"type:uuid;not null;index"`
	Status         RegistrationStatus `json:"status" gorm:"type:text;not null;index"`
	RegisteredAt   time.Time          `json:"registered_at" gorm:"not null"`
	MissedLessonID *uuid.UUID         `json:"missed_lesson_id,omitempty" gorm:"type:uuid"`
	CreatedAt      time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserRole distinguishes admin accounts from participant accounts
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleParticipant UserRole = "participant"
)

// User is an authentication account, optionally linked to a participant
type User struct {
	UserID        uuid.UUID  `json:"user_id" gorm:"type:uuid;primary_key"`
	Email         string     `json:"email" gorm:"unique;not null"`
	PasswordHash  string     `json:"-" gorm:"not null"`
	Name          string     `json:"name" gorm:"not null"`
	Role          UserRole   `json:"role" gorm:"type:text;not null"`
	ParticipantID *uuid.UUID `json:"participant_id,omitempty" gorm:"type:uuid"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// LessonInput carries the fields needed to create a single lesson
type LessonInput struct {
	Title     string `json:"title" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	DayOfWeek string `json:"day_of_week" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Location  string `json:"location" validate:"required"`
	AgeGroup  string `json:"age_group" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required,gt=0"`
}

// ParticipantInput carries the fields needed to create a participant
type ParticipantInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	AgeGroup string `json:"age_group" validate:"required"`
}

// LessonTemplate carries the shared attributes applied to every lesson
// generated from a course template.
type LessonTemplate struct {
	Title     string `json:"title" validate:"required"`
	DayOfWeek string `json:"day_of_week" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Location  string `json:"location" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required,gt=0"`
}

// CourseInput carries the fields needed to create a course template
type CourseInput struct {
	Name        string `json:"name" validate:"required"`
	AgeGroup    string `json:"age_group" validate:"required"`
	Color       string `json:"color" validate:"required"`
	Description string `json:"description,omitempty"`
}

// NewLesson builds a lesson with a fresh identifier and zero enrollment.
func NewLesson(input LessonInput) *Lesson {
	return &Lesson{
		LessonID:      uuid.New(),
		Title:         strings.TrimSpace(input.Title),
		Date:          input.Date,
		DayOfWeek:     input.DayOfWeek,
		Time:          input.Time,
		Location:      strings.TrimSpace(input.Location),
		AgeGroup:      strings.TrimSpace(input.AgeGroup),
		Capacity:      input.Capacity,
		EnrolledCount: 0,
	}
}

// NewParticipant builds a participant with a fresh identifier.
func NewParticipant(input ParticipantInput) *Participant {
	return &Participant{
		ParticipantID: uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		AgeGroup:      strings.TrimSpace(input.AgeGroup),
	}
}

// NewCourse validates the input and builds a course template. Name and age
// group must be non-empty and the color must be a #RGB or #RRGGBB hex value.
func NewCourse(input CourseInput) (*Course, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "course name is required"}
	}

	ageGroup := strings.TrimSpace(input.AgeGroup)
	if ageGroup == "" {
		return nil, &ValidationError{Field: "age_group", Message: "age group is required"}
	}

	if !hexColorPattern.MatchString(input.Color) {
		return nil, &ValidationError{Field: "color", Message: "color must be a valid hex color"}
	}

	return &Course{
		CourseID:    uuid.New(),
		Name:        name,
		AgeGroup:    ageGroup,
		Color:       input.Color,
		Description: strings.TrimSpace(input.Description),
	}, nil
}
