package repository

import (
	"context"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationRepository implements domain.RegistrationRepository using GORM
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new GORM registration repository
func NewRegistrationRepository(db *gorm.DB) domain.RegistrationRepository {
	return &RegistrationRepository{
		db: db,
	}
}

// Create creates a new registration
func (r *RegistrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

// GetByID retrieves a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	var registration domain.Registration
	err := r.db.WithContext(ctx).First(&registration, "registration_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// GetByLesson retrieves all registrations for a lesson
func (r *RegistrationRepository) GetByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Registration, error) {
	var registrations []*domain.Registration
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("registered_at").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

// GetByParticipant retrieves all registrations for a participant
func (r *RegistrationRepository) GetByParticipant(ctx context.Context, participantID uuid.UUID) ([]*domain.Registration, error) {
	var registrations []*domain.Registration
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("registered_at").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

// GetByParticipantAndLesson retrieves the most recent registration for the
// pair regardless of status
func (r *RegistrationRepository) GetByParticipantAndLesson(ctx context.Context, participantID, lessonID uuid.UUID) (*domain.Registration, error) {
	var registration domain.Registration
	err := r.db.WithContext(ctx).
		Where("participant_id = ? AND lesson_id = ?", participantID, lessonID).
		Order("registered_at DESC").
		First(&registration).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// GetActiveByParticipantAndLesson retrieves a confirmed or waitlisted
// registration for the pair, if one exists
func (r *RegistrationRepository) GetActiveByParticipantAndLesson(ctx context.Context, participantID, lessonID uuid.UUID) (*domain.Registration, error) {
	var registration domain.Registration
	err := r.db.WithContext(ctx).
		Where("participant_id = ? AND lesson_id = ? AND status IN ?",
			participantID, lessonID, []domain.RegistrationStatus{domain.StatusConfirmed, domain.StatusWaitlist}).
		First(&registration).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// Update updates an existing registration
func (r *RegistrationRepository) Update(ctx context.Context, registration *domain.Registration) error {
	return r.db.WithContext(ctx).Save(registration).Error
}
