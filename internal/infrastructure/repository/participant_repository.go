package repository

import (
	"context"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParticipantRepository implements domain.ParticipantRepository using GORM
type ParticipantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new GORM participant repository
func NewParticipantRepository(db *gorm.DB) domain.ParticipantRepository {
	return &ParticipantRepository{
		db: db,
	}
}

// Create creates a new participant
func (r *ParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// Ensure persists the participant unless a record with the same identifier
// already exists
func (r *ParticipantRepository) Ensure(ctx context.Context, participant *domain.Participant) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_id"}},
			DoNothing: true,
		}).
		Create(participant).Error
}

// GetByID retrieves a participant by ID
func (r *ParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.db.WithContext(ctx).First(&participant, "participant_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

// GetAll retrieves all participants
func (r *ParticipantRepository) GetAll(ctx context.Context) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	err := r.db.WithContext(ctx).Order("name").Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}
