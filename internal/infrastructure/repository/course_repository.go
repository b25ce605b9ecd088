package repository

import (
	"context"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseRepository implements domain.CourseRepository using GORM
type CourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new GORM course repository
func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "course_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*domain.Course, error) {
	var courses []*domain.Course
	err := r.db.WithContext(ctx).Order("name").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// AddMember links a participant to the course cohort, idempotently
func (r *CourseRepository) AddMember(ctx context.Context, courseID, participantID uuid.UUID) error {
	member := &domain.CourseMember{
		CourseID:      courseID,
		ParticipantID: participantID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member).Error
}

// GetMemberIDs lists the participant identifiers in the course cohort
func (r *CourseRepository) GetMemberIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.CourseMember{}).
		Where("course_id = ?", courseID).
		Order("created_at").
		Pluck("participant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
