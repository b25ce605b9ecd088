package repository

import (
	"context"
	"fmt"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonRepository implements domain.LessonRepository using GORM
type LessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository creates a new GORM lesson repository
func NewLessonRepository(db *gorm.DB) domain.LessonRepository {
	return &LessonRepository{
		db: db,
	}
}

// Create creates a new lesson
func (r *LessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

// GetByID retrieves a lesson by ID
func (r *LessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).First(&lesson, "lesson_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &lesson, nil
}

// GetAll retrieves all lessons ordered by day and time
func (r *LessonRepository) GetAll(ctx context.Context) ([]*domain.Lesson, error) {
	var lessons []*domain.Lesson
	err := r.db.WithContext(ctx).Order("day_of_week, time").Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// GetByDay retrieves lessons on a given day of week
func (r *LessonRepository) GetByDay(ctx context.Context, dayOfWeek string) ([]*domain.Lesson, error) {
	var lessons []*domain.Lesson
	err := r.db.WithContext(ctx).Where("day_of_week = ?", dayOfWeek).Order("time").Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// GetByCourse retrieves the lessons generated from a course
func (r *LessonRepository) GetByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	var lessons []*domain.Lesson
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("date").Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// Update saves all fields of an existing lesson
func (r *LessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

// BulkUpdate updates every lesson matching the filter
func (r *LessonRepository) BulkUpdate(ctx context.Context, filter domain.LessonFilter, updates domain.LessonUpdate) (int64, error) {
	values := map[string]interface{}{}
	if updates.Title != nil {
		values["title"] = *updates.Title
	}
	if updates.Time != nil {
		values["time"] = *updates.Time
	}
	if updates.Location != nil {
		values["location"] = *updates.Location
	}
	if updates.Capacity != nil {
		values["capacity"] = *updates.Capacity
	}
	if len(values) == 0 {
		return 0, nil
	}

	result := applyLessonFilter(r.db.WithContext(ctx).Model(&domain.Lesson{}), filter).Updates(values)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// BulkDelete deletes every lesson matching the filter
func (r *LessonRepository) BulkDelete(ctx context.Context, filter domain.LessonFilter) (int64, error) {
	result := applyLessonFilter(r.db.WithContext(ctx), filter).Delete(&domain.Lesson{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReserveSeat increments the enrolled count only while it is below capacity.
// The conditional single-statement update keeps check and increment atomic
// against concurrent writers on the same lesson.
func (r *LessonRepository) ReserveSeat(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("lesson_id = ? AND enrolled_count < capacity", id).
		UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ForceSeat increments the enrolled count unconditionally
func (r *LessonRepository) ForceSeat(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("lesson_id = ?", id).
		UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrLessonNotFound, id)
	}
	return nil
}

// ReleaseSeat decrements the enrolled count, floored at zero
func (r *LessonRepository) ReleaseSeat(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("lesson_id = ?", id).
		UpdateColumn("enrolled_count", gorm.Expr("GREATEST(enrolled_count - 1, 0)"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrLessonNotFound, id)
	}
	return nil
}

func applyLessonFilter(tx *gorm.DB, filter domain.LessonFilter) *gorm.DB {
	if filter.LessonID != nil {
		tx = tx.Where("lesson_id = ?", *filter.LessonID)
	}
	if filter.CourseID != nil {
		tx = tx.Where("course_id = ?", *filter.CourseID)
	}
	if filter.DayOfWeek != nil {
		tx = tx.Where("day_of_week = ?", *filter.DayOfWeek)
	}
	if filter.AgeGroup != nil {
		tx = tx.Where("age_group = ?", *filter.AgeGroup)
	}
	if filter.Location != nil {
		tx = tx.Where("location = ?", *filter.Location)
	}
	return tx
}
