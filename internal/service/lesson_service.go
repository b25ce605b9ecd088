package service

import (
	"context"
	"fmt"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
)

// LessonService owns the lesson calendar: single-lesson CRUD and the
// filter-driven bulk operations used by administrators.
type LessonService struct {
	lessonRepo domain.LessonRepository
	cache      domain.AvailabilityCache
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo domain.LessonRepository, cache domain.AvailabilityCache) *LessonService {
	return &LessonService{
		lessonRepo: lessonRepo,
		cache:      cache,
	}
}

// CreateLesson builds and persists a standalone lesson, not linked to a course.
func (s *LessonService) CreateLesson(ctx context.Context, input domain.LessonInput) (*domain.Lesson, error) {
	lesson := domain.NewLesson(input)
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	logger.Info("Created lesson %s (%s on %s)", lesson.LessonID, lesson.Title, lesson.Date)
	s.invalidateAvailability(ctx)
	return lesson, nil
}

// GetLesson loads one lesson by identifier.
func (s *LessonService) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLessonNotFound, id)
	}
	return lesson, nil
}

// GetAllLessons lists every lesson, ordered by day and time.
func (s *LessonService) GetAllLessons(ctx context.Context) ([]*domain.Lesson, error) {
	lessons, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	return lessons, nil
}

// GetLessonsByDay lists lessons on a given day of week.
func (s *LessonService) GetLessonsByDay(ctx context.Context, dayOfWeek string) ([]*domain.Lesson, error) {
	lessons, err := s.lessonRepo.GetByDay(ctx, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	return lessons, nil
}

// GetLessonsByCourse lists the lesson instances generated from a course.
func (s *LessonService) GetLessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	lessons, err := s.lessonRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	return lessons, nil
}

// UpdateLesson applies administrative field edits to one lesson.
func (s *LessonService) UpdateLesson(ctx context.Context, id uuid.UUID, updates domain.LessonUpdate) (*domain.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLessonNotFound, id)
	}

	if updates.Title != nil {
		lesson.Title = *updates.Title
	}
	if updates.Time != nil {
		lesson.Time = *updates.Time
	}
	if updates.Location != nil {
		lesson.Location = *updates.Location
	}
	if updates.Capacity != nil {
		lesson.Capacity = *updates.Capacity
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	s.invalidateAvailability(ctx)
	return lesson, nil
}

// BulkUpdateLessons updates every lesson matching the filter and returns the
// number of lessons changed.
func (s *LessonService) BulkUpdateLessons(ctx context.Context, filter domain.LessonFilter, updates domain.LessonUpdate) (int64, error) {
	count, err := s.lessonRepo.BulkUpdate(ctx, filter, updates)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update lessons: %w", err)
	}

	logger.Info("Bulk updated %d lessons", count)
	s.invalidateAvailability(ctx)
	return count, nil
}

// BulkDeleteLessons deletes every lesson matching the filter and returns the
// number of lessons removed.
func (s *LessonService) BulkDeleteLessons(ctx context.Context, filter domain.LessonFilter) (int64, error) {
	count, err := s.lessonRepo.BulkDelete(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete lessons: %w", err)
	}

	logger.Info("Bulk deleted %d lessons", count)
	s.invalidateAvailability(ctx)
	return count, nil
}

func (s *LessonService) invalidateAvailability(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAvailability(ctx); err != nil {
		logger.Warn("Failed to invalidate availability cache: %v", err)
	}
}
