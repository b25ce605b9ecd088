package service

import (
	"context"
	"fmt"
	"time"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
)

// CourseService owns course templates, cohort membership and the template
// expander that turns a course plus scheduling parameters into concrete
// lesson instances.
type CourseService struct {
	courseRepo domain.CourseRepository
	lessonRepo domain.LessonRepository
	cache      domain.AvailabilityCache
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo domain.CourseRepository, lessonRepo domain.LessonRepository, cache domain.AvailabilityCache) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		cache:      cache,
	}
}

// CreateCourse validates and persists a course template.
func (s *CourseService) CreateCourse(ctx context.Context, input domain.CourseInput) (*domain.Course, error) {
	course, err := domain.NewCourse(input)
	if err != nil {
		return nil, err
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	logger.Info("Created course %s (%s)", course.CourseID, course.Name)
	return course, nil
}

// GetCourse loads one course by identifier.
func (s *CourseService) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, id)
	}
	return course, nil
}

// GetAllCourses lists every course template.
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	return courses, nil
}

// AddMember links a participant to the course cohort.
func (s *CourseService) AddMember(ctx context.Context, courseID, participantID uuid.UUID) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
	}
	if err := s.courseRepo.AddMember(ctx, courseID, participantID); err != nil {
		return fmt.Errorf("failed to add course member: %w", err)
	}
	return nil
}

// CreateLessonsFromTemplate creates one lesson per date, all sharing the
// template attributes, inheriting the course age group and linked to the
// course. Lessons are returned in input-date order.
func (s *CourseService) CreateLessonsFromTemplate(ctx context.Context, courseID uuid.UUID, dates []string, template domain.LessonTemplate) ([]*domain.Lesson, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
	}

	if len(dates) == 0 {
		return nil, &domain.ValidationError{Field: "dates", Message: "at least one date is required"}
	}
	for _, date := range dates {
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return nil, &domain.ValidationError{Field: "dates", Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date)}
		}
	}

	lessons := make([]*domain.Lesson, 0, len(dates))
	for _, date := range dates {
		lesson := domain.NewLesson(domain.LessonInput{
			Title:     template.Title,
			Date:      date,
			DayOfWeek: template.DayOfWeek,
			Time:      template.Time,
			Location:  template.Location,
			AgeGroup:  course.AgeGroup,
			Capacity:  template.Capacity,
		})
		lesson.CourseID = &course.CourseID

		if err := s.lessonRepo.Create(ctx, lesson); err != nil {
			return nil, fmt.Errorf("failed to create lesson for %s: %w", date, err)
		}
		lessons = append(lessons, lesson)
	}

	logger.Info("Created %d lessons from course %s", len(lessons), courseID)
	s.invalidateAvailability(ctx)
	return lessons, nil
}

// CreateWeeklyLessons generates weeksCount dates at 7-day increments starting
// from startDate (inclusive) and delegates to the explicit-dates path. Dates
// are derived by adding 7*i days to the start date's calendar value, so the
// sequence stays correct across month and year boundaries.
func (s *CourseService) CreateWeeklyLessons(ctx context.Context, courseID uuid.UUID, startDate string, weeksCount int, template domain.LessonTemplate) ([]*domain.Lesson, error) {
	if weeksCount < 1 {
		return nil, &domain.ValidationError{Field: "weeks_count", Message: "weeks count must be at least 1"}
	}

	start, err := time.Parse(domain.DateLayout, startDate)
	if err != nil {
		return nil, &domain.ValidationError{Field: "start_date", Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", startDate)}
	}

	dates := make([]string, 0, weeksCount)
	for i := 0; i < weeksCount; i++ {
		dates = append(dates, start.AddDate(0, 0, 7*i).Format(domain.DateLayout))
	}

	return s.CreateLessonsFromTemplate(ctx, courseID, dates, template)
}

func (s *CourseService) invalidateAvailability(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAvailability(ctx); err != nil {
		logger.Warn("Failed to invalidate availability cache: %v", err)
	}
}
