package service

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/infrastructure/repository"

	"github.com/google/uuid"
)

// stubNotifier records dispatched notifications. Safe for the asynchronous
// dispatch goroutine.
type stubNotifier struct {
	mu        sync.Mutex
	confirmed []domain.RegistrationStatus
}

func (n *stubNotifier) SendParticipantConfirmation(ctx context.Context, participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, status)
	return nil
}

func (n *stubNotifier) SendAdminNotification(ctx context.Context, participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) error {
	return nil
}

// countingCache tracks invalidations without storing anything.
type countingCache struct {
	mu            sync.Mutex
	invalidations int
}

func (c *countingCache) GetAvailableLessons(ctx context.Context, ageGroup string) ([]*domain.AvailableLesson, error) {
	return nil, domain.ErrLessonNotFound
}

func (c *countingCache) SetAvailableLessons(ctx context.Context, ageGroup string, lessons []*domain.AvailableLesson, ttl time.Duration) error {
	return nil
}

func (c *countingCache) InvalidateAvailability(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	return nil
}

type testEnv struct {
	lessons       domain.LessonRepository
	participants  domain.ParticipantRepository
	registrations domain.RegistrationRepository
	courses       domain.CourseRepository
	notifier      *stubNotifier
	engine        *RegistrationService
	bulk          *BulkAssignmentService
	courseService *CourseService
	lessonService *LessonService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		lessons:       repository.NewMockLessonRepository(),
		participants:  repository.NewMockParticipantRepository(),
		registrations: repository.NewMockRegistrationRepository(),
		courses:       repository.NewMockCourseRepository(),
		notifier:      &stubNotifier{},
	}
	env.engine = NewRegistrationService(env.lessons, env.participants, env.registrations, env.notifier, nil, true)
	env.bulk = NewBulkAssignmentService(env.lessons, env.participants, env.registrations, env.courses, nil)
	env.courseService = NewCourseService(env.courses, env.lessons, nil)
	env.lessonService = NewLessonService(env.lessons, nil)
	return env
}

func (env *testEnv) addLesson(t *testing.T, date, ageGroup string, capacity int) *domain.Lesson {
	t.Helper()

	lesson := domain.NewLesson(domain.LessonInput{
		Title:     "Cvičení pro maminky s dětmi",
		Date:      date,
		DayOfWeek: "Monday",
		Time:      "10:00",
		Location:  "CVČ Vietnamská",
		AgeGroup:  ageGroup,
		Capacity:  capacity,
	})
	if err := env.lessons.Create(context.Background(), lesson); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return lesson
}

func (env *testEnv) addParticipant(t *testing.T, name, ageGroup string) *domain.Participant {
	t.Helper()

	participant := domain.NewParticipant(domain.ParticipantInput{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "+420123456789",
		AgeGroup: ageGroup,
	})
	if err := env.participants.Create(context.Background(), participant); err != nil {
		t.Fatalf("create participant: %v", err)
	}
	return participant
}

func (env *testEnv) lessonByID(t *testing.T, id uuid.UUID) *domain.Lesson {
	t.Helper()

	lesson, err := env.lessons.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if lesson == nil {
		t.Fatalf("lesson %s not found", id)
	}
	return lesson
}

func (env *testEnv) registrationByID(t *testing.T, id uuid.UUID) *domain.Registration {
	t.Helper()

	registration, err := env.registrations.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if registration == nil {
		t.Fatalf("registration %s not found", id)
	}
	return registration
}
