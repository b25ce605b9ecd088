package service

import (
	"context"
	"fmt"
	"time"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
)

const notificationTimeout = 10 * time.Second

// RegistrationService is the capacity/waitlist state machine. It treats the
// repositories as the sole source of truth and re-reads lesson state before
// every capacity decision; seat accounting happens through the lesson
// repository's conditional updates, so a check never races its increment.
type RegistrationService struct {
	lessonRepo       domain.LessonRepository
	participantRepo  domain.ParticipantRepository
	registrationRepo domain.RegistrationRepository
	notifier         domain.NotificationService
	cache            domain.AvailabilityCache

	// allowDuplicateDirect exempts the direct register/bulk-register and
	// substitution paths from the duplicate-active-registration check that
	// self-service and bulk assignment always enforce.
	allowDuplicateDirect bool
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	lessonRepo domain.LessonRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	notifier domain.NotificationService,
	cache domain.AvailabilityCache,
	allowDuplicateDirect bool,
) *RegistrationService {
	return &RegistrationService{
		lessonRepo:           lessonRepo,
		participantRepo:      participantRepo,
		registrationRepo:     registrationRepo,
		notifier:             notifier,
		cache:                cache,
		allowDuplicateDirect: allowDuplicateDirect,
	}
}

// Register is the core registration primitive. The participant is persisted
// if not already present, the lesson is re-read, and the seat reservation
// decides confirmed versus waitlist. Notification dispatch is asynchronous
// and can never fail the registration.
func (s *RegistrationService) Register(ctx context.Context, lessonID uuid.UUID, participant *domain.Participant) (*domain.Registration, error) {
	return s.register(ctx, lessonID, participant, nil, true)
}

// RegisterForSubstitution registers a make-up attendance for a previously
// missed lesson. The missed lesson is not cross-validated; that trust
// boundary is left to the caller.
func (s *RegistrationService) RegisterForSubstitution(ctx context.Context, lessonID uuid.UUID, participant *domain.Participant, missedLessonID uuid.UUID) (*domain.Registration, error) {
	return s.register(ctx, lessonID, participant, &missedLessonID, true)
}

func (s *RegistrationService) register(ctx context.Context, lessonID uuid.UUID, participant *domain.Participant, missedLessonID *uuid.UUID, notify bool) (*domain.Registration, error) {
	if err := s.participantRepo.Ensure(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to persist participant: %w", err)
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLessonNotFound, lessonID)
	}

	if !s.allowDuplicateDirect {
		existing, err := s.registrationRepo.GetActiveByParticipantAndLesson(ctx, participant.ParticipantID, lessonID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing registration: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrDuplicateRegistration
		}
	}

	reserved, err := s.lessonRepo.ReserveSeat(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve seat: %w", err)
	}

	status := domain.StatusWaitlist
	if reserved {
		status = domain.StatusConfirmed
	}

	registration := &domain.Registration{
		RegistrationID: uuid.New(),
		LessonID:       lessonID,
		ParticipantID:  participant.ParticipantID,
		Status:         status,
		RegisteredAt:   time.Now(),
		MissedLessonID: missedLessonID,
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if reserved {
			if rollbackErr := s.lessonRepo.ReleaseSeat(ctx, lessonID); rollbackErr != nil {
				logger.Error("Failed to release seat after registration write failure for lesson %s: %v", lessonID, rollbackErr)
			}
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	logger.Info("Registered participant %s for lesson %s with status %s", participant.ParticipantID, lessonID, status)
	s.invalidateAvailability(ctx)

	if notify {
		s.dispatchNotifications(ctx, participant, lessonID, status)
	}

	return registration, nil
}

// BulkRegister applies the core primitive to each participant in input order.
// The first failure aborts the remainder; per-pair isolation belongs to
// BulkAssignGroupToLessons instead.
func (s *RegistrationService) BulkRegister(ctx context.Context, lessonID uuid.UUID, participants []*domain.Participant) ([]*domain.Registration, error) {
	registrations := make([]*domain.Registration, 0, len(participants))
	for _, participant := range participants {
		registration, err := s.Register(ctx, lessonID, participant)
		if err != nil {
			return nil, fmt.Errorf("failed to register participant %s: %w", participant.ParticipantID, err)
		}
		registrations = append(registrations, registration)
	}
	return registrations, nil
}

// Cancel cancels a registration subject to the participant-facing deadline:
// local midnight at the start of the lesson date. A confirmed cancellation
// releases the seat, floored at zero. Cancelled registrations stay cancelled.
func (s *RegistrationService) Cancel(ctx context.Context, registrationID uuid.UUID, now time.Time) error {
	return s.cancel(ctx, registrationID, now, true)
}

// ForceCancel cancels a registration without the deadline check, for
// administrative and internal callers that must always succeed.
func (s *RegistrationService) ForceCancel(ctx context.Context, registrationID uuid.UUID) error {
	return s.cancel(ctx, registrationID, time.Time{}, false)
}

func (s *RegistrationService) cancel(ctx context.Context, registrationID uuid.UUID, now time.Time, enforceDeadline bool) error {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("failed to load registration: %w", err)
	}
	if registration == nil {
		return fmt.Errorf("%w: %s", domain.ErrRegistrationNotFound, registrationID)
	}
	if registration.Status == domain.StatusCancelled {
		return nil
	}

	lesson, err := s.lessonRepo.GetByID(ctx, registration.LessonID)
	if err != nil {
		return fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return fmt.Errorf("%w: %s", domain.ErrLessonNotFound, registration.LessonID)
	}

	if enforceDeadline {
		deadline, err := lesson.CancellationDeadline()
		if err != nil {
			return fmt.Errorf("invalid lesson date %q: %w", lesson.Date, err)
		}
		if !now.Before(deadline) {
			return domain.ErrCancelDeadlinePassed
		}
	}

	if registration.Status == domain.StatusConfirmed {
		if err := s.lessonRepo.ReleaseSeat(ctx, registration.LessonID); err != nil {
			return fmt.Errorf("failed to release seat: %w", err)
		}
	}

	registration.Status = domain.StatusCancelled
	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}

	logger.Info("Cancelled registration %s for lesson %s", registrationID, registration.LessonID)
	s.invalidateAvailability(ctx)
	return nil
}

// GetRegistrationsForLesson lists all registrations of a lesson.
func (s *RegistrationService) GetRegistrationsForLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Registration, error) {
	registrations, err := s.registrationRepo.GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	return registrations, nil
}

// GetParticipantRegistrations lists all registrations of a participant.
func (s *RegistrationService) GetParticipantRegistrations(ctx context.Context, participantID uuid.UUID) ([]*domain.Registration, error) {
	registrations, err := s.registrationRepo.GetByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	return registrations, nil
}

// GetAvailableSubstitutionLessons lists lessons with free seats for an age group.
func (s *RegistrationService) GetAvailableSubstitutionLessons(ctx context.Context, ageGroup string) ([]*domain.AvailableLesson, error) {
	lessons, err := s.availableByAgeGroup(ctx, ageGroup, false)
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// availableByAgeGroup lists lessons for an age group that still have free
// seats, optionally restricted to today or later. The listing is served from
// the availability cache when possible; capacity decisions never are.
func (s *RegistrationService) availableByAgeGroup(ctx context.Context, ageGroup string, futureOnly bool) ([]*domain.AvailableLesson, error) {
	if !futureOnly && s.cache != nil {
		if cached, err := s.cache.GetAvailableLessons(ctx, ageGroup); err == nil {
			return cached, nil
		}
	}

	lessons, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}

	today := time.Now().Format(domain.DateLayout)
	available := make([]*domain.AvailableLesson, 0)
	for _, lesson := range lessons {
		if lesson.AgeGroup != ageGroup || lesson.IsFull() {
			continue
		}
		if futureOnly && lesson.Date < today {
			continue
		}
		available = append(available, &domain.AvailableLesson{
			Lesson:         *lesson,
			AvailableSpots: lesson.AvailableSpots(),
		})
	}

	if !futureOnly && s.cache != nil {
		if err := s.cache.SetAvailableLessons(ctx, ageGroup, available, availabilityCacheTTL); err != nil {
			logger.Warn("Failed to cache available lessons for age group %s: %v", ageGroup, err)
		}
	}

	return available, nil
}

const availabilityCacheTTL = 2 * time.Minute

func (s *RegistrationService) invalidateAvailability(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAvailability(ctx); err != nil {
		logger.Warn("Failed to invalidate availability cache: %v", err)
	}
}

// dispatchNotifications re-reads the lesson so the messages carry the final
// occupancy, then sends the participant confirmation and the admin
// notification. Dispatch failures are logged and never reach the caller.
func (s *RegistrationService) dispatchNotifications(ctx context.Context, participant *domain.Participant, lessonID uuid.UUID, status domain.RegistrationStatus) {
	if s.notifier == nil {
		return
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil || lesson == nil {
		logger.Warn("Skipping notifications, could not re-read lesson %s: %v", lessonID, err)
		return
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()

		if err := s.notifier.SendParticipantConfirmation(sendCtx, participant, lesson, status); err != nil {
			logger.Warn("Failed to send participant confirmation for lesson %s: %v", lessonID, err)
		}
		if err := s.notifier.SendAdminNotification(sendCtx, participant, lesson, status); err != nil {
			logger.Warn("Failed to send admin notification for lesson %s: %v", lessonID, err)
		}
	}()
}
