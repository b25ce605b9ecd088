package service

import (
	"context"
	"fmt"
	"time"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
)

// BulkAssignmentService fans a cohort of participants across a set of
// lessons through the registration primitive's capacity rules, aggregating
// per-pair outcomes instead of aborting on individual failure. This is the
// one path that treats partial failure as a first-class result.
type BulkAssignmentService struct {
	lessonRepo       domain.LessonRepository
	participantRepo  domain.ParticipantRepository
	registrationRepo domain.RegistrationRepository
	courseRepo       domain.CourseRepository
	cache            domain.AvailabilityCache
}

// NewBulkAssignmentService creates a new bulk assignment service
func NewBulkAssignmentService(
	lessonRepo domain.LessonRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	courseRepo domain.CourseRepository,
	cache domain.AvailabilityCache,
) *BulkAssignmentService {
	return &BulkAssignmentService{
		lessonRepo:       lessonRepo,
		participantRepo:  participantRepo,
		registrationRepo: registrationRepo,
		courseRepo:       courseRepo,
		cache:            cache,
	}
}

// BulkAssignGroupToLessons processes the full cross product of participants
// and lessons. A missing participant records one error per lesson and skips
// that participant's remaining pairs; an existing active registration counts
// as skipped; every other failure is recorded per pair without stopping the
// rest. Notifications are not dispatched on this path.
func (s *BulkAssignmentService) BulkAssignGroupToLessons(ctx context.Context, participantIDs, lessonIDs []uuid.UUID) (*domain.BulkAssignmentResult, error) {
	result := &domain.BulkAssignmentResult{
		TotalRegistrations: len(participantIDs) * len(lessonIDs),
		Errors:             make([]domain.BulkAssignmentError, 0),
	}

	for _, participantID := range participantIDs {
		participant, err := s.participantRepo.GetByID(ctx, participantID)
		if err != nil || participant == nil {
			if err != nil {
				logger.Warn("Bulk assignment could not load participant %s: %v", participantID, err)
			}
			for _, lessonID := range lessonIDs {
				result.Errors = append(result.Errors, domain.BulkAssignmentError{
					ParticipantID: participantID,
					LessonID:      lessonID,
					Error:         "participant not found",
				})
			}
			continue
		}

		for _, lessonID := range lessonIDs {
			s.assignPair(ctx, participant, lessonID, result)
		}
	}

	if result.Successful > 0 || result.Waitlisted > 0 {
		s.invalidateAvailability(ctx)
	}

	logger.Info("Bulk assignment finished: %d pairs, %d successful, %d waitlisted, %d skipped, %d errors",
		result.TotalRegistrations, result.Successful, result.Waitlisted, result.Skipped, len(result.Errors))
	return result, nil
}

// AssignCourseToLessons resolves a course cohort and assigns every member to
// the given lessons.
func (s *BulkAssignmentService) AssignCourseToLessons(ctx context.Context, courseID uuid.UUID, lessonIDs []uuid.UUID) (*domain.BulkAssignmentResult, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
	}

	memberIDs, err := s.courseRepo.GetMemberIDs(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course members: %w", err)
	}

	return s.BulkAssignGroupToLessons(ctx, memberIDs, lessonIDs)
}

func (s *BulkAssignmentService) assignPair(ctx context.Context, participant *domain.Participant, lessonID uuid.UUID, result *domain.BulkAssignmentResult) {
	fail := func(message string) {
		result.Errors = append(result.Errors, domain.BulkAssignmentError{
			ParticipantID: participant.ParticipantID,
			LessonID:      lessonID,
			Error:         message,
		})
	}

	existing, err := s.registrationRepo.GetActiveByParticipantAndLesson(ctx, participant.ParticipantID, lessonID)
	if err != nil {
		fail(fmt.Sprintf("failed to check existing registration: %v", err))
		return
	}
	if existing != nil {
		result.Skipped++
		return
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		fail(fmt.Sprintf("failed to load lesson: %v", err))
		return
	}
	if lesson == nil {
		fail("lesson not found")
		return
	}

	reserved, err := s.lessonRepo.ReserveSeat(ctx, lessonID)
	if err != nil {
		fail(fmt.Sprintf("failed to reserve seat: %v", err))
		return
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
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if reserved {
			if rollbackErr := s.lessonRepo.ReleaseSeat(ctx, lessonID); rollbackErr != nil {
				logger.Error("Failed to release seat after bulk assignment write failure for lesson %s: %v", lessonID, rollbackErr)
			}
		}
		fail(fmt.Sprintf("failed to create registration: %v", err))
		return
	}

	if reserved {
		result.Successful++
	} else {
		result.Waitlisted++
	}
}

func (s *BulkAssignmentService) invalidateAvailability(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAvailability(ctx); err != nil {
		logger.Warn("Failed to invalidate availability cache: %v", err)
	}
}
