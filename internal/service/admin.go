package service

import (
	"context"
	"fmt"
	"time"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
)

// Admin override operations. These bypass the participant-facing constraints
// but still flow through the same shared lesson/registration state, and they
// report which constraint was skipped.

const (
	overrideAgeGroup = "age group mismatch overridden"
	overrideCapacity = "capacity limit overridden"
)

// AdminForceRegister registers a participant regardless of age group, and
// regardless of capacity when forceCapacity is set. Over-capacity enrollment
// has no upper bound. The duplicate-registration check is intentionally not
// applied on this path.
func (s *RegistrationService) AdminForceRegister(ctx context.Context, lessonID, participantID uuid.UUID, forceCapacity bool) (*domain.AdminRegisterResult, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant == nil {
		return &domain.AdminRegisterResult{Success: false, Error: "participant not found"}, nil
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return &domain.AdminRegisterResult{Success: false, Error: "lesson not found"}, nil
	}

	var overrides []string
	if lesson.AgeGroup != participant.AgeGroup {
		overrides = append(overrides, overrideAgeGroup)
	}

	status := domain.StatusConfirmed
	reserved, err := s.lessonRepo.ReserveSeat(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve seat: %w", err)
	}
	if !reserved {
		if forceCapacity {
			if err := s.lessonRepo.ForceSeat(ctx, lessonID); err != nil {
				return nil, fmt.Errorf("failed to force seat: %w", err)
			}
			overrides = append(overrides, overrideCapacity)
		} else {
			status = domain.StatusWaitlist
		}
	}

	registration := &domain.Registration{
		RegistrationID: uuid.New(),
		LessonID:       lessonID,
		ParticipantID:  participantID,
		Status:         status,
		RegisteredAt:   time.Now(),
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if status == domain.StatusConfirmed {
			if rollbackErr := s.lessonRepo.ReleaseSeat(ctx, lessonID); rollbackErr != nil {
				logger.Error("Failed to release seat after admin registration write failure for lesson %s: %v", lessonID, rollbackErr)
			}
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	logger.Info("Admin registered participant %s for lesson %s with status %s (overrides: %v)", participantID, lessonID, status, overrides)
	s.invalidateAvailability(ctx)
	s.dispatchNotifications(ctx, participant, lessonID, status)

	return &domain.AdminRegisterResult{
		Success:      true,
		Registration: registration,
		Overrides:    overrides,
	}, nil
}

// AdminBulkRegister applies the core primitive across many lessons for one
// participant. Individual failures are logged and reflected in the counts
// rather than aborting the rest.
func (s *RegistrationService) AdminBulkRegister(ctx context.Context, participantID uuid.UUID, lessonIDs []uuid.UUID) (*domain.AdminBulkRegisterResult, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrParticipantNotFound, participantID)
	}

	result := &domain.AdminBulkRegisterResult{
		Requested:     len(lessonIDs),
		Registrations: make([]*domain.Registration, 0, len(lessonIDs)),
	}

	for _, lessonID := range lessonIDs {
		registration, err := s.Register(ctx, lessonID, participant)
		if err != nil {
			logger.Warn("Admin bulk registration skipped lesson %s for participant %s: %v", lessonID, participantID, err)
			continue
		}
		result.Registered++
		result.Registrations = append(result.Registrations, registration)
	}

	return result, nil
}
