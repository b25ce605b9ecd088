package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
)

// Participant self-service operations. These enforce the identity and policy
// constraints the admin paths waive, and report every expected failure as a
// declined result rather than an error.

// SelfRegister registers the calling participant for a lesson. The lesson
// must match the participant's age group and the pair must not already hold
// an active registration.
func (s *RegistrationService) SelfRegister(ctx context.Context, participantID, lessonID uuid.UUID) (*domain.SelfServiceResult, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant == nil {
		return domain.Declined("participant not found"), nil
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return domain.Declined("lesson not found"), nil
	}

	if lesson.AgeGroup != participant.AgeGroup {
		return domain.Declined(fmt.Sprintf("lesson age group %q does not match your age group %q", lesson.AgeGroup, participant.AgeGroup)), nil
	}

	existing, err := s.registrationRepo.GetActiveByParticipantAndLesson(ctx, participantID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}
	if existing != nil {
		return domain.Declined("already registered for this lesson"), nil
	}

	registration, err := s.register(ctx, lessonID, participant, nil, true)
	if err != nil {
		return nil, err
	}
	return domain.Accepted(registration), nil
}

// SelfCancel cancels the calling participant's own registration, subject to
// the midnight-of-lesson-date deadline.
func (s *RegistrationService) SelfCancel(ctx context.Context, participantID, registrationID uuid.UUID, now time.Time) (*domain.SelfServiceResult, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registration: %w", err)
	}
	if registration == nil {
		return domain.Declined("registration not found"), nil
	}
	if registration.ParticipantID != participantID {
		return domain.Declined("registration does not belong to you"), nil
	}

	if err := s.Cancel(ctx, registrationID, now); err != nil {
		if errors.Is(err, domain.ErrCancelDeadlinePassed) {
			return domain.Declined("cannot cancel after deadline"), nil
		}
		return nil, err
	}

	return &domain.SelfServiceResult{Success: true}, nil
}

// Transfer moves the calling participant from an existing registration to a
// new lesson. The old registration is cancelled (deadline-checked) and the
// participant is registered for the new lesson; if the cancellation is
// refused the new lesson is never touched.
func (s *RegistrationService) Transfer(ctx context.Context, participantID, registrationID, newLessonID uuid.UUID, now time.Time) (*domain.SelfServiceResult, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registration: %w", err)
	}
	if registration == nil {
		return domain.Declined("registration not found"), nil
	}
	if registration.ParticipantID != participantID {
		return domain.Declined("registration does not belong to you"), nil
	}

	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant == nil {
		return domain.Declined("participant not found"), nil
	}

	newLesson, err := s.lessonRepo.GetByID(ctx, newLessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if newLesson == nil {
		return domain.Declined("lesson not found"), nil
	}
	if newLesson.AgeGroup != participant.AgeGroup {
		return domain.Declined(fmt.Sprintf("lesson age group %q does not match your age group %q", newLesson.AgeGroup, participant.AgeGroup)), nil
	}

	existing, err := s.registrationRepo.GetActiveByParticipantAndLesson(ctx, participantID, newLessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}
	if existing != nil {
		return domain.Declined("already registered for this lesson"), nil
	}

	if err := s.Cancel(ctx, registrationID, now); err != nil {
		if errors.Is(err, domain.ErrCancelDeadlinePassed) {
			return domain.Declined("cannot cancel after deadline"), nil
		}
		return nil, err
	}

	newRegistration, err := s.register(ctx, newLessonID, participant, nil, true)
	if err != nil {
		return nil, fmt.Errorf("transfer cancelled the old registration but failed to register for lesson %s: %w", newLessonID, err)
	}

	logger.Info("Transferred participant %s from registration %s to lesson %s", participantID, registrationID, newLessonID)
	return domain.Accepted(newRegistration), nil
}

// GetAvailableLessonsForParticipant lists lessons the participant can still
// register for: matching age group, dated today or later, with free seats,
// excluding lessons the participant holds any registration for, in any status.
func (s *RegistrationService) GetAvailableLessonsForParticipant(ctx context.Context, participantID uuid.UUID) ([]*domain.AvailableLesson, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrParticipantNotFound, participantID)
	}

	candidates, err := s.availableByAgeGroup(ctx, participant.AgeGroup, true)
	if err != nil {
		return nil, err
	}

	registrations, err := s.registrationRepo.GetByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}
	registered := make(map[uuid.UUID]struct{}, len(registrations))
	for _, registration := range registrations {
		registered[registration.LessonID] = struct{}{}
	}

	available := make([]*domain.AvailableLesson, 0, len(candidates))
	for _, lesson := range candidates {
		if _, taken := registered[lesson.LessonID]; taken {
			continue
		}
		available = append(available, lesson)
	}
	return available, nil
}
