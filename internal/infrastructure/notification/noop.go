package notification

import (
	"context"

	domain "lesson-reservations/internal/domain/booking"
)

// NoopService discards all notifications. Used when email delivery is not
// configured so the registration flow stays fully functional without it.
type NoopService struct{}

func NewNoopService() *NoopService {
	return &NoopService{}
}

func (s *NoopService) SendParticipantConfirmation(ctx context.Context, participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) error {
	return nil
}

func (s *NoopService) SendAdminNotification(ctx context.Context, participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) error {
	return nil
}
