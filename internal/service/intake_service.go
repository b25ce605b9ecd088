package service

import (
	"context"
	"fmt"
	"io"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
)

// ParticipantParser abstracts the spreadsheet loader so intake can be tested
// without workbook fixtures.
type ParticipantParser interface {
	LoadFromReader(r io.Reader) ([]*domain.Participant, error)
}

// IntakeService turns uploaded participant spreadsheets into registrations.
type IntakeService struct {
	parser       ParticipantParser
	registration *RegistrationService
}

func NewIntakeService(parser ParticipantParser, registration *RegistrationService) *IntakeService {
	return &IntakeService{
		parser:       parser,
		registration: registration,
	}
}

// IntakeResult reports how many spreadsheet rows survived parsing and how
// many registrations were created for the target lesson.
type IntakeResult struct {
	ParticipantsParsed int                    `json:"participants_parsed"`
	Registered         int                    `json:"registered"`
	Registrations      []*domain.Registration `json:"registrations"`
}

// ImportAndRegister parses the workbook and registers every valid row for
// the given lesson, confirmed or waitlisted by the usual capacity rules.
func (s *IntakeService) ImportAndRegister(ctx context.Context, r io.Reader, lessonID uuid.UUID) (*IntakeResult, error) {
	participants, err := s.parser.LoadFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse participants: %w", err)
	}

	registrations, err := s.registration.BulkRegister(ctx, lessonID, participants)
	if err != nil {
		return nil, err
	}

	return &IntakeResult{
		ParticipantsParsed: len(participants),
		Registered:         len(registrations),
		Registrations:      registrations,
	}, nil
}

// ImportParticipants parses the workbook without registering anyone.
func (s *IntakeService) ImportParticipants(ctx context.Context, r io.Reader) ([]*domain.Participant, error) {
	participants, err := s.parser.LoadFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse participants: %w", err)
	}
	return participants, nil
}
