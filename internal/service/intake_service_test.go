package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
)

// fakeParser returns a canned participant list regardless of input.
type fakeParser struct {
	participants []*domain.Participant
	err          error
}

func (p *fakeParser) LoadFromReader(r io.Reader) ([]*domain.Participant, error) {
	return p.participants, p.err
}

func intakeParticipant(name, ageGroup string) *domain.Participant {
	return domain.NewParticipant(domain.ParticipantInput{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "+420123456789",
		AgeGroup: ageGroup,
	})
}

func TestImportAndRegisterConfirmsAndWaitlists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 2)

	parser := &fakeParser{participants: []*domain.Participant{
		intakeParticipant("jana", "1-2 years"),
		intakeParticipant("petra", "1-2 years"),
		intakeParticipant("lucie", "1-2 years"),
	}}
	intake := NewIntakeService(parser, env.engine)

	result, err := intake.ImportAndRegister(ctx, strings.NewReader("workbook"), lesson.LessonID)
	if err != nil {
		t.Fatalf("import and register: %v", err)
	}

	if result.ParticipantsParsed != 3 {
		t.Errorf("parsed = %d, want 3", result.ParticipantsParsed)
	}
	if result.Registered != 3 {
		t.Errorf("registered = %d, want 3", result.Registered)
	}

	confirmed, waitlisted := 0, 0
	for _, registration := range result.Registrations {
		switch registration.Status {
		case domain.StatusConfirmed:
			confirmed++
		case domain.StatusWaitlist:
			waitlisted++
		}
	}
	if confirmed != 2 || waitlisted != 1 {
		t.Errorf("confirmed = %d, waitlisted = %d, want 2 and 1", confirmed, waitlisted)
	}

	if got := env.lessonByID(t, lesson.LessonID).EnrolledCount; got != 2 {
		t.Errorf("enrolled count = %d, want 2", got)
	}
}

func TestImportAndRegisterParserError(t *testing.T) {
	env := newTestEnv(t)

	parseErr := errors.New("corrupt workbook")
	intake := NewIntakeService(&fakeParser{err: parseErr}, env.engine)

	_, err := intake.ImportAndRegister(context.Background(), strings.NewReader(""), uuid.New())
	if !errors.Is(err, parseErr) {
		t.Fatalf("got %v, want wrapped parser error", err)
	}
}

func TestImportParticipantsDoesNotRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 10)

	parser := &fakeParser{participants: []*domain.Participant{
		intakeParticipant("jana", "1-2 years"),
	}}
	intake := NewIntakeService(parser, env.engine)

	participants, err := intake.ImportParticipants(ctx, strings.NewReader("workbook"))
	if err != nil {
		t.Fatalf("import participants: %v", err)
	}
	if len(participants) != 1 {
		t.Fatalf("participants = %d, want 1", len(participants))
	}

	registrations, err := env.registrations.GetByLesson(ctx, lesson.LessonID)
	if err != nil {
		t.Fatalf("list registrations: %v", err)
	}
	if len(registrations) != 0 {
		t.Errorf("registrations = %d, want none", len(registrations))
	}
}
