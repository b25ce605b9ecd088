package service

import (
	"context"
	"strings"
	"testing"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
)

func TestAdminForceRegisterOverridesAgeGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "2-3 years", 5)
	participant := env.addParticipant(t, "anna", "1-2 years")

	result, err := env.engine.AdminForceRegister(ctx, lesson.LessonID, participant.ParticipantID, false)
	if err != nil {
		t.Fatalf("force register: %v", err)
	}
	if !result.Success {
		t.Fatalf("failed: %s", result.Error)
	}
	if result.Registration.Status != domain.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", result.Registration.Status)
	}
	if len(result.Overrides) != 1 || !strings.Contains(result.Overrides[0], "age group") {
		t.Errorf("overrides = %v, want an age group override", result.Overrides)
	}
}

func TestAdminForceRegisterFullLessonWaitlistsWithoutForce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 1)

	filler := env.addParticipant(t, "anna", "1-2 years")
	if _, err := env.engine.Register(ctx, lesson.LessonID, filler); err != nil {
		t.Fatalf("fill lesson: %v", err)
	}

	participant := env.addParticipant(t, "bara", "1-2 years")
	result, err := env.engine.AdminForceRegister(ctx, lesson.LessonID, participant.ParticipantID, false)
	if err != nil {
		t.Fatalf("force register: %v", err)
	}
	if result.Registration.Status != domain.StatusWaitlist {
		t.Errorf("status = %s, want waitlist", result.Registration.Status)
	}
	if len(result.Overrides) != 0 {
		t.Errorf("overrides = %v, want none", result.Overrides)
	}
	if got := env.lessonByID(t, lesson.LessonID).EnrolledCount; got != 1 {
		t.Errorf("enrolled count = %d, want 1", got)
	}
}

func TestAdminForceRegisterOverCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 1)

	filler := env.addParticipant(t, "anna", "1-2 years")
	if _, err := env.engine.Register(ctx, lesson.LessonID, filler); err != nil {
		t.Fatalf("fill lesson: %v", err)
	}

	participant := env.addParticipant(t, "bara", "1-2 years")
	result, err := env.engine.AdminForceRegister(ctx, lesson.LessonID, participant.ParticipantID, true)
	if err != nil {
		t.Fatalf("force register: %v", err)
	}
	if result.Registration.Status != domain.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", result.Registration.Status)
	}
	if len(result.Overrides) != 1 || !strings.Contains(result.Overrides[0], "capacity") {
		t.Errorf("overrides = %v, want a capacity override", result.Overrides)
	}
	// Over-capacity enrollment is allowed and recorded.
	if got := env.lessonByID(t, lesson.LessonID).EnrolledCount; got != 2 {
		t.Errorf("enrolled count = %d, want 2", got)
	}
}

func TestAdminForceRegisterMissingParticipant(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 5)

	result, err := env.engine.AdminForceRegister(context.Background(), lesson.LessonID, uuid.New(), false)
	if err != nil {
		t.Fatalf("force register: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Error != "participant not found" {
		t.Errorf("error = %q", result.Error)
	}
}

func TestAdminBulkRegisterCountsFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	good := env.addLesson(t, "2030-05-06", "1-2 years", 5)
	participant := env.addParticipant(t, "anna", "1-2 years")

	result, err := env.engine.AdminBulkRegister(ctx, participant.ParticipantID, []uuid.UUID{good.LessonID, uuid.New()})
	if err != nil {
		t.Fatalf("bulk register: %v", err)
	}
	if result.Requested != 2 {
		t.Errorf("requested = %d, want 2", result.Requested)
	}
	if result.Registered != 1 {
		t.Errorf("registered = %d, want 1", result.Registered)
	}
	if len(result.Registrations) != 1 {
		t.Errorf("got %d registrations, want 1", len(result.Registrations))
	}
}
