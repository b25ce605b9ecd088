package service

import (
	"context"
	"strings"
	"testing"
	"time"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
)

func TestSelfRegisterAgeGroupMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "2-3 years", 5)
	participant := env.addParticipant(t, "anna", "1-2 years")

	result, err := env.engine.SelfRegister(ctx, participant.ParticipantID, lesson.LessonID)
	if err != nil {
		t.Fatalf("self register: %v", err)
	}
	if result.Success {
		t.Fatal("expected declined result")
	}
	if !strings.Contains(result.Error, "age group") {
		t.Errorf("error %q should mention the age group", result.Error)
	}
}

func TestSelfRegisterDuplicateDeclined(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 5)
	participant := env.addParticipant(t, "anna", "1-2 years")

	first, err := env.engine.SelfRegister(ctx, participant.ParticipantID, lesson.LessonID)
	if err != nil {
		t.Fatalf("first self register: %v", err)
	}
	if !first.Success {
		t.Fatalf("first registration declined: %s", first.Error)
	}

	second, err := env.engine.SelfRegister(ctx, participant.ParticipantID, lesson.LessonID)
	if err != nil {
		t.Fatalf("second self register: %v", err)
	}
	if second.Success {
		t.Fatal("expected duplicate to be declined")
	}
	if second.Error != "already registered for this lesson" {
		t.Errorf("error = %q", second.Error)
	}
}

func TestSelfRegisterWaitlistsWhenFull(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 1)

	first := env.addParticipant(t, "anna", "1-2 years")
	if _, err := env.engine.SelfRegister(ctx, first.ParticipantID, lesson.LessonID); err != nil {
		t.Fatalf("first self register: %v", err)
	}

	second := env.addParticipant(t, "bara", "1-2 years")
	result, err := env.engine.SelfRegister(ctx, second.ParticipantID, lesson.LessonID)
	if err != nil {
		t.Fatalf("second self register: %v", err)
	}
	if !result.Success {
		t.Fatalf("declined: %s", result.Error)
	}
	if result.Registration.Status != domain.StatusWaitlist {
		t.Errorf("status = %s, want waitlist", result.Registration.Status)
	}
}

func TestSelfCancelOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 5)
	owner := env.addParticipant(t, "anna", "1-2 years")
	intruder := env.addParticipant(t, "bara", "1-2 years")

	registration, err := env.engine.Register(ctx, lesson.LessonID, owner)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	now := time.Date(2030, 5, 5, 18, 0, 0, 0, time.Local)
	result, err := env.engine.SelfCancel(ctx, intruder.ParticipantID, registration.RegistrationID, now)
	if err != nil {
		t.Fatalf("self cancel: %v", err)
	}
	if result.Success {
		t.Fatal("expected declined result")
	}
	if result.Error != "registration does not belong to you" {
		t.Errorf("error = %q", result.Error)
	}
	if got := env.registrationByID(t, registration.RegistrationID).Status; got != domain.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got)
	}
}

func TestSelfCancelAfterDeadlineDeclined(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 5)
	participant := env.addParticipant(t, "anna", "1-2 years")

	registration, err := env.engine.Register(ctx, lesson.LessonID, participant)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	now := time.Date(2030, 5, 6, 8, 0, 0, 0, time.Local)
	result, err := env.engine.SelfCancel(ctx, participant.ParticipantID, registration.RegistrationID, now)
	if err != nil {
		t.Fatalf("self cancel: %v", err)
	}
	if result.Success {
		t.Fatal("expected declined result")
	}
	if result.Error != "cannot cancel after deadline" {
		t.Errorf("error = %q", result.Error)
	}
}

func TestTransferMovesSeat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	from := env.addLesson(t, "2030-05-06", "1-2 years", 1)
	to := env.addLesson(t, "2030-05-13", "1-2 years", 1)
	participant := env.addParticipant(t, "anna", "1-2 years")

	registration, err := env.engine.Register(ctx, from.LessonID, participant)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	now := time.Date(2030, 5, 5, 18, 0, 0, 0, time.Local)
	result, err := env.engine.Transfer(ctx, participant.ParticipantID, registration.RegistrationID, to.LessonID, now)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !result.Success {
		t.Fatalf("declined: %s", result.Error)
	}
	if result.Registration.LessonID != to.LessonID {
		t.Errorf("new registration lesson = %s, want %s", result.Registration.LessonID, to.LessonID)
	}
	if result.Registration.Status != domain.StatusConfirmed {
		t.Errorf("new status = %s, want confirmed", result.Registration.Status)
	}

	if got := env.lessonByID(t, from.LessonID).EnrolledCount; got != 0 {
		t.Errorf("old lesson enrolled = %d, want 0", got)
	}
	if got := env.lessonByID(t, to.LessonID).EnrolledCount; got != 1 {
		t.Errorf("new lesson enrolled = %d, want 1", got)
	}
	if got := env.registrationByID(t, registration.RegistrationID).Status; got != domain.StatusCancelled {
		t.Errorf("old status = %s, want cancelled", got)
	}
}

func TestTransferDeadlinePassedLeavesOldIntact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	from := env.addLesson(t, "2030-05-06", "1-2 years", 1)
	to := env.addLesson(t, "2030-05-13", "1-2 years", 1)
	participant := env.addParticipant(t, "anna", "1-2 years")

	registration, err := env.engine.Register(ctx, from.LessonID, participant)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	now := time.Date(2030, 5, 6, 8, 0, 0, 0, time.Local)
	result, err := env.engine.Transfer(ctx, participant.ParticipantID, registration.RegistrationID, to.LessonID, now)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if result.Success {
		t.Fatal("expected declined result")
	}

	if got := env.registrationByID(t, registration.RegistrationID).Status; got != domain.StatusConfirmed {
		t.Errorf("old status = %s, want confirmed", got)
	}
	if got := env.lessonByID(t, to.LessonID).EnrolledCount; got != 0 {
		t.Errorf("new lesson enrolled = %d, want 0", got)
	}
}

func TestTransferToAlreadyRegisteredLessonDeclined(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	from := env.addLesson(t, "2030-05-06", "1-2 years", 2)
	to := env.addLesson(t, "2030-05-13", "1-2 years", 2)
	participant := env.addParticipant(t, "anna", "1-2 years")

	registration, err := env.engine.Register(ctx, from.LessonID, participant)
	if err != nil {
		t.Fatalf("register source: %v", err)
	}
	if _, err := env.engine.Register(ctx, to.LessonID, participant); err != nil {
		t.Fatalf("register target: %v", err)
	}

	now := time.Date(2030, 5, 5, 18, 0, 0, 0, time.Local)
	result, err := env.engine.Transfer(ctx, participant.ParticipantID, registration.RegistrationID, to.LessonID, now)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if result.Success {
		t.Fatal("expected declined result")
	}
	// The old registration must be untouched by the refused transfer.
	if got := env.registrationByID(t, registration.RegistrationID).Status; got != domain.StatusConfirmed {
		t.Errorf("old status = %s, want confirmed", got)
	}
}

func TestGetAvailableLessonsForParticipant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	future := time.Now().AddDate(0, 0, 7).Format(domain.DateLayout)
	past := "2020-01-06"

	open := env.addLesson(t, future, "1-2 years", 2)
	registered := env.addLesson(t, future, "1-2 years", 2)
	env.addLesson(t, past, "1-2 years", 2)
	env.addLesson(t, future, "2-3 years", 2)

	participant := env.addParticipant(t, "anna", "1-2 years")
	registration, err := env.engine.Register(ctx, registered.LessonID, participant)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	// Even a cancelled registration keeps the lesson out of the listing.
	if err := env.engine.ForceCancel(ctx, registration.RegistrationID); err != nil {
		t.Fatalf("force cancel: %v", err)
	}

	available, err := env.engine.GetAvailableLessonsForParticipant(ctx, participant.ParticipantID)
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("got %d lessons, want 1", len(available))
	}
	if available[0].LessonID != open.LessonID {
		t.Errorf("got lesson %s, want %s", available[0].LessonID, open.LessonID)
	}
}

func TestGetAvailableLessonsForUnknownParticipant(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.GetAvailableLessonsForParticipant(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected an error for unknown participant")
	}
}
