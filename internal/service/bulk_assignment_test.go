package service

import (
	"context"
	"testing"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
)

func TestBulkAssignGroupFillsLesson(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 3)

	participantIDs := []uuid.UUID{
		env.addParticipant(t, "anna", "1-2 years").ParticipantID,
		env.addParticipant(t, "bara", "1-2 years").ParticipantID,
		env.addParticipant(t, "cyril", "1-2 years").ParticipantID,
	}

	result, err := env.bulk.BulkAssignGroupToLessons(ctx, participantIDs, []uuid.UUID{lesson.LessonID})
	if err != nil {
		t.Fatalf("bulk assign: %v", err)
	}
	if result.TotalRegistrations != 3 {
		t.Errorf("total = %d, want 3", result.TotalRegistrations)
	}
	if result.Successful != 3 {
		t.Errorf("successful = %d, want 3", result.Successful)
	}
	if result.Waitlisted != 0 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Errorf("waitlisted=%d skipped=%d errors=%d, want all zero", result.Waitlisted, result.Skipped, len(result.Errors))
	}
	if got := env.lessonByID(t, lesson.LessonID).EnrolledCount; got != 3 {
		t.Errorf("enrolled count = %d, want 3", got)
	}

	// Re-running the same assignment only skips.
	again, err := env.bulk.BulkAssignGroupToLessons(ctx, participantIDs, []uuid.UUID{lesson.LessonID})
	if err != nil {
		t.Fatalf("second bulk assign: %v", err)
	}
	if again.Skipped != 3 || again.Successful != 0 {
		t.Errorf("second run: successful=%d skipped=%d, want 0/3", again.Successful, again.Skipped)
	}
	if got := env.lessonByID(t, lesson.LessonID).EnrolledCount; got != 3 {
		t.Errorf("enrolled count after rerun = %d, want 3", got)
	}
}

func TestBulkAssignWaitlistsOverflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 3)

	participantIDs := make([]uuid.UUID, 0, 5)
	for _, name := range []string{"anna", "bara", "cyril", "dita", "emil"} {
		participantIDs = append(participantIDs, env.addParticipant(t, name, "1-2 years").ParticipantID)
	}

	result, err := env.bulk.BulkAssignGroupToLessons(ctx, participantIDs, []uuid.UUID{lesson.LessonID})
	if err != nil {
		t.Fatalf("bulk assign: %v", err)
	}
	if result.Successful != 3 {
		t.Errorf("successful = %d, want 3", result.Successful)
	}
	if result.Waitlisted != 2 {
		t.Errorf("waitlisted = %d, want 2", result.Waitlisted)
	}
	if got := env.lessonByID(t, lesson.LessonID).EnrolledCount; got != 3 {
		t.Errorf("enrolled count = %d, want 3", got)
	}
}

func TestBulkAssignMissingParticipantRecordsErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	l1 := env.addLesson(t, "2030-05-06", "1-2 years", 3)
	l2 := env.addLesson(t, "2030-05-13", "1-2 years", 3)

	known := env.addParticipant(t, "anna", "1-2 years")
	missing := uuid.New()

	result, err := env.bulk.BulkAssignGroupToLessons(ctx,
		[]uuid.UUID{known.ParticipantID, missing},
		[]uuid.UUID{l1.LessonID, l2.LessonID})
	if err != nil {
		t.Fatalf("bulk assign: %v", err)
	}
	if result.Successful != 2 {
		t.Errorf("successful = %d, want 2", result.Successful)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("got %d errors, want 2", len(result.Errors))
	}
	for _, e := range result.Errors {
		if e.ParticipantID != missing {
			t.Errorf("error participant = %s, want %s", e.ParticipantID, missing)
		}
		if e.Error != "participant not found" {
			t.Errorf("error = %q", e.Error)
		}
	}
}

func TestBulkAssignMissingLessonRecordsError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participant := env.addParticipant(t, "anna", "1-2 years")

	result, err := env.bulk.BulkAssignGroupToLessons(ctx,
		[]uuid.UUID{participant.ParticipantID},
		[]uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("bulk assign: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0].Error != "lesson not found" {
		t.Errorf("errors = %v, want one lesson-not-found entry", result.Errors)
	}
}

func TestAssignCourseToLessons(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 5)

	course, err := env.courseService.CreateCourse(ctx, domain.CourseInput{
		Name:     "Cvičení pro maminky s dětmi",
		AgeGroup: "1-2 years",
		Color:    "#3498db",
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	for _, name := range []string{"anna", "bara"} {
		p := env.addParticipant(t, name, "1-2 years")
		if err := env.courseService.AddMember(ctx, course.CourseID, p.ParticipantID); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}

	result, err := env.bulk.AssignCourseToLessons(ctx, course.CourseID, []uuid.UUID{lesson.LessonID})
	if err != nil {
		t.Fatalf("assign course: %v", err)
	}
	if result.Successful != 2 {
		t.Errorf("successful = %d, want 2", result.Successful)
	}

	registrations, err := env.registrations.GetByLesson(ctx, lesson.LessonID)
	if err != nil {
		t.Fatalf("list registrations: %v", err)
	}
	if len(registrations) != 2 {
		t.Errorf("got %d registrations, want 2", len(registrations))
	}
}

func TestAssignCourseUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 5)

	_, err := env.bulk.AssignCourseToLessons(context.Background(), uuid.New(), []uuid.UUID{lesson.LessonID})
	if err == nil {
		t.Fatal("expected an error for unknown course")
	}
}
