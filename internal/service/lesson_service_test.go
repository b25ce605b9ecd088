package service

import (
	"context"
	"errors"
	"testing"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUpdateLessonAppliesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := env.addLesson(t, "2030-05-06", "1-2 years", 10)

	updated, err := env.lessonService.UpdateLesson(ctx, lesson.LessonID, domain.LessonUpdate{
		Time:     strPtr("14:00"),
		Capacity: intPtr(15),
	})
	if err != nil {
		t.Fatalf("update lesson: %v", err)
	}

	if updated.Time != "14:00" {
		t.Errorf("time = %s, want 14:00", updated.Time)
	}
	if updated.Capacity != 15 {
		t.Errorf("capacity = %d, want 15", updated.Capacity)
	}
	if updated.Title != lesson.Title {
		t.Errorf("title changed: %s", updated.Title)
	}
	if updated.Location != lesson.Location {
		t.Errorf("location changed: %s", updated.Location)
	}
}

func TestUpdateLessonUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.lessonService.UpdateLesson(context.Background(), uuid.New(), domain.LessonUpdate{Time: strPtr("14:00")})
	if !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("got %v, want ErrLessonNotFound", err)
	}
}

func TestBulkUpdateLessonsByAgeGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addLesson(t, "2030-05-06", "1-2 years", 10)
	env.addLesson(t, "2030-05-13", "1-2 years", 10)
	other := env.addLesson(t, "2030-05-06", "2-3 years", 10)

	ageGroup := "1-2 years"
	count, err := env.lessonService.BulkUpdateLessons(ctx,
		domain.LessonFilter{AgeGroup: &ageGroup},
		domain.LessonUpdate{Location: strPtr("DK Poklad")})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	if got := env.lessonByID(t, other.LessonID).Location; got == "DK Poklad" {
		t.Error("filter leaked into other age group")
	}
}

func TestBulkDeleteLessonsByFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addLesson(t, "2030-05-06", "1-2 years", 10)
	keep := env.addLesson(t, "2030-05-06", "2-3 years", 10)

	ageGroup := "1-2 years"
	count, err := env.lessonService.BulkDeleteLessons(ctx, domain.LessonFilter{AgeGroup: &ageGroup})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	remaining, err := env.lessons.GetAll(ctx)
	if err != nil {
		t.Fatalf("list lessons: %v", err)
	}
	if len(remaining) != 1 || remaining[0].LessonID != keep.LessonID {
		t.Errorf("remaining lessons = %v", remaining)
	}
}

func TestGetLessonsByDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	monday := env.addLesson(t, "2030-05-06", "1-2 years", 10)

	tuesday := domain.NewLesson(domain.LessonInput{
		Title:     "Cvičení pro maminky s dětmi",
		Date:      "2030-05-07",
		DayOfWeek: "Tuesday",
		Time:      "14:00",
		Location:  "CVČ Jeremiáše",
		AgeGroup:  "1-2 years",
		Capacity:  12,
	})
	if err := env.lessons.Create(ctx, tuesday); err != nil {
		t.Fatalf("create lesson: %v", err)
	}

	lessons, err := env.lessonService.GetLessonsByDay(ctx, "Monday")
	if err != nil {
		t.Fatalf("get by day: %v", err)
	}
	if len(lessons) != 1 || lessons[0].LessonID != monday.LessonID {
		t.Errorf("got %v, want only the Monday lesson", lessons)
	}
}
