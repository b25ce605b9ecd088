package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCancellationDeadlineIsLocalMidnight(t *testing.T) {
	lesson := &Lesson{Date: "2030-05-06"}

	deadline, err := lesson.CancellationDeadline()
	if err != nil {
		t.Fatalf("cancellation deadline: %v", err)
	}

	want := time.Date(2030, time.May, 6, 0, 0, 0, 0, time.Local)
	if !deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", deadline, want)
	}
}

func TestCancellationDeadlineBadDate(t *testing.T) {
	lesson := &Lesson{Date: "06-05-2030"}

	if _, err := lesson.CancellationDeadline(); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestAvailableSpotsNeverNegative(t *testing.T) {
	cases := []struct {
		capacity int
		enrolled int
		want     int
	}{
		{10, 0, 10},
		{10, 7, 3},
		{10, 10, 0},
		{10, 12, 0},
	}
	for _, tc := range cases {
		lesson := &Lesson{Capacity: tc.capacity, EnrolledCount: tc.enrolled}
		if got := lesson.AvailableSpots(); got != tc.want {
			t.Errorf("AvailableSpots(%d/%d) = %d, want %d", tc.enrolled, tc.capacity, got, tc.want)
		}
	}
}

func TestIsFullAtAndAboveCapacity(t *testing.T) {
	if (&Lesson{Capacity: 5, EnrolledCount: 4}).IsFull() {
		t.Error("lesson with a free seat reported full")
	}
	if !(&Lesson{Capacity: 5, EnrolledCount: 5}).IsFull() {
		t.Error("lesson at capacity not reported full")
	}
	if !(&Lesson{Capacity: 5, EnrolledCount: 7}).IsFull() {
		t.Error("over-enrolled lesson not reported full")
	}
}

func TestNewCourseAcceptsShortAndLongHexColors(t *testing.T) {
	for _, color := range []string{"#fff", "#FF0000", "#a1B2c3"} {
		course, err := NewCourse(CourseInput{Name: "Plavání", AgeGroup: "1-2 years", Color: color})
		if err != nil {
			t.Errorf("color %q rejected: %v", color, err)
			continue
		}
		if course.Color != color {
			t.Errorf("color = %q, want %q", course.Color, color)
		}
	}
}

func TestNewCourseRejectsInvalidColor(t *testing.T) {
	for _, color := range []string{"blue", "#ff00", "ff0000", ""} {
		_, err := NewCourse(CourseInput{Name: "Plavání", AgeGroup: "1-2 years", Color: color})

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("color %q: got %v, want ValidationError", color, err)
			continue
		}
		if validationErr.Field != "color" {
			t.Errorf("color %q: field = %q, want color", color, validationErr.Field)
		}
	}
}

func TestNewCourseTrimsNameAndAgeGroup(t *testing.T) {
	course, err := NewCourse(CourseInput{Name: "  Plavání  ", AgeGroup: " 1-2 years ", Color: "#fff"})
	if err != nil {
		t.Fatalf("new course: %v", err)
	}
	if course.Name != "Plavání" {
		t.Errorf("name = %q", course.Name)
	}
	if course.AgeGroup != "1-2 years" {
		t.Errorf("age group = %q", course.AgeGroup)
	}
}

func TestNewCourseRequiresName(t *testing.T) {
	_, err := NewCourse(CourseInput{Name: "   ", AgeGroup: "1-2 years", Color: "#fff"})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "name" {
		t.Fatalf("got %v, want ValidationError on name", err)
	}
}

func TestRegistrationStatusIsActive(t *testing.T) {
	if !StatusConfirmed.IsActive() {
		t.Error("confirmed should be active")
	}
	if !StatusWaitlist.IsActive() {
		t.Error("waitlist should be active")
	}
	if StatusCancelled.IsActive() {
		t.Error("cancelled should not be active")
	}
}
