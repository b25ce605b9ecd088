package notification

import (
	"strings"
	"testing"

	domain "lesson-reservations/internal/domain/booking"
)

func contentFixtures() (*domain.Participant, *domain.Lesson) {
	participant := &domain.Participant{
		Name:     "Jana Nováková",
		Email:    "jana@example.com",
		Phone:    "+420123456789",
		AgeGroup: "1-2 years",
	}
	lesson := &domain.Lesson{
		Title:         "Cvičení pro maminky s dětmi",
		DayOfWeek:     "Monday",
		Time:          "10:00",
		Location:      "CVČ Vietnamská",
		AgeGroup:      "1-2 years",
		Capacity:      10,
		EnrolledCount: 4,
	}
	return participant, lesson
}

func TestParticipantSubjectByStatus(t *testing.T) {
	_, lesson := contentFixtures()

	if got := participantSubject(lesson, domain.StatusConfirmed); got != "Potvrzení registrace - Cvičení pro maminky s dětmi" {
		t.Errorf("confirmed subject = %q", got)
	}
	if got := participantSubject(lesson, domain.StatusWaitlist); got != "Registrace na čekací listinu - Cvičení pro maminky s dětmi" {
		t.Errorf("waitlist subject = %q", got)
	}
}

func TestParticipantBodyConfirmed(t *testing.T) {
	participant, lesson := contentFixtures()

	body := participantBody(participant, lesson, domain.StatusConfirmed)
	for _, want := range []string{"Dobrý den Jana Nováková", "POTVRZENO", "CVČ Vietnamská", "Centrum Rubáček"} {
		if !strings.Contains(body, want) {
			t.Errorf("confirmed body missing %q", want)
		}
	}
	if strings.Contains(body, "ČEKACÍ LISTINA") {
		t.Error("confirmed body mentions waitlist")
	}
}

func TestParticipantBodyWaitlist(t *testing.T) {
	participant, lesson := contentFixtures()

	body := participantBody(participant, lesson, domain.StatusWaitlist)
	if !strings.Contains(body, "ČEKACÍ LISTINA") {
		t.Error("waitlist body missing waitlist status")
	}
	if strings.Contains(body, "POTVRZENO") {
		t.Error("waitlist body claims confirmation")
	}
}

func TestAdminBodyReportsOccupancy(t *testing.T) {
	participant, lesson := contentFixtures()

	body := adminBody(participant, lesson, domain.StatusConfirmed)
	for _, want := range []string{"jana@example.com", "+420123456789", "Obsazenost: 4/10", "Status: confirmed"} {
		if !strings.Contains(body, want) {
			t.Errorf("admin body missing %q", want)
		}
	}

	if got := adminSubject(lesson); got != "Nová registrace - Cvičení pro maminky s dětmi" {
		t.Errorf("admin subject = %q", got)
	}
}
