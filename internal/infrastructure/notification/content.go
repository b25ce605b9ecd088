package notification

import (
	"fmt"

	domain "lesson-reservations/internal/domain/booking"
)

// Email content is written in Czech to match the audience of the activity
// center. Keep the wording in sync across both status variants.

func participantSubject(lesson *domain.Lesson, status domain.RegistrationStatus) string {
	if status == domain.StatusConfirmed {
		return fmt.Sprintf("Potvrzení registrace - %s", lesson.Title)
	}
	return fmt.Sprintf("Registrace na čekací listinu - %s", lesson.Title)
}

func adminSubject(lesson *domain.Lesson) string {
	return fmt.Sprintf("Nová registrace - %s", lesson.Title)
}

func participantBody(participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) string {
	if status == domain.StatusConfirmed {
		return fmt.Sprintf(`Dobrý den %s,

Vaše registrace na lekci byla úspěšně potvrzena!

Detaily lekce:
- Název: %s
- Den: %s
- Čas: %s
- Místo: %s
- Věková skupina: %s

Status: POTVRZENO ✓

Těšíme se na vás!

S pozdravem,
Centrum Rubáček`,
			participant.Name, lesson.Title, lesson.DayOfWeek, lesson.Time, lesson.Location, lesson.AgeGroup)
	}

	return fmt.Sprintf(`Dobrý den %s,

Vaše registrace na lekci byla přijata a jste na čekací listině.

Detaily lekce:
- Název: %s
- Den: %s
- Čas: %s
- Místo: %s
- Věková skupina: %s

Status: ČEKACÍ LISTINA

Ozveme se vám, jakmile se uvolní místo.

S pozdravem,
Centrum Rubáček`,
		participant.Name, lesson.Title, lesson.DayOfWeek, lesson.Time, lesson.Location, lesson.AgeGroup)
}

func adminBody(participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) string {
	return fmt.Sprintf(`Nová registrace:

Účastník:
- Jméno: %s
- Email: %s
- Telefon: %s
- Věková skupina: %s

Lekce:
- Název: %s
- Den: %s
- Čas: %s
- Místo: %s

Status: %s
Obsazenost: %d/%d`,
		participant.Name, participant.Email, participant.Phone, participant.AgeGroup,
		lesson.Title, lesson.DayOfWeek, lesson.Time, lesson.Location,
		status, lesson.EnrolledCount, lesson.Capacity)
}
