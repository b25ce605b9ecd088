package notification

import (
	"context"
	"fmt"
	"net/http"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridService delivers registration emails through the SendGrid API.
type SendgridService struct {
	key        string
	from       *sgmail.Email
	adminEmail string
}

func NewSendgridService(apiKey, fromName, fromEmail, adminEmail string) *SendgridService {
	return &SendgridService{
		key:        apiKey,
		from:       sgmail.NewEmail(fromName, fromEmail),
		adminEmail: adminEmail,
	}
}

// SendParticipantConfirmation emails the participant about the outcome of
// their registration, confirmed or waitlisted.
func (s *SendgridService) SendParticipantConfirmation(ctx context.Context, participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) error {
	to := sgmail.NewEmail(participant.Name, participant.Email)
	return s.send(ctx, to, participantSubject(lesson, status), participantBody(participant, lesson, status))
}

// SendAdminNotification emails the configured admin address about a new
// registration, including current occupancy.
func (s *SendgridService) SendAdminNotification(ctx context.Context, participant *domain.Participant, lesson *domain.Lesson, status domain.RegistrationStatus) error {
	to := sgmail.NewEmail("", s.adminEmail)
	return s.send(ctx, to, adminSubject(lesson), adminBody(participant, lesson, status))
}

func (s *SendgridService) send(ctx context.Context, to *sgmail.Email, subject, body string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(to)

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}
	return nil
}
