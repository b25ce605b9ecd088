package notification

import (
	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"
)

// Config carries the email delivery settings.
type Config struct {
	APIKey     string
	FromName   string
	FromEmail  string
	AdminEmail string
}

// NewService returns a SendGrid-backed service when the configuration is
// complete, otherwise a noop service so registration continues without email.
func NewService(cfg Config) domain.NotificationService {
	if cfg.APIKey == "" || cfg.FromEmail == "" || cfg.AdminEmail == "" {
		logger.Warn("Email service not configured, notifications disabled")
		return NewNoopService()
	}
	logger.Info("Email service enabled, admin email: %s", cfg.AdminEmail)
	return NewSendgridService(cfg.APIKey, cfg.FromName, cfg.FromEmail, cfg.AdminEmail)
}
