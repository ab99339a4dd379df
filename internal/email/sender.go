// Package email composes and dispatches transactional HTML notifications for
// request lifecycle events. Sends are best-effort by default: call sites in
// the lifecycle engine log failures and continue, so a transient provider
// outage never blocks a status transition that already committed.
package email

import (
	"context"

	"realty_portal_backend/platform/config"
)

// Sender dispatches lifecycle notification emails. Implementations render the
// shared HTML templates and deliver via a transactional provider.
type Sender interface {
	SendVisitApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate, agentName string) error
	SendVisitAssignmentEmail(ctx context.Context, toEmail, agentName, clientName, clientPhone, propertyName, unitLabel, scheduledDate, adminMsg string) error
	SendVisitDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error
	SendVisitCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error
	SendVisitCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error
	SendVisitReminderEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate string) error
	SendReservationApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error
	SendReservationDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error
	SendReservationCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error
	SendReservationCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error
	SendAgentUpdateEmail(ctx context.Context, toEmail, agentName, propertyName, unitLabel, message string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender satisfies Sender without delivering anything. Used when the
// provider is not configured.
type NoopSender struct{}

func (NoopSender) SendVisitApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate, agentName string) error {
	return nil
}

func (NoopSender) SendVisitAssignmentEmail(ctx context.Context, toEmail, agentName, clientName, clientPhone, propertyName, unitLabel, scheduledDate, adminMsg string) error {
	return nil
}

func (NoopSender) SendVisitDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error {
	return nil
}

func (NoopSender) SendVisitCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
	return nil
}

func (NoopSender) SendVisitCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error {
	return nil
}

func (NoopSender) SendVisitReminderEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate string) error {
	return nil
}

func (NoopSender) SendReservationApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
	return nil
}

func (NoopSender) SendReservationDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error {
	return nil
}

func (NoopSender) SendReservationCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
	return nil
}

func (NoopSender) SendReservationCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error {
	return nil
}

func (NoopSender) SendAgentUpdateEmail(ctx context.Context, toEmail, agentName, propertyName, unitLabel, message string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender selects a Sender implementation from configuration. When the
// provider credentials or sender address are missing, a NoopSender is
// returned; the caller is expected to log a warning so skipped sends are
// visible in operations.
func NewSender(cfg *config.Config) (Sender, error) {
	if !cfg.IsEmailConfigured() {
		return NoopSender{}, nil
	}

	if cfg.GetEmailProvider() == "smtp" {
		return NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
		), nil
	}

	return NewBrevoSender(cfg), nil
}
