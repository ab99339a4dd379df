package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/config"
)

// BrevoSender delivers emails through the Brevo transactional HTTP API.
type BrevoSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

// NewBrevoSender creates a BrevoSender from the email configuration.
func NewBrevoSender(cfg config.EmailConfig) *BrevoSender {
	return &BrevoSender{
		apiKey:    cfg.GetBrevoAPIKey(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	payload := brevoEmailRequest{
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	payload.Sender.Name = b.fromName
	payload.Sender.Email = b.fromEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return apperr.Email("notification send failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return apperr.Email("notification send failed",
			fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data)))
	}

	return nil
}

func (b *BrevoSender) SendVisitApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate, agentName string) error {
	content, err := renderEmailTemplate("visit_approved.html", visitApprovedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Visit approved",
			Heading: "Your visit is confirmed",
		},
		ClientName:    clientName,
		PropertyName:  propertyName,
		UnitLabel:     unitLabel,
		ScheduledDate: scheduledDate,
		AgentName:     agentName,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectVisitApproved, content)
}

func (b *BrevoSender) SendVisitAssignmentEmail(ctx context.Context, toEmail, agentName, clientName, clientPhone, propertyName, unitLabel, scheduledDate, adminMsg string) error {
	subject := fmt.Sprintf(subjectVisitAssignmentFmt, propertyName)
	content, err := renderEmailTemplate("visit_assignment.html", visitAssignmentEmailData{
		baseEmailData: baseEmailData{
			Title:   "New visit assignment",
			Heading: "You have a new visit assignment",
		},
		AgentName:     agentName,
		ClientName:    clientName,
		ClientPhone:   clientPhone,
		PropertyName:  propertyName,
		UnitLabel:     unitLabel,
		ScheduledDate: scheduledDate,
		AdminMsg:      adminMsg,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendVisitDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error {
	content, err := renderEmailTemplate("visit_denied.html", visitDeniedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Visit request update",
			Heading: "Your visit request was declined",
		},
		ClientName:   clientName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
		Reason:       reason,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectVisitDenied, content)
}

func (b *BrevoSender) SendVisitCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
	content, err := renderEmailTemplate("visit_completed.html", visitCompletedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Visit completed",
			Heading: "Thank you for visiting",
		},
		ClientName:   clientName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectVisitCompleted, content)
}

func (b *BrevoSender) SendVisitCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error {
	content, err := renderEmailTemplate("visit_cancelled.html", visitCancelledEmailData{
		baseEmailData: baseEmailData{
			Title:   "Visit cancelled",
			Heading: "Your visit has been cancelled",
		},
		ClientName:   clientName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
		Message:      message,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectVisitCancelled, content)
}

func (b *BrevoSender) SendVisitReminderEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate string) error {
	subject := fmt.Sprintf(subjectVisitReminderFmt, propertyName)
	content, err := renderEmailTemplate("visit_reminder.html", visitReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   "Visit reminder",
			Heading: "Your visit is coming up",
		},
		ClientName:    clientName,
		PropertyName:  propertyName,
		UnitLabel:     unitLabel,
		ScheduledDate: scheduledDate,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendReservationApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
	content, err := renderEmailTemplate("reservation_approved.html", reservationApprovedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Reservation approved",
			Heading: "Your reservation is confirmed",
		},
		ClientName:   clientName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectReservationApproved, content)
}

func (b *BrevoSender) SendReservationDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error {
	content, err := renderEmailTemplate("reservation_denied.html", reservationDeniedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Reservation request update",
			Heading: "Your reservation request was declined",
		},
		ClientName:   clientName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
		Reason:       reason,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectReservationDenied, content)
}

func (b *BrevoSender) SendReservationCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
	content, err := renderEmailTemplate("reservation_completed.html", reservationCompletedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Reservation finalized",
			Heading: "Your reservation is finalized",
		},
		ClientName:   clientName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectReservationCompleted, content)
}

func (b *BrevoSender) SendReservationCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error {
	content, err := renderEmailTemplate("reservation_cancelled.html", reservationCancelledEmailData{
		baseEmailData: baseEmailData{
			Title:   "Reservation cancelled",
			Heading: "Your reservation has been cancelled",
		},
		ClientName:   clientName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
		Message:      message,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectReservationCancelled, content)
}

func (b *BrevoSender) SendAgentUpdateEmail(ctx context.Context, toEmail, agentName, propertyName, unitLabel, message string) error {
	subject := fmt.Sprintf(subjectAgentUpdateFmt, propertyName)
	content, err := renderEmailTemplate("agent_update.html", agentUpdateEmailData{
		baseEmailData: baseEmailData{
			Title:   "Request update",
			Heading: "Request update",
		},
		AgentName:    agentName,
		PropertyName: propertyName,
		UnitLabel:    unitLabel,
		Message:      message,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.send(ctx, toEmail, subject, htmlContent)
}
