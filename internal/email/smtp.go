package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"realty_portal_backend/platform/apperr"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail. It renders the same HTML templates as BrevoSender but delivers
// through the operator's own SMTP server.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return apperr.Email("notification send failed", fmt.Errorf("smtp send: %w", err))
	}

	return nil
}

func (s *SMTPSender) SendVisitApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate, agentName string) error {
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
	return s.send(ctx, toEmail, subjectVisitApproved, content)
}

func (s *SMTPSender) SendVisitAssignmentEmail(ctx context.Context, toEmail, agentName, clientName, clientPhone, propertyName, unitLabel, scheduledDate, adminMsg string) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendVisitDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error {
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
	return s.send(ctx, toEmail, subjectVisitDenied, content)
}

func (s *SMTPSender) SendVisitCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
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
	return s.send(ctx, toEmail, subjectVisitCompleted, content)
}

func (s *SMTPSender) SendVisitCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error {
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
	return s.send(ctx, toEmail, subjectVisitCancelled, content)
}

func (s *SMTPSender) SendVisitReminderEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, scheduledDate string) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendReservationApprovedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
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
	return s.send(ctx, toEmail, subjectReservationApproved, content)
}

func (s *SMTPSender) SendReservationDeniedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, reason string) error {
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
	return s.send(ctx, toEmail, subjectReservationDenied, content)
}

func (s *SMTPSender) SendReservationCompletedEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel string) error {
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
	return s.send(ctx, toEmail, subjectReservationCompleted, content)
}

func (s *SMTPSender) SendReservationCancelledEmail(ctx context.Context, toEmail, clientName, propertyName, unitLabel, message string) error {
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
	return s.send(ctx, toEmail, subjectReservationCancelled, content)
}

func (s *SMTPSender) SendAgentUpdateEmail(ctx context.Context, toEmail, agentName, propertyName, unitLabel, message string) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}
