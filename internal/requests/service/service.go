// Package service implements the request lifecycle engine: the state machine
// moving visit and reservation requests through pending, approved, denied and
// completed. All exclusion is via conditional store updates; there are no
// in-process locks. Email dispatch is best-effort and never blocks a
// transition that already committed.
package service

import (
	"context"
	"time"

	"realty_portal_backend/internal/events"
	"realty_portal_backend/internal/requests/ports"
	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/platform/logger"
)

// Sender is the subset of the email notifier the lifecycle engine uses.
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
}

// Service provides the request lifecycle and query operations.
type Service struct {
	store     repository.Store
	agents    ports.AgentProvider
	units     ports.UnitLocker
	sender    Sender
	eventBus  events.Bus
	reminders ports.ReminderScheduler
	log       *logger.Logger
}

// New creates a new requests service. reminders may be nil when no task
// queue is configured; visit reminders are then skipped.
func New(
	store repository.Store,
	agents ports.AgentProvider,
	units ports.UnitLocker,
	sender Sender,
	eventBus events.Bus,
	reminders ports.ReminderScheduler,
	log *logger.Logger,
) *Service {
	return &Service{
		store:     store,
		agents:    agents,
		units:     units,
		sender:    sender,
		eventBus:  eventBus,
		reminders: reminders,
		log:       log,
	}
}

// formatSlot renders a slot the way it appears in notification emails.
func formatSlot(t time.Time) string {
	return t.Format("Monday, January 2, 2006 at 15:04")
}

// unitLabel builds the display label for a unit from its denormalized
// identifier and optional block.
func unitLabel(identifier string, block *string) string {
	if block != nil && *block != "" {
		return identifier + " (Block " + *block + ")"
	}
	return identifier
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, event)
	}
}
