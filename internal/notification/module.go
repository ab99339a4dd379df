// Package notification subscribes to request lifecycle events and turns
// them into the persisted back-office feed. Domain modules publish events
// and never know about the feed.
package notification

import (
	"context"
	"fmt"

	"realty_portal_backend/internal/events"
	apphttp "realty_portal_backend/internal/http"
	notifhandler "realty_portal_backend/internal/notification/handler"
	"realty_portal_backend/internal/notification/inapp"
	"realty_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	resourceKindVisit       = "visit_request"
	resourceKindReservation = "reservation_request"

	categoryInfo    = "info"
	categorySuccess = "success"
	categoryWarning = "warning"
)

// Module is the notification module implementing http.Module.
type Module struct {
	handler *notifhandler.Handler
	inapp   *inapp.Service
	log     *logger.Logger
}

// NewModule creates the notification module and subscribes its event
// handlers on the bus.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := inapp.NewRepository(pool)
	svc := inapp.NewService(repo)
	h := notifhandler.New(svc)

	m := &Module{handler: h, inapp: svc, log: log}
	m.subscribe(bus)
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes mounts notification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/notifications")
	m.handler.RegisterRoutes(group)
}

func (m *Module) subscribe(bus events.Bus) {
	bus.Subscribe(events.VisitApproved{}.EventName(), events.HandlerFunc(m.onVisitApproved))
	bus.Subscribe(events.VisitDenied{}.EventName(), events.HandlerFunc(m.onVisitDenied))
	bus.Subscribe(events.VisitCompleted{}.EventName(), events.HandlerFunc(m.onVisitCompleted))
	bus.Subscribe(events.VisitCancelled{}.EventName(), events.HandlerFunc(m.onVisitCancelled))
	bus.Subscribe(events.ReservationApproved{}.EventName(), events.HandlerFunc(m.onReservationApproved))
	bus.Subscribe(events.ReservationDenied{}.EventName(), events.HandlerFunc(m.onReservationDenied))
	bus.Subscribe(events.ReservationCompleted{}.EventName(), events.HandlerFunc(m.onReservationCompleted))
	bus.Subscribe(events.ReservationCancelled{}.EventName(), events.HandlerFunc(m.onReservationCancelled))
}

func (m *Module) onVisitApproved(ctx context.Context, event events.Event) error {
	e, ok := event.(events.VisitApproved)
	if !ok {
		return nil
	}

	// One row for the shared feed, one addressed to the assigned agent.
	if err := m.create(ctx, nil, e.RequestID, resourceKindVisit, categorySuccess,
		"Visit approved",
		fmt.Sprintf("Visit for %s at %s scheduled for %s, assigned to %s.",
			e.UnitLabel, e.PropertyName, e.ScheduledSlot.Format("Jan 2, 2006 15:04"), e.AgentName)); err != nil {
		return err
	}
	agentID := e.AgentID
	return m.create(ctx, &agentID, e.RequestID, resourceKindVisit, categoryInfo,
		"New visit assignment",
		fmt.Sprintf("You are assigned to show %s at %s to %s on %s.",
			e.UnitLabel, e.PropertyName, e.ClientName, e.ScheduledSlot.Format("Jan 2, 2006 15:04")))
}

func (m *Module) onVisitDenied(ctx context.Context, event events.Event) error {
	e, ok := event.(events.VisitDenied)
	if !ok {
		return nil
	}
	return m.create(ctx, nil, e.RequestID, resourceKindVisit, categoryWarning,
		"Visit denied",
		fmt.Sprintf("Visit request from %s for %s at %s was denied.", e.ClientName, e.UnitLabel, e.PropertyName))
}

func (m *Module) onVisitCompleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.VisitCompleted)
	if !ok {
		return nil
	}
	return m.create(ctx, nil, e.RequestID, resourceKindVisit, categorySuccess,
		"Visit completed",
		fmt.Sprintf("Visit of %s at %s by %s was completed.", e.UnitLabel, e.PropertyName, e.ClientName))
}

func (m *Module) onVisitCancelled(ctx context.Context, event events.Event) error {
	e, ok := event.(events.VisitCancelled)
	if !ok {
		return nil
	}
	return m.create(ctx, nil, e.RequestID, resourceKindVisit, categoryWarning,
		"Visit cancelled",
		fmt.Sprintf("Approved visit of %s at %s for %s was cancelled.", e.UnitLabel, e.PropertyName, e.ClientName))
}

func (m *Module) onReservationApproved(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ReservationApproved)
	if !ok {
		return nil
	}
	return m.create(ctx, nil, e.RequestID, resourceKindReservation, categorySuccess,
		"Reservation approved",
		fmt.Sprintf("Unit %s at %s is now held for %s.", e.UnitLabel, e.PropertyName, e.ClientName))
}

func (m *Module) onReservationDenied(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ReservationDenied)
	if !ok {
		return nil
	}
	return m.create(ctx, nil, e.RequestID, resourceKindReservation, categoryWarning,
		"Reservation denied",
		fmt.Sprintf("Reservation request from %s for %s at %s was denied.", e.ClientName, e.UnitLabel, e.PropertyName))
}

func (m *Module) onReservationCompleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ReservationCompleted)
	if !ok {
		return nil
	}
	return m.create(ctx, nil, e.RequestID, resourceKindReservation, categorySuccess,
		"Reservation finalized",
		fmt.Sprintf("Reservation of %s at %s by %s was finalized.", e.UnitLabel, e.PropertyName, e.ClientName))
}

func (m *Module) onReservationCancelled(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ReservationCancelled)
	if !ok {
		return nil
	}
	return m.create(ctx, nil, e.RequestID, resourceKindReservation, categoryWarning,
		"Reservation cancelled",
		fmt.Sprintf("Reservation of %s at %s was cancelled; the unit is available again.", e.UnitLabel, e.PropertyName))
}

func (m *Module) create(ctx context.Context, userID *uuid.UUID, resourceID uuid.UUID, kind, category, title, content string) error {
	_, err := m.inapp.Notify(ctx, inapp.CreateParams{
		UserID:       userID,
		Title:        title,
		Content:      content,
		ResourceID:   &resourceID,
		ResourceKind: &kind,
		Category:     category,
	})
	if err != nil {
		m.log.Error("failed to persist notification", "title", title, "error", err.Error())
	}
	return err
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
