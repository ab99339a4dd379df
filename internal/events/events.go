// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"realty_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Visit Request Domain Events
// =============================================================================

// VisitApproved is published when an admin approves a visit request.
type VisitApproved struct {
	BaseEvent
	RequestID     uuid.UUID `json:"requestId"`
	ClientName    string    `json:"clientName"`
	PropertyName  string    `json:"propertyName"`
	UnitLabel     string    `json:"unitLabel"`
	ScheduledSlot time.Time `json:"scheduledSlot"`
	AgentID       uuid.UUID `json:"agentId"`
	AgentName     string    `json:"agentName"`
}

func (e VisitApproved) EventName() string { return "requests.visit.approved" }

// VisitDenied is published when an admin denies a pending visit request.
type VisitDenied struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	ClientName   string    `json:"clientName"`
	PropertyName string    `json:"propertyName"`
	UnitLabel    string    `json:"unitLabel"`
	Reason       string    `json:"reason"`
}

func (e VisitDenied) EventName() string { return "requests.visit.denied" }

// VisitCompleted is published when an approved visit is marked completed.
type VisitCompleted struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	ClientName   string    `json:"clientName"`
	PropertyName string    `json:"propertyName"`
	UnitLabel    string    `json:"unitLabel"`
}

func (e VisitCompleted) EventName() string { return "requests.visit.completed" }

// VisitCancelled is published when an approved visit is cancelled.
type VisitCancelled struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	ClientName   string    `json:"clientName"`
	PropertyName string    `json:"propertyName"`
	UnitLabel    string    `json:"unitLabel"`
	Message      string    `json:"message,omitempty"`
}

func (e VisitCancelled) EventName() string { return "requests.visit.cancelled" }

// =============================================================================
// Reservation Request Domain Events
// =============================================================================

// ReservationApproved is published when a reservation is approved and its
// unit locked.
type ReservationApproved struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	ClientName   string    `json:"clientName"`
	PropertyName string    `json:"propertyName"`
	UnitID       uuid.UUID `json:"unitId"`
	UnitLabel    string    `json:"unitLabel"`
}

func (e ReservationApproved) EventName() string { return "requests.reservation.approved" }

// ReservationDenied is published when a pending reservation is denied.
type ReservationDenied struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	ClientName   string    `json:"clientName"`
	PropertyName string    `json:"propertyName"`
	UnitLabel    string    `json:"unitLabel"`
	Reason       string    `json:"reason"`
}

func (e ReservationDenied) EventName() string { return "requests.reservation.denied" }

// ReservationCompleted is published when an approved reservation is
// finalized. The unit stays locked.
type ReservationCompleted struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	ClientName   string    `json:"clientName"`
	PropertyName string    `json:"propertyName"`
	UnitLabel    string    `json:"unitLabel"`
}

func (e ReservationCompleted) EventName() string { return "requests.reservation.completed" }

// ReservationCancelled is published when an approved reservation is cancelled
// and its unit released.
type ReservationCancelled struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	ClientName   string    `json:"clientName"`
	PropertyName string    `json:"propertyName"`
	UnitID       uuid.UUID `json:"unitId"`
	UnitLabel    string    `json:"unitLabel"`
	Message      string    `json:"message,omitempty"`
}

func (e ReservationCancelled) EventName() string { return "requests.reservation.cancelled" }
