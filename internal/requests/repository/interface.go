package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Request statuses. Cancellation reuses StatusDenied.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDenied    = "denied"
	StatusCompleted = "completed"
)

// Request kinds, discriminating assignment rows.
const (
	KindVisit       = "visit"
	KindReservation = "reservation"
)

// VisitRequest is a client's request to view a unit. Client, property and
// unit fields are denormalized snapshots taken when the request was created.
type VisitRequest struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	ClientName      string
	ClientEmail     *string
	ClientPhone     *string
	PropertyID      uuid.UUID
	PropertyName    string
	PropertyAddress string
	UnitID          uuid.UUID
	UnitIdentifier  string
	UnitBlock       *string
	Status          string
	RequestedSlots  []time.Time
	ScheduledSlot   *time.Time
	ClientMsg       *string
	AgentMsg        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReservationRequest is a client's request to hold a unit. Same denormalized
// head as VisitRequest, plus eligibility document references.
type ReservationRequest struct {
	ID               uuid.UUID
	ClientID         uuid.UUID
	ClientName       string
	ClientEmail      *string
	ClientPhone      *string
	PropertyID       uuid.UUID
	PropertyName     string
	PropertyAddress  string
	UnitID           uuid.UUID
	UnitIdentifier   string
	UnitBlock        *string
	Status           string
	ClientMsg        *string
	AgentMsg         *string
	AddressProofURLs []string
	IncomeProofURLs  []string
	IdentityDocURLs  []string
	CertificateURLs  []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Assignment is the snapshot written when an agent is assigned to a request.
type Assignment struct {
	AgentID       uuid.UUID
	AgentName     string
	AgentEmail    string
	AgentPhone    *string
	LicenseNumber *string
}

// ListParams defines filters for listing requests. Page is 1-indexed.
type ListParams struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// VisitStore provides persistence for visit requests. Transition methods
// perform conditional updates and report whether a row was affected; false
// means the request was not in the expected status.
type VisitStore interface {
	GetVisitByID(ctx context.Context, id uuid.UUID) (VisitRequest, error)
	ApproveVisit(ctx context.Context, id uuid.UUID, scheduledSlot time.Time, agentMsg *string) (bool, error)
	DenyVisit(ctx context.Context, id uuid.UUID, clientMsg string, agentMsg *string) (bool, error)
	CompleteVisit(ctx context.Context, id uuid.UUID) (bool, error)
	CancelVisit(ctx context.Context, id uuid.UUID, clientMsg *string, agentMsg *string) (bool, error)
	ListVisits(ctx context.Context, params ListParams) ([]VisitRequest, int, error)
}

// ReservationStore provides persistence for reservation requests.
type ReservationStore interface {
	GetReservationByID(ctx context.Context, id uuid.UUID) (ReservationRequest, error)
	ApproveReservation(ctx context.Context, id uuid.UUID) (bool, error)
	DenyReservation(ctx context.Context, id uuid.UUID, clientMsg string, agentMsg *string) (bool, error)
	CompleteReservation(ctx context.Context, id uuid.UUID) (bool, error)
	CancelReservation(ctx context.Context, id uuid.UUID, clientMsg *string, agentMsg *string) (bool, error)
	ListReservations(ctx context.Context, params ListParams) ([]ReservationRequest, int, error)
}

// AssignmentStore manages assignment rows. Replacement is delete-then-insert
// so an interrupted replacement leaves a request unassigned, never
// double-assigned.
type AssignmentStore interface {
	ReplaceAssignment(ctx context.Context, kind string, requestID uuid.UUID, assignment Assignment) error
	DeleteAssignments(ctx context.Context, kind string, requestID uuid.UUID) error
}

// Store combines the request persistence interfaces the service consumes.
type Store interface {
	VisitStore
	ReservationStore
	AssignmentStore
}
