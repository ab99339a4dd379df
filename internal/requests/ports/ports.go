// Package ports defines the interfaces the requests domain requires from
// other bounded contexts. Adapters in internal/adapters implement them.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Agent is the requests domain's view of an agent.
type Agent struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Phone         *string
	LicenseNumber *string
}

// AssignedAgent is an agent snapshot attached to a request.
type AssignedAgent struct {
	Agent
	AssignedAt time.Time
}

// AgentProvider supplies agent data for approvals and listings.
type AgentProvider interface {
	// GetActiveAgent resolves an assignable agent. Missing users and inactive
	// profiles surface as not-found; a user without the agent role is an
	// invalid input.
	GetActiveAgent(ctx context.Context, id uuid.UUID) (Agent, error)

	// ResolveAssignments returns the agent snapshots for a batch of request
	// ids in one lookup. Requests without assignments are absent from the map.
	ResolveAssignments(ctx context.Context, kind string, requestIDs []uuid.UUID) (map[uuid.UUID][]AssignedAgent, error)
}

// UnitLocker guards unit availability. TryLock is a conditional flip of
// is_available from true to false; false means another reservation won.
type UnitLocker interface {
	TryLock(ctx context.Context, unitID uuid.UUID) (bool, error)
	Release(ctx context.Context, unitID uuid.UUID) error
}

// ReminderScheduler enqueues a deferred visit reminder. Implementations must
// tolerate a nil receiver so reminders degrade to a no-op when the queue is
// not configured.
type ReminderScheduler interface {
	ScheduleVisitReminder(ctx context.Context, visitID uuid.UUID, scheduledSlot time.Time) error
}
