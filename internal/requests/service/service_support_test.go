package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"realty_portal_backend/internal/requests/ports"
	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/events"
	"realty_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeStore is an in-memory repository.Store with the same conditional-update
// semantics as the SQL implementation: transitions only take effect when the
// row is in the expected status, and report whether they did.
type fakeStore struct {
	mu           sync.Mutex
	visits       map[uuid.UUID]*repository.VisitRequest
	reservations map[uuid.UUID]*repository.ReservationRequest
	assignments  map[string][]storedAssignment
	calls        int
}

type storedAssignment struct {
	repository.Assignment
	AssignedAt time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		visits:       make(map[uuid.UUID]*repository.VisitRequest),
		reservations: make(map[uuid.UUID]*repository.ReservationRequest),
		assignments:  make(map[string][]storedAssignment),
	}
}

func assignmentKey(kind string, id uuid.UUID) string {
	return kind + ":" + id.String()
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *fakeStore) GetVisitByID(_ context.Context, id uuid.UUID) (repository.VisitRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v, ok := s.visits[id]
	if !ok {
		return repository.VisitRequest{}, apperr.NotFound("visit request not found")
	}
	return *v, nil
}

func (s *fakeStore) ApproveVisit(_ context.Context, id uuid.UUID, scheduledSlot time.Time, agentMsg *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v, ok := s.visits[id]
	if !ok || v.Status != repository.StatusPending {
		return false, nil
	}
	v.Status = repository.StatusApproved
	v.ScheduledSlot = &scheduledSlot
	v.ClientMsg = nil
	v.AgentMsg = agentMsg
	return true, nil
}

func (s *fakeStore) DenyVisit(_ context.Context, id uuid.UUID, clientMsg string, agentMsg *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v, ok := s.visits[id]
	if !ok || v.Status != repository.StatusPending {
		return false, nil
	}
	v.Status = repository.StatusDenied
	v.ScheduledSlot = nil
	v.ClientMsg = &clientMsg
	v.AgentMsg = agentMsg
	return true, nil
}

func (s *fakeStore) CompleteVisit(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v, ok := s.visits[id]
	if !ok || v.Status != repository.StatusApproved {
		return false, nil
	}
	v.Status = repository.StatusCompleted
	return true, nil
}

func (s *fakeStore) CancelVisit(_ context.Context, id uuid.UUID, clientMsg *string, agentMsg *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v, ok := s.visits[id]
	if !ok || v.Status != repository.StatusApproved {
		return false, nil
	}
	v.Status = repository.StatusDenied
	v.ScheduledSlot = nil
	v.ClientMsg = clientMsg
	v.AgentMsg = agentMsg
	return true, nil
}

func (s *fakeStore) ListVisits(_ context.Context, params repository.ListParams) ([]repository.VisitRequest, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	matched := make([]repository.VisitRequest, 0, len(s.visits))
	for _, v := range s.visits {
		if params.Status != "" && v.Status != params.Status {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(v.ClientName+" "+v.PropertyName+" "+v.UnitIdentifier), strings.ToLower(params.Search)) {
			continue
		}
		matched = append(matched, *v)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (params.Page - 1) * params.PageSize
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakeStore) GetReservationByID(_ context.Context, id uuid.UUID) (repository.ReservationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	r, ok := s.reservations[id]
	if !ok {
		return repository.ReservationRequest{}, apperr.NotFound("reservation request not found")
	}
	return *r, nil
}

func (s *fakeStore) ApproveReservation(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	r, ok := s.reservations[id]
	if !ok || r.Status != repository.StatusPending {
		return false, nil
	}
	r.Status = repository.StatusApproved
	r.ClientMsg = nil
	return true, nil
}

func (s *fakeStore) DenyReservation(_ context.Context, id uuid.UUID, clientMsg string, agentMsg *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	r, ok := s.reservations[id]
	if !ok || r.Status != repository.StatusPending {
		return false, nil
	}
	r.Status = repository.StatusDenied
	r.ClientMsg = &clientMsg
	r.AgentMsg = agentMsg
	return true, nil
}

func (s *fakeStore) CompleteReservation(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	r, ok := s.reservations[id]
	if !ok || r.Status != repository.StatusApproved {
		return false, nil
	}
	r.Status = repository.StatusCompleted
	return true, nil
}

func (s *fakeStore) CancelReservation(_ context.Context, id uuid.UUID, clientMsg *string, agentMsg *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	r, ok := s.reservations[id]
	if !ok || r.Status != repository.StatusApproved {
		return false, nil
	}
	r.Status = repository.StatusDenied
	r.ClientMsg = clientMsg
	r.AgentMsg = agentMsg
	return true, nil
}

func (s *fakeStore) ListReservations(_ context.Context, params repository.ListParams) ([]repository.ReservationRequest, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	matched := make([]repository.ReservationRequest, 0, len(s.reservations))
	for _, r := range s.reservations {
		if params.Status != "" && r.Status != params.Status {
			continue
		}
		matched = append(matched, *r)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (params.Page - 1) * params.PageSize
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakeStore) ReplaceAssignment(_ context.Context, kind string, requestID uuid.UUID, assignment repository.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	key := assignmentKey(kind, requestID)
	s.assignments[key] = []storedAssignment{{Assignment: assignment, AssignedAt: time.Now().UTC()}}
	return nil
}

func (s *fakeStore) DeleteAssignments(_ context.Context, kind string, requestID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	delete(s.assignments, assignmentKey(kind, requestID))
	return nil
}

func (s *fakeStore) assignmentsFor(kind string, requestID uuid.UUID) []storedAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storedAssignment(nil), s.assignments[assignmentKey(kind, requestID)]...)
}

func (s *fakeStore) visitStatus(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visits[id].Status
}

func (s *fakeStore) reservationStatus(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id].Status
}

// fakeAgents resolves agents from a fixed set and assignments straight from
// the fake store, mirroring how the real provider reads snapshot rows.
type fakeAgents struct {
	store  *fakeStore
	agents map[uuid.UUID]ports.Agent
}

func newFakeAgents(store *fakeStore) *fakeAgents {
	return &fakeAgents{store: store, agents: make(map[uuid.UUID]ports.Agent)}
}

func (f *fakeAgents) add(agent ports.Agent) {
	f.agents[agent.ID] = agent
}

func (f *fakeAgents) GetActiveAgent(_ context.Context, id uuid.UUID) (ports.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return ports.Agent{}, apperr.AgentNotFound("agent not found")
	}
	return agent, nil
}

func (f *fakeAgents) ResolveAssignments(_ context.Context, kind string, requestIDs []uuid.UUID) (map[uuid.UUID][]ports.AssignedAgent, error) {
	result := make(map[uuid.UUID][]ports.AssignedAgent)
	for _, id := range requestIDs {
		for _, stored := range f.store.assignmentsFor(kind, id) {
			result[id] = append(result[id], ports.AssignedAgent{
				Agent: ports.Agent{
					ID:            stored.AgentID,
					Name:          stored.AgentName,
					Email:         stored.AgentEmail,
					Phone:         stored.AgentPhone,
					LicenseNumber: stored.LicenseNumber,
				},
				AssignedAt: stored.AssignedAt,
			})
		}
	}
	return result, nil
}

// fakeUnits is an in-memory unit availability flag with the same
// compare-and-set contract as the SQL implementation.
type fakeUnits struct {
	mu        sync.Mutex
	available map[uuid.UUID]bool
	locks     int
	releases  int
}

func newFakeUnits() *fakeUnits {
	return &fakeUnits{available: make(map[uuid.UUID]bool)}
}

func (f *fakeUnits) set(unitID uuid.UUID, available bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available[unitID] = available
}

func (f *fakeUnits) isAvailable(unitID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available[unitID]
}

func (f *fakeUnits) lockCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locks
}

func (f *fakeUnits) releaseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releases
}

func (f *fakeUnits) TryLock(_ context.Context, unitID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.available[unitID] {
		return false, nil
	}
	f.available[unitID] = false
	f.locks++
	return true, nil
}

func (f *fakeUnits) Release(_ context.Context, unitID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available[unitID] = true
	f.releases++
	return nil
}

// fakeSender records every email send so tests can assert on dispatches
// without a mail server.
type fakeSender struct {
	mu    sync.Mutex
	sends []sentEmail
}

type sentEmail struct {
	Kind string
	To   string
}

func (f *fakeSender) record(kind, to string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentEmail{Kind: kind, To: to})
}

func (f *fakeSender) sent(kind string) []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentEmail
	for _, s := range f.sends {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeSender) SendVisitApprovedEmail(_ context.Context, toEmail, _, _, _, _, _ string) error {
	f.record("visit_approved", toEmail)
	return nil
}

func (f *fakeSender) SendVisitAssignmentEmail(_ context.Context, toEmail, _, _, _, _, _, _, _ string) error {
	f.record("visit_assignment", toEmail)
	return nil
}

func (f *fakeSender) SendVisitDeniedEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	f.record("visit_denied", toEmail)
	return nil
}

func (f *fakeSender) SendVisitCompletedEmail(_ context.Context, toEmail, _, _, _ string) error {
	f.record("visit_completed", toEmail)
	return nil
}

func (f *fakeSender) SendVisitCancelledEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	f.record("visit_cancelled", toEmail)
	return nil
}

func (f *fakeSender) SendVisitReminderEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	f.record("visit_reminder", toEmail)
	return nil
}

func (f *fakeSender) SendReservationApprovedEmail(_ context.Context, toEmail, _, _, _ string) error {
	f.record("reservation_approved", toEmail)
	return nil
}

func (f *fakeSender) SendReservationDeniedEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	f.record("reservation_denied", toEmail)
	return nil
}

func (f *fakeSender) SendReservationCompletedEmail(_ context.Context, toEmail, _, _, _ string) error {
	f.record("reservation_completed", toEmail)
	return nil
}

func (f *fakeSender) SendReservationCancelledEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	f.record("reservation_cancelled", toEmail)
	return nil
}

func (f *fakeSender) SendAgentUpdateEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	f.record("agent_update", toEmail)
	return nil
}

type testEnv struct {
	service *Service
	store   *fakeStore
	agents  *fakeAgents
	units   *fakeUnits
	sender  *fakeSender
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	agents := newFakeAgents(store)
	units := newFakeUnits()
	sender := &fakeSender{}
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)

	return &testEnv{
		service: New(store, agents, units, sender, bus, nil, log),
		store:   store,
		agents:  agents,
		units:   units,
		sender:  sender,
	}
}

func strptr(s string) *string {
	return &s
}

func seedVisit(store *fakeStore, status string) *repository.VisitRequest {
	v := &repository.VisitRequest{
		ID:              uuid.New(),
		ClientID:        uuid.New(),
		ClientName:      "Nadia Haddad",
		ClientEmail:     strptr("nadia@example.com"),
		ClientPhone:     strptr("+31612345678"),
		PropertyID:      uuid.New(),
		PropertyName:    "Parkzicht Residence",
		PropertyAddress: "Parklaan 12, Rotterdam",
		UnitID:          uuid.New(),
		UnitIdentifier:  "A-204",
		UnitBlock:       strptr("A"),
		Status:          status,
		RequestedSlots:  []time.Time{time.Now().Add(48 * time.Hour).UTC()},
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	if status == repository.StatusApproved {
		slot := time.Now().Add(72 * time.Hour).UTC()
		v.ScheduledSlot = &slot
	}
	store.mu.Lock()
	store.visits[v.ID] = v
	store.mu.Unlock()
	return v
}

func seedReservation(store *fakeStore, status string) *repository.ReservationRequest {
	r := &repository.ReservationRequest{
		ID:              uuid.New(),
		ClientID:        uuid.New(),
		ClientName:      "Tom Verhoeven",
		ClientEmail:     strptr("tom@example.com"),
		PropertyID:      uuid.New(),
		PropertyName:    "Havenkwartier",
		PropertyAddress: "Kade 3, Utrecht",
		UnitID:          uuid.New(),
		UnitIdentifier:  "B-107",
		Status:          status,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	store.mu.Lock()
	store.reservations[r.ID] = r
	store.mu.Unlock()
	return r
}

func seedAgent(agents *fakeAgents) ports.Agent {
	agent := ports.Agent{
		ID:            uuid.New(),
		Name:          "Iris Blauw",
		Email:         "iris@agency.example.com",
		Phone:         strptr("+31687654321"),
		LicenseNumber: strptr("NVM-4471"),
	}
	agents.add(agent)
	return agent
}
