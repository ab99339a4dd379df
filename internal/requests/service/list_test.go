package service

import (
	"context"
	"testing"
	"time"

	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/internal/requests/transport"
)

func TestListVisitsPagination(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < 20; i++ {
		v := seedVisit(env.store, repository.StatusPending)
		env.store.mu.Lock()
		env.store.visits[v.ID].CreatedAt = time.Now().Add(-time.Duration(i) * time.Minute).UTC()
		env.store.mu.Unlock()
	}

	page1, err := env.service.ListVisits(context.Background(), transport.ListRequestsQuery{Status: repository.StatusPending})
	if err != nil {
		t.Fatalf("ListVisits: %v", err)
	}
	if len(page1.Items) != repository.DefaultPageSize {
		t.Errorf("page 1 items = %d, want %d", len(page1.Items), repository.DefaultPageSize)
	}
	if page1.Total != 20 {
		t.Errorf("total = %d, want 20", page1.Total)
	}
	if page1.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", page1.TotalPages)
	}
	if page1.Page != 1 || page1.PageSize != repository.DefaultPageSize {
		t.Errorf("page/pageSize = %d/%d, want 1/%d", page1.Page, page1.PageSize, repository.DefaultPageSize)
	}

	page2, err := env.service.ListVisits(context.Background(), transport.ListRequestsQuery{Status: repository.StatusPending, Page: 2})
	if err != nil {
		t.Fatalf("ListVisits page 2: %v", err)
	}
	if len(page2.Items) != 20-repository.DefaultPageSize {
		t.Errorf("page 2 items = %d, want %d", len(page2.Items), 20-repository.DefaultPageSize)
	}

	seen := make(map[string]bool)
	for _, item := range append(page1.Items, page2.Items...) {
		if seen[item.ID] {
			t.Errorf("request %s appears on both pages", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestListVisitsNewestFirst(t *testing.T) {
	env := newTestEnv()
	old := seedVisit(env.store, repository.StatusPending)
	env.store.mu.Lock()
	env.store.visits[old.ID].CreatedAt = time.Now().Add(-time.Hour).UTC()
	env.store.mu.Unlock()
	recent := seedVisit(env.store, repository.StatusPending)

	result, err := env.service.ListVisits(context.Background(), transport.ListRequestsQuery{})
	if err != nil {
		t.Fatalf("ListVisits: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result.Items))
	}
	if result.Items[0].ID != recent.ID.String() {
		t.Errorf("first item = %s, want newest %s", result.Items[0].ID, recent.ID)
	}
}

func TestListVisitsResolvesAssignments(t *testing.T) {
	env := newTestEnv()
	agent := seedAgent(env.agents)

	assigned := seedVisit(env.store, repository.StatusApproved)
	unassigned := seedVisit(env.store, repository.StatusPending)
	if err := env.store.ReplaceAssignment(context.Background(), repository.KindVisit, assigned.ID, repository.Assignment{
		AgentID: agent.ID, AgentName: agent.Name, AgentEmail: agent.Email,
		AgentPhone: agent.Phone, LicenseNumber: agent.LicenseNumber,
	}); err != nil {
		t.Fatalf("ReplaceAssignment: %v", err)
	}

	result, err := env.service.ListVisits(context.Background(), transport.ListRequestsQuery{})
	if err != nil {
		t.Fatalf("ListVisits: %v", err)
	}

	for _, item := range result.Items {
		switch item.ID {
		case assigned.ID.String():
			if len(item.Agents) != 1 {
				t.Fatalf("assigned visit agents = %d, want 1", len(item.Agents))
			}
			if item.Agents[0].AgentID != agent.ID.String() {
				t.Errorf("agent id = %s, want %s", item.Agents[0].AgentID, agent.ID)
			}
			if item.Agents[0].Email != agent.Email {
				t.Errorf("agent email = %q, want %q", item.Agents[0].Email, agent.Email)
			}
		case unassigned.ID.String():
			if len(item.Agents) != 0 {
				t.Errorf("unassigned visit agents = %d, want 0", len(item.Agents))
			}
		}
	}
}

func TestListVisitsEmptyResultIsOnePage(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.ListVisits(context.Background(), transport.ListRequestsQuery{Status: repository.StatusCompleted})
	if err != nil {
		t.Fatalf("ListVisits: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("total = %d, want 0", result.Total)
	}
	if result.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1 for empty result", result.TotalPages)
	}
	if result.Items == nil {
		t.Error("items should be an empty slice, not nil")
	}
}

func TestListReservationsPagination(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < 7; i++ {
		seedReservation(env.store, repository.StatusPending)
	}
	seedReservation(env.store, repository.StatusDenied)

	result, err := env.service.ListReservations(context.Background(), transport.ListRequestsQuery{
		Status:   repository.StatusPending,
		PageSize: 5,
	})
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if len(result.Items) != 5 {
		t.Errorf("items = %d, want 5", len(result.Items))
	}
	if result.Total != 7 {
		t.Errorf("total = %d, want 7", result.Total)
	}
	if result.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", result.TotalPages)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int
		pageSize int
		want     int
	}{
		{0, 15, 1},
		{1, 15, 1},
		{15, 15, 1},
		{16, 15, 2},
		{20, 15, 2},
		{30, 15, 2},
		{31, 15, 3},
		{7, 5, 2},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestListParamsDefaults(t *testing.T) {
	params := listParams(transport.ListRequestsQuery{})
	if params.Page != 1 {
		t.Errorf("page = %d, want 1", params.Page)
	}
	if params.PageSize != repository.DefaultPageSize {
		t.Errorf("pageSize = %d, want %d", params.PageSize, repository.DefaultPageSize)
	}

	params = listParams(transport.ListRequestsQuery{Page: -3, PageSize: 0})
	if params.Page != 1 || params.PageSize != repository.DefaultPageSize {
		t.Errorf("negative inputs not normalized: %+v", params)
	}
}
