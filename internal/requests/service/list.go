package service

import (
	"context"

	agenttransport "realty_portal_backend/internal/agents/transport"
	"realty_portal_backend/internal/requests/ports"
	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/internal/requests/transport"

	"github.com/google/uuid"
)

// ListVisits returns a page of visit requests with resolved agent snapshots.
func (s *Service) ListVisits(ctx context.Context, query transport.ListRequestsQuery) (transport.VisitListResponse, error) {
	params := listParams(query)

	visits, total, err := s.store.ListVisits(ctx, params)
	if err != nil {
		return transport.VisitListResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(visits))
	for _, v := range visits {
		ids = append(ids, v.ID)
	}
	assigned, err := s.agents.ResolveAssignments(ctx, repository.KindVisit, ids)
	if err != nil {
		return transport.VisitListResponse{}, err
	}

	items := make([]transport.VisitRequestResponse, 0, len(visits))
	for _, v := range visits {
		items = append(items, transport.VisitRequestResponse{
			ID:              v.ID.String(),
			ClientID:        v.ClientID.String(),
			ClientName:      v.ClientName,
			ClientEmail:     v.ClientEmail,
			ClientPhone:     v.ClientPhone,
			PropertyID:      v.PropertyID.String(),
			PropertyName:    v.PropertyName,
			PropertyAddress: v.PropertyAddress,
			UnitID:          v.UnitID.String(),
			UnitIdentifier:  v.UnitIdentifier,
			UnitBlock:       v.UnitBlock,
			Status:          v.Status,
			RequestedSlots:  v.RequestedSlots,
			ScheduledSlot:   v.ScheduledSlot,
			ClientMsg:       v.ClientMsg,
			AgentMsg:        v.AgentMsg,
			Agents:          toAgentResponses(assigned[v.ID]),
			CreatedAt:       v.CreatedAt,
			UpdatedAt:       v.UpdatedAt,
		})
	}

	return transport.VisitListResponse{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
	}, nil
}

// ListReservations returns a page of reservation requests with resolved
// agent snapshots.
func (s *Service) ListReservations(ctx context.Context, query transport.ListRequestsQuery) (transport.ReservationListResponse, error) {
	params := listParams(query)

	reservations, total, err := s.store.ListReservations(ctx, params)
	if err != nil {
		return transport.ReservationListResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	assigned, err := s.agents.ResolveAssignments(ctx, repository.KindReservation, ids)
	if err != nil {
		return transport.ReservationListResponse{}, err
	}

	items := make([]transport.ReservationRequestResponse, 0, len(reservations))
	for _, r := range reservations {
		items = append(items, transport.ReservationRequestResponse{
			ID:               r.ID.String(),
			ClientID:         r.ClientID.String(),
			ClientName:       r.ClientName,
			ClientEmail:      r.ClientEmail,
			ClientPhone:      r.ClientPhone,
			PropertyID:       r.PropertyID.String(),
			PropertyName:     r.PropertyName,
			PropertyAddress:  r.PropertyAddress,
			UnitID:           r.UnitID.String(),
			UnitIdentifier:   r.UnitIdentifier,
			UnitBlock:        r.UnitBlock,
			Status:           r.Status,
			ClientMsg:        r.ClientMsg,
			AgentMsg:         r.AgentMsg,
			AddressProofURLs: r.AddressProofURLs,
			IncomeProofURLs:  r.IncomeProofURLs,
			IdentityDocURLs:  r.IdentityDocURLs,
			CertificateURLs:  r.CertificateURLs,
			Agents:           toAgentResponses(assigned[r.ID]),
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		})
	}

	return transport.ReservationListResponse{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
	}, nil
}

func listParams(query transport.ListRequestsQuery) repository.ListParams {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = repository.DefaultPageSize
	}
	return repository.ListParams{
		Status:   query.Status,
		Search:   query.Q,
		Page:     page,
		PageSize: pageSize,
	}
}

// totalPages is ceil(total/pageSize) with a floor of one, so an empty result
// still renders as a single page.
func totalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func toAgentResponses(assigned []ports.AssignedAgent) []agenttransport.AssignedAgentResponse {
	result := make([]agenttransport.AssignedAgentResponse, 0, len(assigned))
	for _, a := range assigned {
		result = append(result, agenttransport.AssignedAgentResponse{
			AgentID:       a.ID.String(),
			Name:          a.Name,
			Email:         a.Email,
			Phone:         a.Phone,
			LicenseNumber: a.LicenseNumber,
			AssignedAt:    a.AssignedAt,
		})
	}
	return result
}
