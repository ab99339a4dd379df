package service

import (
	"context"
	"strings"

	"realty_portal_backend/internal/events"
	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/internal/requests/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// ApproveReservation locks the unit, then commits the status transition.
// The lock runs first; if the status update then fails for any reason the
// lock is released before the error propagates, so a unit is never left
// unavailable without an approved reservation. The two writes are a manual
// saga, not one transaction, because unit availability may live in a
// different store.
func (s *Service) ApproveReservation(ctx context.Context, id uuid.UUID) error {
	res, err := s.store.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}
	if res.UnitID == uuid.Nil {
		return apperr.InvalidInput("reservation has no unit reference")
	}

	locked, err := s.units.TryLock(ctx, res.UnitID)
	if err != nil {
		return err
	}
	if !locked {
		return apperr.UnitUnavailable("unit is no longer available")
	}

	ok, err := s.store.ApproveReservation(ctx, id)
	if err != nil || !ok {
		if releaseErr := s.units.Release(ctx, res.UnitID); releaseErr != nil {
			s.log.DatabaseError("release unit after failed approval", releaseErr)
		}
		if err != nil {
			return err
		}
		return apperr.InvalidStatus("reservation request is not pending")
	}

	label := unitLabel(res.UnitIdentifier, res.UnitBlock)

	if res.ClientEmail != nil {
		if err := s.sender.SendReservationApprovedEmail(ctx, *res.ClientEmail, res.ClientName, res.PropertyName, label); err != nil {
			s.log.EmailFailure("reservation approved", *res.ClientEmail, err)
		}
	}

	s.publish(ctx, events.ReservationApproved{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    id,
		ClientName:   res.ClientName,
		PropertyName: res.PropertyName,
		UnitID:       res.UnitID,
		UnitLabel:    label,
	})

	return nil
}

// DenyReservation moves a pending reservation to denied. No unit release is
// needed; denial only happens pre-approval, before any lock exists.
func (s *Service) DenyReservation(ctx context.Context, id uuid.UUID, req transport.DenyRequest) error {
	clientMsg := sanitize.Text(req.ClientMsg)
	if strings.TrimSpace(clientMsg) == "" {
		return apperr.InvalidInput("denial reason is required")
	}

	res, err := s.store.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}

	assigned, err := s.agents.ResolveAssignments(ctx, repository.KindReservation, []uuid.UUID{id})
	if err != nil {
		return err
	}

	agentMsg := sanitize.TextPtr(req.AgentMsg)
	ok, err := s.store.DenyReservation(ctx, id, clientMsg, agentMsg)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidStatus("reservation request is not pending")
	}

	if err := s.store.DeleteAssignments(ctx, repository.KindReservation, id); err != nil {
		return err
	}

	label := unitLabel(res.UnitIdentifier, res.UnitBlock)

	if res.ClientEmail != nil {
		if err := s.sender.SendReservationDeniedEmail(ctx, *res.ClientEmail, res.ClientName, res.PropertyName, label, clientMsg); err != nil {
			s.log.EmailFailure("reservation denied", *res.ClientEmail, err)
		}
	}
	s.notifyAssignedAgents(ctx, assigned[id], res.PropertyName, label, agentMsg)

	s.publish(ctx, events.ReservationDenied{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    id,
		ClientName:   res.ClientName,
		PropertyName: res.PropertyName,
		UnitLabel:    label,
		Reason:       clientMsg,
	})

	return nil
}

// CompleteReservation finalizes an approved reservation. The unit stays
// locked permanently; completion represents a closed sale or lease.
func (s *Service) CompleteReservation(ctx context.Context, id uuid.UUID) error {
	res, err := s.store.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.store.CompleteReservation(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidStatus("reservation request is not approved")
	}

	label := unitLabel(res.UnitIdentifier, res.UnitBlock)

	if res.ClientEmail != nil {
		if err := s.sender.SendReservationCompletedEmail(ctx, *res.ClientEmail, res.ClientName, res.PropertyName, label); err != nil {
			s.log.EmailFailure("reservation completed", *res.ClientEmail, err)
		}
	}

	s.publish(ctx, events.ReservationCompleted{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    id,
		ClientName:   res.ClientName,
		PropertyName: res.PropertyName,
		UnitLabel:    label,
	})

	return nil
}

// CancelReservation withdraws an approved reservation: the status goes back
// to denied, assignments are cleared and the unit becomes available again.
func (s *Service) CancelReservation(ctx context.Context, id uuid.UUID, req transport.CancelRequest) error {
	res, err := s.store.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}

	assigned, err := s.agents.ResolveAssignments(ctx, repository.KindReservation, []uuid.UUID{id})
	if err != nil {
		return err
	}

	clientMsg := sanitize.TextPtr(req.ClientMsg)
	agentMsg := sanitize.TextPtr(req.AgentMsg)
	ok, err := s.store.CancelReservation(ctx, id, clientMsg, agentMsg)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidStatus("reservation request is not approved")
	}

	if err := s.units.Release(ctx, res.UnitID); err != nil {
		return err
	}

	if err := s.store.DeleteAssignments(ctx, repository.KindReservation, id); err != nil {
		return err
	}

	label := unitLabel(res.UnitIdentifier, res.UnitBlock)

	if res.ClientEmail != nil {
		if err := s.sender.SendReservationCancelledEmail(ctx, *res.ClientEmail, res.ClientName, res.PropertyName, label, strVal(clientMsg)); err != nil {
			s.log.EmailFailure("reservation cancelled", *res.ClientEmail, err)
		}
	}
	s.notifyAssignedAgents(ctx, assigned[id], res.PropertyName, label, agentMsg)

	s.publish(ctx, events.ReservationCancelled{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    id,
		ClientName:   res.ClientName,
		PropertyName: res.PropertyName,
		UnitID:       res.UnitID,
		UnitLabel:    label,
		Message:      strVal(clientMsg),
	})

	return nil
}
