package service

import (
	"context"
	"strings"
	"time"

	"realty_portal_backend/internal/events"
	"realty_portal_backend/internal/requests/ports"
	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/internal/requests/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// visitReminderLead is how long before the scheduled slot the reminder email
// goes out.
const visitReminderLead = 24 * time.Hour

// ApproveVisit moves a pending visit to approved: it records the chosen slot,
// replaces the assignment with the vetted agent (snapshotting their details)
// and notifies client and agent. A lost race against a concurrent transition
// surfaces as INVALID_STATUS.
func (s *Service) ApproveVisit(ctx context.Context, id uuid.UUID, req transport.ApproveVisitRequest) error {
	scheduledSlot, err := time.Parse(time.RFC3339, req.ScheduledSlot)
	if err != nil {
		return apperr.InvalidInput("scheduled slot is not a valid date-time")
	}
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		return apperr.InvalidInput("agent id is not a valid uuid")
	}

	visit, err := s.store.GetVisitByID(ctx, id)
	if err != nil {
		return err
	}

	agent, err := s.agents.GetActiveAgent(ctx, agentID)
	if err != nil {
		return err
	}

	agentMsg := sanitize.TextPtr(req.AgentMsg)
	ok, err := s.store.ApproveVisit(ctx, id, scheduledSlot.UTC(), agentMsg)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidStatus("visit request is not pending")
	}

	if err := s.store.ReplaceAssignment(ctx, repository.KindVisit, id, repository.Assignment{
		AgentID:       agent.ID,
		AgentName:     agent.Name,
		AgentEmail:    agent.Email,
		AgentPhone:    agent.Phone,
		LicenseNumber: agent.LicenseNumber,
	}); err != nil {
		return err
	}

	label := unitLabel(visit.UnitIdentifier, visit.UnitBlock)
	slotText := formatSlot(scheduledSlot)

	if visit.ClientEmail != nil {
		if err := s.sender.SendVisitApprovedEmail(ctx, *visit.ClientEmail, visit.ClientName, visit.PropertyName, label, slotText, agent.Name); err != nil {
			s.log.EmailFailure("visit approved", *visit.ClientEmail, err)
		}
	}
	if err := s.sender.SendVisitAssignmentEmail(ctx, agent.Email, agent.Name, visit.ClientName, strVal(visit.ClientPhone), visit.PropertyName, label, slotText, strVal(agentMsg)); err != nil {
		s.log.EmailFailure("visit assignment", agent.Email, err)
	}

	s.publish(ctx, events.VisitApproved{
		BaseEvent:     events.NewBaseEvent(),
		RequestID:     id,
		ClientName:    visit.ClientName,
		PropertyName:  visit.PropertyName,
		UnitLabel:     label,
		ScheduledSlot: scheduledSlot.UTC(),
		AgentID:       agent.ID,
		AgentName:     agent.Name,
	})

	s.scheduleReminder(ctx, id, scheduledSlot.UTC())

	return nil
}

// DenyVisit moves a pending visit to denied. The denial reason is mandatory;
// an empty reason is rejected before any store access.
func (s *Service) DenyVisit(ctx context.Context, id uuid.UUID, req transport.DenyRequest) error {
	clientMsg := sanitize.Text(req.ClientMsg)
	if strings.TrimSpace(clientMsg) == "" {
		return apperr.InvalidInput("denial reason is required")
	}

	visit, err := s.store.GetVisitByID(ctx, id)
	if err != nil {
		return err
	}

	// Resolve any pre-approval assignments before they are cleared, so the
	// assigned agents can still be notified.
	assigned, err := s.agents.ResolveAssignments(ctx, repository.KindVisit, []uuid.UUID{id})
	if err != nil {
		return err
	}

	agentMsg := sanitize.TextPtr(req.AgentMsg)
	ok, err := s.store.DenyVisit(ctx, id, clientMsg, agentMsg)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidStatus("visit request is not pending")
	}

	if err := s.store.DeleteAssignments(ctx, repository.KindVisit, id); err != nil {
		return err
	}

	label := unitLabel(visit.UnitIdentifier, visit.UnitBlock)

	if visit.ClientEmail != nil {
		if err := s.sender.SendVisitDeniedEmail(ctx, *visit.ClientEmail, visit.ClientName, visit.PropertyName, label, clientMsg); err != nil {
			s.log.EmailFailure("visit denied", *visit.ClientEmail, err)
		}
	}
	s.notifyAssignedAgents(ctx, assigned[id], visit.PropertyName, label, agentMsg)

	s.publish(ctx, events.VisitDenied{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    id,
		ClientName:   visit.ClientName,
		PropertyName: visit.PropertyName,
		UnitLabel:    label,
		Reason:       clientMsg,
	})

	return nil
}

// CompleteVisit marks an approved visit as completed.
func (s *Service) CompleteVisit(ctx context.Context, id uuid.UUID) error {
	visit, err := s.store.GetVisitByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.store.CompleteVisit(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidStatus("visit request is not approved")
	}

	label := unitLabel(visit.UnitIdentifier, visit.UnitBlock)

	if visit.ClientEmail != nil {
		if err := s.sender.SendVisitCompletedEmail(ctx, *visit.ClientEmail, visit.ClientName, visit.PropertyName, label); err != nil {
			s.log.EmailFailure("visit completed", *visit.ClientEmail, err)
		}
	}

	s.publish(ctx, events.VisitCompleted{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    id,
		ClientName:   visit.ClientName,
		PropertyName: visit.PropertyName,
		UnitLabel:    label,
	})

	return nil
}

// CancelVisit withdraws an approved visit: the slot is cleared, assignments
// removed and the status set back to denied.
func (s *Service) CancelVisit(ctx context.Context, id uuid.UUID, req transport.CancelRequest) error {
	visit, err := s.store.GetVisitByID(ctx, id)
	if err != nil {
		return err
	}

	assigned, err := s.agents.ResolveAssignments(ctx, repository.KindVisit, []uuid.UUID{id})
	if err != nil {
		return err
	}

	clientMsg := sanitize.TextPtr(req.ClientMsg)
	agentMsg := sanitize.TextPtr(req.AgentMsg)
	ok, err := s.store.CancelVisit(ctx, id, clientMsg, agentMsg)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidStatus("visit request is not approved")
	}

	if err := s.store.DeleteAssignments(ctx, repository.KindVisit, id); err != nil {
		return err
	}

	label := unitLabel(visit.UnitIdentifier, visit.UnitBlock)

	if visit.ClientEmail != nil {
		if err := s.sender.SendVisitCancelledEmail(ctx, *visit.ClientEmail, visit.ClientName, visit.PropertyName, label, strVal(clientMsg)); err != nil {
			s.log.EmailFailure("visit cancelled", *visit.ClientEmail, err)
		}
	}
	s.notifyAssignedAgents(ctx, assigned[id], visit.PropertyName, label, agentMsg)

	s.publish(ctx, events.VisitCancelled{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    id,
		ClientName:   visit.ClientName,
		PropertyName: visit.PropertyName,
		UnitLabel:    label,
		Message:      strVal(clientMsg),
	})

	return nil
}

// notifyAssignedAgents sends the admin's message to agents that were assigned
// before the transition. No message, or no agents, means no emails.
func (s *Service) notifyAssignedAgents(ctx context.Context, agents []ports.AssignedAgent, propertyName, label string, agentMsg *string) {
	if agentMsg == nil || strings.TrimSpace(*agentMsg) == "" {
		return
	}
	for _, agent := range agents {
		if err := s.sender.SendAgentUpdateEmail(ctx, agent.Email, agent.Name, propertyName, label, *agentMsg); err != nil {
			s.log.EmailFailure("agent update", agent.Email, err)
		}
	}
}

// SendVisitReminder delivers the reminder email for a visit, if it is still
// worth sending. Cancelled or completed visits are skipped quietly; the
// scheduled task is fired regardless of what happened after approval.
func (s *Service) SendVisitReminder(ctx context.Context, visitID uuid.UUID) error {
	visit, err := s.store.GetVisitByID(ctx, visitID)
	if err != nil {
		return err
	}
	if visit.Status != repository.StatusApproved || visit.ScheduledSlot == nil || visit.ClientEmail == nil {
		return nil
	}

	label := unitLabel(visit.UnitIdentifier, visit.UnitBlock)
	return s.sender.SendVisitReminderEmail(ctx, *visit.ClientEmail, visit.ClientName, visit.PropertyName, label, formatSlot(*visit.ScheduledSlot))
}

func (s *Service) scheduleReminder(ctx context.Context, visitID uuid.UUID, slot time.Time) {
	if s.reminders == nil {
		return
	}
	if time.Until(slot) <= visitReminderLead {
		return
	}
	if err := s.reminders.ScheduleVisitReminder(ctx, visitID, slot); err != nil {
		s.log.Warn("failed to schedule visit reminder", "visitId", visitID.String(), "error", err.Error())
	}
}
