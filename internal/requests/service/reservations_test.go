package service

import (
	"context"
	"sync"
	"testing"

	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/internal/requests/transport"
	"realty_portal_backend/platform/apperr"
)

func TestApproveReservationLocksUnit(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusPending)
	env.units.set(res.UnitID, true)

	if err := env.service.ApproveReservation(context.Background(), res.ID); err != nil {
		t.Fatalf("ApproveReservation: %v", err)
	}

	if status := env.store.reservationStatus(res.ID); status != repository.StatusApproved {
		t.Errorf("status = %q, want %q", status, repository.StatusApproved)
	}
	if env.units.isAvailable(res.UnitID) {
		t.Error("unit still available after approval")
	}
	if n := len(env.sender.sent("reservation_approved")); n != 1 {
		t.Errorf("reservation approved emails = %d, want 1", n)
	}
}

func TestApproveReservationUnavailableUnit(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusPending)
	env.units.set(res.UnitID, false)

	err := env.service.ApproveReservation(context.Background(), res.ID)
	if !apperr.Is(err, apperr.KindUnitUnavailable) {
		t.Errorf("ApproveReservation = %v, want unit unavailable", err)
	}
	if status := env.store.reservationStatus(res.ID); status != repository.StatusPending {
		t.Errorf("status = %q, want untouched pending", status)
	}
}

func TestApproveReservationReleasesLockOnLostRace(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusApproved)
	env.units.set(res.UnitID, true)

	err := env.service.ApproveReservation(context.Background(), res.ID)
	if !apperr.Is(err, apperr.KindInvalidStatus) {
		t.Errorf("ApproveReservation = %v, want invalid status", err)
	}
	if !env.units.isAvailable(res.UnitID) {
		t.Error("unit left locked after failed status transition")
	}
	if env.units.releaseCount() != 1 {
		t.Errorf("releases = %d, want 1", env.units.releaseCount())
	}
}

func TestConcurrentApproveReservationSingleWinner(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusPending)
	env.units.set(res.UnitID, true)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.service.ApproveReservation(context.Background(), res.ID)
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case apperr.Is(err, apperr.KindInvalidStatus), apperr.Is(err, apperr.KindUnitUnavailable):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
	if status := env.store.reservationStatus(res.ID); status != repository.StatusApproved {
		t.Errorf("status = %q, want %q", status, repository.StatusApproved)
	}
	// The winner holds the lock; every loser that got as far as a lock
	// attempt either failed it or released it again.
	if env.units.isAvailable(res.UnitID) {
		t.Error("unit available while an approved reservation holds it")
	}
	if env.units.lockCount() != env.units.releaseCount()+1 {
		t.Errorf("locks = %d, releases = %d, want locks = releases + 1",
			env.units.lockCount(), env.units.releaseCount())
	}
}

func TestDenyReservationRequiresReason(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusPending)

	err := env.service.DenyReservation(context.Background(), res.ID, transport.DenyRequest{ClientMsg: "  "})
	if !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("DenyReservation = %v, want invalid input", err)
	}
	if calls := env.store.callCount(); calls != 0 {
		t.Errorf("store calls = %d, want 0 for rejected input", calls)
	}
	if status := env.store.reservationStatus(res.ID); status != repository.StatusPending {
		t.Errorf("status = %q, want untouched pending", status)
	}
}

func TestDenyReservationLeavesUnitAlone(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusPending)
	env.units.set(res.UnitID, true)

	err := env.service.DenyReservation(context.Background(), res.ID, transport.DenyRequest{
		ClientMsg: "Income documents are incomplete.",
	})
	if err != nil {
		t.Fatalf("DenyReservation: %v", err)
	}
	if status := env.store.reservationStatus(res.ID); status != repository.StatusDenied {
		t.Errorf("status = %q, want %q", status, repository.StatusDenied)
	}
	if !env.units.isAvailable(res.UnitID) {
		t.Error("denial touched unit availability")
	}
	if n := len(env.sender.sent("reservation_denied")); n != 1 {
		t.Errorf("reservation denied emails = %d, want 1", n)
	}
}

func TestCompleteReservationKeepsUnitLocked(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusApproved)
	env.units.set(res.UnitID, false)

	if err := env.service.CompleteReservation(context.Background(), res.ID); err != nil {
		t.Fatalf("CompleteReservation: %v", err)
	}
	if status := env.store.reservationStatus(res.ID); status != repository.StatusCompleted {
		t.Errorf("status = %q, want %q", status, repository.StatusCompleted)
	}
	if env.units.isAvailable(res.UnitID) {
		t.Error("completion released the unit")
	}
	if n := len(env.sender.sent("reservation_completed")); n != 1 {
		t.Errorf("reservation completed emails = %d, want 1", n)
	}
}

func TestCancelReservationReleasesUnit(t *testing.T) {
	env := newTestEnv()
	res := seedReservation(env.store, repository.StatusApproved)
	env.units.set(res.UnitID, false)

	err := env.service.CancelReservation(context.Background(), res.ID, transport.CancelRequest{
		ClientMsg: strptr("Client found another apartment."),
	})
	if err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if status := env.store.reservationStatus(res.ID); status != repository.StatusDenied {
		t.Errorf("status = %q, want %q", status, repository.StatusDenied)
	}
	if !env.units.isAvailable(res.UnitID) {
		t.Error("cancellation did not release the unit")
	}
	if len(env.store.assignmentsFor(repository.KindReservation, res.ID)) != 0 {
		t.Error("assignments not cleared on cancellation")
	}
	if n := len(env.sender.sent("reservation_cancelled")); n != 1 {
		t.Errorf("reservation cancelled emails = %d, want 1", n)
	}
}

func TestReservationTerminalStatesRejectTransitions(t *testing.T) {
	env := newTestEnv()

	for _, terminal := range []string{repository.StatusDenied, repository.StatusCompleted} {
		res := seedReservation(env.store, terminal)
		env.units.set(res.UnitID, true)

		err := env.service.ApproveReservation(context.Background(), res.ID)
		if !apperr.Is(err, apperr.KindInvalidStatus) {
			t.Errorf("ApproveReservation from %q = %v, want invalid status", terminal, err)
		}
		if !env.units.isAvailable(res.UnitID) {
			t.Errorf("failed approval from %q left the unit locked", terminal)
		}

		err = env.service.DenyReservation(context.Background(), res.ID, transport.DenyRequest{ClientMsg: "no"})
		if !apperr.Is(err, apperr.KindInvalidStatus) {
			t.Errorf("DenyReservation from %q = %v, want invalid status", terminal, err)
		}

		err = env.service.CompleteReservation(context.Background(), res.ID)
		if !apperr.Is(err, apperr.KindInvalidStatus) {
			t.Errorf("CompleteReservation from %q = %v, want invalid status", terminal, err)
		}

		err = env.service.CancelReservation(context.Background(), res.ID, transport.CancelRequest{})
		if !apperr.Is(err, apperr.KindInvalidStatus) {
			t.Errorf("CancelReservation from %q = %v, want invalid status", terminal, err)
		}

		if status := env.store.reservationStatus(res.ID); status != terminal {
			t.Errorf("terminal status mutated: %q -> %q", terminal, status)
		}
	}
}
