package service

import (
	"context"
	"testing"
	"time"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
)

func TestReclaimerRunOnce(t *testing.T) {
	store := newMemoryStore()
	store.add(heldFixture(1, "T04", time.Now().UTC().Add(-time.Minute)))
	store.add(heldFixture(2, "T05", time.Now().UTC().Add(time.Hour)))

	b := NewBookingService(store)
	r := NewReclaimer(b, time.Minute)

	var notified []uint64
	r.Notify = func(s model.Seat) { notified = append(notified, s.ID) }

	r.RunOnce(context.Background())

	if got := store.get(1); got.Status != model.StatusAvailable {
		t.Errorf("expired seat after pass: status = %s, want AVAILABLE", got.Status)
	}
	if got := store.get(2); got.Status != model.StatusHold {
		t.Errorf("active hold after pass: status = %s, want HOLD", got.Status)
	}
	if len(notified) != 1 || notified[0] != 1 {
		t.Errorf("notified = %v, want [1]", notified)
	}
}

func TestReclaimerRunOnceNothingExpired(t *testing.T) {
	store := newMemoryStore()
	store.add(heldFixture(1, "T04", time.Now().UTC().Add(time.Hour)))

	b := NewBookingService(store)
	r := NewReclaimer(b, time.Minute)
	r.Notify = func(model.Seat) { t.Error("Notify called with nothing expired") }

	r.RunOnce(context.Background())
}

func TestReclaimerSweepsOnSchedule(t *testing.T) {
	store := newMemoryStore()
	b := NewBookingService(store)

	r := NewReclaimer(b, 20*time.Millisecond)
	r.Start()
	defer r.Stop()

	// Added after the startup pass, so only a scheduled tick can
	// release it.
	store.add(heldFixture(1, "T04", time.Now().UTC().Add(-time.Minute)))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if store.get(1).Status == model.StatusAvailable {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expired hold not released by the scheduled sweep")
}
