// Package service contains the booking coordinator and the hold-expiry
// reclaimer. The coordinator is the only path through which seat state
// mutates: it serializes transitions per seat and persists each
// successful transition immediately.
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
	"github.com/iliyamo/ticket-seat-booking/internal/pricing"
	"github.com/iliyamo/ticket-seat-booking/internal/repository"
)

// SeatStore is the inventory persistence the coordinator depends on.
// Save must be all-or-nothing and version-checked: it fails with
// repository.ErrVersionConflict when the stored version no longer
// matches the loaded seat, so two concurrent transitions on one seat
// can never both win. *repository.SeatRepo satisfies this interface.
type SeatStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	Save(ctx context.Context, seat *model.Seat) error
	ListAll(ctx context.Context) ([]model.Seat, error)
	ListByStatus(ctx context.Context, status model.SeatStatus) ([]model.Seat, error)
	ListByZone(ctx context.Context, zone string) ([]model.Seat, error)
	ListExpiredHolds(ctx context.Context, now time.Time) ([]model.Seat, error)
}

// saveRetries bounds reload-and-retry attempts after a version
// conflict. With the per-seat mutex below, conflicts can only come from
// writers outside this process.
const saveRetries = 3

// errNoChange is returned from a mutate closure when the seat is
// already in the desired state; mutate then skips the write.
var errNoChange = errors.New("no state change")

// seatLocks hands out one mutex per seat id so transitions on different
// seats never contend.
type seatLocks struct {
	mu sync.Mutex
	m  map[uint64]*sync.Mutex
}

func newSeatLocks() *seatLocks {
	return &seatLocks{m: make(map[uint64]*sync.Mutex)}
}

func (l *seatLocks) get(id uint64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.m[id]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.m[id] = m
	return m
}

// BookingService coordinates all seat-state transitions. Each operation
// locks the target seat, loads it, applies the transition through the
// seat's own methods and persists the result, so at most one transition
// succeeds per seat at a time.
type BookingService struct {
	store SeatStore
	locks *seatLocks
}

// NewBookingService constructs a coordinator over the given store.
func NewBookingService(store SeatStore) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{store: store, locks: newSeatLocks()}
}

// mutate runs fn against the current state of one seat and persists the
// result, holding the seat's lock for the whole load -> transition ->
// persist sequence. A version conflict from an external writer triggers
// a bounded reload-and-retry; fn then sees the fresh state and may
// legitimately fail with an illegal-transition error.
func (b *BookingService) mutate(ctx context.Context, seatID uint64, fn func(*model.Seat) error) error {
	mu := b.locks.get(seatID)
	mu.Lock()
	defer mu.Unlock()

	var err error
	for attempt := 0; attempt < saveRetries; attempt++ {
		var seat *model.Seat
		seat, err = b.store.GetByID(ctx, seatID)
		if err != nil {
			return err
		}
		if err = fn(seat); err != nil {
			return err
		}
		if err = b.store.Save(ctx, seat); err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
	}
	return err
}

// Reserve places a time-limited hold on a seat. It reports failure when
// the seat does not exist or is not AVAILABLE; the cause is logged, not
// surfaced, matching the boolean contract of the API.
func (b *BookingService) Reserve(ctx context.Context, seatID uint64, minutes int) bool {
	err := b.mutate(ctx, seatID, func(s *model.Seat) error {
		return s.Hold(minutes, time.Now().UTC())
	})
	if err != nil {
		log.Printf("booking: reserve seat %d failed: %v", seatID, err)
		return false
	}
	return true
}

// ConfirmBooking turns a held seat into a booking with the supplied
// customer details. Fails when the seat is unknown or not on HOLD.
func (b *BookingService) ConfirmBooking(ctx context.Context, seatID uint64, name, phone string, date time.Time) bool {
	err := b.mutate(ctx, seatID, func(s *model.Seat) error {
		return s.Confirm(name, phone, date)
	})
	if err != nil {
		log.Printf("booking: confirm seat %d failed: %v", seatID, err)
		return false
	}
	return true
}

// CancelReservation resets a seat to AVAILABLE from any state. The only
// failure case is an unknown seat, since cancel itself cannot fail.
func (b *BookingService) CancelReservation(ctx context.Context, seatID uint64) bool {
	err := b.mutate(ctx, seatID, func(s *model.Seat) error {
		s.Cancel()
		return nil
	})
	if err != nil {
		log.Printf("booking: cancel seat %d failed: %v", seatID, err)
		return false
	}
	return true
}

// IsAvailable reports whether the seat exists and is AVAILABLE. Unknown
// seats read as unavailable rather than erroring.
func (b *BookingService) IsAvailable(ctx context.Context, seatID uint64) bool {
	seat, err := b.store.GetByID(ctx, seatID)
	if err != nil {
		return false
	}
	return seat.Status == model.StatusAvailable
}

// CalculatePrice resolves the pricing policy for the customer category
// and applies it to the seat's base price, rounded to cents. Unlike the
// boolean operations, an unknown seat propagates as
// repository.ErrSeatNotFound so the caller can answer 404.
func (b *BookingService) CalculatePrice(ctx context.Context, seatID uint64, customerType string) (float64, error) {
	seat, err := b.store.GetByID(ctx, seatID)
	if err != nil {
		return 0, err
	}
	return pricing.Resolve(customerType).Apply(seat.BasePrice), nil
}

// Seats returns the full inventory.
func (b *BookingService) Seats(ctx context.Context) ([]model.Seat, error) {
	return b.store.ListAll(ctx)
}

// SeatByID returns one seat or repository.ErrSeatNotFound.
func (b *BookingService) SeatByID(ctx context.Context, seatID uint64) (*model.Seat, error) {
	return b.store.GetByID(ctx, seatID)
}

// AvailableSeats returns seats currently open for reservation.
func (b *BookingService) AvailableSeats(ctx context.Context) ([]model.Seat, error) {
	return b.store.ListByStatus(ctx, model.StatusAvailable)
}

// SeatsByZone returns the seats of one zone.
func (b *BookingService) SeatsByZone(ctx context.Context, zone string) ([]model.Seat, error) {
	return b.store.ListByZone(ctx, zone)
}

// reclaimSeat cancels one seat's hold if it is still expired by the
// time the seat's lock is acquired. It reports whether the seat was
// released: a false result with nil error means another caller got
// there first (confirmed, cancelled or re-held the seat), which is not
// a failure.
func (b *BookingService) reclaimSeat(ctx context.Context, seatID uint64, now time.Time) (bool, error) {
	err := b.mutate(ctx, seatID, func(s *model.Seat) error {
		if !s.ReclaimIfExpired(now) {
			return errNoChange
		}
		return nil
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errNoChange):
		return false, nil
	default:
		return false, err
	}
}

// ReleaseExpiredHolds runs one reclamation pass: every seat whose hold
// lapsed before now is cancelled through the same per-seat exclusion as
// request-driven cancellations. A failure on one seat is logged and
// does not stop the pass. Returns the seats that were released.
func (b *BookingService) ReleaseExpiredHolds(ctx context.Context) []model.Seat {
	now := time.Now().UTC()
	expired, err := b.store.ListExpiredHolds(ctx, now)
	if err != nil {
		log.Printf("booking: listing expired holds failed: %v", err)
		return nil
	}
	var released []model.Seat
	for _, s := range expired {
		ok, err := b.reclaimSeat(ctx, s.ID, now)
		if err != nil {
			log.Printf("booking: reclaim seat %d failed: %v", s.ID, err)
			continue
		}
		if ok {
			released = append(released, s)
		}
	}
	return released
}
