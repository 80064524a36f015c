package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
	"github.com/iliyamo/ticket-seat-booking/internal/repository"
)

// memoryStore is an in-memory SeatStore with the same version
// compare-and-swap semantics as the MySQL repository, so the
// coordinator's concurrency behavior can be exercised without a
// database. failSave injects per-seat persistence errors for the
// sweep-isolation tests.
type memoryStore struct {
	mu       sync.Mutex
	seats    map[uint64]*model.Seat
	failSave map[uint64]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		seats:    make(map[uint64]*model.Seat),
		failSave: make(map[uint64]error),
	}
}

// copySeat returns a deep copy so callers never alias stored state.
func copySeat(s *model.Seat) *model.Seat {
	out := *s
	if s.HoldExpiry != nil {
		t := *s.HoldExpiry
		out.HoldExpiry = &t
	}
	if s.Booking != nil {
		b := *s.Booking
		out.Booking = &b
	}
	return &out
}

func (m *memoryStore) add(s model.Seat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seats[s.ID] = copySeat(&s)
}

func (m *memoryStore) get(id uint64) *model.Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySeat(m.seats[id])
}

func (m *memoryStore) GetByID(_ context.Context, id uint64) (*model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	return copySeat(s), nil
}

func (m *memoryStore) Save(_ context.Context, seat *model.Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failSave[seat.ID]; ok {
		return err
	}
	stored, ok := m.seats[seat.ID]
	if !ok || stored.Version != seat.Version {
		return repository.ErrVersionConflict
	}
	next := copySeat(seat)
	next.Version++
	m.seats[seat.ID] = next
	seat.Version++
	return nil
}

func (m *memoryStore) ListAll(_ context.Context) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, s := range m.seats {
		out = append(out, *copySeat(s))
	}
	return out, nil
}

func (m *memoryStore) ListByStatus(_ context.Context, status model.SeatStatus) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, s := range m.seats {
		if s.Status == status {
			out = append(out, *copySeat(s))
		}
	}
	return out, nil
}

func (m *memoryStore) ListByZone(_ context.Context, zone string) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, s := range m.seats {
		if s.Zone == zone {
			out = append(out, *copySeat(s))
		}
	}
	return out, nil
}

func (m *memoryStore) ListExpiredHolds(_ context.Context, now time.Time) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, s := range m.seats {
		if s.Status == model.StatusHold && s.HoldExpiry != nil && s.HoldExpiry.Before(now) {
			out = append(out, *copySeat(s))
		}
	}
	return out, nil
}
