package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
)

// Reclaimer periodically reverts seats whose temporary hold was never
// confirmed. It holds only a reference to the coordinator's reclamation
// entry point and runs on its own ticker, fully decoupled from request
// handling: a slow sweep never blocks API calls and vice versa.
type Reclaimer struct {
	booking  *BookingService
	interval time.Duration
	ticker   *time.Ticker
	stop     chan struct{}

	// Notify, when set, is invoked for every seat a pass releases,
	// after the release is persisted. Used to publish seat.released
	// events; failures inside the callback are the callback's problem.
	Notify func(model.Seat)
}

// NewReclaimer builds a reclaimer sweeping at the given interval.
func NewReclaimer(b *BookingService, interval time.Duration) *Reclaimer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reclaimer{
		booking:  b,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine. One pass runs
// immediately so restarts do not leave stale holds sitting until the
// first tick.
func (r *Reclaimer) Start() {
	r.ticker = time.NewTicker(r.interval)
	log.Printf("reclaimer: started (interval %s)", r.interval)

	r.RunOnce(context.Background())

	go func() {
		for {
			select {
			case <-r.ticker.C:
				r.RunOnce(context.Background())
			case <-r.stop:
				r.ticker.Stop()
				log.Printf("reclaimer: stopped")
				return
			}
		}
	}()
}

// Stop halts the sweep loop.
func (r *Reclaimer) Stop() {
	close(r.stop)
}

// RunOnce performs a single reclamation pass. Any panic is contained
// here so an unexpected failure in one pass cannot silently kill the
// schedule; per-seat errors are already isolated inside the pass.
func (r *Reclaimer) RunOnce(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("reclaimer: pass panicked: %v", rec)
		}
	}()
	released := r.booking.ReleaseExpiredHolds(ctx)
	if len(released) == 0 {
		return
	}
	log.Printf("reclaimer: released %d expired hold(s)", len(released))
	if r.Notify != nil {
		for _, s := range released {
			r.Notify(s)
		}
	}
}
