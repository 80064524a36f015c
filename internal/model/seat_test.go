package model

import (
	"errors"
	"testing"
	"time"
)

func availableSeat() *Seat {
	return &Seat{ID: 1, SeatNumber: "T01", Zone: "VIP", Capacity: 4, BasePrice: 500.0, Status: StatusAvailable}
}

func heldSeat(expiry time.Time) *Seat {
	s := availableSeat()
	s.Status = StatusHold
	s.HoldExpiry = &expiry
	return s
}

func bookedSeat() *Seat {
	s := availableSeat()
	s.Status = StatusBooked
	s.Booking = &BookingInfo{CustomerName: "Ann", CustomerPhone: "0800000000", BookingDate: time.Now().UTC()}
	return s
}

func TestHold(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		seat    *Seat
		minutes int
		wantErr bool
	}{
		{"from available", availableSeat(), 10, false},
		{"zero minutes accepted", availableSeat(), 0, false},
		{"negative minutes accepted", availableSeat(), -5, false},
		{"from hold", heldSeat(now.Add(5 * time.Minute)), 10, true},
		{"from booked", bookedSeat(), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.seat
			err := tt.seat.Hold(tt.minutes, now)
			if tt.wantErr {
				if !errors.Is(err, ErrIllegalTransition) {
					t.Fatalf("Hold() error = %v, want ErrIllegalTransition", err)
				}
				if tt.seat.Status != before.Status {
					t.Errorf("failed Hold() changed status to %s", tt.seat.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("Hold() unexpected error: %v", err)
			}
			if tt.seat.Status != StatusHold {
				t.Errorf("status = %s, want %s", tt.seat.Status, StatusHold)
			}
			if tt.seat.HoldExpiry == nil {
				t.Fatal("HoldExpiry not set")
			}
			want := now.Add(time.Duration(tt.minutes) * time.Minute)
			if !tt.seat.HoldExpiry.Equal(want) {
				t.Errorf("HoldExpiry = %v, want %v", tt.seat.HoldExpiry, want)
			}
			if tt.seat.Booking != nil {
				t.Error("Booking set on held seat")
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	bookingDate := time.Date(2026, 8, 15, 19, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		seat    *Seat
		wantErr bool
	}{
		{"from hold", heldSeat(now.Add(10 * time.Minute)), false},
		{"from expired hold still confirms", heldSeat(now.Add(-time.Minute)), false},
		{"from available", availableSeat(), true},
		{"from booked", bookedSeat(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seat.Confirm("Ann", "0800000000", bookingDate)
			if tt.wantErr {
				if !errors.Is(err, ErrIllegalTransition) {
					t.Fatalf("Confirm() error = %v, want ErrIllegalTransition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Confirm() unexpected error: %v", err)
			}
			if tt.seat.Status != StatusBooked {
				t.Errorf("status = %s, want %s", tt.seat.Status, StatusBooked)
			}
			if tt.seat.HoldExpiry != nil {
				t.Error("HoldExpiry still set after confirm")
			}
			b := tt.seat.Booking
			if b == nil {
				t.Fatal("Booking not set")
			}
			if b.CustomerName != "Ann" || b.CustomerPhone != "0800000000" || !b.BookingDate.Equal(bookingDate) {
				t.Errorf("Booking = %+v, want Ann/0800000000/%v", b, bookingDate)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name string
		seat *Seat
	}{
		{"from available is a no-op", availableSeat()},
		{"from hold", heldSeat(now.Add(10 * time.Minute))},
		{"from booked", bookedSeat()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.seat.Cancel()
			if tt.seat.Status != StatusAvailable {
				t.Errorf("status = %s, want %s", tt.seat.Status, StatusAvailable)
			}
			if tt.seat.HoldExpiry != nil || tt.seat.Booking != nil {
				t.Error("state payloads not cleared by Cancel")
			}
			// Cancel is idempotent.
			tt.seat.Cancel()
			if tt.seat.Status != StatusAvailable {
				t.Errorf("second Cancel changed status to %s", tt.seat.Status)
			}
		})
	}
}

func TestReclaimIfExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		seat       *Seat
		wantChange bool
	}{
		{"available untouched", availableSeat(), false},
		{"booked untouched", bookedSeat(), false},
		{"active hold untouched", heldSeat(now.Add(time.Minute)), false},
		{"expiry exactly now untouched", heldSeat(now), false},
		{"expired hold reclaimed", heldSeat(now.Add(-time.Second)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.seat
			changed := tt.seat.ReclaimIfExpired(now)
			if changed != tt.wantChange {
				t.Fatalf("ReclaimIfExpired() = %v, want %v", changed, tt.wantChange)
			}
			if !tt.wantChange {
				if tt.seat.Status != before.Status {
					t.Errorf("no-op reclaim changed status to %s", tt.seat.Status)
				}
				return
			}
			if tt.seat.Status != StatusAvailable || tt.seat.HoldExpiry != nil || tt.seat.Booking != nil {
				t.Errorf("reclaimed seat = %+v, want cleared AVAILABLE", tt.seat)
			}
		})
	}
}
