package model

import (
	"errors"
	"fmt"
	"time"
)

// SeatStatus enumerates the booking states a seat moves through.
// A seat must be held before it can be booked; there is no direct
// AVAILABLE -> BOOKED transition.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "AVAILABLE"
	StatusHold      SeatStatus = "HOLD"
	StatusBooked    SeatStatus = "BOOKED"
)

// ErrIllegalTransition is returned when a requested state change is not
// legal from the seat's current status (e.g. confirming a seat that is
// not on hold). Callers can match it with errors.Is.
var ErrIllegalTransition = errors.New("illegal seat state transition")

// BookingInfo carries the customer details recorded when a hold is
// confirmed. It is attached to a seat only while the seat is BOOKED.
type BookingInfo struct {
	CustomerName  string
	CustomerPhone string
	BookingDate   time.Time
}

// Seat is the unit of inventory. Identity and pricing fields are fixed
// at creation; the booking state mutates only through the transition
// methods below, which enforce legality.
//
// Exactly one of the state payloads may be set at a time:
//
//	HoldExpiry – non-nil iff Status == StatusHold.
//	Booking    – non-nil iff Status == StatusBooked.
//
// An AVAILABLE seat carries neither. Version backs optimistic
// concurrency control at the store; it is bumped on every persisted
// write.
type Seat struct {
	ID         uint64       // seats.id
	SeatNumber string       // seats.seat_number (display label, e.g. T01)
	Zone       string       // seats.zone (VIP, A, B, ...)
	Capacity   uint32       // seats.capacity
	BasePrice  float64      // seats.base_price
	Status     SeatStatus   // seats.status
	HoldExpiry *time.Time   // seats.hold_expiry (nullable)
	Booking    *BookingInfo // seats.customer_name/customer_phone/booking_date (nullable)
	Version    uint32       // seats.version, optimistic lock
	CreatedAt  time.Time    // seats.created_at
	UpdatedAt  time.Time    // seats.updated_at
}

// Hold places a temporary reservation on an AVAILABLE seat, expiring
// minutes from now. Non-positive durations are accepted and simply
// produce an already-lapsed hold that the next sweep reclaims; bounding
// the duration is a caller concern.
func (s *Seat) Hold(minutes int, now time.Time) error {
	if s.Status != StatusAvailable {
		return fmt.Errorf("%w: seat %d is %s, hold requires %s", ErrIllegalTransition, s.ID, s.Status, StatusAvailable)
	}
	exp := now.Add(time.Duration(minutes) * time.Minute)
	s.Status = StatusHold
	s.HoldExpiry = &exp
	s.Booking = nil
	return nil
}

// Confirm finalizes a held seat into a booking, recording the customer
// details and clearing the hold expiry.
func (s *Seat) Confirm(name, phone string, date time.Time) error {
	if s.Status != StatusHold {
		return fmt.Errorf("%w: seat %d is %s, confirm requires %s", ErrIllegalTransition, s.ID, s.Status, StatusHold)
	}
	s.Status = StatusBooked
	s.HoldExpiry = nil
	s.Booking = &BookingInfo{
		CustomerName:  name,
		CustomerPhone: phone,
		BookingDate:   date,
	}
	return nil
}

// Cancel resets the seat to AVAILABLE from any state, dropping hold and
// booking data. Cancelling an already-available seat is a no-op.
func (s *Seat) Cancel() {
	s.Status = StatusAvailable
	s.HoldExpiry = nil
	s.Booking = nil
}

// ReclaimIfExpired cancels the seat when its hold has lapsed: status is
// HOLD and the expiry is strictly before now. It reports whether the
// seat changed. In every other state it leaves the seat untouched.
func (s *Seat) ReclaimIfExpired(now time.Time) bool {
	if s.Status != StatusHold || s.HoldExpiry == nil || !s.HoldExpiry.Before(now) {
		return false
	}
	s.Cancel()
	return true
}
