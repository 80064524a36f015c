// Package queue defines the message payloads exchanged over RabbitMQ
// and the background consumer that records them.
package queue

// BookingConfirmedEvent is published when a hold is successfully
// confirmed into a booking. It carries enough for downstream consumers
// to log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	SeatID        uint64 `json:"seat_id"`
	SeatNumber    string `json:"seat_number"`
	Zone          string `json:"zone"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	BookingDate   string `json:"booking_date"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// SeatReleasedEvent is published when the expiry reclaimer reverts a
// lapsed hold back to available.
type SeatReleasedEvent struct {
	SeatID     uint64 `json:"seat_id"`
	SeatNumber string `json:"seat_number"`
	Zone       string `json:"zone"`
	ReleasedAt string `json:"released_at"`
}
