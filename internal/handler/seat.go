package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
	"github.com/iliyamo/ticket-seat-booking/internal/repository"
	"github.com/iliyamo/ticket-seat-booking/internal/service"
)

// SeatHandler serves the public, read-only seat browse endpoints. All
// reads go through the booking coordinator so the handlers never touch
// the store directly.
type SeatHandler struct {
	Booking *service.BookingService
}

func NewSeatHandler(b *service.BookingService) *SeatHandler {
	if b == nil {
		panic("nil booking service passed to NewSeatHandler")
	}
	return &SeatHandler{Booking: b}
}

// seatView is the sanitized representation returned to clients. Booking
// customer details stay internal; only the seat's public identity,
// pricing and current status are exposed.
type seatView struct {
	ID         uint64  `json:"id"`
	SeatNumber string  `json:"seat_number"`
	Zone       string  `json:"zone"`
	Capacity   uint32  `json:"capacity"`
	BasePrice  float64 `json:"base_price"`
	Status     string  `json:"status"`
	HoldExpiry string  `json:"hold_expiry,omitempty"`
}

func toSeatView(s model.Seat) seatView {
	v := seatView{
		ID:         s.ID,
		SeatNumber: s.SeatNumber,
		Zone:       s.Zone,
		Capacity:   s.Capacity,
		BasePrice:  s.BasePrice,
		Status:     string(s.Status),
	}
	if s.HoldExpiry != nil {
		v.HoldExpiry = s.HoldExpiry.UTC().Format(time.RFC3339)
	}
	return v
}

func toSeatViews(seats []model.Seat) []seatView {
	out := make([]seatView, 0, len(seats))
	for _, s := range seats {
		out = append(out, toSeatView(s))
	}
	return out
}

// GetSeats handles GET /v1/seats and returns the full inventory.
func (h *SeatHandler) GetSeats(c echo.Context) error {
	seats, err := h.Booking.Seats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toSeatViews(seats))
}

// GetSeat handles GET /v1/seats/:id.
func (h *SeatHandler) GetSeat(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	seat, err := h.Booking.SeatByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toSeatView(*seat))
}

// GetAvailableSeats handles GET /v1/seats/available.
func (h *SeatHandler) GetAvailableSeats(c echo.Context) error {
	seats, err := h.Booking.AvailableSeats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toSeatViews(seats))
}

// GetSeatsByZone handles GET /v1/seats/zone/:zone.
func (h *SeatHandler) GetSeatsByZone(c echo.Context) error {
	zone := c.Param("zone")
	if zone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "zone is required"})
	}
	seats, err := h.Booking.SeatsByZone(c.Request().Context(), zone)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toSeatViews(seats))
}
