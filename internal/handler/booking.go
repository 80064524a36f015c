package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-seat-booking/internal/queue"
	"github.com/iliyamo/ticket-seat-booking/internal/repository"
	"github.com/iliyamo/ticket-seat-booking/internal/service"
)

// BookingHandler exposes the reserve / confirm / cancel / price
// operations of the booking coordinator. The coordinator's boolean
// outcomes map to 200 or 400; only the price lookup distinguishes an
// unknown seat with 404.
type BookingHandler struct {
	Booking *service.BookingService
}

func NewBookingHandler(b *service.BookingService) *BookingHandler {
	if b == nil {
		panic("nil booking service passed to NewBookingHandler")
	}
	return &BookingHandler{Booking: b}
}

// ----- request DTOs -----

type reserveReq struct {
	SeatID  uint64 `json:"seat_id"`
	Minutes int    `json:"minutes"`
}

type confirmReq struct {
	SeatID        uint64 `json:"seat_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	BookingDate   string `json:"booking_date"` // RFC 3339
}

type cancelReq struct {
	SeatID uint64 `json:"seat_id"`
}

// Reserve handles POST /v1/bookings/reserve. It places a time-limited
// hold on a seat. The hold duration is taken as-is from the request;
// bounding it is a pending product decision.
func (h *BookingHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if h.Booking.Reserve(c.Request().Context(), req.SeatID, req.Minutes) {
		return c.JSON(http.StatusOK, echo.Map{
			"message": fmt.Sprintf("seat %d held for %d minutes", req.SeatID, req.Minutes),
		})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": fmt.Sprintf("failed to hold seat %d: it may not exist or is already held or booked", req.SeatID),
	})
}

// Confirm handles POST /v1/bookings/confirm. On success it publishes a
// booking.confirmed event; publishing is best-effort and never fails
// the request.
func (h *BookingHandler) Confirm(c echo.Context) error {
	var req confirmReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name and customer_phone are required"})
	}
	bookingDate := time.Now().UTC()
	if req.BookingDate != "" {
		t, err := time.Parse(time.RFC3339, req.BookingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_date must be RFC 3339"})
		}
		bookingDate = t.UTC()
	}

	ctx := c.Request().Context()
	if !h.Booking.ConfirmBooking(ctx, req.SeatID, req.CustomerName, req.CustomerPhone, bookingDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": fmt.Sprintf("failed to confirm booking for seat %d: it must be on hold first", req.SeatID),
		})
	}

	if seat, err := h.Booking.SeatByID(ctx, req.SeatID); err == nil && seat.Booking != nil {
		ev := queue.BookingConfirmedEvent{
			SeatID:        seat.ID,
			SeatNumber:    seat.SeatNumber,
			Zone:          seat.Zone,
			CustomerName:  seat.Booking.CustomerName,
			CustomerPhone: seat.Booking.CustomerPhone,
			BookingDate:   seat.Booking.BookingDate.UTC().Format(time.RFC3339),
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue.PublishBookingConfirmed(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("booking confirmed for seat %d", req.SeatID),
	})
}

// Cancel handles POST /v1/bookings/cancel. Cancelling is legal from any
// state, so the only failure is an unknown seat.
func (h *BookingHandler) Cancel(c echo.Context) error {
	var req cancelReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if h.Booking.CancelReservation(c.Request().Context(), req.SeatID) {
		return c.JSON(http.StatusOK, echo.Map{
			"message": fmt.Sprintf("reservation cancelled for seat %d", req.SeatID),
		})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": fmt.Sprintf("failed to cancel reservation for seat %d", req.SeatID),
	})
}

// Price handles GET /v1/bookings/price?seat_id=&customer_type=. Unknown
// customer categories fall back to the zero-discount policy; an unknown
// seat is a 404.
func (h *BookingHandler) Price(c echo.Context) error {
	seatID, err := strconv.ParseUint(c.QueryParam("seat_id"), 10, 64)
	if err != nil || seatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat_id"})
	}
	customerType := c.QueryParam("customer_type")

	price, err := h.Booking.CalculatePrice(c.Request().Context(), seatID, customerType)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"final_price":   price,
		"customer_type": customerType,
	})
}
