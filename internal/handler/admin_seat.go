package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
	"github.com/iliyamo/ticket-seat-booking/internal/repository"
)

// AdminSeatHandler lets administrators grow the seat inventory at
// runtime. Seats are only ever created; the booking lifecycle never
// deletes them.
type AdminSeatHandler struct {
	Seats *repository.SeatRepo
}

func NewAdminSeatHandler(seats *repository.SeatRepo) *AdminSeatHandler {
	if seats == nil {
		panic("nil seat repo passed to NewAdminSeatHandler")
	}
	return &AdminSeatHandler{Seats: seats}
}

type createSeatReq struct {
	SeatNumber string  `json:"seat_number"`
	Zone       string  `json:"zone"`
	Capacity   uint32  `json:"capacity"`
	BasePrice  float64 `json:"base_price"`
}

// CreateSeats handles POST /v1/admin/seats. The body is a JSON array of
// seats, all created AVAILABLE in one bulk insert.
func (h *AdminSeatHandler) CreateSeats(c echo.Context) error {
	var body []createSeatReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one seat is required"})
	}

	seats := make([]model.Seat, 0, len(body))
	for _, r := range body {
		if r.SeatNumber == "" || r.Zone == "" || r.BasePrice < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_number, zone and a non-negative base_price are required"})
		}
		capacity := r.Capacity
		if capacity == 0 {
			capacity = 1
		}
		seats = append(seats, model.Seat{
			SeatNumber: r.SeatNumber,
			Zone:       r.Zone,
			Capacity:   capacity,
			BasePrice:  r.BasePrice,
		})
	}

	if err := h.Seats.CreateBulk(c.Request().Context(), seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(seats)})
}
