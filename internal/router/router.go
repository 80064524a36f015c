package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-seat-booking/internal/handler"
	"github.com/iliyamo/ticket-seat-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the auth endpoints. Unauthenticated operations
// live under /v1/auth, the profile endpoint under /v1 behind JWT.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterPublic wires the unauthenticated browse endpoints: seat
// listings and the price quote. These are the routes worth caching, so
// the caller passes in the configured cache middleware (a pass-through
// when Redis is down).
func RegisterPublic(e *echo.Echo, s *handler.SeatHandler, b *handler.BookingHandler, cacheMW echo.MiddlewareFunc) {
	pub := e.Group("/v1", cacheMW)
	pub.GET("/seats", s.GetSeats)
	pub.GET("/seats/available", s.GetAvailableSeats)
	pub.GET("/seats/zone/:zone", s.GetSeatsByZone)
	pub.GET("/seats/:id", s.GetSeat)
	pub.GET("/bookings/price", b.Price)
}

// RegisterBooking wires the mutating booking endpoints behind JWT.
// Both roles may reserve, confirm and cancel.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	g.POST("/reserve", b.Reserve)
	g.POST("/confirm", b.Confirm)
	g.POST("/cancel", b.Cancel)
}

// RegisterAdmin wires inventory management, restricted to ADMIN.
func RegisterAdmin(e *echo.Echo, a *handler.AdminSeatHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	g.POST("/seats", a.CreateSeats)
}
