package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-seat-booking/internal/config"
	"github.com/iliyamo/ticket-seat-booking/internal/database"
	"github.com/iliyamo/ticket-seat-booking/internal/handler"
	"github.com/iliyamo/ticket-seat-booking/internal/middleware"
	"github.com/iliyamo/ticket-seat-booking/internal/model"
	"github.com/iliyamo/ticket-seat-booking/internal/queue"
	"github.com/iliyamo/ticket-seat-booking/internal/repository"
	"github.com/iliyamo/ticket-seat-booking/internal/router"
	"github.com/iliyamo/ticket-seat-booking/internal/service"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	seatRepo := repository.NewSeatRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	if cfg.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.Migrate(ctx, db); err != nil {
			cancel()
			log.Fatalf("migrate: %v", err)
		}
		if err := database.Seed(ctx, seatRepo); err != nil {
			cancel()
			log.Fatalf("seed: %v", err)
		}
		cancel()
	}

	booking := service.NewBookingService(seatRepo)

	// Background reclamation of expired holds, with best-effort
	// seat.released events for downstream consumers.
	reclaimer := service.NewReclaimer(booking, cfg.SweepInterval)
	reclaimer.Notify = func(s model.Seat) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishSeatReleased(ctx, queue.SeatReleasedEvent{
			SeatID:     s.ID,
			SeatNumber: s.SeatNumber,
			Zone:       s.Zone,
			ReleasedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	reclaimer.Start()
	defer reclaimer.Stop()

	// Queue consumer runs its own reconnect loop for the lifetime of
	// the process.
	go queue.StartConsumer()

	e := echo.New()

	// Redis-backed rate limiting and response caching; both degrade to
	// pass-throughs when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unreachable, cache and rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	seatHandler := handler.NewSeatHandler(booking)
	bookingHandler := handler.NewBookingHandler(booking)
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	adminHandler := handler.NewAdminSeatHandler(seatRepo)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, seatHandler, bookingHandler, cacheMW)
	router.RegisterBooking(e, bookingHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
