package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
	"github.com/iliyamo/ticket-seat-booking/internal/repository"
)

// schema contains the tables this service owns. Statements are
// idempotent so startup can run them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS seats (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		seat_number    VARCHAR(16)  NOT NULL,
		zone           VARCHAR(32)  NOT NULL,
		capacity       INT UNSIGNED NOT NULL DEFAULT 1,
		base_price     DOUBLE       NOT NULL,
		status         VARCHAR(16)  NOT NULL DEFAULT 'AVAILABLE',
		hold_expiry    DATETIME     NULL,
		customer_name  VARCHAR(255) NULL,
		customer_phone VARCHAR(32)  NULL,
		booking_date   DATETIME     NULL,
		version        INT UNSIGNED NOT NULL DEFAULT 0,
		created_at     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seats_number (seat_number),
		KEY idx_seats_status_expiry (status, hold_expiry),
		KEY idx_seats_zone (zone)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'CUSTOMER',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)  NOT NULL,
		expires_at DATETIME  NOT NULL,
		revoked_at DATETIME  NULL,
		created_at DATETIME  NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY idx_refresh_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// sampleSeats is the reference inventory created on first start.
var sampleSeats = []model.Seat{
	{SeatNumber: "T01", Zone: "VIP", Capacity: 4, BasePrice: 500.0},
	{SeatNumber: "T02", Zone: "VIP", Capacity: 4, BasePrice: 500.0},
	{SeatNumber: "T03", Zone: "VIP", Capacity: 6, BasePrice: 700.0},
	{SeatNumber: "T04", Zone: "A", Capacity: 4, BasePrice: 300.0},
	{SeatNumber: "T05", Zone: "A", Capacity: 4, BasePrice: 300.0},
	{SeatNumber: "T06", Zone: "A", Capacity: 4, BasePrice: 300.0},
	{SeatNumber: "T07", Zone: "B", Capacity: 6, BasePrice: 400.0},
	{SeatNumber: "T08", Zone: "B", Capacity: 6, BasePrice: 400.0},
	{SeatNumber: "T09", Zone: "C", Capacity: 2, BasePrice: 250.0},
	{SeatNumber: "T10", Zone: "C", Capacity: 2, BasePrice: 250.0},
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts the sample inventory once. When seats already exist the
// call is a no-op, so restarts never duplicate or reset inventory.
func Seed(ctx context.Context, seats *repository.SeatRepo) error {
	n, err := seats.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("seed: %d seats present, skipping", n)
		return nil
	}
	if err := seats.CreateBulk(ctx, sampleSeats); err != nil {
		return err
	}
	log.Printf("seed: created %d sample seats", len(sampleSeats))
	return nil
}
