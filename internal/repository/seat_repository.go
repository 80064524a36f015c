package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/ticket-seat-booking/internal/model"
)

// seatColumns is the column list shared by every seat SELECT so scans
// stay in one shape.
const seatColumns = `id, seat_number, zone, capacity, base_price, status,
	hold_expiry, customer_name, customer_phone, booking_date, version,
	created_at, updated_at`

// SeatRepo provides access to the seats table. All timestamps are
// stored and compared in UTC; the DSN is opened with loc=UTC so
// DATETIME columns round-trip as UTC time.Time values.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle for callers that need to run
// migrations or seed data at startup.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// scanSeat reads one seat row, mapping the nullable state columns onto
// the model's payload pointers.
func scanSeat(row interface{ Scan(...interface{}) error }) (*model.Seat, error) {
	var (
		s           model.Seat
		holdExpiry  sql.NullTime
		custName    sql.NullString
		custPhone   sql.NullString
		bookingDate sql.NullTime
	)
	err := row.Scan(
		&s.ID, &s.SeatNumber, &s.Zone, &s.Capacity, &s.BasePrice, &s.Status,
		&holdExpiry, &custName, &custPhone, &bookingDate, &s.Version,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if holdExpiry.Valid {
		t := holdExpiry.Time
		s.HoldExpiry = &t
	}
	if custName.Valid {
		s.Booking = &model.BookingInfo{
			CustomerName:  custName.String,
			CustomerPhone: custPhone.String,
			BookingDate:   bookingDate.Time,
		}
	}
	return &s, nil
}

// stateArgs flattens a seat's mutable state into SQL arguments in the
// order status, hold_expiry, customer_name, customer_phone, booking_date.
func stateArgs(s *model.Seat) []interface{} {
	var (
		holdExpiry  interface{}
		custName    interface{}
		custPhone   interface{}
		bookingDate interface{}
	)
	if s.HoldExpiry != nil {
		holdExpiry = s.HoldExpiry.UTC()
	}
	if s.Booking != nil {
		custName = s.Booking.CustomerName
		custPhone = s.Booking.CustomerPhone
		bookingDate = s.Booking.BookingDate.UTC()
	}
	return []interface{}{string(s.Status), holdExpiry, custName, custPhone, bookingDate}
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
	s, err := scanSeat(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return s, nil
}

// Save persists the seat's booking state with a compare-and-swap on the
// version column. The write is all-or-nothing: either every state field
// is updated and the version advances, or nothing changes and
// ErrVersionConflict is returned because another writer persisted a
// transition since this seat was loaded. On success the in-memory
// version is advanced to match the row.
func (r *SeatRepo) Save(ctx context.Context, s *model.Seat) error {
	const q = `UPDATE seats
	           SET status = ?, hold_expiry = ?, customer_name = ?,
	               customer_phone = ?, booking_date = ?, version = version + 1
	           WHERE id = ? AND version = ?`
	args := append(stateArgs(s), s.ID, s.Version)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Row missing or version moved; a reload distinguishes the two.
		return ErrVersionConflict
	}
	s.Version++
	return nil
}

// Create inserts a single seat in the AVAILABLE state. On success the
// seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	const q = `INSERT INTO seats (seat_number, zone, capacity, base_price, status)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.SeatNumber, s.Zone, s.Capacity, s.BasePrice, string(model.StatusAvailable))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = model.StatusAvailable
	return nil
}

// CreateBulk inserts multiple seats in a single statement. All seats
// start AVAILABLE. Passing an empty slice has no effect.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (seat_number, zone, capacity, base_price, status) VALUES `
	args := make([]interface{}, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, s.SeatNumber, s.Zone, s.Capacity, s.BasePrice, string(model.StatusAvailable))
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// Count returns the number of seats in the inventory.
func (r *SeatRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats`).Scan(&n)
	return n, err
}

// listQuery runs a seat SELECT and scans every row.
func (r *SeatRepo) listQuery(ctx context.Context, q string, args ...interface{}) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAll returns every seat ordered by seat number.
func (r *SeatRepo) ListAll(ctx context.Context) ([]model.Seat, error) {
	return r.listQuery(ctx, `SELECT `+seatColumns+` FROM seats ORDER BY seat_number`)
}

// ListByStatus returns seats in the given booking state.
func (r *SeatRepo) ListByStatus(ctx context.Context, status model.SeatStatus) ([]model.Seat, error) {
	return r.listQuery(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE status = ? ORDER BY seat_number`,
		string(status))
}

// ListByZone returns seats belonging to a zone.
func (r *SeatRepo) ListByZone(ctx context.Context, zone string) ([]model.Seat, error) {
	return r.listQuery(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE zone = ? ORDER BY seat_number`,
		zone)
}

// ListExpiredHolds returns seats on HOLD whose expiry is strictly
// before now. The reference time is passed in rather than read from the
// database clock so the coordinator and the sweep agree on "now".
func (r *SeatRepo) ListExpiredHolds(ctx context.Context, now time.Time) ([]model.Seat, error) {
	return r.listQuery(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE status = ? AND hold_expiry < ? ORDER BY seat_number`,
		string(model.StatusHold), now.UTC())
}
