package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines booking data access
type Repository interface {
	// Create atomically checks date availability and inserts the booking.
	// Returns ErrDatesUnavailable when the range overlaps a blocking booking.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]GuestView, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]HostView, error)
	// UpdateStatusIf moves the booking to the target status only if its
	// current status is one of the allowed values. Returns the updated
	// booking, or nil when the guard did not match.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, allowed []Status, to Status) (*Booking, error)
	CompletePastCheckouts(ctx context.Context, today time.Time) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingSelectColumns = `
	b.id, b.property_id, b.guest_id, b.check_in, b.check_out,
	b.guests, b.price_per_night, b.total_nights, b.total_price,
	b.status, b.created_at, b.updated_at
`

func (r *repository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the property row so concurrent bookings for the same
	// property serialize on the availability check below
	var propertyID uuid.UUID
	err = tx.QueryRowxContext(ctx,
		`SELECT id FROM properties WHERE id = $1 FOR UPDATE`, b.PropertyID,
	).Scan(&propertyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("lock property: %w", err)
	}

	// Half-open ranges overlap when each starts before the other ends.
	// Only PENDING and CONFIRMED bookings occupy their dates.
	var conflict bool
	err = tx.QueryRowxContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE property_id = $1
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND check_in < $3
			  AND check_out > $2
		)`, b.PropertyID, b.CheckIn, b.CheckOut,
	).Scan(&conflict)
	if err != nil {
		return fmt.Errorf("check availability: %w", err)
	}
	if conflict {
		return ErrDatesUnavailable
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO bookings (
			id, property_id, guest_id, check_in, check_out,
			guests, price_per_night, total_nights, total_price, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		b.ID, b.PropertyID, b.GuestID, b.CheckIn, b.CheckOut,
		b.Guests, b.PricePerNight, b.TotalNights, b.TotalPrice, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapCreateDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func mapCreateDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23P01": // exclusion constraint, backstop for the availability check
			return ErrDatesUnavailable
		case "23503":
			return ErrPropertyNotFound
		case "23514":
			return ErrInvalidDateRange
		}
	}
	return fmt.Errorf("insert booking: %w", err)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	query := `SELECT ` + bookingSelectColumns + ` FROM bookings b WHERE b.id = $1`

	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *repository) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	var d Detail
	query := `
		SELECT ` + bookingSelectColumns + `,
			p.title AS property_title,
			p.city AS property_city,
			p.host_id,
			u.first_name AS guest_first_name,
			u.last_name AS guest_last_name
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		JOIN users u ON u.id = b.guest_id
		WHERE b.id = $1`

	err := r.db.GetContext(ctx, &d, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking detail: %w", err)
	}
	return &d, nil
}

func (r *repository) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]GuestView, error) {
	query := `
		SELECT ` + bookingSelectColumns + `,
			p.title AS property_title,
			p.city AS property_city,
			p.country AS property_country,
			(CASE WHEN cardinality(p.photo_urls) > 0 THEN p.photo_urls[1] END) AS property_photo,
			h.first_name AS host_first_name,
			h.last_name AS host_last_name,
			h.phone AS host_phone
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		JOIN users h ON h.id = p.host_id
		WHERE b.guest_id = $1
		ORDER BY b.created_at DESC`

	bookings := []GuestView{}
	if err := r.db.SelectContext(ctx, &bookings, query, guestID); err != nil {
		return nil, fmt.Errorf("list guest bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]HostView, error) {
	query := `
		SELECT ` + bookingSelectColumns + `,
			p.title AS property_title,
			p.city AS property_city,
			u.first_name AS guest_first_name,
			u.last_name AS guest_last_name,
			u.email AS guest_email,
			u.phone AS guest_phone
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		JOIN users u ON u.id = b.guest_id
		WHERE p.host_id = $1
		ORDER BY b.created_at DESC`

	bookings := []HostView{}
	if err := r.db.SelectContext(ctx, &bookings, query, hostID); err != nil {
		return nil, fmt.Errorf("list host bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, allowed []Status, to Status) (*Booking, error) {
	statuses := make(pq.StringArray, len(allowed))
	for i, s := range allowed {
		statuses[i] = string(s)
	}

	var b Booking
	query := `
		UPDATE bookings b
		SET status = $3, updated_at = NOW()
		WHERE b.id = $1 AND b.status = ANY($2)
		RETURNING ` + bookingSelectColumns

	err := r.db.GetContext(ctx, &b, query, id, statuses, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return &b, nil
}

func (r *repository) CompletePastCheckouts(ctx context.Context, today time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = 'COMPLETED', updated_at = NOW()
		WHERE status = 'CONFIRMED' AND check_out <= $1`, today)
	if err != nil {
		return 0, fmt.Errorf("complete past checkouts: %w", err)
	}
	return result.RowsAffected()
}
