package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines review data access
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]WithGuest, error)
	HasCompletedStay(ctx context.Context, guestID, propertyID uuid.UUID) (bool, error)
	// UnreviewedCompletedBooking returns the guest's most recent
	// COMPLETED booking at the property that has no review yet
	UnreviewedCompletedBooking(ctx context.Context, guestID, propertyID uuid.UUID) (*uuid.UUID, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates review repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	query := `
		INSERT INTO reviews (id, property_id, guest_id, booking_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		rv.ID, rv.PropertyID, rv.GuestID, rv.BookingID, rv.Rating, rv.Comment,
	).Scan(&rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return ErrAlreadyReviewed
			case "23503":
				return ErrPropertyNotFound
			}
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *repository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]WithGuest, error) {
	query := `
		SELECT rv.id, rv.property_id, rv.guest_id, rv.booking_id, rv.rating, rv.comment,
			rv.created_at, rv.updated_at,
			u.first_name AS guest_first_name,
			u.last_name AS guest_last_name,
			u.avatar_url AS guest_avatar_url
		FROM reviews rv
		JOIN users u ON u.id = rv.guest_id
		WHERE rv.property_id = $1
		ORDER BY rv.created_at DESC`

	reviews := []WithGuest{}
	if err := r.db.SelectContext(ctx, &reviews, query, propertyID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (r *repository) HasCompletedStay(ctx context.Context, guestID, propertyID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE guest_id = $1 AND property_id = $2 AND status = 'COMPLETED'
		)`

	if err := r.db.GetContext(ctx, &exists, query, guestID, propertyID); err != nil {
		return false, fmt.Errorf("check completed stay: %w", err)
	}
	return exists, nil
}

func (r *repository) UnreviewedCompletedBooking(ctx context.Context, guestID, propertyID uuid.UUID) (*uuid.UUID, error) {
	var bookingID uuid.UUID
	query := `
		SELECT b.id
		FROM bookings b
		LEFT JOIN reviews rv ON rv.booking_id = b.id
		WHERE b.guest_id = $1 AND b.property_id = $2
		  AND b.status = 'COMPLETED' AND rv.id IS NULL
		ORDER BY b.check_out DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &bookingID, query, guestID, propertyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find unreviewed booking: %w", err)
	}
	return &bookingID, nil
}
