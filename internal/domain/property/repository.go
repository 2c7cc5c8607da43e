package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines property data access
type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	GetByIDWithRating(ctx context.Context, id uuid.UUID) (*WithRating, error)
	List(ctx context.Context, filter *ListFilter) ([]WithRating, int, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]HostStats, error)
	Update(ctx context.Context, p *Property) error
	AddPhotoURL(ctx context.Context, id uuid.UUID, url string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates property repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const propertySelectColumns = `
	p.id, p.host_id, p.title, p.description, p.city, p.country, p.address,
	p.latitude, p.longitude, p.property_type, p.price_per_night,
	p.max_guests, p.bedrooms, p.beds, p.bathrooms, p.amenities,
	p.photo_urls, p.is_active, p.created_at, p.updated_at
`

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			id, host_id, title, description, city, country, address,
			latitude, longitude, property_type, price_per_night,
			max_guests, bedrooms, beds, bathrooms, amenities, photo_urls, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.HostID, p.Title, p.Description, p.City, p.Country, p.Address,
		p.Latitude, p.Longitude, p.PropertyType, p.PricePerNight,
		p.MaxGuests, p.Bedrooms, p.Beds, p.Bathrooms,
		pq.Array([]string(p.Amenities)), pq.Array([]string(p.PhotoURLs)), p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrHostNotFound
		}
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var p Property
	query := `SELECT ` + propertySelectColumns + ` FROM properties p WHERE p.id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

func (r *repository) GetByIDWithRating(ctx context.Context, id uuid.UUID) (*WithRating, error) {
	var p WithRating
	query := `
		SELECT ` + propertySelectColumns + `,
			ROUND(AVG(rv.rating)::numeric, 1) AS avg_rating,
			COUNT(rv.id) AS review_count
		FROM properties p
		LEFT JOIN reviews rv ON rv.property_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property with rating: %w", err)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]WithRating, int, error) {
	conditions := []string{"p.is_active = TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("p.city ILIKE $%d", argIndex))
		args = append(args, "%"+filter.City+"%")
		argIndex++
	}
	if filter.PropertyType != "" {
		conditions = append(conditions, fmt.Sprintf("p.property_type = $%d", argIndex))
		args = append(args, filter.PropertyType)
		argIndex++
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price_per_night >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price_per_night <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}
	if filter.MinGuests != nil {
		conditions = append(conditions, fmt.Sprintf("p.max_guests >= $%d", argIndex))
		args = append(args, *filter.MinGuests)
		argIndex++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM properties p ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	offset := (filter.Page - 1) * filter.PerPage
	query := `
		SELECT ` + propertySelectColumns + `,
			ROUND(AVG(rv.rating)::numeric, 1) AS avg_rating,
			COUNT(rv.id) AS review_count
		FROM properties p
		LEFT JOIN reviews rv ON rv.property_id = p.id
		` + where + `
		GROUP BY p.id
		ORDER BY p.created_at DESC
		LIMIT ` + strconv.Itoa(filter.PerPage) + ` OFFSET ` + strconv.Itoa(offset)

	properties := []WithRating{}
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	return properties, total, nil
}

func (r *repository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]HostStats, error) {
	query := `
		SELECT ` + propertySelectColumns + `,
			ROUND(AVG(rv.rating)::numeric, 1) AS avg_rating,
			COUNT(DISTINCT rv.id) AS review_count,
			COUNT(DISTINCT b.id) AS total_bookings,
			COUNT(DISTINCT b.id) FILTER (WHERE b.status = 'CONFIRMED') AS confirmed_bookings
		FROM properties p
		LEFT JOIN reviews rv ON rv.property_id = p.id
		LEFT JOIN bookings b ON b.property_id = p.id
		WHERE p.host_id = $1
		GROUP BY p.id
		ORDER BY p.created_at DESC`

	properties := []HostStats{}
	if err := r.db.SelectContext(ctx, &properties, query, hostID); err != nil {
		return nil, fmt.Errorf("list host properties: %w", err)
	}
	return properties, nil
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET title = $2, description = $3, city = $4, country = $5, address = $6,
			latitude = $7, longitude = $8, property_type = $9, price_per_night = $10,
			max_guests = $11, bedrooms = $12, beds = $13, bathrooms = $14,
			amenities = $15, is_active = $16, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Title, p.Description, p.City, p.Country, p.Address,
		p.Latitude, p.Longitude, p.PropertyType, p.PricePerNight,
		p.MaxGuests, p.Bedrooms, p.Beds, p.Bathrooms,
		pq.Array([]string(p.Amenities)), p.IsActive,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("update property: %w", err)
	}
	return nil
}

func (r *repository) AddPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE properties
		 SET photo_urls = array_append(photo_urls, $2), updated_at = NOW()
		 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("add photo url: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
