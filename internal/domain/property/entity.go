package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Type classifies a property listing
type Type string

const (
	TypeApartment Type = "apartment"
	TypeHouse     Type = "house"
	TypeVilla     Type = "villa"
	TypeCabin     Type = "cabin"
	TypeStudio    Type = "studio"
)

// Property represents a listing
// PricePerNight is stored in minor currency units (cents)
type Property struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	HostID        uuid.UUID      `db:"host_id" json:"host_id"`
	Title         string         `db:"title" json:"title"`
	Description   string         `db:"description" json:"description"`
	City          string         `db:"city" json:"city"`
	Country       string         `db:"country" json:"country"`
	Address       string         `db:"address" json:"address"`
	Latitude      *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude     *float64       `db:"longitude" json:"longitude,omitempty"`
	PropertyType  Type           `db:"property_type" json:"property_type"`
	PricePerNight int64          `db:"price_per_night" json:"price_per_night"`
	MaxGuests     int            `db:"max_guests" json:"max_guests"`
	Bedrooms      int            `db:"bedrooms" json:"bedrooms"`
	Beds          int            `db:"beds" json:"beds"`
	Bathrooms     int            `db:"bathrooms" json:"bathrooms"`
	Amenities     pq.StringArray `db:"amenities" json:"amenities"`
	PhotoURLs     pq.StringArray `db:"photo_urls" json:"photo_urls"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// WithRating is a listing joined with its review average
type WithRating struct {
	Property
	AvgRating   *float64 `db:"avg_rating" json:"avg_rating"`
	ReviewCount int      `db:"review_count" json:"review_count"`
}

// HostStats is a host's listing with booking counters
type HostStats struct {
	Property
	AvgRating         *float64 `db:"avg_rating" json:"avg_rating"`
	ReviewCount       int      `db:"review_count" json:"review_count"`
	TotalBookings     int      `db:"total_bookings" json:"total_bookings"`
	ConfirmedBookings int      `db:"confirmed_bookings" json:"confirmed_bookings"`
}
