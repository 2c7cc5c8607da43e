package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status represents booking lifecycle state
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// IsFinal reports whether the status admits no further transitions
func (s Status) IsFinal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Booking represents a reservation of a property for a date range.
// CheckIn and CheckOut are calendar dates stored at UTC midnight; the
// range is half-open, the checkout day itself is free for a new check-in.
// PricePerNight and TotalNights are computed once at creation so later
// price changes never affect an existing booking.
type Booking struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PropertyID    uuid.UUID `db:"property_id" json:"property_id"`
	GuestID       uuid.UUID `db:"guest_id" json:"guest_id"`
	CheckIn       time.Time `db:"check_in" json:"check_in"`
	CheckOut      time.Time `db:"check_out" json:"check_out"`
	Guests        int       `db:"guests" json:"guests"`
	PricePerNight int64     `db:"price_per_night" json:"price_per_night"`
	TotalNights   int       `db:"total_nights" json:"total_nights"`
	TotalPrice    int64     `db:"total_price" json:"total_price"`
	Status        Status    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

func nightsBetween(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++ // partial day counts as a full night
	}
	return nights
}

// GuestView is a booking joined with property and host display
// fields, as shown in the guest's trip list
type GuestView struct {
	Booking
	PropertyTitle   string  `db:"property_title" json:"property_title"`
	PropertyCity    string  `db:"property_city" json:"property_city"`
	PropertyCountry string  `db:"property_country" json:"property_country"`
	PropertyPhoto   *string `db:"property_photo" json:"property_photo,omitempty"`
	HostFirstName   string  `db:"host_first_name" json:"host_first_name"`
	HostLastName    string  `db:"host_last_name" json:"host_last_name"`
	HostPhone       *string `db:"host_phone" json:"host_phone,omitempty"`
}

// HostView is a booking joined with guest display fields,
// as shown in the host's reservation list
type HostView struct {
	Booking
	PropertyTitle  string  `db:"property_title" json:"property_title"`
	PropertyCity   string  `db:"property_city" json:"property_city"`
	GuestFirstName string  `db:"guest_first_name" json:"guest_first_name"`
	GuestLastName  string  `db:"guest_last_name" json:"guest_last_name"`
	GuestEmail     string  `db:"guest_email" json:"guest_email"`
	GuestPhone     *string `db:"guest_phone" json:"guest_phone,omitempty"`
}

// Detail is the single-booking view with both sides joined
type Detail struct {
	Booking
	PropertyTitle  string    `db:"property_title" json:"property_title"`
	PropertyCity   string    `db:"property_city" json:"property_city"`
	HostID         uuid.UUID `db:"host_id" json:"host_id"`
	GuestFirstName string    `db:"guest_first_name" json:"guest_first_name"`
	GuestLastName  string    `db:"guest_last_name" json:"guest_last_name"`
}
