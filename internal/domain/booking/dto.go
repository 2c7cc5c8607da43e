package booking

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// CreateBookingRequest is the booking creation payload
type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	CheckIn    string    `json:"check_in" validate:"required,calendar_date"`
	CheckOut   string    `json:"check_out" validate:"required,calendar_date"`
	Guests     int       `json:"guests" validate:"required,gte=1"`
}

// ParseDates parses the request dates as UTC midnight calendar dates
func (r *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.ParseInLocation(DateLayout, r.CheckIn, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	checkOut, err = time.ParseInLocation(DateLayout, r.CheckOut, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return checkIn, checkOut, nil
}
