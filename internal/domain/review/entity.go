package review

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a guest review of a property, tied to the
// completed booking that entitled the guest to leave it. BookingID
// goes nil if the booking row is ever removed; the review survives.
type Review struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PropertyID uuid.UUID  `db:"property_id" json:"property_id"`
	GuestID    uuid.UUID  `db:"guest_id" json:"guest_id"`
	BookingID  *uuid.UUID `db:"booking_id" json:"booking_id,omitempty"`
	Rating     int        `db:"rating" json:"rating"`
	Comment    string     `db:"comment" json:"comment"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// WithGuest is a review joined with reviewer display fields
type WithGuest struct {
	Review
	GuestFirstName string  `db:"guest_first_name" json:"guest_first_name"`
	GuestLastName  string  `db:"guest_last_name" json:"guest_last_name"`
	GuestAvatarURL *string `db:"guest_avatar_url" json:"guest_avatar_url,omitempty"`
}
