package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyInactive = errors.New("property is not available for booking")
	ErrOwnProperty      = errors.New("cannot book own property")
	ErrCapacityExceeded = errors.New("guest count exceeds property capacity")
	ErrCheckInPast      = errors.New("check-in date is in the past")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrInvalidDate      = errors.New("invalid calendar date")
	ErrDatesUnavailable = errors.New("property is already booked for these dates")
	ErrNotParticipant   = errors.New("booking belongs to another user")
	ErrNotHost          = errors.New("only the property host can perform this action")
)

// InvalidTransitionError is returned when a status change is not
// allowed from the booking's current status
type InvalidTransitionError struct {
	Action string
	From   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking with status %s", e.Action, e.From)
}
