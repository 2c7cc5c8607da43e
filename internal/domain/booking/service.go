package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stayhub/stayhub-api/internal/domain/property"
	"github.com/stayhub/stayhub-api/internal/domain/user"
)

// Service handles booking business logic
type Service struct {
	repo       Repository
	properties property.Repository

	// now is injected so date validation and the completion sweep
	// can be tested against a fixed clock
	now func() time.Time
}

// NewService creates booking service
func NewService(repo Repository, properties property.Repository) *Service {
	return &Service{repo: repo, properties: properties, now: time.Now}
}

// Create validates and places a new booking. Availability is checked
// atomically with the insert, so two overlapping requests can never
// both succeed. The winner's booking starts in PENDING.
func (s *Service) Create(ctx context.Context, guestID uuid.UUID, req *CreateBookingRequest) (*Booking, error) {
	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return nil, err
	}

	p, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	if !p.IsActive {
		return nil, ErrPropertyInactive
	}
	if p.HostID == guestID {
		return nil, ErrOwnProperty
	}
	if req.Guests > p.MaxGuests {
		return nil, ErrCapacityExceeded
	}

	today := midnightUTC(s.now())
	if checkIn.Before(today) {
		return nil, ErrCheckInPast
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	nights := nightsBetween(checkIn, checkOut)
	b := &Booking{
		ID:            uuid.New(),
		PropertyID:    p.ID,
		GuestID:       guestID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		PricePerNight: p.PricePerNight,
		TotalNights:   nights,
		TotalPrice:    p.PricePerNight * int64(nights),
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("property_id", p.ID.String()).
		Str("guest_id", guestID.String()).
		Int("nights", nights).
		Int64("total_price", b.TotalPrice).
		Msg("booking created")

	return b, nil
}

// Confirm moves a PENDING booking to CONFIRMED. Host only.
func (s *Service) Confirm(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	if err := s.requireHost(ctx, userID, role, b.PropertyID); err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, &InvalidTransitionError{Action: "confirm", From: b.Status}
	}

	updated, err := s.repo.UpdateStatusIf(ctx, bookingID, []Status{StatusPending}, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost a race: the status changed between the read and the update
		return nil, s.staleTransition(ctx, bookingID, "confirm")
	}

	log.Info().Str("booking_id", bookingID.String()).Msg("booking confirmed")
	return updated, nil
}

// Cancel moves a booking to CANCELLED. Guest or host may cancel;
// finished bookings cannot be cancelled. Cancelling a CONFIRMED
// booking frees its dates for new bookings.
func (s *Service) Cancel(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	if err := s.requireParticipant(ctx, userID, role, b); err != nil {
		return nil, err
	}
	if b.Status.IsFinal() {
		return nil, &InvalidTransitionError{Action: "cancel", From: b.Status}
	}

	updated, err := s.repo.UpdateStatusIf(ctx, bookingID,
		[]Status{StatusPending, StatusConfirmed}, StatusCancelled)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, s.staleTransition(ctx, bookingID, "cancel")
	}

	log.Info().Str("booking_id", bookingID.String()).Msg("booking cancelled")
	return updated, nil
}

// ListMine returns the guest's bookings, newest first
func (s *Service) ListMine(ctx context.Context, guestID uuid.UUID) ([]GuestView, error) {
	return s.repo.ListByGuest(ctx, guestID)
}

// ListForHost returns bookings across all of the host's properties
func (s *Service) ListForHost(ctx context.Context, hostID uuid.UUID) ([]HostView, error) {
	return s.repo.ListByHost(ctx, hostID)
}

// Get returns a single booking visible only to its guest, the
// property host, or an admin
func (s *Service) Get(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID) (*Detail, error) {
	d, err := s.repo.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrBookingNotFound
	}
	if d.GuestID != userID && d.HostID != userID && role != string(user.RoleAdmin) {
		return nil, ErrNotParticipant
	}
	return d, nil
}

// CompletePastCheckouts finishes CONFIRMED bookings whose checkout
// date has passed. Run periodically.
func (s *Service) CompletePastCheckouts(ctx context.Context) (int64, error) {
	n, err := s.repo.CompletePastCheckouts(ctx, midnightUTC(s.now()))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("bookings completed")
	}
	return n, nil
}

func (s *Service) requireHost(ctx context.Context, userID uuid.UUID, role string, propertyID uuid.UUID) error {
	if role == string(user.RoleAdmin) {
		return nil
	}
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPropertyNotFound
	}
	if p.HostID != userID {
		return ErrNotHost
	}
	return nil
}

func (s *Service) requireParticipant(ctx context.Context, userID uuid.UUID, role string, b *Booking) error {
	if b.GuestID == userID || role == string(user.RoleAdmin) {
		return nil
	}
	p, err := s.properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	if p != nil && p.HostID == userID {
		return nil
	}
	return ErrNotParticipant
}

func (s *Service) staleTransition(ctx context.Context, bookingID uuid.UUID, action string) error {
	current, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrBookingNotFound
	}
	return &InvalidTransitionError{Action: action, From: current.Status}
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
