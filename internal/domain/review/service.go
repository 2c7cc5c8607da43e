package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stayhub/stayhub-api/internal/domain/property"
)

// Service handles review business logic
type Service struct {
	repo       Repository
	properties property.Repository
}

// NewService creates review service
func NewService(repo Repository, properties property.Repository) *Service {
	return &Service{repo: repo, properties: properties}
}

// Create records a review after a completed stay
func (s *Service) Create(ctx context.Context, guestID, propertyID uuid.UUID, req *CreateReviewRequest) (*Review, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}

	stayed, err := s.repo.HasCompletedStay(ctx, guestID, propertyID)
	if err != nil {
		return nil, err
	}
	if !stayed {
		return nil, ErrNoCompletedStay
	}

	// One review per completed stay
	bookingID, err := s.repo.UnreviewedCompletedBooking(ctx, guestID, propertyID)
	if err != nil {
		return nil, err
	}
	if bookingID == nil {
		return nil, ErrAlreadyReviewed
	}

	rv := &Review{
		ID:         uuid.New(),
		PropertyID: propertyID,
		GuestID:    guestID,
		BookingID:  bookingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	log.Info().
		Str("review_id", rv.ID.String()).
		Str("property_id", propertyID.String()).
		Int("rating", rv.Rating).
		Msg("review created")

	return rv, nil
}

// ListByProperty returns reviews for a property, newest first
func (s *Service) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]WithGuest, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	return s.repo.ListByProperty(ctx, propertyID)
}
