package review

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/stayhub/stayhub-api/internal/domain/property"
)

type propertiesStub struct {
	property.Repository
	properties map[uuid.UUID]*property.Property
}

func (s *propertiesStub) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return s.properties[id], nil
}

type repoStub struct {
	created     *Review
	stayed      bool
	unreviewed  *uuid.UUID
	listResults []WithGuest
}

func (s *repoStub) Create(ctx context.Context, rv *Review) error {
	s.created = rv
	return nil
}

func (s *repoStub) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]WithGuest, error) {
	return s.listResults, nil
}

func (s *repoStub) HasCompletedStay(ctx context.Context, guestID, propertyID uuid.UUID) (bool, error) {
	return s.stayed, nil
}

func (s *repoStub) UnreviewedCompletedBooking(ctx context.Context, guestID, propertyID uuid.UUID) (*uuid.UUID, error) {
	return s.unreviewed, nil
}

func newTestService(repo *repoStub) (*Service, uuid.UUID) {
	propertyID := uuid.New()
	props := &propertiesStub{properties: map[uuid.UUID]*property.Property{
		propertyID: {ID: propertyID, HostID: uuid.New(), IsActive: true},
	}}
	return NewService(repo, props), propertyID
}

func TestCreateReview(t *testing.T) {
	bookingID := uuid.New()
	repo := &repoStub{stayed: true, unreviewed: &bookingID}
	svc, propertyID := newTestService(repo)
	guestID := uuid.New()

	rv, err := svc.Create(context.Background(), guestID, propertyID, &CreateReviewRequest{
		Rating:  5,
		Comment: "Great stay, would come back",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rv.BookingID == nil || *rv.BookingID != bookingID {
		t.Errorf("booking_id = %v, want %s", rv.BookingID, bookingID)
	}
	if repo.created == nil || repo.created.Rating != 5 {
		t.Errorf("review not persisted: %+v", repo.created)
	}
}

func TestCreateReviewRequiresCompletedStay(t *testing.T) {
	repo := &repoStub{stayed: false}
	svc, propertyID := newTestService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), propertyID, &CreateReviewRequest{
		Rating:  4,
		Comment: "Nice place",
	})
	if !errors.Is(err, ErrNoCompletedStay) {
		t.Errorf("err = %v, want ErrNoCompletedStay", err)
	}
}

func TestCreateReviewOncePerStay(t *testing.T) {
	repo := &repoStub{stayed: true, unreviewed: nil}
	svc, propertyID := newTestService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), propertyID, &CreateReviewRequest{
		Rating:  4,
		Comment: "Nice place",
	})
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestCreateReviewUnknownProperty(t *testing.T) {
	repo := &repoStub{stayed: true}
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &CreateReviewRequest{
		Rating:  4,
		Comment: "Nice place",
	})
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("err = %v, want ErrPropertyNotFound", err)
	}
}
