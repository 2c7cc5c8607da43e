package booking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/stayhub-api/internal/domain/property"
)

// fixed clock for all service tests
var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

type propertiesStub struct {
	property.Repository
	getByID func(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

func (s *propertiesStub) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return s.getByID(ctx, id)
}

type repoStub struct {
	created               *Booking
	createErr             error
	getByID               func(id uuid.UUID) (*Booking, error)
	getDetail             func(id uuid.UUID) (*Detail, error)
	updateStatusIf        func(id uuid.UUID, allowed []Status, to Status) (*Booking, error)
	completePastCheckouts func(today time.Time) (int64, error)
}

func (s *repoStub) Create(ctx context.Context, b *Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = b
	return nil
}

func (s *repoStub) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if s.getByID == nil {
		return nil, nil
	}
	return s.getByID(id)
}

func (s *repoStub) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	if s.getDetail == nil {
		return nil, nil
	}
	return s.getDetail(id)
}

func (s *repoStub) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]GuestView, error) {
	return nil, nil
}

func (s *repoStub) ListByHost(ctx context.Context, hostID uuid.UUID) ([]HostView, error) {
	return nil, nil
}

func (s *repoStub) UpdateStatusIf(ctx context.Context, id uuid.UUID, allowed []Status, to Status) (*Booking, error) {
	if s.updateStatusIf == nil {
		return nil, nil
	}
	return s.updateStatusIf(id, allowed, to)
}

func (s *repoStub) CompletePastCheckouts(ctx context.Context, today time.Time) (int64, error) {
	if s.completePastCheckouts == nil {
		return 0, nil
	}
	return s.completePastCheckouts(today)
}

func newTestService(repo Repository, props property.Repository) *Service {
	s := NewService(repo, props)
	s.now = func() time.Time { return testNow }
	return s
}

func testProperty(hostID uuid.UUID) *property.Property {
	return &property.Property{
		ID:            uuid.New(),
		HostID:        hostID,
		Title:         "Lakeside cabin",
		City:          "Almaty",
		PropertyType:  property.TypeCabin,
		PricePerNight: 5000,
		MaxGuests:     4,
		IsActive:      true,
	}
}

func singleProperty(p *property.Property) *propertiesStub {
	return &propertiesStub{
		getByID: func(ctx context.Context, id uuid.UUID) (*property.Property, error) {
			if p != nil && id == p.ID {
				return p, nil
			}
			return nil, nil
		},
	}
}

func TestCreateBooking(t *testing.T) {
	hostID := uuid.New()
	guestID := uuid.New()
	p := testProperty(hostID)

	repo := &repoStub{}
	svc := newTestService(repo, singleProperty(p))

	b, err := svc.Create(context.Background(), guestID, &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-04-01",
		CheckOut:   "2026-04-06",
		Guests:     2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if b.Status != StatusPending {
		t.Errorf("status = %s, want PENDING", b.Status)
	}
	if b.TotalNights != 5 {
		t.Errorf("total_nights = %d, want 5", b.TotalNights)
	}
	if b.PricePerNight != 5000 {
		t.Errorf("price_per_night = %d, want 5000", b.PricePerNight)
	}
	if b.TotalPrice != 25000 {
		t.Errorf("total_price = %d, want 25000", b.TotalPrice)
	}
	if repo.created == nil {
		t.Fatal("booking was not persisted")
	}
	if repo.created.TotalNights != 5 {
		t.Errorf("persisted total_nights = %d, want 5", repo.created.TotalNights)
	}
}

func TestBookingSerializesTotalNights(t *testing.T) {
	// API consumers read total_nights straight off the booking payload
	hostID := uuid.New()
	p := testProperty(hostID)
	repo := &repoStub{}
	svc := newTestService(repo, singleProperty(p))

	b, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-04-01",
		CheckOut:   "2026-04-06",
		Guests:     2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"total_nights":5`) {
		t.Errorf("payload missing total_nights: %s", data)
	}
}

func TestCreateBookingPropertyNotFound(t *testing.T) {
	svc := newTestService(&repoStub{}, singleProperty(nil))

	_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: uuid.New(),
		CheckIn:    "2026-04-01",
		CheckOut:   "2026-04-06",
		Guests:     2,
	})
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("err = %v, want ErrPropertyNotFound", err)
	}
}

func TestCreateBookingInactiveProperty(t *testing.T) {
	p := testProperty(uuid.New())
	p.IsActive = false
	svc := newTestService(&repoStub{}, singleProperty(p))

	_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-04-01",
		CheckOut:   "2026-04-06",
		Guests:     2,
	})
	if !errors.Is(err, ErrPropertyInactive) {
		t.Errorf("err = %v, want ErrPropertyInactive", err)
	}
}

func TestCreateBookingOwnProperty(t *testing.T) {
	hostID := uuid.New()
	p := testProperty(hostID)
	svc := newTestService(&repoStub{}, singleProperty(p))

	// Host books their own listing with an over-capacity group: the
	// ownership check must fire before the capacity check
	_, err := svc.Create(context.Background(), hostID, &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-04-01",
		CheckOut:   "2026-04-06",
		Guests:     10,
	})
	if !errors.Is(err, ErrOwnProperty) {
		t.Errorf("err = %v, want ErrOwnProperty", err)
	}
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	p := testProperty(uuid.New())
	svc := newTestService(&repoStub{}, singleProperty(p))

	// Capacity is checked before the date validation
	_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2020-01-01",
		CheckOut:   "2020-01-05",
		Guests:     5,
	})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("err = %v, want ErrCapacityExceeded", err)
	}
}

func TestCreateBookingCheckInPast(t *testing.T) {
	p := testProperty(uuid.New())
	svc := newTestService(&repoStub{}, singleProperty(p))

	_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-03-09",
		CheckOut:   "2026-03-12",
		Guests:     2,
	})
	if !errors.Is(err, ErrCheckInPast) {
		t.Errorf("err = %v, want ErrCheckInPast", err)
	}
}

func TestCreateBookingSameDayCheckIn(t *testing.T) {
	// Booking for today is allowed even later in the day
	p := testProperty(uuid.New())
	repo := &repoStub{}
	svc := newTestService(repo, singleProperty(p))

	_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-03-10",
		CheckOut:   "2026-03-12",
		Guests:     2,
	})
	if err != nil {
		t.Errorf("Create: %v", err)
	}
}

func TestCreateBookingInvalidRange(t *testing.T) {
	p := testProperty(uuid.New())
	svc := newTestService(&repoStub{}, singleProperty(p))

	for _, checkOut := range []string{"2026-04-01", "2026-03-30"} {
		_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
			PropertyID: p.ID,
			CheckIn:    "2026-04-01",
			CheckOut:   checkOut,
			Guests:     2,
		})
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("check_out %s: err = %v, want ErrInvalidDateRange", checkOut, err)
		}
	}
}

func TestCreateBookingMalformedDate(t *testing.T) {
	p := testProperty(uuid.New())
	svc := newTestService(&repoStub{}, singleProperty(p))

	_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-13-01",
		CheckOut:   "2026-13-05",
		Guests:     2,
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
}

func TestCreateBookingDatesUnavailable(t *testing.T) {
	p := testProperty(uuid.New())
	repo := &repoStub{createErr: ErrDatesUnavailable}
	svc := newTestService(repo, singleProperty(p))

	_, err := svc.Create(context.Background(), uuid.New(), &CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    "2026-04-01",
		CheckOut:   "2026-04-06",
		Guests:     2,
	})
	if !errors.Is(err, ErrDatesUnavailable) {
		t.Errorf("err = %v, want ErrDatesUnavailable", err)
	}
}

func TestConfirmBooking(t *testing.T) {
	hostID := uuid.New()
	p := testProperty(hostID)
	pending := &Booking{ID: uuid.New(), PropertyID: p.ID, GuestID: uuid.New(), Status: StatusPending}

	repo := &repoStub{
		getByID: func(id uuid.UUID) (*Booking, error) { return pending, nil },
		updateStatusIf: func(id uuid.UUID, allowed []Status, to Status) (*Booking, error) {
			if to != StatusConfirmed {
				t.Errorf("target status = %s, want CONFIRMED", to)
			}
			confirmed := *pending
			confirmed.Status = StatusConfirmed
			return &confirmed, nil
		},
	}
	svc := newTestService(repo, singleProperty(p))

	b, err := svc.Confirm(context.Background(), hostID, "HOST", pending.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if b.Status != StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", b.Status)
	}
}

func TestConfirmBookingNotHost(t *testing.T) {
	p := testProperty(uuid.New())
	pending := &Booking{ID: uuid.New(), PropertyID: p.ID, GuestID: uuid.New(), Status: StatusPending}

	repo := &repoStub{getByID: func(id uuid.UUID) (*Booking, error) { return pending, nil }}
	svc := newTestService(repo, singleProperty(p))

	// The guest who placed the booking still cannot confirm it
	_, err := svc.Confirm(context.Background(), pending.GuestID, "GUEST", pending.ID)
	if !errors.Is(err, ErrNotHost) {
		t.Errorf("err = %v, want ErrNotHost", err)
	}
}

func TestConfirmBookingWrongStatus(t *testing.T) {
	hostID := uuid.New()
	p := testProperty(hostID)

	for _, status := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted} {
		b := &Booking{ID: uuid.New(), PropertyID: p.ID, GuestID: uuid.New(), Status: status}
		repo := &repoStub{getByID: func(id uuid.UUID) (*Booking, error) { return b, nil }}
		svc := newTestService(repo, singleProperty(p))

		_, err := svc.Confirm(context.Background(), hostID, "HOST", b.ID)
		var transitionErr *InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("status %s: err = %v, want InvalidTransitionError", status, err)
		}
		if transitionErr.From != status {
			t.Errorf("transition From = %s, want %s", transitionErr.From, status)
		}
	}
}

func TestConfirmBookingLostRace(t *testing.T) {
	hostID := uuid.New()
	p := testProperty(hostID)
	pending := &Booking{ID: uuid.New(), PropertyID: p.ID, GuestID: uuid.New(), Status: StatusPending}

	reads := 0
	repo := &repoStub{
		getByID: func(id uuid.UUID) (*Booking, error) {
			reads++
			if reads == 1 {
				return pending, nil
			}
			// Second read: the guest cancelled between our read and update
			cancelled := *pending
			cancelled.Status = StatusCancelled
			return &cancelled, nil
		},
		updateStatusIf: func(id uuid.UUID, allowed []Status, to Status) (*Booking, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, singleProperty(p))

	_, err := svc.Confirm(context.Background(), hostID, "HOST", pending.ID)
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
	if transitionErr.From != StatusCancelled {
		t.Errorf("transition From = %s, want CANCELLED", transitionErr.From)
	}
}

func TestCancelBooking(t *testing.T) {
	hostID := uuid.New()
	guestID := uuid.New()
	p := testProperty(hostID)
	confirmed := &Booking{ID: uuid.New(), PropertyID: p.ID, GuestID: guestID, Status: StatusConfirmed}

	newRepo := func() *repoStub {
		return &repoStub{
			getByID: func(id uuid.UUID) (*Booking, error) { return confirmed, nil },
			updateStatusIf: func(id uuid.UUID, allowed []Status, to Status) (*Booking, error) {
				cancelled := *confirmed
				cancelled.Status = StatusCancelled
				return &cancelled, nil
			},
		}
	}

	// Both the guest and the host may cancel
	for _, tc := range []struct {
		name   string
		userID uuid.UUID
		role   string
	}{
		{"guest", guestID, "GUEST"},
		{"host", hostID, "HOST"},
	} {
		svc := newTestService(newRepo(), singleProperty(p))
		b, err := svc.Cancel(context.Background(), tc.userID, tc.role, confirmed.ID)
		if err != nil {
			t.Fatalf("%s cancel: %v", tc.name, err)
		}
		if b.Status != StatusCancelled {
			t.Errorf("%s cancel: status = %s, want CANCELLED", tc.name, b.Status)
		}
	}
}

func TestCancelBookingNotParticipant(t *testing.T) {
	p := testProperty(uuid.New())
	b := &Booking{ID: uuid.New(), PropertyID: p.ID, GuestID: uuid.New(), Status: StatusPending}

	repo := &repoStub{getByID: func(id uuid.UUID) (*Booking, error) { return b, nil }}
	svc := newTestService(repo, singleProperty(p))

	_, err := svc.Cancel(context.Background(), uuid.New(), "GUEST", b.ID)
	if !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestCancelBookingAlreadyFinal(t *testing.T) {
	hostID := uuid.New()
	p := testProperty(hostID)

	for _, status := range []Status{StatusCancelled, StatusCompleted} {
		b := &Booking{ID: uuid.New(), PropertyID: p.ID, GuestID: uuid.New(), Status: status}
		repo := &repoStub{getByID: func(id uuid.UUID) (*Booking, error) { return b, nil }}
		svc := newTestService(repo, singleProperty(p))

		_, err := svc.Cancel(context.Background(), hostID, "HOST", b.ID)
		var transitionErr *InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("status %s: err = %v, want InvalidTransitionError", status, err)
		}
	}
}

func TestGetBookingAuthorization(t *testing.T) {
	hostID := uuid.New()
	guestID := uuid.New()
	detail := &Detail{
		Booking: Booking{ID: uuid.New(), PropertyID: uuid.New(), GuestID: guestID, Status: StatusPending},
		HostID:  hostID,
	}

	repo := &repoStub{getDetail: func(id uuid.UUID) (*Detail, error) { return detail, nil }}
	svc := newTestService(repo, singleProperty(nil))

	for _, tc := range []struct {
		name    string
		userID  uuid.UUID
		role    string
		wantErr error
	}{
		{"guest", guestID, "GUEST", nil},
		{"host", hostID, "HOST", nil},
		{"admin", uuid.New(), "ADMIN", nil},
		{"stranger", uuid.New(), "GUEST", ErrNotParticipant},
	} {
		_, err := svc.Get(context.Background(), tc.userID, tc.role, detail.ID)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestCompletePastCheckouts(t *testing.T) {
	var gotToday time.Time
	repo := &repoStub{
		completePastCheckouts: func(today time.Time) (int64, error) {
			gotToday = today
			return 3, nil
		},
	}
	svc := newTestService(repo, singleProperty(nil))

	n, err := svc.CompletePastCheckouts(context.Background())
	if err != nil {
		t.Fatalf("CompletePastCheckouts: %v", err)
	}
	if n != 3 {
		t.Errorf("completed = %d, want 3", n)
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !gotToday.Equal(want) {
		t.Errorf("today = %v, want %v", gotToday, want)
	}
}

func TestNightsBetween(t *testing.T) {
	for _, tc := range []struct {
		checkIn, checkOut string
		want              int
	}{
		{"2026-04-01", "2026-04-02", 1},
		{"2026-04-01", "2026-04-06", 5},
		{"2026-03-28", "2026-04-02", 5},
	} {
		in, _ := time.ParseInLocation(DateLayout, tc.checkIn, time.UTC)
		out, _ := time.ParseInLocation(DateLayout, tc.checkOut, time.UTC)
		if got := nightsBetween(in, out); got != tc.want {
			t.Errorf("nightsBetween(%s, %s) = %d, want %d", tc.checkIn, tc.checkOut, got, tc.want)
		}
	}
}
