package property

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
)

type repoStub struct {
	Repository
	properties map[uuid.UUID]*Property
	updated    *Property
}

func newRepoStub() *repoStub {
	return &repoStub{properties: map[uuid.UUID]*Property{}}
}

func (s *repoStub) Create(ctx context.Context, p *Property) error {
	s.properties[p.ID] = p
	return nil
}

func (s *repoStub) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	return s.properties[id], nil
}

func (s *repoStub) Update(ctx context.Context, p *Property) error {
	s.updated = p
	s.properties[p.ID] = p
	return nil
}

func (s *repoStub) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.properties, id)
	return nil
}

type storageStub struct {
	deleted []string
}

func (s *storageStub) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	return nil
}

func (s *storageStub) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *storageStub) GetURL(key string) string { return "https://cdn.test/" + key }

func TestCreateProperty(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo, &storageStub{})
	hostID := uuid.New()

	p, err := svc.Create(context.Background(), hostID, &CreatePropertyRequest{
		Title:         "City studio",
		Description:   "A small studio in the center",
		City:          "Astana",
		Country:       "Kazakhstan",
		Address:       "Mangilik El 20",
		PropertyType:  "studio",
		PricePerNight: 12000,
		MaxGuests:     2,
		Beds:          1,
		Bathrooms:     1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.HostID != hostID {
		t.Errorf("host_id = %s, want %s", p.HostID, hostID)
	}
	if !p.IsActive {
		t.Error("new property must start active")
	}
}

func TestUpdatePropertyPartial(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo, &storageStub{})
	hostID := uuid.New()

	p := &Property{
		ID:            uuid.New(),
		HostID:        hostID,
		Title:         "Old title",
		City:          "Almaty",
		PricePerNight: 8000,
		MaxGuests:     3,
		IsActive:      true,
	}
	repo.properties[p.ID] = p

	newTitle := "New title"
	newPrice := int64(9500)
	updated, err := svc.Update(context.Background(), hostID, p.ID, &UpdatePropertyRequest{
		Title:         &newTitle,
		PricePerNight: &newPrice,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "New title" || updated.PricePerNight != 9500 {
		t.Errorf("partial update not applied: %+v", updated)
	}
	if updated.City != "Almaty" || updated.MaxGuests != 3 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdatePropertyOwnership(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo, &storageStub{})

	p := &Property{ID: uuid.New(), HostID: uuid.New(), IsActive: true}
	repo.properties[p.ID] = p

	title := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), p.ID, &UpdatePropertyRequest{Title: &title})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}

	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), &UpdatePropertyRequest{Title: &title})
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("err = %v, want ErrPropertyNotFound", err)
	}
}

func TestListFilterNormalize(t *testing.T) {
	f := &ListFilter{Page: 0, PerPage: 500}
	f.Normalize()
	if f.Page != 1 || f.PerPage != 20 {
		t.Errorf("normalized = page %d per_page %d, want 1/20", f.Page, f.PerPage)
	}
}

func TestDeletePropertyRemovesPhotos(t *testing.T) {
	repo := newRepoStub()
	store := &storageStub{}
	svc := NewService(repo, store)
	hostID := uuid.New()

	p := &Property{
		ID:     uuid.New(),
		HostID: hostID,
		PhotoURLs: []string{
			"https://cdn.test/properties/p1/photo1.jpg",
			"https://external.example/not-ours.jpg",
		},
		IsActive: true,
	}
	repo.properties[p.ID] = p

	if err := svc.Delete(context.Background(), hostID, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.properties[p.ID]; ok {
		t.Error("property not removed from repository")
	}

	want := []string{
		"properties/p1/photo1.jpg",
		"properties/p1/photo1_thumb.jpg",
	}
	if len(store.deleted) != len(want) {
		t.Fatalf("deleted keys = %v, want %v", store.deleted, want)
	}
	for i, key := range want {
		if store.deleted[i] != key {
			t.Errorf("deleted[%d] = %q, want %q", i, store.deleted[i], key)
		}
	}
}
