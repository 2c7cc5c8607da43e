package property

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	img "github.com/stayhub/stayhub-api/internal/pkg/imaging"
	"github.com/stayhub/stayhub-api/internal/pkg/storage"
)

const maxPhotosPerProperty = 20

// Service handles property business logic
type Service struct {
	repo    Repository
	storage storage.Storage
}

// NewService creates property service
func NewService(repo Repository, store storage.Storage) *Service {
	return &Service{repo: repo, storage: store}
}

// Create creates a new listing for the host
func (s *Service) Create(ctx context.Context, hostID uuid.UUID, req *CreatePropertyRequest) (*Property, error) {
	p := &Property{
		ID:            uuid.New(),
		HostID:        hostID,
		Title:         req.Title,
		Description:   req.Description,
		City:          req.City,
		Country:       req.Country,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PropertyType:  Type(req.PropertyType),
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Beds:          req.Beds,
		Bathrooms:     req.Bathrooms,
		Amenities:     req.Amenities,
		PhotoURLs:     []string{},
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("property_id", p.ID.String()).
		Str("host_id", hostID.String()).
		Msg("property created")

	return p, nil
}

// Get returns a single listing with its review average
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*WithRating, error) {
	p, err := s.repo.GetByIDWithRating(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	return p, nil
}

// List returns active listings matching the filter
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]WithRating, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// ListMine returns the host's own listings with booking counters
func (s *Service) ListMine(ctx context.Context, hostID uuid.UUID) ([]HostStats, error) {
	return s.repo.ListByHost(ctx, hostID)
}

// Update applies partial changes to the host's own listing
func (s *Service) Update(ctx context.Context, hostID, propertyID uuid.UUID, req *UpdatePropertyRequest) (*Property, error) {
	p, err := s.ownedProperty(ctx, hostID, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Country != nil {
		p.Country = *req.Country
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
	if req.PropertyType != nil {
		p.PropertyType = Type(*req.PropertyType)
	}
	if req.PricePerNight != nil {
		p.PricePerNight = *req.PricePerNight
	}
	if req.MaxGuests != nil {
		p.MaxGuests = *req.MaxGuests
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Beds != nil {
		p.Beds = *req.Beds
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the host's own listing and its stored photos
func (s *Service) Delete(ctx context.Context, hostID, propertyID uuid.UUID) error {
	p, err := s.ownedProperty(ctx, hostID, propertyID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, propertyID); err != nil {
		return err
	}

	// Photo cleanup is best effort; orphaned objects only cost storage
	prefix := s.storage.GetURL("")
	for _, url := range p.PhotoURLs {
		key := strings.TrimPrefix(url, prefix)
		if key == url {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete photo")
		}
		thumbKey := strings.TrimSuffix(key, ".jpg") + "_thumb.jpg"
		if err := s.storage.Delete(ctx, thumbKey); err != nil {
			log.Warn().Err(err).Str("key", thumbKey).Msg("failed to delete thumbnail")
		}
	}
	return nil
}

// UploadPhoto processes and stores a listing photo, returns public URLs
func (s *Service) UploadPhoto(ctx context.Context, hostID, propertyID uuid.UUID, data []byte) (photoURL, thumbURL string, err error) {
	p, err := s.ownedProperty(ctx, hostID, propertyID)
	if err != nil {
		return "", "", err
	}
	if len(p.PhotoURLs) >= maxPhotosPerProperty {
		return "", "", ErrTooManyPhotos
	}

	processed, err := img.Process(bytes.NewReader(data))
	if err != nil {
		return "", "", ErrInvalidPhoto
	}

	photoID := uuid.New().String()
	photoKey := fmt.Sprintf("properties/%s/%s.jpg", propertyID, photoID)
	thumbKey := fmt.Sprintf("properties/%s/%s_thumb.jpg", propertyID, photoID)

	if err := s.storage.Put(ctx, photoKey, bytes.NewReader(processed.Original), "image/jpeg"); err != nil {
		return "", "", fmt.Errorf("upload photo: %w", err)
	}
	if err := s.storage.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), "image/jpeg"); err != nil {
		return "", "", fmt.Errorf("upload thumbnail: %w", err)
	}

	photoURL = s.storage.GetURL(photoKey)
	thumbURL = s.storage.GetURL(thumbKey)

	if err := s.repo.AddPhotoURL(ctx, propertyID, photoURL); err != nil {
		return "", "", err
	}

	log.Info().
		Str("property_id", propertyID.String()).
		Str("key", photoKey).
		Msg("photo uploaded")

	return photoURL, thumbURL, nil
}

func (s *Service) ownedProperty(ctx context.Context, hostID, propertyID uuid.UUID) (*Property, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	if p.HostID != hostID {
		return nil, ErrNotOwner
	}
	return p, nil
}
