package user

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	img "github.com/stayhub/stayhub-api/internal/pkg/imaging"
	"github.com/stayhub/stayhub-api/internal/pkg/storage"
)

// Service handles user profile and moderation logic
type Service struct {
	repo    Repository
	storage storage.Storage
}

// NewService creates user service
func NewService(repo Repository, store storage.Storage) *Service {
	return &Service{repo: repo, storage: store}
}

// UpdateProfile applies partial changes to the user's own profile
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadAvatar processes and stores a profile picture
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte) (string, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	processed, err := img.Process(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("process avatar: %w", err)
	}

	key := fmt.Sprintf("avatars/%s/%s.jpg", userID, uuid.New())
	if err := s.storage.Put(ctx, key, bytes.NewReader(processed.Thumbnail), "image/jpeg"); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	url := s.storage.GetURL(key)
	if err := s.repo.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// Ban suspends an account. Admin only, enforced at the route level.
func (s *Service) Ban(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.SetStatus(ctx, userID, StatusBanned); err != nil {
		return err
	}
	log.Warn().Str("user_id", userID.String()).Msg("user banned")
	return nil
}

// Unban restores a suspended account
func (s *Service) Unban(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.SetStatus(ctx, userID, StatusActive); err != nil {
		return err
	}
	log.Info().Str("user_id", userID.String()).Msg("user unbanned")
	return nil
}
