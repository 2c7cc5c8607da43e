package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/stayhub/stayhub-api/internal/domain/user"
	"github.com/stayhub/stayhub-api/internal/pkg/jwt"
	"github.com/stayhub/stayhub-api/internal/pkg/password"
)

// Service handles authentication
type Service struct {
	users user.Repository
	jwt   *jwt.Service
	redis *redis.Client
}

// NewService creates auth service
func NewService(users user.Repository, jwtService *jwt.Service, redisClient *redis.Client) *Service {
	return &Service{users: users, jwt: jwtService, redis: redisClient}
}

// Register creates a new account and issues tokens
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	role := user.Role(req.Role)
	if role == user.RoleAdmin {
		return nil, ErrAdminRegistration
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		Status:       user.StatusActive,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if err == user.ErrEmailTaken {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("user registered")

	return &AuthResponse{User: toUserInfo(u), Tokens: *tokens}, nil
}

// Login verifies credentials and issues tokens
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if u.IsBanned() {
		return nil, ErrUserBanned
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: toUserInfo(u), Tokens: *tokens}, nil
}

// Refresh rotates a refresh token and issues a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := s.getRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored != claims.UserID.String() {
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	if u.IsBanned() {
		return nil, ErrUserBanned
	}

	// Rotate: old token is invalidated before the new one is issued
	if err := s.deleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

// Logout invalidates the given refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.jwt.ValidateRefreshToken(refreshToken); err != nil {
		return ErrInvalidToken
	}
	return s.deleteRefreshToken(ctx, refreshToken)
}

// Me returns the current account
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	info := toUserInfo(u)
	return &info, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u.ID, string(u.Role), u.IsBanned())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, _, expiresAt, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.storeRefreshToken(ctx, refreshToken, u.ID, time.Until(expiresAt)); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwt.GetAccessTTL().Seconds()),
	}, nil
}

func (s *Service) storeRefreshToken(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if s.redis == nil {
		return nil
	}
	key := "refresh:" + jwt.HashRefreshToken(token)
	if err := s.redis.Set(ctx, key, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (s *Service) getRefreshToken(ctx context.Context, token string) (string, error) {
	if s.redis == nil {
		// Without Redis, fall back to JWT validity alone
		claims, err := s.jwt.ValidateRefreshToken(token)
		if err != nil {
			return "", ErrInvalidToken
		}
		return claims.UserID.String(), nil
	}
	key := "refresh:" + jwt.HashRefreshToken(token)
	val, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return val, nil
}

func (s *Service) deleteRefreshToken(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}
	key := "refresh:" + jwt.HashRefreshToken(token)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func toUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
