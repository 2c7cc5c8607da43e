package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/stayhub-api/internal/domain/user"
	"github.com/stayhub/stayhub-api/internal/pkg/jwt"
)

type userRepoStub struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{
		byID:    map[uuid.UUID]*user.User{},
		byEmail: map[string]*user.User{},
	}
}

func (s *userRepoStub) Create(ctx context.Context, u *user.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.byID[id], nil
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.byEmail[email], nil
}

func (s *userRepoStub) Update(ctx context.Context, u *user.User) error { return nil }

func (s *userRepoStub) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return nil
}

func (s *userRepoStub) SetStatus(ctx context.Context, id uuid.UUID, status user.Status) error {
	if u, ok := s.byID[id]; ok {
		u.Status = status
		return nil
	}
	return user.ErrUserNotFound
}

func newTestService(repo user.Repository) *Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, time.Hour)
	return NewService(repo, jwtService, nil)
}

func registerRequest(email string) *RegisterRequest {
	return &RegisterRequest{
		Email:     email,
		Password:  "password123",
		FirstName: "Aida",
		LastName:  "Testova",
		Role:      "GUEST",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerRequest("aida@test.local"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Tokens.AccessToken == "" || reg.Tokens.RefreshToken == "" {
		t.Fatal("tokens not issued on registration")
	}
	if reg.User.Role != "GUEST" {
		t.Errorf("role = %s, want GUEST", reg.User.Role)
	}

	login, err := svc.Login(ctx, &LoginRequest{Email: "aida@test.local", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Error("login returned a different user")
	}

	_, err = svc.Login(ctx, &LoginRequest{Email: "aida@test.local", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@test.local", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("dup@test.local")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, registerRequest("dup@test.local"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterAdminRejected(t *testing.T) {
	svc := newTestService(newUserRepoStub())

	req := registerRequest("root@test.local")
	req.Role = "ADMIN"
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrAdminRegistration) {
		t.Errorf("err = %v, want ErrAdminRegistration", err)
	}
}

func TestLoginBanned(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerRequest("banned@test.local"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	repo.byID[reg.User.ID].Status = user.StatusBanned

	_, err = svc.Login(ctx, &LoginRequest{Email: "banned@test.local", Password: "password123"})
	if !errors.Is(err, ErrUserBanned) {
		t.Errorf("err = %v, want ErrUserBanned", err)
	}
}

func TestRefresh(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerRequest("refresh@test.local"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	pair, err := svc.Refresh(ctx, reg.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("refresh did not issue a new token pair")
	}

	_, err = svc.Refresh(ctx, "not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: err = %v, want ErrInvalidToken", err)
	}

	_, err = svc.Refresh(ctx, reg.Tokens.AccessToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token as refresh: err = %v, want ErrInvalidToken", err)
	}
}
