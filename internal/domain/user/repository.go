package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines user data access
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userSelectColumns = `
	id, email, password_hash, first_name, last_name, phone,
	role, status, avatar_url, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.Status,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, u.ID, u.FirstName, u.LastName, u.Phone).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *repository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, id, avatarURL)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set user status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
