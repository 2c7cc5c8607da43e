package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserBanned         = errors.New("account is banned")
	ErrAdminRegistration  = errors.New("admin accounts cannot be self-registered")
)
