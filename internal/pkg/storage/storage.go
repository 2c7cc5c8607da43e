package storage

import (
	"context"
	"io"
)

// Config holds storage configuration
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// Storage defines object storage operations
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	// GetURL returns the public URL for a key; with an empty key it
	// yields the URL prefix shared by all objects
	GetURL(key string) string
}
