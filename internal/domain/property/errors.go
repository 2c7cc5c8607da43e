package property

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("property belongs to another host")
	ErrHostNotFound     = errors.New("host not found")
	ErrInvalidPhoto     = errors.New("invalid photo file")
	ErrTooManyPhotos    = errors.New("photo limit reached")
)
