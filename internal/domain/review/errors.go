package review

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrAlreadyReviewed  = errors.New("all completed stays already reviewed")
	ErrNoCompletedStay  = errors.New("no completed stay at this property")
)
