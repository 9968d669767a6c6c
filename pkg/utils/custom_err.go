package utils

import "errors"

var (
	ErrInvalidAction        = errors.New("invalid action")
	ErrMissingLocation      = errors.New("location is required")
	ErrMissingCategory      = errors.New("category is required")
	ErrMissingPlaceName     = errors.New("place name is required")
	ErrModelFailure         = errors.New("model request failed")
	ErrInvalidModelResponse = errors.New("invalid model response")
	ErrDatabaseError        = errors.New("database error")
)
