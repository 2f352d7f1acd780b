package services

import "errors"

var (
	// ErrInvalidArgument marks requests rejected before any backend call.
	ErrInvalidArgument = errors.New("invalid argument")
)
