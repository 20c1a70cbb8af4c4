package models

import "errors"

// Custom errors
var (
	ErrSourceUnavailable = errors.New("record source unavailable")
	ErrUnknownField      = errors.New("unknown record field")
	ErrInvalidRequest    = errors.New("invalid report request")
)
