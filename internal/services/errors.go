package services

import "errors"

// Service errors carry the client-facing message; handlers map them onto
// HTTP statuses.
var (
	ErrContentNotFound    = errors.New("Content not found")
	ErrFileNotFound       = errors.New("File not found")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)
