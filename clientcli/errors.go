package clientcli

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)

// Errors for configuration validation.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrContainerRequired = errors.New("container is required")
	ErrAPIKeyRequired    = errors.New("api key is required")
)

// Errors for input validation.
var (
	ErrEmptyPath     = errors.New("path is required")
	ErrInvalidFilter = errors.New("invalid filter")
)
