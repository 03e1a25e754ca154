package lakepath

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a path has no case-insensitive match
	ErrNotFound = errors.New("not found")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidFilter is returned when one or more requested filters are invalid
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrUnauthorized is returned when authentication fails
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMultipleDirectoryMatches is returned when more than one directory matches the final segment
	ErrMultipleDirectoryMatches = errors.New("multiple directories matched with case insensitive compare")
	// ErrMultipleFileMatches is returned when more than one file matches the final segment
	ErrMultipleFileMatches = errors.New("multiple files matched with case insensitive compare")
	// ErrDirectoryNotFound is returned by GetItems when the target directory does not exist
	ErrDirectoryNotFound = fmt.Errorf("directory %w", ErrNotFound)
)
