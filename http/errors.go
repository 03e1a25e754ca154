package http

import "errors"

// ErrUnauthorized is returned when the API key is missing or unknown.
var ErrUnauthorized = errors.New("unauthorized")

const (
	// GenericErrorMessage is returned for errors whose details stay in the logs.
	GenericErrorMessage = "An error occurred, see the logs for more details"
	// PathNotFoundMessage is returned when checkpathcase finds nothing.
	PathNotFoundMessage = "Path could not be found, or the authentication method used does not have access to the path."
	// InvalidFiltersMessage is returned when a getitems filter is invalid.
	InvalidFiltersMessage = "Some filters are not valid"
)
