package keybackend

import "errors"

// ErrSecretNotFound is returned when no secret is stored under a name.
var ErrSecretNotFound = errors.New("secret not found")
