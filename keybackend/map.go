// Package keybackend provides an in-memory store of named secrets. It
// serves two purposes: resolving connection secrets passed by name, and
// verifying API keys presented to the HTTP server.
package keybackend

import (
	"crypto/subtle"
	"fmt"
)

// MapSecretStore retrieves secrets from an in-memory map.
// Suitable for configuration file-based secret storage.
type MapSecretStore struct {
	values map[string]string
}

// NewMapSecretStore creates a new map-based secret store with the given name
// to value mapping.
func NewMapSecretStore(values map[string]string) *MapSecretStore {
	return &MapSecretStore{values: values}
}

// Lookup retrieves the value stored under name.
func (s *MapSecretStore) Lookup(name string) (string, error) {
	value, found := s.values[name]
	if !found {
		return "", fmt.Errorf("lookup '%s': %w", name, ErrSecretNotFound)
	}
	return value, nil
}

// Verify reports whether candidate equals one of the stored values and
// returns the name it is stored under. Every value is compared in constant
// time.
func (s *MapSecretStore) Verify(candidate string) (string, bool) {
	if candidate == "" {
		return "", false
	}

	matched := ""
	for name, value := range s.values {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(value)) == 1 {
			matched = name
		}
	}
	return matched, matched != ""
}

// Len returns the number of stored secrets.
func (s *MapSecretStore) Len() int {
	return len(s.values)
}
