package store

import (
	"fmt"
	"strings"
)

// Backend selects a Store implementation.
type Backend string

const (
	// BackendArray is the capacity-bounded ArrayStore.
	BackendArray Backend = "ARRAY"

	// BackendMap is the unbounded MapStore.
	BackendMap Backend = "MAP"
)

// DefaultCapacity is the ArrayStore capacity used when none is configured.
const DefaultCapacity = 100

// Config holds configuration for New.
type Config struct {
	// Backend is the implementation to construct.
	// Default: BackendArray
	Backend Backend

	// Capacity bounds the number of resumes an ArrayStore holds.
	// Ignored by other backends.
	// Default: 100
	Capacity int

	// Synchronized wraps the backend so it is safe for concurrent use.
	// Default: false (callers synchronize)
	Synchronized bool
}

// DefaultConfig returns a bounded array backend with DefaultCapacity.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendArray,
		Capacity: DefaultCapacity,
	}
}

// validate fills unset values with defaults.
func (c *Config) validate() {
	if c.Backend == "" {
		c.Backend = BackendArray
	}
	if c.Capacity < 1 {
		c.Capacity = DefaultCapacity
	}
}

// ParseBackend maps a backend name (case-insensitive) to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToUpper(strings.TrimSpace(s))); b {
	case BackendArray, BackendMap:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// New constructs the backend named by config.
func New(config Config) (Store, error) {
	config.validate()

	var s Store
	switch config.Backend {
	case BackendArray:
		s = NewArray(config.Capacity)
	case BackendMap:
		s = NewMap()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
	}
	if config.Synchronized {
		s = Synchronized(s)
	}
	return s, nil
}
