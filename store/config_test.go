package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jacentio/vitae/store"
)

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()

	if cfg.Backend != store.BackendArray {
		t.Errorf("expected Backend ARRAY, got %q", cfg.Backend)
	}
	if cfg.Capacity != 100 {
		t.Errorf("expected Capacity 100, got %d", cfg.Capacity)
	}
	if cfg.Synchronized {
		t.Error("expected Synchronized false")
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input    string
		expected store.Backend
		wantErr  bool
	}{
		{"ARRAY", store.BackendArray, false},
		{"array", store.BackendArray, false},
		{" MAP ", store.BackendMap, false},
		{"SQL", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := store.ParseBackend(tt.input)
			if tt.wantErr {
				if !errors.Is(err, store.ErrUnknownBackend) {
					t.Errorf("expected ErrUnknownBackend, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNew_Backends(t *testing.T) {
	tests := []struct {
		name   string
		config store.Config
		check  func(t *testing.T, s store.Store)
	}{
		{
			name:   "default is bounded array",
			config: store.DefaultConfig(),
			check: func(t *testing.T, s store.Store) {
				a, ok := s.(*store.ArrayStore)
				if !ok {
					t.Fatalf("expected *ArrayStore, got %T", s)
				}
				if a.Capacity() != 100 {
					t.Errorf("expected capacity 100, got %d", a.Capacity())
				}
			},
		},
		{
			name:   "zero config falls back to defaults",
			config: store.Config{},
			check: func(t *testing.T, s store.Store) {
				a, ok := s.(*store.ArrayStore)
				if !ok {
					t.Fatalf("expected *ArrayStore, got %T", s)
				}
				if a.Capacity() != store.DefaultCapacity {
					t.Errorf("expected default capacity, got %d", a.Capacity())
				}
			},
		},
		{
			name:   "custom capacity",
			config: store.Config{Backend: store.BackendArray, Capacity: 2},
			check: func(t *testing.T, s store.Store) {
				if got := s.(*store.ArrayStore).Capacity(); got != 2 {
					t.Errorf("expected capacity 2, got %d", got)
				}
			},
		},
		{
			name:   "map",
			config: store.Config{Backend: store.BackendMap},
			check: func(t *testing.T, s store.Store) {
				if _, ok := s.(*store.MapStore); !ok {
					t.Errorf("expected *MapStore, got %T", s)
				}
			},
		},
		{
			name:   "synchronized",
			config: store.Config{Backend: store.BackendMap, Synchronized: true},
			check: func(t *testing.T, s store.Store) {
				if _, ok := s.(*store.MapStore); ok {
					t.Error("expected a wrapped store")
				}
				n, err := s.Size(context.Background())
				if err != nil || n != 0 {
					t.Errorf("expected empty store, got %d, %v", n, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := store.New(tt.config)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := store.New(store.Config{Backend: "XML"})
	if !errors.Is(err, store.ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}
