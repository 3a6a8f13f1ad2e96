package store

import (
	"context"

	"github.com/jacentio/vitae/resume"
)

// MapStore is an unbounded Store keyed by resume id.
//
// MapStore is not safe for concurrent use; see Synchronized.
type MapStore struct {
	items map[string]*resume.Resume
}

var _ Store = (*MapStore)(nil)

// NewMap creates an empty MapStore.
func NewMap() *MapStore {
	return &MapStore{items: make(map[string]*resume.Resume)}
}

// Save stores a copy of r under its id.
func (s *MapStore) Save(_ context.Context, r *resume.Resume) error {
	if r == nil {
		return ErrNilResume
	}
	if _, ok := s.items[r.ID()]; ok {
		return duplicate(r.ID())
	}
	s.items[r.ID()] = r.Clone()
	return nil
}

// Load returns a copy of the resume with id.
func (s *MapStore) Load(_ context.Context, id string) (*resume.Resume, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, notFound(id)
	}
	return r.Clone(), nil
}

// Update replaces the stored resume with the same id as r.
func (s *MapStore) Update(_ context.Context, r *resume.Resume) error {
	if r == nil {
		return ErrNilResume
	}
	if _, ok := s.items[r.ID()]; !ok {
		return notFound(r.ID())
	}
	s.items[r.ID()] = r.Clone()
	return nil
}

// Delete removes id.
func (s *MapStore) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return notFound(id)
	}
	delete(s.items, id)
	return nil
}

// Clear removes every resume.
func (s *MapStore) Clear(_ context.Context) error {
	clear(s.items)
	return nil
}

// Size returns the number of stored resumes.
func (s *MapStore) Size(_ context.Context) (int, error) {
	return len(s.items), nil
}

// AllSorted returns copies of every resume in Sort order.
func (s *MapStore) AllSorted(_ context.Context) ([]*resume.Resume, error) {
	out := make([]*resume.Resume, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, r.Clone())
	}
	Sort(out)
	return out, nil
}
