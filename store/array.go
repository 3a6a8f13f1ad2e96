package store

import (
	"context"
	"fmt"

	"github.com/jacentio/vitae/resume"
)

// ArrayStore is a fixed-capacity Store backed by a dense slice. Lookups and
// deletes scan linearly; deletion moves the last entry into the freed slot,
// so storage order is unspecified.
//
// ArrayStore is not safe for concurrent use; see Synchronized.
type ArrayStore struct {
	items    []*resume.Resume
	capacity int
}

var _ Store = (*ArrayStore)(nil)

// NewArray creates an ArrayStore holding at most capacity resumes.
// A capacity below 1 uses DefaultCapacity.
func NewArray(capacity int) *ArrayStore {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &ArrayStore{
		items:    make([]*resume.Resume, 0, capacity),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of resumes.
func (s *ArrayStore) Capacity() int {
	return s.capacity
}

// indexOf returns the slot holding id, or -1.
func (s *ArrayStore) indexOf(id string) int {
	for i, r := range s.items {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

// Save appends r. Duplicates are reported before capacity.
func (s *ArrayStore) Save(_ context.Context, r *resume.Resume) error {
	if r == nil {
		return ErrNilResume
	}
	if s.indexOf(r.ID()) >= 0 {
		return duplicate(r.ID())
	}
	if len(s.items) >= s.capacity {
		return fmt.Errorf("%w: limit %d", ErrCapacityExceeded, s.capacity)
	}
	s.items = append(s.items, r.Clone())
	return nil
}

// Load returns a copy of the resume with id.
func (s *ArrayStore) Load(_ context.Context, id string) (*resume.Resume, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	return s.items[i].Clone(), nil
}

// Update replaces the stored resume with the same id as r.
func (s *ArrayStore) Update(_ context.Context, r *resume.Resume) error {
	if r == nil {
		return ErrNilResume
	}
	i := s.indexOf(r.ID())
	if i < 0 {
		return notFound(r.ID())
	}
	s.items[i] = r.Clone()
	return nil
}

// Delete removes id, moving the last entry into its slot.
func (s *ArrayStore) Delete(_ context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	last := len(s.items) - 1
	s.items[i] = s.items[last]
	s.items[last] = nil
	s.items = s.items[:last]
	return nil
}

// Clear removes every resume, keeping the allocated capacity.
func (s *ArrayStore) Clear(_ context.Context) error {
	clear(s.items)
	s.items = s.items[:0]
	return nil
}

// Size returns the number of stored resumes.
func (s *ArrayStore) Size(_ context.Context) (int, error) {
	return len(s.items), nil
}

// AllSorted returns copies of every resume in Sort order.
func (s *ArrayStore) AllSorted(_ context.Context) ([]*resume.Resume, error) {
	out := make([]*resume.Resume, len(s.items))
	for i, r := range s.items {
		out[i] = r.Clone()
	}
	Sort(out)
	return out, nil
}
