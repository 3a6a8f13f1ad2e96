package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/jacentio/vitae/resume"
)

// Store is the storage contract every backend implements. The resume id is
// the primary key.
//
// Implementations store a copy of the resume on Save and Update and return
// copies from Load and AllSorted, so callers never share state with the
// backend.
type Store interface {
	// Save inserts a new resume. Returns ErrDuplicateID if the id is taken.
	Save(ctx context.Context, r *resume.Resume) error

	// Load returns the resume with the given id, or ErrNotFound.
	Load(ctx context.Context, id string) (*resume.Resume, error)

	// Update replaces the resume stored under r.ID(). It never inserts:
	// an absent id yields ErrNotFound.
	Update(ctx context.Context, r *resume.Resume) error

	// Delete removes the resume with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Clear removes every resume.
	Clear(ctx context.Context) error

	// Size returns the number of stored resumes.
	Size(ctx context.Context) (int, error)

	// AllSorted returns a point-in-time snapshot ordered by full name, then id.
	AllSorted(ctx context.Context) ([]*resume.Resume, error)
}

// Sort orders resumes in place by full name, then id.
func Sort(list []*resume.Resume) {
	slices.SortFunc(list, resume.Compare)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func duplicate(id string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateID, id)
}
