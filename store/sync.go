package store

import (
	"context"
	"sync"

	"github.com/jacentio/vitae/resume"
)

// locked serializes every call to the wrapped Store with one mutex.
type locked struct {
	mu    sync.Mutex
	inner Store
}

// Synchronized returns a Store that is safe for concurrent use by holding a
// single lock around every operation of s. s must not be used directly
// afterwards.
func Synchronized(s Store) Store {
	if l, ok := s.(*locked); ok {
		return l
	}
	return &locked{inner: s}
}

func (l *locked) Save(ctx context.Context, r *resume.Resume) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Save(ctx, r)
}

func (l *locked) Load(ctx context.Context, id string) (*resume.Resume, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Load(ctx, id)
}

func (l *locked) Update(ctx context.Context, r *resume.Resume) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Update(ctx, r)
}

func (l *locked) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Delete(ctx, id)
}

func (l *locked) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Clear(ctx)
}

func (l *locked) Size(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Size(ctx)
}

func (l *locked) AllSorted(ctx context.Context) ([]*resume.Resume, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.AllSorted(ctx)
}
