package store

import "errors"

var (
	// ErrNotFound is returned by Load, Update and Delete for an absent id.
	ErrNotFound = errors.New("vitae: resume not found")

	// ErrDuplicateID is returned by Save when the id is already stored.
	ErrDuplicateID = errors.New("vitae: resume already exists")

	// ErrCapacityExceeded is returned by a bounded backend's Save when it is full.
	ErrCapacityExceeded = errors.New("vitae: storage capacity exceeded")

	// ErrNilResume is returned when a nil resume is passed to Save or Update.
	ErrNilResume = errors.New("vitae: nil resume")

	// ErrUnknownBackend is returned when a configuration names no known backend.
	ErrUnknownBackend = errors.New("vitae: unknown storage backend")
)
