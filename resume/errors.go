package resume

import "errors"

var (
	// ErrNameRequired is returned when no full name is supplied at all.
	ErrNameRequired = errors.New("vitae: full name is required")

	// ErrNameEmpty is returned when the full name is the empty string.
	ErrNameEmpty = errors.New("vitae: full name is empty")

	// ErrNameBlank is returned when the full name contains only whitespace
	// (or only characters that are stripped, such as emoji).
	ErrNameBlank = errors.New("vitae: full name is blank")

	// ErrNameTooLong is returned when the full name exceeds MaxNameLength runes.
	ErrNameTooLong = errors.New("vitae: full name is too long")

	// ErrIDRequired is returned when a resume is rehydrated with an empty id.
	ErrIDRequired = errors.New("vitae: resume id is required")

	// ErrSectionKind is returned when a section variant does not match the kind
	// its section type accepts.
	ErrSectionKind = errors.New("vitae: section variant does not match section type")

	// ErrInvalidDocument is returned when an encoded resume, organization or
	// period is structurally invalid.
	ErrInvalidDocument = errors.New("vitae: invalid document")
)
