// Package resume provides the resume document model stored by vitae backends.
//
// A [Resume] is an aggregate root: a full name, an optional location, a set of
// contacts keyed by [ContactType] and a set of sections keyed by [SectionType].
// All mutation goes through the aggregate's own methods so the construction
// rules are re-applied on every change.
//
// # Validation
//
// The full name is rejected, never repaired, when it is missing, empty, blank
// or longer than [MaxNameLength] runes. Once accepted, emoji are stripped and
// the result is trimmed:
//
//	r, err := resume.New("Bob Smith 🚀", "NYC")
//	// r.FullName() == "Bob Smith"
//
// Contacts are sanitized permissively instead: a blank value is ignored
// without an error.
//
// # Sections
//
// [Section] is a closed sum type with two variants, [TextSection] and
// [OrganizationSection]. Each [SectionType] accepts exactly one variant,
// reported by [SectionType.Kind], and [EmptySection] returns the empty default
// used to pre-populate editing forms.
//
// # Errors
//
// The package defines validation errors:
//
//   - [ErrNameRequired] - no name supplied
//   - [ErrNameEmpty] - name is the empty string
//   - [ErrNameBlank] - name is whitespace only
//   - [ErrNameTooLong] - name exceeds [MaxNameLength]
//   - [ErrIDRequired] - rehydration without an id
//   - [ErrSectionKind] - section variant does not match its type
//   - [ErrInvalidDocument] - malformed JSON, period or organization
package resume
