package resume

import (
	"cmp"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
)

// Resume is a person's profile: name, location, contacts and sections.
// The zero value is not usable; construct with New, NewWithID or Build.
type Resume struct {
	id       string
	fullName string
	location string
	contacts map[ContactType]string
	sections map[SectionType]Section
}

// Input carries raw construction values. A nil FullName means the name was
// not supplied, which decoders distinguish from an empty one.
type Input struct {
	ID       string
	FullName *string
	Location string
}

// New creates a resume with a fresh random id.
func New(fullName, location string) (*Resume, error) {
	return Build(Input{ID: uuid.NewString(), FullName: &fullName, Location: location})
}

// NewWithID creates a resume with an explicit id, e.g. when rehydrating from
// a durable backend.
func NewWithID(id, fullName, location string) (*Resume, error) {
	return Build(Input{ID: id, FullName: &fullName, Location: location})
}

// Build validates in and returns the resulting resume. An empty ID is
// rejected; callers wanting a fresh id use New.
func Build(in Input) (*Resume, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrIDRequired
	}
	name, err := normalizeName(in.FullName)
	if err != nil {
		return nil, err
	}
	return &Resume{
		id:       in.ID,
		fullName: name,
		location: Mask(in.Location),
		contacts: make(map[ContactType]string),
		sections: make(map[SectionType]Section),
	}, nil
}

// ID returns the immutable identifier.
func (r *Resume) ID() string { return r.id }

// FullName returns the validated, emoji-free full name.
func (r *Resume) FullName() string { return r.fullName }

// Location returns the masked location.
func (r *Resume) Location() string { return r.location }

// SetFullName re-applies every name rule. On error the resume is unchanged.
func (r *Resume) SetFullName(fullName string) error {
	name, err := normalizeName(&fullName)
	if err != nil {
		return err
	}
	r.fullName = name
	return nil
}

// SetLocation stores the masked location.
func (r *Resume) SetLocation(location string) {
	r.location = Mask(location)
}

// AddContact sets the value for t. Blank values are ignored: no entry is
// written and an existing entry is kept.
func (r *Resume) AddContact(t ContactType, value string) {
	if isBlank(value) || !t.Valid() {
		return
	}
	r.contacts[t] = value
}

// RemoveContact deletes the value for t, if any.
func (r *Resume) RemoveContact(t ContactType) {
	delete(r.contacts, t)
}

// Contact returns the value for t.
func (r *Resume) Contact(t ContactType) (string, bool) {
	v, ok := r.contacts[t]
	return v, ok
}

// Contacts returns a copy of all contacts.
func (r *Resume) Contacts() map[ContactType]string {
	return maps.Clone(r.contacts)
}

// AddSection sets the section for t, replacing any previous one wholesale.
// The variant must match t.Kind() and organizations must validate.
func (r *Resume) AddSection(t SectionType, s Section) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %s", ErrSectionKind, t)
	}
	if s == nil || s.Kind() != t.Kind() {
		return fmt.Errorf("%w: %s holds %s sections", ErrSectionKind, t, t.Kind())
	}
	if orgs, ok := s.(OrganizationSection); ok {
		for _, o := range orgs.Organizations {
			if err := o.Validate(); err != nil {
				return err
			}
		}
	}
	r.sections[t] = s.clone()
	return nil
}

// AddTextSection sets a text section built from items.
func (r *Resume) AddTextSection(t SectionType, items ...string) error {
	return r.AddSection(t, NewTextSection(items...))
}

// AddOrganizationSection validates orgs and sets an organization section.
func (r *Resume) AddOrganizationSection(t SectionType, orgs ...Organization) error {
	return r.AddSection(t, NewOrganizationSection(orgs...))
}

// RemoveSection deletes the section for t, if any.
func (r *Resume) RemoveSection(t SectionType) {
	delete(r.sections, t)
}

// Section returns a copy of the section for t.
func (r *Resume) Section(t SectionType) (Section, bool) {
	s, ok := r.sections[t]
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// Sections returns a copy of all sections.
func (r *Resume) Sections() map[SectionType]Section {
	out := make(map[SectionType]Section, len(r.sections))
	for t, s := range r.sections {
		out[t] = s.clone()
	}
	return out
}

// FillEmptySections adds the empty default for every absent section type.
func (r *Resume) FillEmptySections() {
	for _, t := range sectionTypes {
		if _, ok := r.sections[t]; !ok {
			r.sections[t] = EmptySection(t)
		}
	}
}

// Clone returns a deep copy.
func (r *Resume) Clone() *Resume {
	c := &Resume{
		id:       r.id,
		fullName: r.fullName,
		location: r.location,
		contacts: maps.Clone(r.contacts),
		sections: r.Sections(),
	}
	if c.contacts == nil {
		c.contacts = make(map[ContactType]string)
	}
	return c
}

// Equal reports whether every field of r and other is equal.
func (r *Resume) Equal(other *Resume) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.id != other.id || r.fullName != other.fullName || r.location != other.location {
		return false
	}
	if !maps.Equal(r.contacts, other.contacts) {
		return false
	}
	return maps.EqualFunc(r.sections, other.sections, SectionsEqual)
}

// Compare orders resumes by full name, then by id.
func Compare(a, b *Resume) int {
	if c := cmp.Compare(a.fullName, b.fullName); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

func (r *Resume) String() string {
	return fmt.Sprintf("Resume{id=%q, fullName=%q, location=%q, contacts=%d, sections=%d}",
		r.id, r.fullName, r.location, len(r.contacts), len(r.sections))
}
