package resume

import "slices"

// Section is the content of one resume section. It is implemented only by
// TextSection and OrganizationSection.
type Section interface {
	// Kind returns the variant tag.
	Kind() SectionKind

	// Len returns the number of items held.
	Len() int

	clone() Section
	equal(Section) bool
}

// TextSection holds ordered free-text statements.
type TextSection struct {
	Items []string
}

// NewTextSection builds a text section from its items.
func NewTextSection(items ...string) TextSection {
	return TextSection{Items: append([]string(nil), items...)}
}

func (s TextSection) Kind() SectionKind { return KindText }
func (s TextSection) Len() int          { return len(s.Items) }

func (s TextSection) clone() Section {
	return TextSection{Items: slices.Clone(s.Items)}
}

func (s TextSection) equal(other Section) bool {
	o, ok := other.(TextSection)
	return ok && slices.Equal(s.Items, o.Items)
}

// OrganizationSection holds ordered organizations.
type OrganizationSection struct {
	Organizations []Organization
}

// NewOrganizationSection builds an organization section.
func NewOrganizationSection(orgs ...Organization) OrganizationSection {
	s := OrganizationSection{Organizations: make([]Organization, len(orgs))}
	for i, o := range orgs {
		s.Organizations[i] = o.clone()
	}
	return s
}

func (s OrganizationSection) Kind() SectionKind { return KindOrganizations }
func (s OrganizationSection) Len() int          { return len(s.Organizations) }

func (s OrganizationSection) clone() Section {
	return NewOrganizationSection(s.Organizations...)
}

func (s OrganizationSection) equal(other Section) bool {
	o, ok := other.(OrganizationSection)
	return ok && slices.EqualFunc(s.Organizations, o.Organizations, Organization.Equal)
}

// emptySections maps each kind to its empty default.
var emptySections = map[SectionKind]func() Section{
	KindText: func() Section {
		return TextSection{Items: []string{""}}
	},
	KindOrganizations: func() Section {
		return OrganizationSection{Organizations: []Organization{{Periods: []Period{{}}}}}
	},
}

// EmptySection returns the empty default for t: one empty statement for text
// sections, one empty organization with one empty period otherwise.
func EmptySection(t SectionType) Section {
	return emptySections[t.Kind()]()
}

// SectionsEqual reports whether a and b hold the same variant and content.
func SectionsEqual(a, b Section) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}
