package resume

import "fmt"

// ContactType identifies a kind of contact value.
type ContactType int

const (
	Phone ContactType = iota
	Mobile
	HomePhone
	Skype
	Mail
	ICQ
)

var contactTypes = []ContactType{Phone, Mobile, HomePhone, Skype, Mail, ICQ}

var contactNames = map[ContactType]string{
	Phone:     "PHONE",
	Mobile:    "MOBILE",
	HomePhone: "HOME_PHONE",
	Skype:     "SKYPE",
	Mail:      "MAIL",
	ICQ:       "ICQ",
}

var contactTitles = map[ContactType]string{
	Phone:     "Phone",
	Mobile:    "Mobile",
	HomePhone: "Home phone",
	Skype:     "Skype",
	Mail:      "E-mail",
	ICQ:       "ICQ",
}

// ContactTypes returns every contact type in declaration order.
func ContactTypes() []ContactType {
	return append([]ContactType(nil), contactTypes...)
}

// String returns the wire name (e.g. "HOME_PHONE").
func (t ContactType) String() string {
	if s, ok := contactNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ContactType(%d)", int(t))
}

// Title returns a human-readable label.
func (t ContactType) Title() string {
	return contactTitles[t]
}

// Valid reports whether t is a declared contact type.
func (t ContactType) Valid() bool {
	_, ok := contactNames[t]
	return ok
}

// ParseContactType maps a wire name back to its ContactType.
func ParseContactType(s string) (ContactType, error) {
	for _, t := range contactTypes {
		if contactNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown contact type %q", ErrInvalidDocument, s)
}

// SectionKind selects which Section variant a section type holds.
type SectionKind int

const (
	KindText SectionKind = iota
	KindOrganizations
)

func (k SectionKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindOrganizations:
		return "organizations"
	}
	return fmt.Sprintf("SectionKind(%d)", int(k))
}

// SectionType identifies a resume section.
type SectionType int

const (
	Objective SectionType = iota
	Achievement
	Qualifications
	Experience
	Education
)

var sectionTypes = []SectionType{Objective, Achievement, Qualifications, Experience, Education}

type sectionInfo struct {
	name  string
	title string
	kind  SectionKind
}

var sectionInfos = map[SectionType]sectionInfo{
	Objective:      {"OBJECTIVE", "Objective", KindText},
	Achievement:    {"ACHIEVEMENT", "Achievements", KindText},
	Qualifications: {"QUALIFICATIONS", "Qualifications", KindText},
	Experience:     {"EXPERIENCE", "Experience", KindOrganizations},
	Education:      {"EDUCATION", "Education", KindOrganizations},
}

// SectionTypes returns every section type in declaration order.
func SectionTypes() []SectionType {
	return append([]SectionType(nil), sectionTypes...)
}

// String returns the wire name (e.g. "EXPERIENCE").
func (t SectionType) String() string {
	if info, ok := sectionInfos[t]; ok {
		return info.name
	}
	return fmt.Sprintf("SectionType(%d)", int(t))
}

// Title returns a human-readable label.
func (t SectionType) Title() string {
	return sectionInfos[t].title
}

// Kind returns the Section variant accepted by t.
func (t SectionType) Kind() SectionKind {
	return sectionInfos[t].kind
}

// Valid reports whether t is a declared section type.
func (t SectionType) Valid() bool {
	_, ok := sectionInfos[t]
	return ok
}

// ParseSectionType maps a wire name back to its SectionType.
func ParseSectionType(s string) (SectionType, error) {
	for _, t := range sectionTypes {
		if sectionInfos[t].name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown section type %q", ErrInvalidDocument, s)
}
