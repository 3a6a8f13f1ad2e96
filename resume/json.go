package resume

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

const yearMonthLayout = "2006-01"

type wireResume struct {
	ID       string                 `json:"id,omitempty"`
	FullName *string                `json:"fullName"`
	Location string                 `json:"location,omitempty"`
	Contacts map[string]string      `json:"contacts,omitempty"`
	Sections map[string]wireSection `json:"sections,omitempty"`
}

type wireSection struct {
	Kind          string             `json:"kind"`
	Items         []string           `json:"items,omitempty"`
	Organizations []wireOrganization `json:"organizations,omitempty"`
}

type wireOrganization struct {
	Name    string       `json:"name,omitempty"`
	URL     string       `json:"url,omitempty"`
	Periods []wirePeriod `json:"periods,omitempty"`
}

type wirePeriod struct {
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// MarshalJSON encodes the resume with tagged sections.
func (r *Resume) MarshalJSON() ([]byte, error) {
	name := r.fullName
	w := wireResume{
		ID:       r.id,
		FullName: &name,
		Location: r.location,
		Contacts: make(map[string]string, len(r.contacts)),
		Sections: make(map[string]wireSection, len(r.sections)),
	}
	for t, v := range r.contacts {
		w.Contacts[t.String()] = v
	}
	for t, s := range r.sections {
		ws := wireSection{Kind: s.Kind().String()}
		switch s := s.(type) {
		case TextSection:
			ws.Items = s.Items
		case OrganizationSection:
			ws.Organizations = make([]wireOrganization, 0, len(s.Organizations))
			for _, o := range s.Organizations {
				ws.Organizations = append(ws.Organizations, encodeOrganization(o))
			}
		}
		w.Sections[t.String()] = ws
	}
	return json.Marshal(w)
}

func encodeOrganization(o Organization) wireOrganization {
	wo := wireOrganization{Name: o.Link.Name, URL: o.Link.URL}
	for _, p := range o.Periods {
		wo.Periods = append(wo.Periods, wirePeriod{
			Start:       p.Start.String(),
			End:         p.End.String(),
			Title:       p.Title,
			Description: p.Description,
		})
	}
	return wo
}

// UnmarshalJSON decodes and validates data into r. See Decode.
func (r *Resume) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

// Decode validates data against the resume JSON schema and builds the
// aggregate, applying every construction rule. A document without an id gets
// a fresh one.
func Decode(data []byte) (*Resume, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load resume schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}

	var w wireResume
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	r, err := Build(Input{ID: w.ID, FullName: w.FullName, Location: w.Location})
	if err != nil {
		return nil, err
	}
	for name, v := range w.Contacts {
		t, err := ParseContactType(name)
		if err != nil {
			return nil, err
		}
		r.AddContact(t, v)
	}
	for name, ws := range w.Sections {
		t, err := ParseSectionType(name)
		if err != nil {
			return nil, err
		}
		if err := decodeSection(r, t, ws); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func decodeSection(r *Resume, t SectionType, ws wireSection) error {
	if ws.Kind != t.Kind().String() {
		return fmt.Errorf("%w: %s holds %s sections, got %q", ErrSectionKind, t, t.Kind(), ws.Kind)
	}
	if t.Kind() == KindText {
		return r.AddTextSection(t, ws.Items...)
	}
	orgs := make([]Organization, 0, len(ws.Organizations))
	for _, wo := range ws.Organizations {
		o := Organization{Link: Link{Name: wo.Name, URL: wo.URL}}
		if wo.Periods != nil {
			o.Periods = make([]Period, 0, len(wo.Periods))
		}
		for _, wp := range wo.Periods {
			p, err := decodePeriod(wp)
			if err != nil {
				return err
			}
			o.Periods = append(o.Periods, p)
		}
		orgs = append(orgs, o)
	}
	return r.AddOrganizationSection(t, orgs...)
}

func decodePeriod(wp wirePeriod) (Period, error) {
	start, err := ParseYearMonth(wp.Start)
	if err != nil {
		return Period{}, err
	}
	end, err := ParseYearMonth(wp.End)
	if err != nil {
		return Period{}, err
	}
	return Period{Start: start, End: end, Title: wp.Title, Description: wp.Description}, nil
}

// ParseYearMonth parses the "YYYY-MM" form produced by YearMonth.String.
// The empty string yields the zero YearMonth.
func ParseYearMonth(s string) (YearMonth, error) {
	if s == "" {
		return YearMonth{}, nil
	}
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}
