package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/vitae/resume"
)

// Item is a raw DynamoDB item.
type Item = map[string]types.AttributeValue

// Attribute names owned by the store rather than the resume.
const (
	attrID        = "id"
	attrVersion   = "version"
	attrCreatedAt = "created_at"
	attrUpdatedAt = "updated_at"
)

type record struct {
	ID       string                   `dynamodbav:"id"`
	FullName string                   `dynamodbav:"full_name"`
	Location string                   `dynamodbav:"location,omitempty"`
	Contacts map[string]string        `dynamodbav:"contacts,omitempty"`
	Sections map[string]sectionRecord `dynamodbav:"sections,omitempty"`
}

type sectionRecord struct {
	Kind          string               `dynamodbav:"kind"`
	Items         []string             `dynamodbav:"items,omitempty"`
	Organizations []organizationRecord `dynamodbav:"organizations,omitempty"`
}

type organizationRecord struct {
	Name    string         `dynamodbav:"name,omitempty"`
	URL     string         `dynamodbav:"url,omitempty"`
	Periods []periodRecord `dynamodbav:"periods,omitempty"`
}

type periodRecord struct {
	Start       string `dynamodbav:"start,omitempty"`
	End         string `dynamodbav:"end,omitempty"`
	Title       string `dynamodbav:"title,omitempty"`
	Description string `dynamodbav:"description,omitempty"`
}

// EncodeItem converts r into a table item. Store-managed attributes
// (version, timestamps) are not included.
func EncodeItem(r *resume.Resume) (Item, error) {
	rec := record{
		ID:       r.ID(),
		FullName: r.FullName(),
		Location: r.Location(),
	}
	if contacts := r.Contacts(); len(contacts) > 0 {
		rec.Contacts = make(map[string]string, len(contacts))
		for t, v := range contacts {
			rec.Contacts[t.String()] = v
		}
	}
	if sections := r.Sections(); len(sections) > 0 {
		rec.Sections = make(map[string]sectionRecord, len(sections))
		for t, s := range sections {
			rec.Sections[t.String()] = encodeSection(s)
		}
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal resume %s: %w", r.ID(), err)
	}
	return item, nil
}

func encodeSection(s resume.Section) sectionRecord {
	sr := sectionRecord{Kind: s.Kind().String()}
	switch s := s.(type) {
	case resume.TextSection:
		sr.Items = s.Items
	case resume.OrganizationSection:
		sr.Organizations = make([]organizationRecord, 0, len(s.Organizations))
		for _, o := range s.Organizations {
			orgRec := organizationRecord{Name: o.Link.Name, URL: o.Link.URL}
			for _, p := range o.Periods {
				orgRec.Periods = append(orgRec.Periods, periodRecord{
					Start:       p.Start.String(),
					End:         p.End.String(),
					Title:       p.Title,
					Description: p.Description,
				})
			}
			sr.Organizations = append(sr.Organizations, orgRec)
		}
	}
	return sr
}

// DecodeItem rebuilds a resume from a table item, applying every
// construction rule. Unknown attributes are ignored.
func DecodeItem(item Item) (*resume.Resume, error) {
	var rec record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedItem, err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedItem)
	}

	name := rec.FullName
	r, err := resume.Build(resume.Input{ID: rec.ID, FullName: &name, Location: rec.Location})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedItem, rec.ID, err)
	}
	for k, v := range rec.Contacts {
		t, err := resume.ParseContactType(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedItem, rec.ID, err)
		}
		r.AddContact(t, v)
	}
	for k, sr := range rec.Sections {
		t, err := resume.ParseSectionType(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedItem, rec.ID, err)
		}
		if err := decodeSection(r, t, sr); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedItem, rec.ID, err)
		}
	}
	return r, nil
}

func decodeSection(r *resume.Resume, t resume.SectionType, sr sectionRecord) error {
	if sr.Kind != t.Kind().String() {
		return fmt.Errorf("%w: %s holds %s sections, got %q", resume.ErrSectionKind, t, t.Kind(), sr.Kind)
	}
	if t.Kind() == resume.KindText {
		return r.AddTextSection(t, sr.Items...)
	}
	orgs := make([]resume.Organization, 0, len(sr.Organizations))
	for _, orgRec := range sr.Organizations {
		o := resume.Organization{Link: resume.Link{Name: orgRec.Name, URL: orgRec.URL}}
		for _, pr := range orgRec.Periods {
			start, err := resume.ParseYearMonth(pr.Start)
			if err != nil {
				return err
			}
			end, err := resume.ParseYearMonth(pr.End)
			if err != nil {
				return err
			}
			o.Add(resume.Period{Start: start, End: end, Title: pr.Title, Description: pr.Description})
		}
		orgs = append(orgs, o)
	}
	return r.AddOrganizationSection(t, orgs...)
}

// Key returns the primary key of the resume with the given id.
func Key(id string) Item {
	return Item{attrID: &types.AttributeValueMemberS{Value: id}}
}
