package resume

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxTitleLength bounds link names and period titles.
const MaxTitleLength = 255

// MaxYear is the last year a YearMonth can carry in its "YYYY-MM" form.
const MaxYear = 9999

// YearMonth is a calendar month. The zero value means "not set".
type YearMonth struct {
	Year  int
	Month time.Month
}

// IsZero reports whether ym is unset.
func (ym YearMonth) IsZero() bool {
	return ym == YearMonth{}
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) String() string {
	if ym.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Period is a time interval with a title and free text. A zero End means the
// period is ongoing.
type Period struct {
	Start       YearMonth
	End         YearMonth
	Title       string
	Description string
}

// NewPeriod builds a closed period. Use a zero endYear for an ongoing one.
func NewPeriod(startYear int, startMonth time.Month, endYear int, endMonth time.Month, title, description string) Period {
	p := Period{
		Start:       YearMonth{Year: startYear, Month: startMonth},
		Title:       title,
		Description: description,
	}
	if endYear != 0 {
		p.End = YearMonth{Year: endYear, Month: endMonth}
	}
	return p
}

// Ongoing reports whether the period has no end.
func (p Period) Ongoing() bool {
	return p.End.IsZero()
}

// Validate checks month ranges and ordering. The zero Period is the empty
// placeholder and is always valid.
func (p Period) Validate() error {
	if p == (Period{}) {
		return nil
	}
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Start, validation.By(requireYearMonth)),
		validation.Field(&p.End, validation.By(optionalYearMonth), validation.By(notBefore(p.Start))),
		validation.Field(&p.Title, validation.Length(0, MaxTitleLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: period: %w", ErrInvalidDocument, err)
	}
	return nil
}

func requireYearMonth(value any) error {
	ym, _ := value.(YearMonth)
	if ym.IsZero() {
		return errors.New("is required")
	}
	return optionalYearMonth(value)
}

func optionalYearMonth(value any) error {
	ym, _ := value.(YearMonth)
	if ym.IsZero() {
		return nil
	}
	if ym.Year < 1 || ym.Year > MaxYear {
		return fmt.Errorf("year must be between 1 and %d", MaxYear)
	}
	if ym.Month < time.January || ym.Month > time.December {
		return errors.New("month must be between 1 and 12")
	}
	return nil
}

func notBefore(start YearMonth) validation.RuleFunc {
	return func(value any) error {
		end, _ := value.(YearMonth)
		if !end.IsZero() && end.Before(start) {
			return errors.New("must not be before start")
		}
		return nil
	}
}

// Link is a named URL.
type Link struct {
	Name string
	URL  string
}

// Validate requires a name and, when present, an absolute http(s) URL.
func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&l.URL, validation.By(httpURL)),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

// Organization is an employer or institution with the periods spent there.
type Organization struct {
	Link    Link
	Periods []Period
}

// NewOrganization builds an organization from its link and periods.
func NewOrganization(name, url string, periods ...Period) Organization {
	return Organization{
		Link:    Link{Name: name, URL: url},
		Periods: append([]Period(nil), periods...),
	}
}

// Add appends a period.
func (o *Organization) Add(p Period) {
	o.Periods = append(o.Periods, p)
}

// IsEmpty reports whether o is the empty placeholder.
func (o Organization) IsEmpty() bool {
	if o.Link != (Link{}) {
		return false
	}
	for _, p := range o.Periods {
		if p != (Period{}) {
			return false
		}
	}
	return true
}

// Validate checks the link and every period. The empty placeholder is valid.
func (o Organization) Validate() error {
	if o.IsEmpty() {
		return nil
	}
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Link),
		validation.Field(&o.Periods),
	)
	if err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			return err
		}
		return fmt.Errorf("%w: organization: %w", ErrInvalidDocument, err)
	}
	return nil
}

// Equal reports structural equality.
func (o Organization) Equal(other Organization) bool {
	return o.Link == other.Link && slices.Equal(o.Periods, other.Periods)
}

func (o Organization) clone() Organization {
	return Organization{Link: o.Link, Periods: slices.Clone(o.Periods)}
}
