package resume_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jacentio/vitae/resume"
)

func TestPeriodValidate(t *testing.T) {
	tests := []struct {
		name    string
		period  resume.Period
		wantErr bool
	}{
		{"empty placeholder", resume.Period{}, false},
		{"closed", resume.NewPeriod(2020, time.January, 2023, time.December, "Dev", ""), false},
		{"ongoing", resume.NewPeriod(2021, time.March, 0, 0, "Lead", ""), false},
		{"same month", resume.NewPeriod(2021, time.March, 2021, time.March, "", ""), false},
		{"end before start", resume.NewPeriod(2022, time.May, 2021, time.May, "", ""), true},
		{"end month before start", resume.NewPeriod(2022, time.May, 2022, time.April, "", ""), true},
		{"bad start month", resume.NewPeriod(2022, 13, 0, 0, "", ""), true},
		{"bad end month", resume.NewPeriod(2022, time.May, 2023, 0, "", ""), true},
		{"last four-digit year", resume.NewPeriod(9999, time.December, 0, 0, "", ""), false},
		{"five-digit start year", resume.NewPeriod(10000, time.January, 0, 0, "Dev", ""), true},
		{"five-digit end year", resume.NewPeriod(2020, time.January, 10000, time.January, "Dev", ""), true},
		{"zero start year", resume.NewPeriod(0, time.January, 0, 0, "Dev", ""), true},
		{"title only", resume.Period{Title: "Dev"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if tt.wantErr {
				if !errors.Is(err, resume.ErrInvalidDocument) {
					t.Errorf("expected ErrInvalidDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPeriodOngoing(t *testing.T) {
	if !resume.NewPeriod(2021, time.March, 0, 0, "", "").Ongoing() {
		t.Error("expected zero end year to be ongoing")
	}
	if resume.NewPeriod(2021, time.March, 2022, time.March, "", "").Ongoing() {
		t.Error("expected closed period")
	}
}

func TestOrganizationValidate(t *testing.T) {
	good := resume.NewPeriod(2020, time.January, 2021, time.January, "Dev", "")
	bad := resume.NewPeriod(2020, time.January, 2019, time.January, "Dev", "")

	tests := []struct {
		name    string
		org     resume.Organization
		wantErr bool
	}{
		{"complete", resume.NewOrganization("Acme", "https://acme.example", good), false},
		{"no url", resume.NewOrganization("Acme", "", good), false},
		{"placeholder", resume.Organization{Periods: []resume.Period{{}}}, false},
		{"missing name", resume.NewOrganization("", "https://acme.example"), true},
		{"relative url", resume.NewOrganization("Acme", "acme.example"), true},
		{"ftp url", resume.NewOrganization("Acme", "ftp://acme.example"), true},
		{"bad period", resume.NewOrganization("Acme", "", bad), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.org.Validate()
			if tt.wantErr {
				if !errors.Is(err, resume.ErrInvalidDocument) {
					t.Errorf("expected ErrInvalidDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddOrganizationSection_Validates(t *testing.T) {
	r := mustNew(t, "Alice", "")
	err := r.AddOrganizationSection(resume.Education, resume.NewOrganization("", "http://x.example"))
	if !errors.Is(err, resume.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
	if _, ok := r.Section(resume.Education); ok {
		t.Error("expected no section written on validation failure")
	}
}

func TestAddSection_ValidatesOrganizations(t *testing.T) {
	r := mustNew(t, "Alice", "")
	org := resume.NewOrganization("Acme", "", resume.NewPeriod(resume.MaxYear+1, time.January, 0, 0, "Dev", ""))
	err := r.AddSection(resume.Experience, resume.NewOrganizationSection(org))
	if !errors.Is(err, resume.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
	if _, ok := r.Section(resume.Experience); ok {
		t.Error("expected no section written on validation failure")
	}
}

func TestOrganizationEqual(t *testing.T) {
	p := resume.NewPeriod(2020, time.January, 0, 0, "Dev", "Go")
	a := resume.NewOrganization("Acme", "https://acme.example", p)
	b := resume.NewOrganization("Acme", "https://acme.example", p)
	if !a.Equal(b) {
		t.Error("expected structurally equal organizations")
	}
	b.Add(p)
	if a.Equal(b) {
		t.Error("expected different period lists to be unequal")
	}
}

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected resume.YearMonth
		wantErr  bool
	}{
		{"", resume.YearMonth{}, false},
		{"2020-01", resume.YearMonth{Year: 2020, Month: time.January}, false},
		{"1999-12", resume.YearMonth{Year: 1999, Month: time.December}, false},
		{"2020-13", resume.YearMonth{}, true},
		{"2020", resume.YearMonth{}, true},
		{"01-2020", resume.YearMonth{}, true},
		{"0001-01", resume.YearMonth{Year: 1, Month: time.January}, false},
		{"9999-12", resume.YearMonth{Year: resume.MaxYear, Month: time.December}, false},
		{"10000-01", resume.YearMonth{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := resume.ParseYearMonth(tt.input)
			if tt.wantErr {
				if !errors.Is(err, resume.ErrInvalidDocument) {
					t.Errorf("expected ErrInvalidDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
			if got.String() != tt.input {
				t.Errorf("expected String() %q, got %q", tt.input, got.String())
			}
		})
	}
}
