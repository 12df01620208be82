package testutil

import (
	"fmt"
	"strings"
)

// ResumeFixture describes a synthetic resume rendered as plain text
type ResumeFixture struct {
	Name       string
	Email      string
	Phone      string
	LinkedIn   string
	GitHub     string
	Address    string
	Summary    string
	Skills     []string
	Education  []string
	Languages  []string
	Experience string
}

// Text renders the fixture the way a PDF text layer usually comes out:
// one field per line, section headings in capitals.
func (r ResumeFixture) Text() string {
	var b strings.Builder

	writeLine := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	writeLine(r.Name)
	writeLine(r.Address)
	writeLine(r.Email)
	writeLine(r.Phone)
	writeLine(r.LinkedIn)
	writeLine(r.GitHub)

	if r.Summary != "" {
		b.WriteString("\nSUMMARY\n")
		writeLine(r.Summary)
	}
	if r.Experience != "" {
		writeLine(r.Experience)
	}
	if len(r.Skills) > 0 {
		b.WriteString("\nSKILLS\n")
		writeLine(strings.Join(r.Skills, ", "))
	}
	if len(r.Education) > 0 {
		b.WriteString("\nEDUCATION\n")
		for _, e := range r.Education {
			writeLine(e)
		}
	}
	if len(r.Languages) > 0 {
		b.WriteString("\nLANGUAGES\n")
		writeLine(strings.Join(r.Languages, ", "))
	}

	return b.String()
}

// Bytes returns Text as a byte slice
func (r ResumeFixture) Bytes() []byte {
	return []byte(r.Text())
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

func (f *FixtureFactory) nextSeq() int {
	f.sequence++
	return f.sequence
}

// Resume creates a resume fixture with defaults
func (f *FixtureFactory) Resume(opts ...func(*ResumeFixture)) ResumeFixture {
	seq := f.nextSeq()

	r := ResumeFixture{
		Name:     "John Smith",
		Email:    fmt.Sprintf("john.smith%d@example.com", seq),
		Phone:    "+1 201-555-0123",
		LinkedIn: "linkedin.com/in/johnsmith",
		GitHub:   "github.com/jsmith",
		Address:  "Austin, TX 78701",
		Summary:  "Backend engineer building data pipelines.",
		Skills:   []string{"Python", "Machine Learning", "Docker", "SQL"},
		Education: []string{
			"Bachelor of Technology in Computer Science",
			"Stanford University 2016",
		},
		Languages:  []string{"English", "Spanish"},
		Experience: "5+ years of experience in software development.",
	}

	for _, opt := range opts {
		opt(&r)
	}

	return r
}

// WithName sets the candidate name line
func WithName(name string) func(*ResumeFixture) {
	return func(r *ResumeFixture) {
		r.Name = name
	}
}

// WithEmail sets the email line
func WithEmail(email string) func(*ResumeFixture) {
	return func(r *ResumeFixture) {
		r.Email = email
	}
}

// WithPhone sets the phone line
func WithPhone(phone string) func(*ResumeFixture) {
	return func(r *ResumeFixture) {
		r.Phone = phone
	}
}

// WithSkills replaces the skills section
func WithSkills(skills ...string) func(*ResumeFixture) {
	return func(r *ResumeFixture) {
		r.Skills = skills
	}
}

// WithEducation replaces the education section
func WithEducation(lines ...string) func(*ResumeFixture) {
	return func(r *ResumeFixture) {
		r.Education = lines
	}
}

// WithoutContact clears every contact line
func WithoutContact() func(*ResumeFixture) {
	return func(r *ResumeFixture) {
		r.Email = ""
		r.Phone = ""
		r.LinkedIn = ""
		r.GitHub = ""
		r.Address = ""
	}
}
