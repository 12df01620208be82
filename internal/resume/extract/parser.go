// Package extract turns resume text into structured fields. Every extractor
// is an independent function over the same text; Parser composes them.
package extract

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/medflow/resume-parser/internal/resume/domain"
	"github.com/medflow/resume-parser/internal/resume/nlp"
	"github.com/medflow/resume-parser/pkg/logger"
)

// DefaultPhoneRegion is used to normalise numbers written without a country code
const DefaultPhoneRegion = "US"

// Parser runs all extractors over a document. It is safe for concurrent use.
type Parser struct {
	analyzer nlp.Analyzer
	geocoder Geocoder
	region   string
	logger   *logger.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithAnalyzer enables the language pipeline
func WithAnalyzer(a nlp.Analyzer) Option {
	return func(p *Parser) { p.analyzer = a }
}

// WithGeocoder enables online geocoding of the candidate's city
func WithGeocoder(g Geocoder) Option {
	return func(p *Parser) { p.geocoder = g }
}

// WithPhoneRegion sets the default region for phone normalisation
func WithPhoneRegion(region string) Option {
	return func(p *Parser) {
		if region != "" {
			p.region = region
		}
	}
}

// NewParser creates a parser. Without options it uses only the rule-based
// extractors and the built-in gazetteer.
func NewParser(log *logger.Logger, opts ...Option) *Parser {
	p := &Parser{
		region: DefaultPhoneRegion,
		logger: log.WithComponent("extract"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts the full resume record. It never fails: an extractor that
// panics is logged and its field is left empty.
func (p *Parser) Parse(ctx context.Context, text string) *domain.Resume {
	analysis := p.analyze(ctx, text)

	r := &domain.Resume{
		Email: []string{},
		SocialLinks: domain.SocialLinks{
			Others: []string{},
		},
		Skills: []string{},
		EducationDetails: domain.EducationDetails{
			Courses:         []string{},
			Specializations: []string{},
			College:         []string{},
		},
		Address: domain.Address{
			ZipCode:    []string{},
			Candidates: []string{},
		},
	}

	p.run(ctx, "name", func() { r.Name = strPtr(Name(text, analysis)) })
	p.run(ctx, "email", func() { r.Email = Emails(text) })
	p.run(ctx, "phone", func() {
		phone := Phone(text)
		r.PhoneNumber = strPtr(phone)
		r.PhoneE164 = strPtr(NormalizePhone(phone, p.region))
	})
	p.run(ctx, "linkedin", func() { r.SocialLinks.LinkedIn = LinkedIn(text) })
	p.run(ctx, "github", func() { r.SocialLinks.GitHub = GitHub(text) })
	p.run(ctx, "urls", func() { r.SocialLinks.Others = URLs(text) })
	p.run(ctx, "skills", func() { r.Skills = Skills(text) })
	p.run(ctx, "courses", func() { r.EducationDetails.Courses = Courses(text) })
	p.run(ctx, "specializations", func() { r.EducationDetails.Specializations = Specializations(text) })
	p.run(ctx, "college", func() { r.EducationDetails.College = Colleges(text) })
	p.run(ctx, "languages", func() { r.Languages = Languages(text) })
	p.run(ctx, "zip_code", func() { r.Address.ZipCode = ZipCodes(text) })
	p.run(ctx, "address_candidates", func() { r.Address.Candidates = AddressCandidates(text) })
	p.run(ctx, "experience", func() { r.Experience = strPtr(Experience(text)) })
	p.run(ctx, "location", func() {
		loc, err := ResolveLocation(ctx, text, analysis, p.geocoder)
		if err != nil {
			p.logger.Warn().Err(err).Msg("geocoding failed, using gazetteer")
		}
		r.Address.Location = loc
	})

	return r
}

// ParseLegacy extracts the reduced record served by POST /parse_resume
func (p *Parser) ParseLegacy(ctx context.Context, text string) *domain.LegacyResume {
	analysis := p.analyze(ctx, text)

	r := &domain.LegacyResume{
		Email:     []string{},
		Skills:    []string{},
		Education: []domain.EducationEntry{},
	}

	p.run(ctx, "name", func() { r.Name = strPtr(Name(text, analysis)) })
	p.run(ctx, "email", func() { r.Email = Emails(text) })
	p.run(ctx, "phone", func() { r.Phone = strPtr(Phone(text)) })
	p.run(ctx, "skills", func() { r.Skills = Skills(text) })
	p.run(ctx, "education", func() {
		sentences := SplitSentences(text)
		if analysis != nil && len(analysis.Sentences) > 0 {
			sentences = analysis.Sentences
		}
		r.Education = EducationEntries(sentences)
	})
	p.run(ctx, "experience", func() { r.Experience = strPtr(Experience(text)) })

	return r
}

func (p *Parser) analyze(ctx context.Context, text string) *nlp.Analysis {
	if p.analyzer == nil {
		return nil
	}

	var analysis *nlp.Analysis
	p.run(ctx, "nlp", func() {
		a, err := p.analyzer.Analyze(ctx, text)
		if err != nil {
			p.logger.Error().Err(err).Msg("language analysis failed, using rule-based fallbacks")
			return
		}
		analysis = a
	})
	return analysis
}

// run calls fn and turns a panic into a log line
func (p *Parser) run(ctx context.Context, extractor string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error().
				Str("extractor", extractor).
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("extractor failed")
		}
	}()

	if ctx.Err() != nil {
		return
	}
	fn()
}
