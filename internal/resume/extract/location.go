package extract

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/medflow/resume-parser/internal/resume/domain"
	"github.com/medflow/resume-parser/internal/resume/geocode"
	"github.com/medflow/resume-parser/internal/resume/nlp"
)

//go:embed data/cities.csv
var citiesCSV []byte

var (
	zipRe     = regexp.MustCompile(`\b(?:\d{5}(?:-\d{4})?|\d{6})\b`)
	addressRe = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:[ -][A-Z][a-zA-Z]+)*,[ \t]*[A-Z]{2}[ \t]+\d{5}(?:-\d{4})?\b`)
)

// Geocoder resolves a place name to an address
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocode.Place, error)
}

// City is a gazetteer entry
type City struct {
	Name    string
	State   string
	Country string
}

type gazetteer struct {
	byName map[string]City
	re     *regexp.Regexp
}

var cities = mustLoadGazetteer(citiesCSV)

func mustLoadGazetteer(data []byte) *gazetteer {
	g, err := loadGazetteer(data)
	if err != nil {
		panic(err)
	}
	return g
}

func loadGazetteer(data []byte) (*gazetteer, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("extract: read gazetteer: %w", err)
	}

	g := &gazetteer{byName: make(map[string]City)}
	var names []string
	for i, rec := range records {
		if i == 0 || len(rec) < 3 || rec[0] == "" {
			continue
		}
		c := City{Name: rec[0], State: rec[1], Country: rec[2]}
		g.byName[strings.ToLower(c.Name)] = c
		names = append(names, regexp.QuoteMeta(c.Name))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("extract: gazetteer is empty")
	}

	// Longest names first so "New Delhi" wins over "Delhi" at the same position
	sort.SliceStable(names, func(a, b int) bool { return len(names[a]) > len(names[b]) })
	g.re = regexp.MustCompile(`\b(?:` + strings.Join(names, "|") + `)\b`)
	return g, nil
}

// FindCity returns the known city that appears earliest in text
func FindCity(text string) (City, bool) {
	m := cities.re.FindString(text)
	if m == "" {
		return City{}, false
	}
	return cities.byName[strings.ToLower(m)], true
}

// LookupCity returns the gazetteer entry for name, matched case-insensitively
func LookupCity(name string) (City, bool) {
	c, ok := cities.byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ZipCodes returns every postal-code-like number in order of appearance
func ZipCodes(text string) []string {
	zips := zipRe.FindAllString(text, -1)
	if zips == nil {
		return []string{}
	}
	return zips
}

// AddressCandidates returns "City, ST 12345" fragments, unique, in order
func AddressCandidates(text string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range addressRe.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// ResolveLocation finds the candidate's city and fills in the administrative
// parts. The gazetteer is consulted first, then GPE entities. When geo is set
// its answer wins; a geocoder error is returned alongside the gazetteer
// fallback so the caller can log it.
func ResolveLocation(ctx context.Context, text string, analysis *nlp.Analysis, geo Geocoder) (*domain.Location, error) {
	city, ok := FindCity(text)
	if !ok {
		gpe, found := analysis.FirstEntity(nlp.LabelGPE)
		if !found {
			return nil, nil
		}
		city, ok = LookupCity(gpe)
		if !ok {
			city = City{Name: gpe}
		}
	}

	loc := &domain.Location{City: strPtr(city.Name)}

	var geoErr error
	if geo != nil {
		place, err := geo.Geocode(ctx, city.Name)
		if err == nil && place != nil {
			applyPlace(loc, place)
			return loc, nil
		}
		geoErr = err
	}

	loc.State = strPtr(city.State)
	loc.Country = strPtr(city.Country)
	return loc, geoErr
}

func applyPlace(loc *domain.Location, place *geocode.Place) {
	loc.Formatted = strPtr(place.DisplayName)

	if place.Structured() {
		loc.State = strPtr(place.State)
		loc.PostalCode = strPtr(place.PostalCode)
		loc.Country = strPtr(place.Country)
		return
	}

	state, postal, country := geocode.SplitDisplayName(place.DisplayName)
	loc.State = strPtr(state)
	loc.PostalCode = strPtr(postal)
	loc.Country = strPtr(country)
}
