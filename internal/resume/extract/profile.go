package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/medflow/resume-parser/internal/resume/nlp"
)

var languageNames = []string{
	"English", "Marathi", "Telugu", "Hindi", "Malayalam", "Kannada", "Tamil",
	"Spanish", "French", "Urdu", "Bengali", "Punjabi", "Gujarati",
}

var languageRe = regexp.MustCompile(`(?i)\b(` + strings.Join(languageNames, "|") + `)\b`)

var experienceRe = regexp.MustCompile(`(?i)\b\d{1,2}\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:professional\s+|work\s+|industry\s+)?experience\b`)

// number of leading lines searched for a name when no pipeline is available
const nameLineWindow = 5

// Languages returns the spoken languages mentioned, with canonical
// capitalisation, sorted. It returns nil when none are found.
func Languages(text string) []string {
	matches := languageRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	for i, m := range matches {
		matches[i] = titleCase(m)
	}
	return uniqueSorted(matches)
}

// Experience returns the first "N years of experience" phrase
func Experience(text string) string {
	return experienceRe.FindString(text)
}

// Name returns the candidate's name: the first two consecutive proper nouns,
// else the first PERSON entity, else a name-shaped line near the top.
func Name(text string, analysis *nlp.Analysis) string {
	if analysis != nil {
		for i := 0; i+1 < len(analysis.Tokens); i++ {
			a, b := analysis.Tokens[i], analysis.Tokens[i+1]
			if a.POS == nlp.POSProperNoun && b.POS == nlp.POSProperNoun {
				return a.Text + " " + b.Text
			}
		}
		if person, ok := analysis.FirstEntity(nlp.LabelPerson); ok {
			return person
		}
	}
	return nameFromLines(text)
}

func nameFromLines(text string) string {
	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if looksLikeName(line) {
			return line
		}
		checked++
		if checked == nameLineWindow {
			break
		}
	}
	return ""
}

func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != '.' {
				return false
			}
		}
	}
	return true
}
