package extract

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/medflow/resume-parser/internal/resume/domain"
)

//go:embed data/specializations.csv
var specializationsCSV []byte

// Long degree names may carry an "in <field>" clause that runs to the end of the line
const inClause = `(?: in [\w \t&-]+)?`

var degreePatterns = []string{
	`B\.A\.`, `B\.S\.`, `B\.Sc\.`, `M\.A\.`, `M\.S\.`, `M\.Sc\.`, `Ph\.D\.`,
	`M\.B\.A\.`, `B\.E\.`, `M\.E\.`, `B\.Tech\.`, `M\.Tech\.`,
	`B\.Com\.`, `M\.Com\.`,
	`SSC\b`, `HSC\b`, `CBSE\b`, `ICSE\b`,
	`(?:State|Central|Secondary|Higher Secondary|Education|Matriculation) Board\b`,
	`Bachelor of Technology` + inClause,
	`Master of Technology` + inClause,
	`Bachelor of Science` + inClause,
	`Master of Science` + inClause,
	`Bachelor of Arts` + inClause,
	`Master of Arts` + inClause,
	`Doctor of Philosophy` + inClause,
	`Bachelor of Commerce` + inClause,
	`Master of Commerce` + inClause,
	`Bachelor of Engineering` + inClause,
	`Master of Engineering` + inClause,
	`Associate of Arts` + inClause,
	`Associate of Science` + inClause,
	`Associate of Applied Science` + inClause,
	`Juris Doctor` + inClause,
	`J\.D\.`,
	`Postgraduate Diploma` + inClause,
	`Graduate Diploma` + inClause,
	`Advanced Diploma` + inClause,
	`Diploma` + inClause,
}

var courseRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(degreePatterns, "|") + `)`)

// Keywords that mark a line as naming an educational institution
var institutionRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:school|college|univers|academy|faculty|institute|faculdades|schola|schule|lise|lyceum|lycee|polytechnic|kolej|ünivers|okul)`)

var yearRe = regexp.MustCompile(`(?:19|20)\d{2}`)

// Degree tokens recognised by the legacy education extractor, compared upper-cased
var educationTokens = toSet([]string{
	"BE", "B.E.", "B.E", "BS", "B.S",
	"ME", "M.E", "M.E.", "MS", "M.S",
	"BTECH", "B.TECH", "BACHELOR OF TECHNOLOGY", "M.TECH", "MTECH",
	"SSC", "HSC", "CBSE", "ICSE", "X", "XII",
})

var specializations = mustLoadSpecializations(specializationsCSV)

type specialization struct {
	name string
	re   *regexp.Regexp
}

func mustLoadSpecializations(data []byte) []specialization {
	specs, err := loadSpecializations(data)
	if err != nil {
		panic(err)
	}
	return specs
}

func loadSpecializations(data []byte) ([]specialization, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("extract: read specializations: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	specs := make([]specialization, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 || strings.TrimSpace(rec[1]) == "" {
			continue
		}
		name := strings.TrimSpace(rec[1])
		specs = append(specs, specialization{
			name: name,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
		})
	}
	return specs, nil
}

// Courses returns degree names in order of appearance
func Courses(text string) []string {
	matches := courseRe.FindAllString(text, -1)
	courses := make([]string, 0, len(matches))
	for _, m := range matches {
		courses = append(courses, strings.TrimRight(m, " \t-&"))
	}
	return courses
}

// Specializations returns the fields of study mentioned in text, in vocabulary order
func Specializations(text string) []string {
	found := []string{}
	for _, s := range specializations {
		if s.re.MatchString(text) {
			found = append(found, s.name)
		}
	}
	return found
}

// Colleges returns each line that names an educational institution
func Colleges(text string) []string {
	seen := make(map[string]bool)
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] || !institutionRe.MatchString(line) {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	return lines
}

// EducationEntries finds degree tokens sentence by sentence and attaches the
// first year found in that sentence or the next one. A token seen in several
// sentences keeps its first position and the context of its last sentence.
func EducationEntries(sentences []string) []domain.EducationEntry {
	var order []string
	contexts := make(map[string]string)

	for i, sentence := range sentences {
		next := ""
		if i+1 < len(sentences) {
			next = sentences[i+1]
		}

		for _, word := range strings.Fields(sentence) {
			word = strings.Map(func(r rune) rune {
				if strings.ContainsRune("?|$.!,", r) {
					return -1
				}
				return r
			}, word)
			if word == "" || !educationTokens[strings.ToUpper(word)] || stopWords[word] {
				continue
			}
			if _, ok := contexts[word]; !ok {
				order = append(order, word)
			}
			contexts[word] = sentence + " " + next
		}
	}

	entries := make([]domain.EducationEntry, 0, len(order))
	for _, degree := range order {
		entries = append(entries, domain.EducationEntry{
			Degree: degree,
			Year:   yearRe.FindString(contexts[degree]),
		})
	}
	return entries
}

// SplitSentences is the rule-based splitter used when no language pipeline
// is available. Lines are sentences; within a line a sentence ends at . ! or ?
// followed by a space, unless the word is a dotted abbreviation (B.Tech.) or
// a short title (Dr.).
func SplitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		start := 0
		for i := 0; i < len(line); i++ {
			if !strings.ContainsRune(".!?", rune(line[i])) {
				continue
			}
			if i+1 < len(line) && line[i+1] != ' ' {
				continue
			}
			if line[i] == '.' && isAbbreviation(line[start:i]) {
				continue
			}
			if s := strings.TrimSpace(line[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
		if s := strings.TrimSpace(line[start:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isAbbreviation(before string) bool {
	word := before
	if idx := strings.LastIndexByte(before, ' '); idx >= 0 {
		word = before[idx+1:]
	}
	if strings.Contains(word, ".") {
		return true
	}
	if word == "" || len(word) > 2 {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
