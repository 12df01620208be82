package processor

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/medflow/resume-parser/internal/resume/domain"
	"golang.org/x/text/unicode/norm"
)

// TextProcessor accepts plain-text resumes as they are.
type TextProcessor struct{}

func NewTextProcessor() *TextProcessor {
	return &TextProcessor{}
}

func (p *TextProcessor) Name() string { return "text" }

func (p *TextProcessor) CanProcess(ct domain.ContentType) bool {
	return ct == domain.ContentTypeText
}

func (p *TextProcessor) Process(ctx context.Context, data []byte) (*domain.Document, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("text: document is not valid UTF-8")
	}

	return &domain.Document{
		Text:        NormalizeText(string(data)),
		PageCount:   1,
		ContentType: domain.ContentTypeText,
	}, nil
}

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
	lineEndings     = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n", "\x00", "")
)

// NormalizeText applies NFKC (which expands ligatures such as "ﬁ" that PDF
// text layers often contain), unifies line endings and collapses runs of
// blank lines.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = lineEndings.Replace(s)
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
