// Package nlp wraps the language pipeline used by the extractors: a
// part-of-speech tagger, a named-entity recognizer and a sentence splitter.
package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Coarse part-of-speech tags
const (
	POSProperNoun = "PROPN"
	POSNoun       = "NOUN"
	POSVerb       = "VERB"
	POSAdjective  = "ADJ"
	POSNumber     = "NUM"
	POSPunct      = "PUNCT"
	POSOther      = "X"
)

// Entity labels produced by the recognizer
const (
	LabelPerson = "PERSON"
	LabelGPE    = "GPE"
)

type Token struct {
	Text string
	Tag  string // fine-grained Penn Treebank tag
	POS  string // coarse tag
}

type Entity struct {
	Text  string
	Label string
}

// Analysis is the result of running the pipeline over one document
type Analysis struct {
	Tokens    []Token
	Entities  []Entity
	Sentences []string
}

// Analyzer runs the language pipeline
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// ProseAnalyzer is the production Analyzer backed by prose
type ProseAnalyzer struct{}

// NewProseAnalyzer returns an Analyzer using the models bundled with prose
func NewProseAnalyzer() *ProseAnalyzer {
	return &ProseAnalyzer{}
}

// Analyze tags, segments and runs entity recognition over text
func (a *ProseAnalyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("nlp: analyze document: %w", err)
	}

	analysis := &Analysis{}
	for _, tok := range doc.Tokens() {
		analysis.Tokens = append(analysis.Tokens, Token{
			Text: tok.Text,
			Tag:  tok.Tag,
			POS:  CoarsePOS(tok.Tag),
		})
	}
	for _, ent := range doc.Entities() {
		analysis.Entities = append(analysis.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	for _, sent := range doc.Sentences() {
		if s := strings.TrimSpace(sent.Text); s != "" {
			analysis.Sentences = append(analysis.Sentences, s)
		}
	}

	return analysis, nil
}

// CoarsePOS maps a Penn Treebank tag to a universal part-of-speech tag
func CoarsePOS(tag string) string {
	switch {
	case tag == "NNP" || tag == "NNPS":
		return POSProperNoun
	case strings.HasPrefix(tag, "NN"):
		return POSNoun
	case strings.HasPrefix(tag, "VB") || tag == "MD":
		return POSVerb
	case strings.HasPrefix(tag, "JJ"):
		return POSAdjective
	case tag == "CD":
		return POSNumber
	case tag == "" || strings.ContainsAny(tag[:1], ".,:()$#'\"`"):
		return POSPunct
	default:
		return POSOther
	}
}

// FirstEntity returns the text of the first entity with the given label
func (a *Analysis) FirstEntity(label string) (string, bool) {
	if a == nil {
		return "", false
	}
	for _, e := range a.Entities {
		if e.Label == label {
			return e.Text, true
		}
	}
	return "", false
}
