package nlp

import (
	"context"
	"testing"

	"github.com/medflow/resume-parser/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoarsePOS(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"NNP", POSProperNoun},
		{"NNPS", POSProperNoun},
		{"NN", POSNoun},
		{"NNS", POSNoun},
		{"VBD", POSVerb},
		{"MD", POSVerb},
		{"JJR", POSAdjective},
		{"CD", POSNumber},
		{",", POSPunct},
		{"(", POSPunct},
		{"", POSPunct},
		{"IN", POSOther},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, CoarsePOS(tt.tag))
		})
	}
}

func TestAnalysis_FirstEntity(t *testing.T) {
	a := &Analysis{Entities: []Entity{
		{Text: "Google", Label: "ORG"},
		{Text: "Berlin", Label: LabelGPE},
		{Text: "Paris", Label: LabelGPE},
	}}

	got, ok := a.FirstEntity(LabelGPE)
	assert.True(t, ok)
	assert.Equal(t, "Berlin", got)

	_, ok = a.FirstEntity(LabelPerson)
	assert.False(t, ok)

	var empty *Analysis
	_, ok = empty.FirstEntity(LabelPerson)
	assert.False(t, ok)
}

func TestProseAnalyzer_Analyze(t *testing.T) {
	// Loads the tagger and NER models
	testutil.SkipIfShort(t)
	a := NewProseAnalyzer()

	got, err := a.Analyze(testutil.DefaultTestContext(t), "I moved to Chicago last year. Now I write Go.")
	require.NoError(t, err)

	assert.NotEmpty(t, got.Tokens)
	assert.Len(t, got.Sentences, 2)
	for _, tok := range got.Tokens {
		assert.Equal(t, CoarsePOS(tok.Tag), tok.POS)
	}
}

func TestProseAnalyzer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProseAnalyzer().Analyze(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}
