package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTranslator prefixes each keyword, optionally dropping entries to
// simulate a short response from the collaborator.
type fakeTranslator struct {
	drop int
	err  error
}

func (f *fakeTranslator) TranslateKeywords(_ context.Context, kws []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0, len(kws))
	for _, kw := range kws {
		out = append(out, "pt-"+kw)
	}
	if f.drop > 0 && len(out) >= f.drop {
		out = out[:len(out)-f.drop]
	}
	return out, nil
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Realist theory explains state behavior. State behavior shapes realist theory. Anarchy defines the international system."
	gen := NewGenerator(nil, 8)

	first := gen.Extract(text)
	second := gen.Extract(text)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestExtract_MultiWordPhraseRanksAboveSingleWord(t *testing.T) {
	// "alpha beta gamma" scores 15 (each token degree 5, freq 1),
	// "delta" scores 1.
	gen := NewGenerator(nil, 8)
	got := gen.Extract("alpha beta gamma. delta.")

	require.Len(t, got, 2)
	assert.Equal(t, "alpha beta gamma", got[0])
	assert.Equal(t, "delta", got[1])
}

func TestExtract_DeduplicatesRepeatedPhrase(t *testing.T) {
	gen := NewGenerator(nil, 8)
	got := gen.Extract("Power politics endures. Power politics always returns.")

	count := 0
	for _, kw := range got {
		if kw == "power politics" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtract_RejectsShortPhrases(t *testing.T) {
	gen := NewGenerator(nil, 8)
	got := gen.Extract("war. peace endures.")

	assert.Equal(t, []string{"peace endures"}, got)
}

func TestExtract_StopwordsOnlyYieldsEmpty(t *testing.T) {
	gen := NewGenerator(nil, 8)
	assert.Empty(t, gen.Extract("the and of but with from is are was"))
}

func TestExtract_FallbackToFrequentWords(t *testing.T) {
	// Every candidate joins to fewer than 4 characters, so ranking
	// rejects them all and the frequency fallback kicks in.
	gen := NewGenerator(nil, 8)
	got := gen.Extract("ox. cat. ox.")

	require.Equal(t, []string{"ox", "cat"}, got)
}

func TestExtract_DropsDigitTokens(t *testing.T) {
	gen := NewGenerator(nil, 8)
	got := gen.Extract("treaty 1648 westphalia sovereignty.")

	require.NotEmpty(t, got)
	for _, kw := range got {
		assert.NotContains(t, kw, "1648")
	}
}

func TestExtract_RespectsMaxKeywords(t *testing.T) {
	text := "alpha one. beta two. gamma three. delta four. epsilon five. zeta six."
	gen := NewGenerator(nil, 3)
	assert.LessOrEqual(t, len(gen.Extract(text)), 3)
}

func TestGenerate_PairsKeywordsWithTranslations(t *testing.T) {
	gen := NewGenerator(&fakeTranslator{}, 8)
	pairs, err := gen.Generate(context.Background(), "alpha beta gamma. delta epsilon.")
	require.NoError(t, err)
	require.NotEmpty(t, pairs)

	for _, pair := range pairs {
		assert.Equal(t, "pt-"+pair.En, pair.Pt)
	}
}

func TestGenerate_TruncatesOnCountMismatch(t *testing.T) {
	gen := NewGenerator(&fakeTranslator{drop: 1}, 8)
	english := gen.Extract("alpha beta gamma. delta epsilon.")
	require.NotEmpty(t, english)

	pairs, err := gen.Generate(context.Background(), "alpha beta gamma. delta epsilon.")
	require.NoError(t, err)
	assert.Len(t, pairs, len(english)-1)
}

func TestGenerate_PropagatesTranslatorError(t *testing.T) {
	wantErr := errors.New("model offline")
	gen := NewGenerator(&fakeTranslator{err: wantErr}, 8)

	_, err := gen.Generate(context.Background(), "alpha beta gamma.")
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestNewGenerator_DefaultsMaxKeywords(t *testing.T) {
	gen := NewGenerator(nil, 0)
	assert.Equal(t, defaultMaxKeywords, gen.MaxKeywords)
}

func TestCandidatePhrases_SplitOnStopwordsAndSentences(t *testing.T) {
	phrases := candidatePhrases("balance of power. great powers compete")
	assert.Equal(t, [][]string{
		{"balance"},
		{"power"},
		{"great", "powers", "compete"},
	}, phrases)
}
