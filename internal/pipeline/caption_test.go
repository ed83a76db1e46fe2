package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"book-codex/internal/models"
)

func TestKeywordCaption(t *testing.T) {
	pairs := []models.KeywordPair{
		{Pt: "equilíbrio de poder", En: "balance of power"},
		{Pt: "anarquia", En: "anarchy"},
	}
	want := "Palavras-chave: equilíbrio de poder (balance of power); anarquia (anarchy)"
	assert.Equal(t, want, KeywordCaption(pairs))
}

func TestStripKeywordCaption(t *testing.T) {
	body := "Primeiro parágrafo.\n\nSegundo parágrafo."
	withCaption := body + "\n\nPalavras-chave: anarquia (anarchy)"

	assert.Equal(t, body, StripKeywordCaption(withCaption))
	assert.Equal(t, body, StripKeywordCaption(body), "text without caption is untouched")
}

func TestStripKeywordCaption_MultilineTail(t *testing.T) {
	body := "Texto."
	withCaption := body + "\n\nPalavras-chave: um (one);\ndois (two)"
	assert.Equal(t, body, StripKeywordCaption(withCaption))
}

func TestStripThenAppendRoundTrip(t *testing.T) {
	body := "Corpo do capítulo."
	pairs := []models.KeywordPair{{Pt: "estado", En: "state"}}

	once := body + "\n\n" + KeywordCaption(pairs)
	again := StripKeywordCaption(once) + "\n\n" + KeywordCaption(pairs)
	assert.Equal(t, once, again, "re-running the keyword stage must not stack captions")
}
