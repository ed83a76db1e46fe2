package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"book-codex/internal/models"
)

const captionLabel = "Palavras-chave: "

var captionRe = regexp.MustCompile(`(?s)\n\nPalavras-chave:.*\z`)

// KeywordCaption formats the human-readable keyword line appended to a
// translated chapter body.
func KeywordCaption(pairs []models.KeywordPair) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, fmt.Sprintf("%s (%s)", pair.Pt, pair.En))
	}
	return captionLabel + strings.Join(parts, "; ")
}

// StripKeywordCaption removes a previously appended keyword line so the
// keyword stage can be re-run without stacking captions.
func StripKeywordCaption(text string) string {
	return captionRe.ReplaceAllString(text, "")
}
