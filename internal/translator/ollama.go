// internal/translator/ollama.go
package translator

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

const (
	textPrompt    = "Translate the following English text into European Portuguese. Reply with the translation only, no commentary.\n\n"
	keywordPrompt = "Translate the following English phrase into European Portuguese. Reply with the translated phrase only.\n\n"
)

var spacingRe = regexp.MustCompile(`\s+`)

// OllamaTranslator translates through a local Ollama model.
type OllamaTranslator struct {
	Client        *api.Client
	Model         string
	MaxRetries    int
	Timeout       time.Duration
	MaxChunkChars int
}

// NewOllamaTranslator creates a translator backed by the Ollama API. The
// host is resolved from the OLLAMA_HOST environment via envconfig.
func NewOllamaTranslator(model string) *OllamaTranslator {
	client := api.NewClient(envconfig.Host(), http.DefaultClient)

	return &OllamaTranslator{
		Client:        client,
		Model:         model,
		MaxRetries:    3,
		Timeout:       time.Second * 120,
		MaxChunkChars: 400,
	}
}

// TranslateText translates prose paragraph by paragraph so the blank-line
// paragraph structure survives translation.
func (t *OllamaTranslator) TranslateText(ctx context.Context, text string) (string, error) {
	paragraphs := strings.Split(text, "\n\n")
	translated := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		out, err := t.translateParagraph(ctx, paragraph)
		if err != nil {
			return "", err
		}
		translated = append(translated, out)
	}
	return strings.TrimSpace(strings.Join(translated, "\n\n")), nil
}

// TranslateKeywords translates each phrase individually, preserving order.
func (t *OllamaTranslator) TranslateKeywords(ctx context.Context, keywords []string) ([]string, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}

	translated := make([]string, 0, len(cleaned))
	for _, kw := range cleaned {
		out, err := t.generate(ctx, keywordPrompt+kw)
		if err != nil {
			return nil, fmt.Errorf("failed to translate keyword %q: %w", kw, err)
		}
		translated = append(translated, normalizeSpacing(out))
	}
	return translated, nil
}

// translateParagraph splits a paragraph into sentence windows no longer
// than MaxChunkChars, translates each window and rejoins the results.
func (t *OllamaTranslator) translateParagraph(ctx context.Context, paragraph string) (string, error) {
	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return "", nil
	}

	chunks := chunkText(paragraph, t.MaxChunkChars)
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := t.generate(ctx, textPrompt+chunk)
		if err != nil {
			return "", fmt.Errorf("failed to translate paragraph chunk: %w", err)
		}
		parts = append(parts, strings.TrimSpace(out))
	}
	return normalizeSpacing(strings.Join(parts, " ")), nil
}

// generate runs one completion with retries and a per-request timeout.
func (t *OllamaTranslator) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for retries := 0; retries <= t.MaxRetries; retries++ {
		if retries > 0 {
			time.Sleep(time.Duration(retries) * time.Second)
		}

		out, err := t.complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("translation failed after %d retries: %w", t.MaxRetries, lastErr)
}

func (t *OllamaTranslator) complete(ctx context.Context, prompt string) (string, error) {
	req := api.GenerateRequest{
		Model:  t.Model,
		Prompt: prompt,
		Options: map[string]interface{}{
			"temperature": 0.1,
		},
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	var responseBuilder strings.Builder
	err := t.Client.Generate(ctxWithTimeout, &req, func(resp api.GenerateResponse) error {
		_, err := responseBuilder.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate translation: %w", err)
	}

	return responseBuilder.String(), nil
}

// chunkText packs whole sentences into windows of at most maxChars. A
// single sentence longer than the window is emitted on its own.
func chunkText(text string, maxChars int) []string {
	var chunks []string
	var chunk string
	for _, sentence := range splitSentences(text) {
		prospective := strings.TrimSpace(chunk + " " + sentence)
		if len(prospective) <= maxChars || chunk == "" {
			chunk = prospective
			continue
		}
		chunks = append(chunks, chunk)
		chunk = sentence
	}
	if chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitSentences cuts after sentence punctuation that is followed by
// whitespace, so abbreviations inside a token survive intact.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(text) && isSpaceByte(text[i+1]) {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			j := i + 1
			for j < len(text) && isSpaceByte(text[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func normalizeSpacing(text string) string {
	return strings.TrimSpace(spacingRe.ReplaceAllString(text, " "))
}
