// internal/keywords/keywords.go
package keywords

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"book-codex/internal/models"
)

const defaultMaxKeywords = 8

var (
	sentenceRe = regexp.MustCompile(`[.!?\n]+`)
	tokenRe    = regexp.MustCompile(`[^A-Za-z0-9']+`)
)

// KeywordTranslator translates extracted keyword phrases. Implementations
// are expected to preserve order and length; a shorter result is tolerated.
type KeywordTranslator interface {
	TranslateKeywords(ctx context.Context, keywords []string) ([]string, error)
}

// Generator extracts and ranks keyword phrases from chapter text using
// degree/frequency co-occurrence scoring. Each call starts from empty
// counters, so output is deterministic for a given text.
type Generator struct {
	Translator  KeywordTranslator
	MaxKeywords int
}

// NewGenerator creates a keyword generator. maxKeywords <= 0 selects the
// default of 8.
func NewGenerator(translator KeywordTranslator, maxKeywords int) *Generator {
	if maxKeywords <= 0 {
		maxKeywords = defaultMaxKeywords
	}
	return &Generator{Translator: translator, MaxKeywords: maxKeywords}
}

// Extract returns the top ranked keyword phrases for the text, best first.
func (g *Generator) Extract(text string) []string {
	phrases := candidatePhrases(text)
	ranked := rankPhrases(phrases)

	keywords := make([]string, 0, g.MaxKeywords)
	for _, candidate := range ranked {
		if len(candidate.text) < 4 {
			continue
		}
		keywords = append(keywords, candidate.text)
		if len(keywords) >= g.MaxKeywords {
			break
		}
	}
	if len(keywords) > 0 {
		return keywords
	}

	// Fall back to the most frequent individual words when ranking
	// yields nothing usable.
	return mostFrequentWords(phrases, g.MaxKeywords)
}

// Generate extracts keywords from the source text and pairs each with its
// translation. A translation count mismatch is logged and the pairing is
// truncated to the shorter side.
func (g *Generator) Generate(ctx context.Context, englishText string) ([]models.KeywordPair, error) {
	english := g.Extract(englishText)
	portuguese, err := g.Translator.TranslateKeywords(ctx, english)
	if err != nil {
		return nil, fmt.Errorf("failed to translate keywords: %w", err)
	}
	if len(portuguese) != len(english) {
		log.Printf("Warning: keyword translation count mismatch: %d vs %d", len(portuguese), len(english))
	}

	n := len(english)
	if len(portuguese) < n {
		n = len(portuguese)
	}
	pairs := make([]models.KeywordPair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, models.KeywordPair{Pt: portuguese[i], En: english[i]})
	}
	return pairs, nil
}

// candidatePhrases splits the text into sentence spans and collects the
// maximal runs of non-stopword tokens within each span.
func candidatePhrases(text string) [][]string {
	var phrases [][]string
	for _, sentence := range sentenceRe.Split(text, -1) {
		var phrase []string
		for _, raw := range tokenRe.Split(sentence, -1) {
			word := strings.ToLower(raw)
			if word == "" || isDigits(word) {
				continue
			}
			if isStopword(word) {
				if len(phrase) > 0 {
					phrases = append(phrases, phrase)
					phrase = nil
				}
				continue
			}
			phrase = append(phrase, word)
		}
		if len(phrase) > 0 {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

type scoredPhrase struct {
	text  string
	score float64
}

// rankPhrases scores every distinct phrase by the sum of its members'
// degree/frequency ratios and returns them best first. Ties keep
// encounter order.
func rankPhrases(phrases [][]string) []scoredPhrase {
	freq := make(map[string]int)
	degree := make(map[string]int)
	for _, phrase := range phrases {
		length := len(phrase)
		for _, word := range phrase {
			freq[word]++
			degree[word] += length
		}
		for word := range distinct(phrase) {
			degree[word] += length - 1
		}
	}

	wordScores := make(map[string]float64, len(freq))
	for word, f := range freq {
		wordScores[word] = float64(degree[word]) / float64(f)
	}

	seen := make(map[string]struct{})
	var ranked []scoredPhrase
	for _, phrase := range phrases {
		joined := strings.Join(phrase, " ")
		if _, ok := seen[joined]; ok {
			continue
		}
		seen[joined] = struct{}{}
		var score float64
		for _, word := range phrase {
			score += wordScores[word]
		}
		ranked = append(ranked, scoredPhrase{text: joined, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// mostFrequentWords ranks individual words by raw occurrence count, ties
// broken by first appearance.
func mostFrequentWords(phrases [][]string, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, phrase := range phrases {
		for _, word := range phrase {
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func distinct(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
