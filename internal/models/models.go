package models

import (
	"regexp"
	"strings"
)

// KeywordPair holds one keyword in both languages.
type KeywordPair struct {
	Pt string `json:"pt"`
	En string `json:"en"`
}

// ChapterRecord is the structured representation of one detected chapter
// as it moves through the pipeline stages.
type ChapterRecord struct {
	Number         int           `json:"number"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	EnglishText    string        `json:"english_text"`
	PortugueseText *string       `json:"portuguese_text"`
	Keywords       []KeywordPair `json:"keywords"`
}

// Translated reports whether the translation stage has filled this record.
func (c *ChapterRecord) Translated() bool {
	return c.PortugueseText != nil && *c.PortugueseText != ""
}

// SetPortugueseText stores the translated body text.
func (c *ChapterRecord) SetPortugueseText(text string) {
	c.PortugueseText = &text
}

var (
	slugQuoteRe = regexp.MustCompile(`['"]`)
	slugSepRe   = regexp.MustCompile(`[\s_/]+`)
	slugCleanRe = regexp.MustCompile(`[^a-z0-9-]+`)
)

// SlugPlaceholder is used when a title yields no slug characters at all.
const SlugPlaceholder = "capitulo"

// Slugify creates a filesystem-friendly slug from a title. The result is
// lowercase, hyphen-separated and never empty.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = slugQuoteRe.ReplaceAllString(value, "")
	value = slugSepRe.ReplaceAllString(value, "-")
	value = slugCleanRe.ReplaceAllString(value, "")
	value = strings.Trim(value, "-")
	if value == "" {
		return SlugPlaceholder
	}
	return value
}
