// internal/extractor/extractor.go
package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"book-codex/internal/cleaner"
	"book-codex/internal/models"
)

// ErrNoChapters is returned when the boundary heuristics find nothing.
// The scan is deterministic, so retrying on the same input is pointless.
var ErrNoChapters = errors.New("no chapters detected in the source document")

const maxTitleLen = 80

var (
	titleRe   = regexp.MustCompile(`^[A-Z][A-Za-z0-9 ,\-'()/:&]+$`)
	pageNumRe = regexp.MustCompile(`(?i)^page \d+$`)
)

// Segmenter turns a stream of page texts into ordered chapter records.
// A chapter boundary is a purely numeric line on its own, preceded by a
// blank line and immediately followed by a title-shaped line.
type Segmenter struct {
	// HeaderPrefixes are lowercase prefixes of running headers to blank
	// out before scanning, e.g. the book title repeated on every page.
	HeaderPrefixes []string
}

// NewSegmenter creates a segmenter that filters the given running headers.
func NewSegmenter(headerPrefixes ...string) *Segmenter {
	return &Segmenter{HeaderPrefixes: headerPrefixes}
}

// ExtractChapters segments the per-page texts into numbered chapters.
func (s *Segmenter) ExtractChapters(pages []string) ([]models.ChapterRecord, error) {
	return s.Segment(s.LineStream(pages))
}

// LineStream flattens page texts into a single line sequence. An empty
// sentinel line is appended after every page so the blank-line adjacency
// signal survives page breaks. Noise lines (bare page numbers, running
// headers) are blanked rather than removed for the same reason.
func (s *Segmenter) LineStream(pages []string) []string {
	var all []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			all = append(all, s.filterNoise(strings.TrimSpace(line)))
		}
		all = append(all, "")
	}
	return all
}

// Segment runs the boundary scan over an already flattened line stream.
func (s *Segmenter) Segment(lines []string) ([]models.ChapterRecord, error) {
	var chapters []models.ChapterRecord

	state := stateScanning
	var number int
	var title string
	var body []string

	w := newWindow(lines)
	for !w.done() {
		cur := strings.TrimSpace(w.cur())

		if isNumeric(cur) && looksLikeTitle(strings.TrimSpace(w.next())) && strings.TrimSpace(w.prev()) == "" {
			if state == stateAccumulating {
				chapters = append(chapters, buildRecord(number, title, body))
			}
			number, _ = strconv.Atoi(cur)
			title = strings.TrimSpace(w.next())
			body = nil
			state = stateAccumulating
			w.advance(2) // consume the marker line and the title line
			continue
		}

		if state == stateAccumulating {
			body = append(body, w.cur())
		}
		w.advance(1)
	}

	if state == stateAccumulating {
		chapters = append(chapters, buildRecord(number, title, body))
	}

	if len(chapters) == 0 {
		return nil, ErrNoChapters
	}
	return chapters, nil
}

// filterNoise blanks out lines that are layout artifacts rather than prose.
func (s *Segmenter) filterNoise(line string) string {
	if line == "" {
		return ""
	}
	if pageNumRe.MatchString(line) {
		return ""
	}
	lower := strings.ToLower(line)
	for _, prefix := range s.HeaderPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return ""
		}
	}
	return line
}

// looksLikeTitle applies the title-shape heuristic: short, no URL prefix,
// and either the restrictive capitalized pattern or every alphabetic word
// starting with an uppercase letter (covers ALL-CAPS and Title Case).
func looksLikeTitle(line string) bool {
	if line == "" || utf8.RuneCountInString(line) > maxTitleLen {
		return false
	}
	if strings.HasPrefix(strings.ToLower(line), "www") {
		return false
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	return titleRe.MatchString(line) || allWordsCapitalized(words)
}

func allWordsCapitalized(words []string) bool {
	for _, word := range words {
		if !containsLetter(word) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// buildRecord assembles a chapter record from the accumulated body lines.
// The stored text is the title followed by the cleaned body, or just the
// title when the body cleans down to nothing.
func buildRecord(number int, title string, lines []string) models.ChapterRecord {
	body := cleaner.CleanText(strings.TrimSpace(strings.Join(lines, "\n")))
	text := title
	if body != "" {
		text = fmt.Sprintf("%s\n\n%s", title, body)
	}
	return models.ChapterRecord{
		Number:      number,
		Title:       title,
		Slug:        models.Slugify(fmt.Sprintf("%d-%s", number, title)),
		EnglishText: strings.TrimSpace(text),
	}
}
