// internal/cleaner/cleaner.go
package cleaner

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeLine collapses repeated whitespace to single spaces and strips
// side spaces. Non-breaking spaces and BOM artifacts left over from text
// extraction are removed as well.
func NormalizeLine(line string) string {
	line = strings.ReplaceAll(line, " ", " ")
	line = strings.ReplaceAll(line, "\uFEFF", "")
	line = strings.TrimSpace(line)
	return whitespaceRe.ReplaceAllString(line, " ")
}

// CleanText repairs hyphenated line wraps and reflows raw extracted text
// into blank-line separated paragraphs. The function is pure and idempotent:
// running it on its own output reproduces the output.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = NormalizeLine(line)
	}

	// Collapse runs of blank lines to a single separator.
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
				cleaned = append(cleaned, "")
			}
			continue
		}
		cleaned = append(cleaned, line)
	}

	var paragraphs []string
	var buffer []string

	for _, line := range cleaned {
		if line == "" {
			if len(buffer) > 0 {
				paragraphs = append(paragraphs, mergeBuffer(buffer))
				buffer = nil
			}
			continue
		}
		if len(buffer) > 0 && strings.HasSuffix(buffer[len(buffer)-1], "-") && startsLower(line) {
			// Word wrapped across lines: drop the hyphen and join directly.
			last := buffer[len(buffer)-1]
			buffer[len(buffer)-1] = last[:len(last)-1] + line
		} else {
			buffer = append(buffer, line)
		}
	}

	if len(buffer) > 0 {
		paragraphs = append(paragraphs, mergeBuffer(buffer))
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

// mergeBuffer joins the lines of one paragraph with single spaces, repairing
// any hyphen break that survived the line scan.
func mergeBuffer(lines []string) string {
	var parts []string
	for _, part := range lines {
		if part == "" {
			continue
		}
		if len(parts) > 0 && strings.HasSuffix(parts[len(parts)-1], "-") {
			last := parts[len(parts)-1]
			parts[len(parts)-1] = last[:len(last)-1] + part
		} else {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
