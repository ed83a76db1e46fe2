// internal/reader/pdf.go
package reader

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ReadPages extracts plain text from the PDF one page at a time, in page
// order. Page boundaries are preserved by the slice structure so the
// segmenter keeps its layout signal; a page that fails text extraction
// becomes an empty entry rather than aborting the whole document.
func ReadPages(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
