// internal/renderer/pdf.go
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"book-codex/internal/models"
)

const (
	pageMargin   = 25.0 // mm
	titleSize    = 18.0
	bodySize     = 11.0
	bodyLineHt   = 6.0
	compiledSize = 22.0
)

// BuildChapterPDF renders a single translated chapter to its own PDF.
func BuildChapterPDF(chapter *models.ChapterRecord, outputPath string) error {
	if !chapter.Translated() {
		return fmt.Errorf("chapter %d (%s) has no translation to render", chapter.Number, chapter.Title)
	}

	doc := newDocument()
	doc.AddPage()
	writeChapter(doc, chapter)

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write chapter PDF: %w", err)
	}
	return nil
}

// BuildCompiledPDF renders all chapters into one volume with a leading
// table of contents.
func BuildCompiledPDF(chapters []models.ChapterRecord, outputPath string) error {
	doc := newDocument()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	// Contents page
	doc.AddPage()
	doc.SetFont("Helvetica", "B", compiledSize)
	doc.CellFormat(0, 12, tr("Sumário"), "", 1, "C", false, 0, "")
	doc.Ln(6)
	doc.SetFont("Helvetica", "", bodySize)
	for i := range chapters {
		entry := fmt.Sprintf("%d. %s", chapters[i].Number, chapters[i].Title)
		doc.CellFormat(0, 7, tr(entry), "", 1, "L", false, 0, "")
	}

	for i := range chapters {
		doc.AddPage()
		writeChapter(doc, &chapters[i])
	}

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write compiled PDF: %w", err)
	}
	return nil
}

func newDocument() *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AliasNbPages("")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "", 9)
		footer := fmt.Sprintf("Página %d de {nb}", doc.PageNo())
		doc.CellFormat(0, 10, tr(footer), "", 0, "R", false, 0, "")
	})
	return doc
}

// writeChapter emits the chapter heading and its translated paragraphs
// starting on the current page of doc.
func writeChapter(doc *fpdf.Fpdf, chapter *models.ChapterRecord) {
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", titleSize)
	heading := fmt.Sprintf("%d. %s", chapter.Number, chapter.Title)
	doc.MultiCell(0, 9, tr(heading), "", "L", false)
	doc.Ln(4)

	doc.SetFont("Helvetica", "", bodySize)
	text := ""
	if chapter.PortugueseText != nil {
		text = *chapter.PortugueseText
	}
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		paragraph = strings.ReplaceAll(paragraph, "\n", " ")
		doc.MultiCell(0, bodyLineHt, tr(paragraph), "", "J", false)
		doc.Ln(3)
	}
}
