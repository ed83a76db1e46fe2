// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"book-codex/internal/config"
	"book-codex/internal/database"
	"book-codex/internal/extractor"
	"book-codex/internal/keywords"
	"book-codex/internal/models"
	"book-codex/internal/reader"
	"book-codex/internal/renderer"
	"book-codex/internal/translator"
)

// Pipeline wires the extraction, translation, keyword and rendering
// stages around the shared chapters.json interchange file.
type Pipeline struct {
	Config     *config.Config
	Translator translator.Translator
	// Archive is the optional Postgres store; nil disables archiving.
	Archive *database.DB
}

// New creates a pipeline over the given configuration and translator.
func New(cfg *config.Config, tr translator.Translator) *Pipeline {
	return &Pipeline{Config: cfg, Translator: tr}
}

// RunExtract reads the source PDF, segments it into chapters and writes
// the interchange file plus one text file per chapter.
func (p *Pipeline) RunExtract(ctx context.Context, pdfPath string) ([]models.ChapterRecord, error) {
	if err := p.Config.EnsureDirectories(); err != nil {
		return nil, err
	}

	log.Printf("Extracting chapters from %s", pdfPath)
	pages, err := reader.ReadPages(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source PDF: %w", err)
	}

	seg := extractor.NewSegmenter(p.Config.HeaderPrefixes...)
	chapters, err := seg.ExtractChapters(pages)
	if err != nil {
		return nil, err
	}

	if err := cleanupDirectory(p.Config.EnglishTextDir(), ".txt"); err != nil {
		return nil, err
	}
	for i := range chapters {
		path := filepath.Join(p.Config.EnglishTextDir(), chapterFileName(&chapters[i], ".txt"))
		if err := os.WriteFile(path, []byte(chapters[i].EnglishText), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write chapter text: %w", err)
		}
	}

	if err := p.saveChapters(ctx, chapters); err != nil {
		return nil, err
	}
	log.Printf("Extraction finished: %d chapters", len(chapters))
	return chapters, nil
}

// RunTranslate fills the Portuguese text of every chapter.
func (p *Pipeline) RunTranslate(ctx context.Context) ([]models.ChapterRecord, error) {
	if err := p.Config.EnsureDirectories(); err != nil {
		return nil, err
	}
	chapters, err := models.LoadChapters(p.Config.ChaptersDataPath())
	if err != nil {
		return nil, err
	}

	if err := cleanupDirectory(p.Config.PortugueseTextDir(), ".txt"); err != nil {
		return nil, err
	}
	for i := range chapters {
		translated, err := p.Translator.TranslateText(ctx, chapters[i].EnglishText)
		if err != nil {
			return nil, fmt.Errorf("failed to translate chapter %d: %w", chapters[i].Number, err)
		}
		chapters[i].SetPortugueseText(translated)
		if err := p.writePortugueseText(&chapters[i]); err != nil {
			return nil, err
		}
		log.Printf("Translated chapter %d: %s", chapters[i].Number, chapters[i].Title)
	}

	if err := p.saveChapters(ctx, chapters); err != nil {
		return nil, err
	}
	log.Printf("Translation finished for %d chapters", len(chapters))
	return chapters, nil
}

// RunKeywords extracts and translates keywords for every chapter and
// appends the keyword caption to the translated body. Chapters must have
// been translated first.
func (p *Pipeline) RunKeywords(ctx context.Context) ([]models.ChapterRecord, error) {
	if err := p.Config.EnsureDirectories(); err != nil {
		return nil, err
	}
	chapters, err := models.LoadChapters(p.Config.ChaptersDataPath())
	if err != nil {
		return nil, err
	}

	gen := keywords.NewGenerator(p.Translator, p.Config.MaxKeywords)
	for i := range chapters {
		chapter := &chapters[i]
		if !chapter.Translated() {
			return nil, fmt.Errorf("chapter %d has no translation; run the translate stage before keywords", chapter.Number)
		}

		pairs, err := gen.Generate(ctx, chapter.EnglishText)
		if err != nil {
			return nil, fmt.Errorf("failed to generate keywords for chapter %d: %w", chapter.Number, err)
		}
		chapter.Keywords = pairs

		text := StripKeywordCaption(*chapter.PortugueseText)
		if len(pairs) > 0 {
			caption := KeywordCaption(pairs)
			if text != "" {
				text = text + "\n\n" + caption
			} else {
				text = caption
			}
		}
		chapter.SetPortugueseText(text)
		if err := p.writePortugueseText(chapter); err != nil {
			return nil, err
		}
		log.Printf("Keywords generated for chapter %d: %s", chapter.Number, chapter.Title)
	}

	if err := p.saveChapters(ctx, chapters); err != nil {
		return nil, err
	}
	log.Printf("Keyword stage finished for %d chapters", len(chapters))
	return chapters, nil
}

// RunRender builds the per-chapter PDFs and the compiled volume. Every
// chapter must carry a translation.
func (p *Pipeline) RunRender(ctx context.Context) error {
	if err := p.Config.EnsureDirectories(); err != nil {
		return err
	}
	chapters, err := models.LoadChapters(p.Config.ChaptersDataPath())
	if err != nil {
		return err
	}

	var missing []string
	for i := range chapters {
		if !chapters[i].Translated() {
			missing = append(missing, chapters[i].Title)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("some chapters are not translated: %s", strings.Join(missing, ", "))
	}

	if err := cleanupDirectory(p.Config.ChapterPDFDir(), ".pdf"); err != nil {
		return err
	}
	for i := range chapters {
		path := filepath.Join(p.Config.ChapterPDFDir(), chapterFileName(&chapters[i], ".pdf"))
		if err := renderer.BuildChapterPDF(&chapters[i], path); err != nil {
			return err
		}
	}

	if err := renderer.BuildCompiledPDF(chapters, p.Config.CompiledPDFPath()); err != nil {
		return err
	}
	log.Printf("PDFs generated in %s", p.Config.ChapterPDFDir())
	return nil
}

// RunAll executes the full pipeline in order.
func (p *Pipeline) RunAll(ctx context.Context, pdfPath string) error {
	if _, err := p.RunExtract(ctx, pdfPath); err != nil {
		return err
	}
	if _, err := p.RunTranslate(ctx); err != nil {
		return err
	}
	if _, err := p.RunKeywords(ctx); err != nil {
		return err
	}
	if err := p.RunRender(ctx); err != nil {
		return err
	}
	log.Printf("Full pipeline finished")
	return nil
}

// saveChapters replaces the interchange file and mirrors the records into
// the archive when one is configured.
func (p *Pipeline) saveChapters(ctx context.Context, chapters []models.ChapterRecord) error {
	if err := models.SaveChapters(chapters, p.Config.ChaptersDataPath()); err != nil {
		return err
	}
	if p.Archive != nil {
		if err := p.Archive.StoreChapters(ctx, chapters); err != nil {
			return fmt.Errorf("failed to archive chapters: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) writePortugueseText(chapter *models.ChapterRecord) error {
	path := filepath.Join(p.Config.PortugueseTextDir(), chapterFileName(chapter, ".txt"))
	if err := os.WriteFile(path, []byte(*chapter.PortugueseText), 0o644); err != nil {
		return fmt.Errorf("failed to write translated chapter text: %w", err)
	}
	return nil
}

func chapterFileName(chapter *models.ChapterRecord, suffix string) string {
	return fmt.Sprintf("%02d-%s%s", chapter.Number, chapter.Slug, suffix)
}

// cleanupDirectory removes stale stage outputs so a re-run never leaves a
// mix of old and new files.
func cleanupDirectory(dir, suffix string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove stale output: %w", err)
		}
	}
	return nil
}
