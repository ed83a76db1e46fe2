package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-codex/internal/config"
	"book-codex/internal/models"
)

// stubTranslator marks text instead of translating it.
type stubTranslator struct{}

func (stubTranslator) TranslateText(_ context.Context, text string) (string, error) {
	return "PT: " + text, nil
}

func (stubTranslator) TranslateKeywords(_ context.Context, kws []string) ([]string, error) {
	out := make([]string, 0, len(kws))
	for _, kw := range kws {
		out = append(out, "pt-"+kw)
	}
	return out, nil
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := &config.Config{
		OutputDir:   t.TempDir(),
		MaxKeywords: 8,
	}
	return New(cfg, stubTranslator{})
}

func seedChapters(t *testing.T, p *Pipeline, records []models.ChapterRecord) {
	t.Helper()
	require.NoError(t, p.Config.EnsureDirectories())
	require.NoError(t, models.SaveChapters(records, p.Config.ChaptersDataPath()))
}

func TestRunTranslate_FillsPortugueseText(t *testing.T) {
	p := testPipeline(t)
	seedChapters(t, p, []models.ChapterRecord{
		{Number: 1, Title: "Introduction", Slug: "1-introduction", EnglishText: "Introduction\n\nSome body."},
	})

	chapters, err := p.RunTranslate(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	require.True(t, chapters[0].Translated())
	assert.Equal(t, "PT: Introduction\n\nSome body.", *chapters[0].PortugueseText)

	// Stage output file and interchange file are both refreshed.
	data, err := os.ReadFile(filepath.Join(p.Config.PortugueseTextDir(), "01-1-introduction.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PT: "))

	reloaded, err := models.LoadChapters(p.Config.ChaptersDataPath())
	require.NoError(t, err)
	assert.True(t, reloaded[0].Translated())
}

func TestRunKeywords_AppendsCaptionAndPairs(t *testing.T) {
	p := testPipeline(t)
	record := models.ChapterRecord{
		Number:      1,
		Title:       "Introduction",
		Slug:        "1-introduction",
		EnglishText: "Realist theory explains state behavior. Anarchy shapes realist theory.",
	}
	record.SetPortugueseText("Texto traduzido.")
	seedChapters(t, p, []models.ChapterRecord{record})

	chapters, err := p.RunKeywords(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	require.NotEmpty(t, chapters[0].Keywords)

	body := *chapters[0].PortugueseText
	assert.Contains(t, body, "Palavras-chave: ")
	assert.True(t, strings.HasPrefix(body, "Texto traduzido."))

	for _, pair := range chapters[0].Keywords {
		assert.Equal(t, "pt-"+pair.En, pair.Pt)
	}
}

func TestRunKeywords_Rerun_DoesNotStackCaptions(t *testing.T) {
	p := testPipeline(t)
	record := models.ChapterRecord{
		Number:      1,
		Title:       "Introduction",
		Slug:        "1-introduction",
		EnglishText: "Realist theory explains state behavior.",
	}
	record.SetPortugueseText("Texto traduzido.")
	seedChapters(t, p, []models.ChapterRecord{record})

	_, err := p.RunKeywords(context.Background())
	require.NoError(t, err)
	chapters, err := p.RunKeywords(context.Background())
	require.NoError(t, err)

	body := *chapters[0].PortugueseText
	assert.Equal(t, 1, strings.Count(body, "Palavras-chave:"))
}

func TestRunKeywords_UntranslatedChapterFails(t *testing.T) {
	p := testPipeline(t)
	seedChapters(t, p, []models.ChapterRecord{
		{Number: 3, Title: "Skipped", Slug: "3-skipped", EnglishText: "Body."},
	})

	_, err := p.RunKeywords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chapter 3")
	assert.Contains(t, err.Error(), "translate stage")
}

func TestRunRender_MissingTranslationFails(t *testing.T) {
	p := testPipeline(t)
	translated := models.ChapterRecord{Number: 1, Title: "Done", Slug: "1-done", EnglishText: "x"}
	translated.SetPortugueseText("feito")
	seedChapters(t, p, []models.ChapterRecord{
		translated,
		{Number: 2, Title: "Pending", Slug: "2-pending", EnglishText: "y"},
	})

	err := p.RunRender(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pending")
}

func TestRunTranslate_MissingInterchangeFile(t *testing.T) {
	p := testPipeline(t)
	require.NoError(t, p.Config.EnsureDirectories())

	_, err := p.RunTranslate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
