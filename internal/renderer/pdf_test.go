package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-codex/internal/models"
)

func TestBuildChapterPDF_RequiresTranslation(t *testing.T) {
	chapter := &models.ChapterRecord{Number: 4, Title: "Pending", Slug: "4-pending", EnglishText: "x"}

	err := BuildChapterPDF(chapter, filepath.Join(t.TempDir(), "out.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chapter 4")
}

func TestBuildChapterPDF_WritesFile(t *testing.T) {
	chapter := &models.ChapterRecord{Number: 1, Title: "Introdução", Slug: "1-introducao", EnglishText: "x"}
	chapter.SetPortugueseText("Primeiro parágrafo.\n\nSegundo parágrafo.")

	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, BuildChapterPDF(chapter, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildCompiledPDF_WritesFile(t *testing.T) {
	first := models.ChapterRecord{Number: 1, Title: "Um", Slug: "1-um", EnglishText: "x"}
	first.SetPortugueseText("Corpo um.")
	second := models.ChapterRecord{Number: 2, Title: "Dois", Slug: "2-dois", EnglishText: "y"}
	second.SetPortugueseText("Corpo dois.")

	path := filepath.Join(t.TempDir(), "compilado.pdf")
	require.NoError(t, BuildCompiledPDF([]models.ChapterRecord{first, second}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
