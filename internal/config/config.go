// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the pipeline settings, loaded from the environment with an
// optional .env file.
type Config struct {
	// SourcePDF is the path of the book to extract.
	SourcePDF string
	// OutputDir is the root for all generated artifacts.
	OutputDir string
	// Model is the Ollama model used for translation.
	Model string
	// MaxKeywords caps the keyword list per chapter.
	MaxKeywords int
	// HeaderPrefixes lists running-header prefixes to filter during
	// segmentation (comma separated in the environment).
	HeaderPrefixes []string
	// PostgresURL enables the optional chapter archive when non-empty.
	PostgresURL string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SourcePDF:      getEnv("CODEX_SOURCE_PDF", filepath.Join("data", "source.pdf")),
		OutputDir:      getEnv("CODEX_OUTPUT_DIR", "output"),
		Model:          getEnv("CODEX_MODEL", "llama3.1"),
		MaxKeywords:    getEnvInt("CODEX_MAX_KEYWORDS", 8),
		HeaderPrefixes: getEnvList("CODEX_HEADER_PREFIXES"),
		PostgresURL:    getEnv("CODEX_PG", ""),
	}
	return cfg, nil
}

// Validate checks settings that every stage depends on.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("CODEX_OUTPUT_DIR must not be empty")
	}
	if c.MaxKeywords <= 0 {
		return fmt.Errorf("CODEX_MAX_KEYWORDS must be positive")
	}
	return nil
}

// ChaptersDataPath is the JSON interchange file shared by all stages.
func (c *Config) ChaptersDataPath() string {
	return filepath.Join(c.OutputDir, "chapters.json")
}

// EnglishTextDir holds the extracted per-chapter source text.
func (c *Config) EnglishTextDir() string {
	return filepath.Join(c.OutputDir, "chapters_en")
}

// PortugueseTextDir holds the translated per-chapter text.
func (c *Config) PortugueseTextDir() string {
	return filepath.Join(c.OutputDir, "chapters_pt")
}

// ChapterPDFDir holds the per-chapter rendered PDFs.
func (c *Config) ChapterPDFDir() string {
	return filepath.Join(c.OutputDir, "pdf", "capitulos")
}

// CompiledPDFPath is the single-volume rendered PDF.
func (c *Config) CompiledPDFPath() string {
	return filepath.Join(c.OutputDir, "pdf", "compilado.pdf")
}

// EnsureDirectories creates the output tree the stages expect.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		c.OutputDir,
		c.EnglishTextDir(),
		c.PortugueseTextDir(),
		c.ChapterPDFDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			items = append(items, item)
		}
	}
	return items
}
