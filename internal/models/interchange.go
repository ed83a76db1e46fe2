package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveChapters writes the chapter records as a JSON array to path. The file
// is replaced as a whole: content is written to a temporary file first and
// renamed into place, so a failed write never leaves a truncated artifact.
func SaveChapters(records []ChapterRecord, path string) error {
	for i := range records {
		if records[i].Keywords == nil {
			records[i].Keywords = []KeywordPair{}
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode chapter records: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write chapter records: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace chapter records: %w", err)
	}

	return nil
}

// LoadChapters reads the chapter records produced by a previous stage.
func LoadChapters(path string) ([]ChapterRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("chapter metadata file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read chapter records: %w", err)
	}

	var records []ChapterRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode chapter records: %w", err)
	}

	return records, nil
}
