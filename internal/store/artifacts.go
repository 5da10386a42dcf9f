package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"coinbrief/internal/core"
)

// Artifacts writes generated content to the output directory: one JSON
// document per project, the combined all-projects file, and raw model
// responses for debugging extraction issues.
type Artifacts struct {
	dir string
}

// NewArtifacts creates the output directory if needed.
func NewArtifacts(dir string) (*Artifacts, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &Artifacts{dir: dir}, nil
}

// Dir returns the output directory path.
func (a *Artifacts) Dir() string { return a.dir }

// SaveRawText stores the unprocessed model response for a symbol.
func (a *Artifacts) SaveRawText(symbol, raw string) error {
	path := filepath.Join(a.dir, symbol+"_raw.txt")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		return fmt.Errorf("failed to write raw text %s: %w", path, err)
	}
	return nil
}

// SaveProject writes one project document as indented JSON.
func (a *Artifacts) SaveProject(symbol string, project core.Project) error {
	path := filepath.Join(a.dir, symbol+".json")
	return writeJSON(path, project)
}

// SaveCombined writes the combined document holding every processed project.
func (a *Artifacts) SaveCombined(projects map[string]core.Project) error {
	path := filepath.Join(a.dir, "all_projects.json")
	return writeJSON(path, map[string]any{"projects": projects})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
