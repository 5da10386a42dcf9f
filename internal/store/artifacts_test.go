package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"coinbrief/internal/core"
)

func TestArtifactsSaveRawText(t *testing.T) {
	dir := t.TempDir()
	artifacts, err := NewArtifacts(dir)
	if err != nil {
		t.Fatalf("NewArtifacts failed: %v", err)
	}

	if err := artifacts.SaveRawText("sol", "raw model output"); err != nil {
		t.Fatalf("SaveRawText failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sol_raw.txt"))
	if err != nil {
		t.Fatalf("Failed to read raw text file: %v", err)
	}
	if string(data) != "raw model output" {
		t.Errorf("Unexpected raw text: %q", string(data))
	}
}

func TestArtifactsSaveProject(t *testing.T) {
	dir := t.TempDir()
	artifacts, err := NewArtifacts(dir)
	if err != nil {
		t.Fatalf("NewArtifacts failed: %v", err)
	}

	project := core.Project{ID: "doc-1", Name: "Solana", Title: "Solana Analysis"}
	if err := artifacts.SaveProject("sol", project); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sol.json"))
	if err != nil {
		t.Fatalf("Failed to read project file: %v", err)
	}
	var loaded core.Project
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Project file is not valid JSON: %v", err)
	}
	if loaded.Title != "Solana Analysis" {
		t.Errorf("Unexpected title after round trip: %q", loaded.Title)
	}
}

func TestArtifactsSaveCombined(t *testing.T) {
	dir := t.TempDir()
	artifacts, err := NewArtifacts(dir)
	if err != nil {
		t.Fatalf("NewArtifacts failed: %v", err)
	}

	projects := map[string]core.Project{
		"sol": {ID: "doc-1", Name: "Solana"},
		"apt": {ID: "doc-2", Name: "Aptos"},
	}
	if err := artifacts.SaveCombined(projects); err != nil {
		t.Fatalf("SaveCombined failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "all_projects.json"))
	if err != nil {
		t.Fatalf("Failed to read combined file: %v", err)
	}
	var combined struct {
		Projects map[string]core.Project `json:"projects"`
	}
	if err := json.Unmarshal(data, &combined); err != nil {
		t.Fatalf("Combined file is not valid JSON: %v", err)
	}
	if len(combined.Projects) != 2 {
		t.Errorf("Expected 2 projects in combined file, got %d", len(combined.Projects))
	}
	if combined.Projects["apt"].Name != "Aptos" {
		t.Errorf("Unexpected project in combined file: %+v", combined.Projects["apt"])
	}
}

func TestNewArtifactsCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	artifacts, err := NewArtifacts(dir)
	if err != nil {
		t.Fatalf("NewArtifacts failed: %v", err)
	}
	if artifacts.Dir() != dir {
		t.Errorf("Unexpected dir: %q", artifacts.Dir())
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected output directory to exist: %v", err)
	}
}
