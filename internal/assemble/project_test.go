package assemble

import (
	"strings"
	"testing"

	"coinbrief/internal/core"
	"coinbrief/internal/extract"
)

func TestBuildProject(t *testing.T) {
	rec, err := Assemble("sol", fullFragments(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	meta := ProjectMeta{
		ID:          "doc-1",
		Name:        "Solana",
		Symbol:      "SOL",
		Description: "High-throughput settlement layer",
	}
	project := BuildProject(meta, rec)

	if project.Title != "Solana Analysis" {
		t.Errorf("Expected title 'Solana Analysis', got %q", project.Title)
	}
	if project.CoinID != PlaceholderCoinID {
		t.Errorf("Expected placeholder coin id, got %q", project.CoinID)
	}
	if project.Logo != "https://cryptologos.cc/logos/solana-sol-logo.svg" {
		t.Errorf("Unexpected logo URL: %q", project.Logo)
	}

	if project.AssetOverview.ValueGeneration.Description != rec.ValueGeneration.Description {
		t.Error("Expected asset overview to carry the assembled value generation section")
	}
	if project.ProjectNarrative.Founders.Description != rec.Founders.Description {
		t.Error("Expected project narrative to carry the founders section")
	}
	if len(project.ResearchAnalysis.Strengths) != 3 {
		t.Errorf("Expected 3 strengths in research analysis, got %d", len(project.ResearchAnalysis.Strengths))
	}
	if !strings.Contains(project.MarketBenchmark.Description, "Solana's growth") {
		t.Errorf("Expected benchmark blurb to name the project, got %q", project.MarketBenchmark.Description)
	}
}

func TestBuildProjectKeepsExplicitCoinID(t *testing.T) {
	rec, err := Assemble("apt", extract.Fragments{}, nil, nil, Options{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	project := BuildProject(ProjectMeta{ID: "doc-2", CoinID: "abc-123", Name: "Aptos", Symbol: "APT"}, rec)
	if project.CoinID != "abc-123" {
		t.Errorf("Expected explicit coin id kept, got %q", project.CoinID)
	}
}

func TestLogoURLMultiWordName(t *testing.T) {
	got := logoURL("Internet Computer", "ICP")
	want := "https://cryptologos.cc/logos/internet-computer-icp-logo.svg"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestBuildProjectDeterministic(t *testing.T) {
	rec, err := Assemble("sol", fullFragments(), nil, &core.ScoreSet{Growth: 1, Earning: 2, FairValue: 3, Safety: 4}, Options{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	meta := ProjectMeta{ID: "doc-1", Name: "Solana", Symbol: "SOL"}
	a := BuildProject(meta, rec)
	b := BuildProject(meta, rec)
	if a.Title != b.Title || a.Logo != b.Logo || a.MarketBenchmark != b.MarketBenchmark {
		t.Error("Expected identical projects for identical inputs")
	}
}
