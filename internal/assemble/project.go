package assemble

import (
	"fmt"
	"strings"

	"coinbrief/internal/core"
)

// PlaceholderCoinID fills the coinId slot until records are linked to a
// coin registry.
const PlaceholderCoinID = "00000000-0000-0000-0000-000000000000"

// ProjectMeta identifies the project a record belongs to.
type ProjectMeta struct {
	ID          string // Stable document id; callers usually mint a UUID
	CoinID      string // Registry coin id; PlaceholderCoinID when unknown
	Name        string // Human-readable project name
	Symbol      string // Ticker symbol, any case
	Description string // One-line project description
}

// BuildProject wraps an assembled ContentRecord in the full document layout
// the analytics page consumes. Deterministic over its inputs.
func BuildProject(meta ProjectMeta, rec *core.ContentRecord) core.Project {
	coinID := meta.CoinID
	if coinID == "" {
		coinID = PlaceholderCoinID
	}
	return core.Project{
		ID:          meta.ID,
		CoinID:      coinID,
		Name:        meta.Name,
		Title:       fmt.Sprintf("%s Analysis", meta.Name),
		Logo:        logoURL(meta.Name, meta.Symbol),
		Description: meta.Description,
		AssetOverview: core.AssetOverview{
			ValueGeneration: rec.ValueGeneration,
			MarketPosition:  rec.MarketPosition,
			ProjectSize:     rec.ProjectSize,
			RealWorldImpact: rec.RealWorldImpact,
		},
		ProjectNarrative: core.ProjectNarrative{
			Founders:       rec.Founders,
			ProblemSolving: rec.ProblemSolving,
		},
		ResearchAnalysis: core.ResearchAnalysis{
			Strengths:  rec.Strengths,
			Weaknesses: rec.Weaknesses,
		},
		BenchmarkScores: rec.BenchmarkScores,
		Whitepaper:      rec.Whitepaper,
		MarketBenchmark: core.MarketBenchmark{
			Description: fmt.Sprintf("These scores compare %s's growth, revenue generation, valuation, and financial health to the overall cryptocurrency market. Higher scores indicate better performance and show %s's percentile in these areas. Compare scores across different cryptocurrencies to identify more attractive investments!", meta.Name, meta.Name),
		},
	}
}

func logoURL(name, symbol string) string {
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return fmt.Sprintf("https://cryptologos.cc/logos/%s-%s-logo.svg", slug, strings.ToLower(symbol))
}
