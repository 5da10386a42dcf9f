package assemble

import (
	"fmt"
	"math"
	"strings"

	"coinbrief/internal/core"
	"coinbrief/internal/extract"
	"coinbrief/internal/logger"
)

// Options configure assembly behavior.
type Options struct {
	Profile     core.ScoreProfile // Default used for missing/invalid scores
	LastUpdated string            // YYYY-MM-DD stamp for the whitepaper; template date kept when empty
}

// Assemble merges recovered fragments over the default template into a
// complete ContentRecord. It is total over its inputs: every gap is covered
// by the template or a sentinel, so the only possible error is a blank
// symbol, which is a caller contract violation rather than a content
// problem.
func Assemble(symbol string, frags extract.Fragments, stats *core.MarketStats, scores *core.ScoreSet, opts Options) (*core.ContentRecord, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("symbol must not be empty")
	}

	tpl := DefaultTemplate()
	rec := &core.ContentRecord{}

	sections := []struct {
		key  string
		dst  *core.Section
		tpl  core.Section
		frag string
	}{
		{"valueGeneration", &rec.ValueGeneration, tpl.ValueGeneration, frags.ValueGeneration},
		{"marketPosition", &rec.MarketPosition, tpl.MarketPosition, frags.MarketPosition},
		{"projectSize", &rec.ProjectSize.Section, tpl.ProjectSize, frags.ProjectSize},
		{"RealWorldImpact", &rec.RealWorldImpact, tpl.RealWorldImpact, frags.RealWorldImpact},
		{"founders", &rec.Founders, tpl.Founders, frags.Founders},
		{"problemSolving", &rec.ProblemSolving, tpl.ProblemSolving, frags.ProblemSolving},
	}
	for _, s := range sections {
		*s.dst = s.tpl
		if text := strings.TrimSpace(s.frag); text != "" {
			s.dst.Description = text
		} else {
			rec.Degraded = append(rec.Degraded, s.key)
		}
		s.dst.Heading = resolveHeading(s.dst.Heading, symbol)
	}

	rec.Whitepaper = tpl.Whitepaper
	if summary := strings.TrimSpace(frags.WhitepaperSummary); summary != "" {
		rec.Whitepaper.Summary = summary
	} else {
		rec.Degraded = append(rec.Degraded, "whitepaper")
	}
	if opts.LastUpdated != "" {
		rec.Whitepaper.LastUpdated = opts.LastUpdated
	}

	rec.Strengths = completeList(frags.Strengths, tpl.Strengths)
	rec.Weaknesses = completeList(frags.Weaknesses, tpl.Weaknesses)
	flagDefaultItems(rec, "strengths", rec.Strengths, tpl.Strengths, DefaultStrengths())
	flagDefaultItems(rec, "weaknesses", rec.Weaknesses, tpl.Weaknesses, DefaultWeaknesses())

	rec.ProjectSize.KeyStats = normalizeStats(stats)
	rec.BenchmarkScores = buildBenchmark(scores, opts.Profile)

	if len(rec.Degraded) > 0 {
		logger.Debug("Record assembled with defaulted parts", "symbol", symbol, "degraded", rec.Degraded)
	}
	return rec, nil
}

// resolveHeading substitutes the symbol placeholder with the upper-cased
// project symbol. No unresolved placeholder survives assembly.
func resolveHeading(heading, symbol string) string {
	return strings.ReplaceAll(heading, SymbolPlaceholder, strings.ToUpper(strings.TrimSpace(symbol)))
}

// completeList enforces the exactly-three invariant one last time. Extractors
// already complete their lists; this guards direct callers that hand the
// assembler raw or nil item slices.
func completeList(items, defaults []core.ListItem) []core.ListItem {
	out := make([]core.ListItem, 0, 3)
	out = append(out, items...)
	if len(out) > 3 {
		out = out[:3]
	}
	for _, def := range defaults {
		if len(out) >= 3 {
			break
		}
		out = append(out, def)
	}
	return out
}

// flagDefaultItems marks list slots whose content came from a default list
// rather than extraction.
func flagDefaultItems(rec *core.ContentRecord, key string, items []core.ListItem, defaultSets ...[]core.ListItem) {
	for i, it := range items {
		for _, set := range defaultSets {
			for _, def := range set {
				if it == def {
					rec.Degraded = append(rec.Degraded, fmt.Sprintf("%s[%d]", key, i))
				}
			}
		}
	}
}

// normalizeStats guarantees every stats field carries either a real figure
// or the not-available sentinel.
func normalizeStats(stats *core.MarketStats) core.MarketStats {
	if stats == nil {
		return defaultMarketStats()
	}
	out := *stats
	for _, f := range []*string{&out.MarketCap, &out.TradingVolume, &out.CirculatingSupply, &out.TotalSupply} {
		if strings.TrimSpace(*f) == "" {
			*f = statsNotAvailable
		}
	}
	return out
}

// buildBenchmark renders the score set for display, substituting the
// profile default for missing or non-finite values.
func buildBenchmark(scores *core.ScoreSet, profile core.ScoreProfile) core.BenchmarkScores {
	def := profile.DefaultScore()
	growth, earning, fairValue, safety := def, def, def, def
	if scores != nil {
		growth = validScore("growth", scores.Growth, def)
		earning = validScore("earning", scores.Earning, def)
		fairValue = validScore("fairValue", scores.FairValue, def)
		safety = validScore("safety", scores.Safety, def)
	}
	return core.BenchmarkScores{
		Growth:    growth,
		Earning:   earning,
		FairValue: fairValue,
		Safety:    safety,
		BarData: []core.BarEntry{
			{Label: "Growth", Value: growth, Color: "#4CAF50"},
			{Label: "Earning", Value: earning, Color: "#2196F3"},
			{Label: "Fair Value", Value: fairValue, Color: "#FFC107"},
			{Label: "Safety", Value: safety, Color: "#9C27B0"},
		},
	}
}

func validScore(name string, v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		logger.Warn("Score is not a finite number, using profile default", "score", name, "default", fallback)
		return fallback
	}
	return v
}
