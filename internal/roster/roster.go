package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"coinbrief/internal/core"
	"coinbrief/internal/logger"
)

// Column headers expected in the score sheet. Extra columns are ignored.
const (
	colProject = "Project"
	colSymbol  = "Symbol"
	colSector  = "Market Sector"
	colGrowth  = "UGS"
	colEarning = "EQS"
	colFair    = "FVS"
	colSafety  = "SS"
)

// Load reads the project score sheet. Rows without a usable symbol are
// skipped with a warning; missing or unparsable scores fall back to the
// profile's default so a hole in the sheet never sinks a project.
func Load(path string, profile core.ScoreProfile) ([]core.RosterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score sheet %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // Sheets exported from spreadsheets ragged at times

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read score sheet header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colProject, colSymbol} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("score sheet is missing required column %q", required)
		}
	}

	var entries []core.RosterEntry
	seen := map[string]bool{}
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// Parse errors are per-record; the reader resumes at the
			// next row, so one bad row never sinks the rest of the sheet.
			logger.Warn("Skipping malformed score sheet row", "line", line, "error", err.Error())
			continue
		}

		symbol := normalizeSymbol(field(record, cols, colSymbol))
		if symbol == "" {
			logger.Warn("Skipping score sheet row with missing symbol", "line", line)
			continue
		}
		if seen[symbol] {
			logger.Warn("Skipping duplicate score sheet row", "line", line, "symbol", symbol)
			continue
		}
		seen[symbol] = true

		sector := field(record, cols, colSector)
		if sector == "" {
			sector = "Cryptocurrency"
		}

		entries = append(entries, core.RosterEntry{
			Name:   field(record, cols, colProject),
			Symbol: symbol,
			Sector: sector,
			Scores: parseScores(record, cols, profile),
		})
	}

	logger.Info("Loaded score sheet", "path", path, "projects", len(entries))
	return entries, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// normalizeSymbol lower-cases a symbol and flattens numeric symbols
// ("42.0" in a sheet export) to their integer form.
func normalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(symbol, 64); err == nil && v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strings.ToLower(symbol)
}

func parseScores(record []string, cols map[string]int, profile core.ScoreProfile) *core.ScoreSet {
	def := profile.DefaultScore()
	return &core.ScoreSet{
		Growth:    parseScore(field(record, cols, colGrowth), def),
		Earning:   parseScore(field(record, cols, colEarning), def),
		FairValue: parseScore(field(record, cols, colFair), def),
		Safety:    parseScore(field(record, cols, colSafety), def),
	}
}

func parseScore(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
