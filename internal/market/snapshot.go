package market

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"coinbrief/internal/core"
)

// Snapshot is a locally cached set of market stats keyed by lower-cased
// roster symbol, so content runs do not depend on the quotes API being up.
type Snapshot map[string]core.MarketStats

// LoadSnapshot reads a snapshot file. A missing file is not an error; it
// returns an empty snapshot so callers degrade to "N/A" stats.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read market snapshot %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse market snapshot %s: %w", path, err)
	}
	return snap, nil
}

// SaveSnapshot writes the snapshot to disk.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode market snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write market snapshot %s: %w", path, err)
	}
	return nil
}

// Get looks up stats for a symbol, reporting whether they were present.
func (s Snapshot) Get(symbol string) (*core.MarketStats, bool) {
	stats, ok := s[MapSymbolKey(symbol)]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// Set stores stats for a symbol.
func (s Snapshot) Set(symbol string, stats core.MarketStats) {
	s[MapSymbolKey(symbol)] = stats
}

// MapSymbolKey normalizes a symbol for use as a snapshot key.
func MapSymbolKey(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}
