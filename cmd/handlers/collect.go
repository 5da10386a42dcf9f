package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"coinbrief/internal/config"
	"coinbrief/internal/core"
	"coinbrief/internal/logger"
	"coinbrief/internal/market"
	"coinbrief/internal/roster"
)

// NewCollectCmd creates the collect command
func NewCollectCmd() *cobra.Command {
	var (
		inputFile    string
		snapshotFile string
		delay        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Refresh the market statistics snapshot",
		Long: `Fetch current market statistics for every project in the score sheet and
save them to the local snapshot file.

The generate command reads this snapshot for the keyStats block instead of
calling the market API during content generation. Symbols the API does not
recognize keep their previous snapshot entry, or fall back to "N/A" stats.

Examples:
  # Refresh market data for all projects
  coinbrief collect --input score-sheet.csv

  # Slow down between API calls
  coinbrief collect --input score-sheet.csv --delay 2s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd.Context(), inputFile, snapshotFile, delay)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "score-sheet.csv", "Score sheet CSV file")
	cmd.Flags().StringVar(&snapshotFile, "market-data", "", "Snapshot file to write (default <output>/market_data.json)")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Pause between market API calls")

	return cmd
}

func runCollect(ctx context.Context, inputFile, snapshotFile string, delay time.Duration) error {
	log := logger.Get()

	cfg := config.Get()
	if cfg.CMC.APIKey == "" {
		return fmt.Errorf("market API key not configured: set CMC_API_KEY or cmc.api_key")
	}

	entries, err := roster.Load(inputFile, core.ProfileFriendly)
	if err != nil {
		return fmt.Errorf("failed to load score sheet: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println(warnStyle.Render("⚠️  No projects found in score sheet"))
		return nil
	}

	if snapshotFile == "" {
		snapshotFile = filepath.Join(cfg.Output.Directory, "market_data.json")
	}
	snapshot, err := market.LoadSnapshot(snapshotFile)
	if err != nil {
		log.Warn("Failed to load existing snapshot, starting fresh", "file", snapshotFile, "error", err)
		snapshot = market.Snapshot{}
	}

	timeout := 15 * time.Second
	if d, err := time.ParseDuration(cfg.CMC.Timeout); err == nil && d > 0 {
		timeout = d
	}
	client := market.NewClient(cfg.CMC.APIKey, cfg.CMC.BaseURL, timeout)

	fmt.Println(headerStyle.Render("📈 Market Data Collection"))
	fmt.Printf("%s %d projects → %s\n\n", labelStyle.Render("Run:"), len(entries), snapshotFile)

	fetched := 0
	failed := 0
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		stats, err := client.Quote(ctx, entry.Symbol)
		if err != nil {
			failed++
			log.Warn("Failed to fetch market stats", "symbol", entry.Symbol, "error", err)
			fmt.Printf("  %s %s\n", errorStyle.Render("✗"), entry.Symbol)
		} else {
			fetched++
			snapshot.Set(entry.Symbol, *stats)
			fmt.Printf("  %s %s  %s\n", successStyle.Render("✓"), entry.Symbol, labelStyle.Render(stats.MarketCap))
		}

		if i < len(entries)-1 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if err := market.SaveSnapshot(snapshotFile, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Println()
	fmt.Printf("%s %d fetched, %d failed, %d total in snapshot\n",
		successStyle.Render("✅ Snapshot saved:"), fetched, failed, len(snapshot))
	return nil
}
