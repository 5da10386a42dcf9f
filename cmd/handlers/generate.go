package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"coinbrief/internal/config"
	"coinbrief/internal/core"
	"coinbrief/internal/llm"
	"coinbrief/internal/logger"
	"coinbrief/internal/market"
	"coinbrief/internal/pipeline"
	"coinbrief/internal/roster"
	"coinbrief/internal/store"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var (
		inputFile    string
		jsonMode     bool
		limit        int
		profileName  string
		modelName    string
		snapshotFile string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate project content pages from a score sheet",
		Long: `Generate display-ready content documents for every project in a score
sheet CSV.

This command:
  • Reads projects and benchmark scores from the sheet
  • Asks the generative model for narrative content per project
  • Extracts sections, strengths and weaknesses from the response
  • Fills anything missing from the default template
  • Attaches cached market statistics and benchmark bar data
  • Writes one JSON document per project plus a combined file

Examples:
  # Generate content for every project
  coinbrief generate --input score-sheet.csv

  # Structured JSON responses instead of labeled prose
  coinbrief generate --input score-sheet.csv --json-mode

  # Only the first 5 projects, strict score handling
  coinbrief generate --input score-sheet.csv --limit 5 --profile strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), inputFile, jsonMode, limit, profileName, modelName, snapshotFile, noCache)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "score-sheet.csv", "Score sheet CSV file")
	cmd.Flags().BoolVar(&jsonMode, "json-mode", false, "Ask the model for structured JSON instead of prose sections")
	cmd.Flags().IntVar(&limit, "limit", 0, "Process at most N projects (0 = all)")
	cmd.Flags().StringVar(&profileName, "profile", "", "Score profile: friendly or strict (default from config)")
	cmd.Flags().StringVarP(&modelName, "model", "m", "", "Model to use (default from config)")
	cmd.Flags().StringVar(&snapshotFile, "market-data", "", "Market statistics snapshot file (default <output>/market_data.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the response cache and always call the model")

	return cmd
}

func runGenerate(ctx context.Context, inputFile string, jsonMode bool, limit int, profileName, modelName, snapshotFile string, noCache bool) error {
	log := logger.Get()
	start := time.Now()

	cfg := config.Get()

	if profileName == "" {
		profileName = cfg.Scores.Profile
	}
	profile, err := core.ParseProfile(profileName)
	if err != nil {
		return err
	}

	entries, err := roster.Load(inputFile, profile)
	if err != nil {
		return fmt.Errorf("failed to load score sheet: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println(warnStyle.Render("⚠️  No projects found in score sheet"))
		return nil
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	log.Info("Loaded score sheet", "file", inputFile, "projects", len(entries), "profile", profile.String())

	artifacts, err := store.NewArtifacts(cfg.Output.Directory)
	if err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	if snapshotFile == "" {
		snapshotFile = filepath.Join(cfg.Output.Directory, "market_data.json")
	}
	snapshot, err := market.LoadSnapshot(snapshotFile)
	if err != nil {
		log.Warn("Failed to load market snapshot, records will carry N/A stats", "file", snapshotFile, "error", err)
		snapshot = nil
	}

	var cache *store.Store
	if !noCache {
		cache, err = store.NewStore(cfg.Cache.Directory)
		if err != nil {
			log.Warn("Failed to open response cache, proceeding without it", "error", err)
		} else {
			defer cache.Close()
		}
	}

	if modelName == "" {
		modelName = cfg.Gemini.Model
	}
	client, err := llm.NewClient(ctx, modelName)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	mode := pipeline.ModeProse
	if jsonMode {
		mode = pipeline.ModeJSON
	}

	p := pipeline.New(client, cache, artifacts, snapshot, pipeline.Options{
		Mode:    mode,
		Profile: profile,
		GenOptions: llm.Options{
			Temperature: cfg.Gemini.Temperature,
			TopP:        cfg.Gemini.TopP,
			TopK:        cfg.Gemini.TopK,
			MaxTokens:   cfg.Gemini.MaxTokens,
		},
		RequestDelay: cfg.RequestDelay(),
	})

	fmt.Println(headerStyle.Render("🪙 Coinbrief Content Generation"))
	fmt.Printf("%s %d projects · %s mode · %s profile · %s\n\n",
		labelStyle.Render("Run:"), len(entries), mode, profile, client.ModelName())

	result, err := p.Run(ctx, entries)
	if err != nil {
		return err
	}

	printRunSummary(result, artifacts.Dir(), time.Since(start))
	return nil
}

func printRunSummary(result pipeline.Result, outputDir string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(headerStyle.Render("Run Summary"))
	fmt.Printf("  %s %s\n", labelStyle.Render("Processed:"), successStyle.Render(fmt.Sprintf("%d", result.Processed)))
	fmt.Printf("  %s %d (rest served from cache)\n", labelStyle.Render("Generated:"), result.Generated)
	if result.Degraded > 0 {
		fmt.Printf("  %s %s\n", labelStyle.Render("Degraded:"), warnStyle.Render(fmt.Sprintf("%d (default content used)", result.Degraded)))
	}
	if result.Failed > 0 {
		fmt.Printf("  %s %s\n", labelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%d", result.Failed)))
	}
	fmt.Printf("  %s %s\n", labelStyle.Render("Output:"), outputDir)
	fmt.Printf("  %s %s\n", labelStyle.Render("Duration:"), elapsed.Round(time.Millisecond))
}
