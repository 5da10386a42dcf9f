package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coinbrief/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coinbrief",
		Short: "Generate beginner-friendly crypto project content pages",
		Long: `Coinbrief - Crypto Content Generator

Turns a project score sheet into display-ready analytics content: narrative
sections, strengths/weaknesses, whitepaper summaries and benchmark scores,
written by a generative model and normalized into a guaranteed schema.

Core workflows:
  • Generate: score sheet CSV → one JSON document per project
  • Collect: refresh the cached market statistics snapshot
  • Parse: inspect how one raw model response extracts

Examples:
  # Generate content for every project in the sheet
  coinbrief generate --input score-sheet.csv

  # Ask the model for JSON instead of prose sections
  coinbrief generate --input score-sheet.csv --json-mode

  # Refresh market data used for the keyStats block
  coinbrief collect --input score-sheet.csv

  # Re-run extraction on a saved raw response
  coinbrief parse --symbol sol project_content/sol_raw.txt`,
		Version: "1.2.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .coinbrief.yaml)")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewCollectCmd())
	rootCmd.AddCommand(NewParseCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
