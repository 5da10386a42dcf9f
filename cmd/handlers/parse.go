package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coinbrief/internal/assemble"
	"coinbrief/internal/core"
	"coinbrief/internal/extract"
	"coinbrief/internal/logger"
)

// NewParseCmd creates the parse command
func NewParseCmd() *cobra.Command {
	var (
		symbol      string
		jsonMode    bool
		profileName string
	)

	cmd := &cobra.Command{
		Use:   "parse <raw-response-file>",
		Short: "Extract a content record from a saved raw response",
		Long: `Run extraction and assembly on a single saved model response and print
the resulting content record as JSON.

Useful for inspecting how a response extracts without re-running the model:
sections the extractor could not find come back as template defaults, and
the degraded paths are listed on stderr.

Examples:
  # Re-parse a saved prose response
  coinbrief parse --symbol sol project_content/sol_raw.txt

  # Re-parse a structured JSON response
  coinbrief parse --symbol sol --json-mode project_content/sol_raw.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], symbol, jsonMode, profileName)
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Project ticker symbol (required)")
	cmd.Flags().BoolVar(&jsonMode, "json-mode", false, "Treat the response as structured JSON")
	cmd.Flags().StringVar(&profileName, "profile", "", "Score profile: friendly or strict")
	cmd.MarkFlagRequired("symbol")

	return cmd
}

func runParse(rawFile, symbol string, jsonMode bool, profileName string) error {
	log := logger.Get()

	profile, err := core.ParseProfile(profileName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(rawFile)
	if err != nil {
		return fmt.Errorf("failed to read raw response: %w", err)
	}
	raw := string(data)

	var frags extract.Fragments
	if jsonMode {
		frags, err = extract.ContentFromJSON(raw, assemble.DefaultStrengths(), assemble.DefaultWeaknesses())
		if err != nil {
			log.Warn("JSON extraction failed, record falls back to defaults", "file", rawFile, "error", err)
			frags = extract.Fragments{}
		}
	} else {
		frags = extract.Content(raw, assemble.DefaultStrengths(), assemble.DefaultWeaknesses())
	}

	rec, err := assemble.Assemble(symbol, frags, nil, nil, assemble.Options{Profile: profile})
	if err != nil {
		return err
	}

	if len(rec.Degraded) > 0 {
		fmt.Fprintf(os.Stderr, "Degraded paths (%d): %v\n", len(rec.Degraded), rec.Degraded)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
