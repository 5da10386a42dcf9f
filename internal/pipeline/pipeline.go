package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"coinbrief/internal/assemble"
	"coinbrief/internal/core"
	"coinbrief/internal/extract"
	"coinbrief/internal/llm"
	"coinbrief/internal/logger"
	"coinbrief/internal/market"
	"coinbrief/internal/store"
)

// Mode selects the output format requested from the model and, with it,
// the extraction path.
type Mode string

const (
	// ModeProse asks for labeled plain-text sections and extracts them
	// with the section segmenter.
	ModeProse Mode = "prose"
	// ModeJSON asks for the structured record directly and runs the JSON
	// extractor/repairer.
	ModeJSON Mode = "json"
)

// Generator produces raw content for a prompt. Satisfied by *llm.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.Options) (string, error)
	ModelName() string
}

// Options configure a pipeline run.
type Options struct {
	Mode         Mode
	Profile      core.ScoreProfile
	GenOptions   llm.Options
	RequestDelay time.Duration // Pause after each upstream generation call
	LastUpdated  string        // YYYY-MM-DD whitepaper stamp; defaults to today
}

// Result summarizes a pipeline run.
type Result struct {
	Processed int // Roster entries handled
	Generated int // Entries that hit the model (rest came from cache)
	Degraded  int // Entries where some content fell back to defaults
	Failed    int // Entries where generation failed outright
}

// Pipeline turns roster entries into persisted project documents.
type Pipeline struct {
	gen       Generator
	cache     *store.Store // Optional; nil disables response caching
	artifacts *store.Artifacts
	snapshot  market.Snapshot
	opts      Options
}

// New assembles a pipeline. snapshot may be nil when no market data is
// available; affected records carry "N/A" stats.
func New(gen Generator, cache *store.Store, artifacts *store.Artifacts, snapshot market.Snapshot, opts Options) *Pipeline {
	if opts.Mode == "" {
		opts.Mode = ModeProse
	}
	if opts.LastUpdated == "" {
		opts.LastUpdated = time.Now().UTC().Format("2006-01-02")
	}
	return &Pipeline{
		gen:       gen,
		cache:     cache,
		artifacts: artifacts,
		snapshot:  snapshot,
		opts:      opts,
	}
}

// Run processes every roster entry, persisting one document per project and
// the combined file. Individual failures degrade to default content and are
// counted; only artifact-write errors abort the run.
func (p *Pipeline) Run(ctx context.Context, entries []core.RosterEntry) (Result, error) {
	var res Result
	combined := make(map[string]core.Project, len(entries))

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		logger.Info("Processing project", "index", i+1, "total", len(entries), "name", entry.Name, "symbol", entry.Symbol)

		project, generated, degraded, failed := p.process(ctx, entry)
		res.Processed++
		if generated {
			res.Generated++
		}
		if degraded {
			res.Degraded++
		}
		if failed {
			res.Failed++
		}
		if project == nil {
			continue
		}

		if err := p.artifacts.SaveProject(entry.Symbol, *project); err != nil {
			return res, err
		}
		combined[entry.Symbol] = *project

		// Periodic combined save so a crash late in a long run keeps
		// most of the work.
		if (i+1)%5 == 0 {
			if err := p.artifacts.SaveCombined(combined); err != nil {
				return res, err
			}
		}

		if generated && p.opts.RequestDelay > 0 && i+1 < len(entries) {
			select {
			case <-time.After(p.opts.RequestDelay):
			case <-ctx.Done():
				return res, ctx.Err()
			}
		}
	}

	if err := p.artifacts.SaveCombined(combined); err != nil {
		return res, err
	}
	return res, nil
}

// process handles one roster entry. Generation or extraction trouble
// degrades to the default template, keeping whatever market stats and
// scores the entry carries; a nil project means the entry was skipped.
func (p *Pipeline) process(ctx context.Context, entry core.RosterEntry) (project *core.Project, generated, degraded, failed bool) {
	raw, generated, genErr := p.rawContent(ctx, entry)
	if genErr != nil {
		logger.Error("Content generation failed, using default content", genErr, "symbol", entry.Symbol)
		failed = true
	}

	frags := p.extractFragments(raw, entry.Symbol)

	var stats *core.MarketStats
	if p.snapshot != nil {
		stats, _ = p.snapshot.Get(entry.Symbol)
	}

	rec, err := assemble.Assemble(entry.Symbol, frags, stats, entry.Scores, assemble.Options{
		Profile:     p.opts.Profile,
		LastUpdated: p.opts.LastUpdated,
	})
	if err != nil {
		// Only reachable with a blank symbol, which the roster loader
		// already filters out.
		logger.Error("Assembly rejected entry, skipping", err, "symbol", entry.Symbol)
		return nil, generated, false, true
	}
	if len(rec.Degraded) > 0 {
		logger.Warn("Record uses defaulted content", "symbol", entry.Symbol, "parts", rec.Degraded)
		degraded = true
	}

	meta := assemble.ProjectMeta{
		ID:          uuid.NewString(),
		Name:        entry.Name,
		Symbol:      entry.Symbol,
		Description: projectDescription(entry),
	}
	built := assemble.BuildProject(meta, rec)
	return &built, generated, degraded, failed
}

// rawContent returns cached model output when available, otherwise asks the
// generator and caches the result.
func (p *Pipeline) rawContent(ctx context.Context, entry core.RosterEntry) (raw string, generated bool, err error) {
	mode := string(p.opts.Mode)
	if p.cache != nil {
		cached, ok, cacheErr := p.cache.GetResponse(entry.Symbol, mode)
		if cacheErr != nil {
			logger.Warn("Response cache lookup failed", "symbol", entry.Symbol, "error", cacheErr.Error())
		} else if ok {
			logger.Debug("Using cached model response", "symbol", entry.Symbol, "mode", mode)
			return cached, false, nil
		}
	}

	data := llm.PromptData{
		Name:        entry.Name,
		Symbol:      entry.Symbol,
		Sector:      entry.Sector,
		Description: projectDescription(entry),
	}
	prompt := llm.ProsePrompt(data)
	if p.opts.Mode == ModeJSON {
		prompt = llm.JSONPrompt(data)
	}

	raw, err = p.gen.Generate(ctx, prompt, p.opts.GenOptions)
	if err != nil {
		return "", true, err
	}

	if p.artifacts != nil {
		if saveErr := p.artifacts.SaveRawText(entry.Symbol, raw); saveErr != nil {
			logger.Warn("Failed to save raw model response", "symbol", entry.Symbol, "error", saveErr.Error())
		}
	}
	if p.cache != nil {
		if cacheErr := p.cache.SaveResponse(entry.Symbol, mode, p.gen.ModelName(), raw); cacheErr != nil {
			logger.Warn("Failed to cache model response", "symbol", entry.Symbol, "error", cacheErr.Error())
		}
	}
	return raw, true, nil
}

// extractFragments runs the mode-appropriate extraction path. Empty output
// or unrecoverable JSON yields zero fragments, which the assembler fills
// entirely from the default template.
func (p *Pipeline) extractFragments(raw, symbol string) extract.Fragments {
	if strings.TrimSpace(raw) == "" {
		return extract.Fragments{}
	}

	if p.opts.Mode == ModeJSON {
		frags, err := extract.ContentFromJSON(raw, assemble.DefaultStrengths(), assemble.DefaultWeaknesses())
		if err != nil {
			var unrepairable *extract.UnrepairableError
			switch {
			case errors.Is(err, extract.ErrNoJSONFound):
				logger.Warn("No JSON object in model output, using default content", "symbol", symbol)
			case errors.As(err, &unrepairable):
				logger.Warn("Model output JSON unrepairable, using default content",
					"symbol", symbol, "error", unrepairable.Err.Error(), "snippet", unrepairable.Snippet)
			default:
				logger.Warn("JSON extraction failed, using default content", "symbol", symbol, "error", err.Error())
			}
			return extract.Fragments{}
		}
		return frags
	}

	return extract.Content(raw, assemble.DefaultStrengths(), assemble.DefaultWeaknesses())
}

func projectDescription(entry core.RosterEntry) string {
	return entry.Name + " is a decentralized protocol in the " + entry.Sector + " sector."
}
