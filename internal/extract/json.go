package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"coinbrief/internal/core"
	"coinbrief/internal/logger"
)

// ErrNoJSONFound reports that the text contained nothing resembling a JSON
// object.
var ErrNoJSONFound = errors.New("no JSON object found in model output")

// snippetLimit bounds how much offending text an UnrepairableError carries.
const snippetLimit = 500

// UnrepairableError reports that a located JSON object failed to parse even
// after repair. It carries the original parse error and a bounded snippet of
// the offending text for diagnostics.
type UnrepairableError struct {
	Err     error  // Parse error from the first attempt
	Snippet string // Leading portion of the text that would not parse
}

func (e *UnrepairableError) Error() string {
	return fmt.Sprintf("JSON unrepairable: %v", e.Err)
}

func (e *UnrepairableError) Unwrap() error { return e.Err }

// truncateSnippet bounds the diagnostic snippet without splitting a
// multi-byte rune at the cut.
func truncateSnippet(s string) string {
	if len(s) <= snippetLimit {
		return s
	}
	end := snippetLimit
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}

// repairRule is one textual fix for a known model-output mistake. Rules are
// applied in order, only after an initial parse failure.
type repairRule struct {
	name    string
	pattern *regexp.Regexp
	replace string
}

var repairRules = []repairRule{
	// {"a": 1,} -> {"a": 1}
	{"trailing-comma", regexp.MustCompile(`,\s*([\]}])`), "$1"},
	// \"quoted\" outside of string context -> "quoted"
	{"escaped-quote", regexp.MustCompile(`\\(['"])`), "$1"},
}

func (r repairRule) apply(s string) string {
	return r.pattern.ReplaceAllString(s, r.replace)
}

// Repair applies every repair rule to the candidate JSON text.
func Repair(s string) string {
	for _, rule := range repairRules {
		s = rule.apply(s)
	}
	return s
}

var codeFence = regexp.MustCompile("```(?:json)?")

// locateObject trims prose and markdown wrapping around the first JSON
// object span in the text. The span runs from the first opening brace to its
// balanced closing brace; if the braces never balance, it runs to the last
// closing brace seen.
func locateObject(text string) (string, error) {
	text = codeFence.ReplaceAllString(strings.TrimSpace(text), "")
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONFound
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	// Unbalanced; settle for the widest plausible span.
	end := strings.LastIndexByte(text, '}')
	if end <= start {
		return "", ErrNoJSONFound
	}
	return text[start : end+1], nil
}

// parseObject locates, parses and if necessary repairs the JSON object in
// the text, returning the raw bytes that parsed cleanly.
func parseObject(text string) ([]byte, error) {
	candidate, err := locateObject(text)
	if err != nil {
		return nil, err
	}

	var probe map[string]any
	parseErr := json.Unmarshal([]byte(candidate), &probe)
	if parseErr == nil {
		return []byte(candidate), nil
	}

	logger.Warn("Model output failed to parse as JSON, attempting repair", "error", parseErr.Error())
	repaired := Repair(candidate)
	if json.Valid([]byte(repaired)) {
		return []byte(repaired), nil
	}

	return nil, &UnrepairableError{Err: parseErr, Snippet: truncateSnippet(candidate)}
}

// Object extracts the JSON object embedded in model output as a generic map.
// Valid JSON passes through untouched; wrapped or mildly malformed JSON is
// unwrapped and repaired. Pure: no side effects on failure beyond a warning
// log.
func Object(text string) (map[string]any, error) {
	raw, err := parseObject(text)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &UnrepairableError{Err: err, Snippet: truncateSnippet(string(raw))}
	}
	return obj, nil
}

// modelSection is a narrative section as produced by JSON-format prompts.
type modelSection struct {
	Description string `json:"description"`
}

// modelContent is the JSON-format payload shape the content prompts request.
type modelContent struct {
	ValueGeneration *modelSection    `json:"valueGeneration"`
	MarketPosition  *modelSection    `json:"marketPosition"`
	ProjectSize     *modelSection    `json:"projectSize"`
	RealWorldImpact *modelSection    `json:"RealWorldImpact"`
	Founders        *modelSection    `json:"founders"`
	ProblemSolving  *modelSection    `json:"problemSolving"`
	Strengths       []core.ListItem  `json:"strengths"`
	Weaknesses      []core.ListItem  `json:"weaknesses"`
	Whitepaper      *struct {
		Summary string `json:"summary"`
	} `json:"whitepaper"`
}

// ContentFromJSON parses JSON-format model output into fragments. The list
// sections run through the same normalization and completion policy as
// prose-extracted ones. Failure means no JSON could be recovered at all;
// callers fall back to the full default template.
func ContentFromJSON(text string, defStrengths, defWeaknesses []core.ListItem) (Fragments, error) {
	raw, err := parseObject(text)
	if err != nil {
		return Fragments{}, err
	}

	var mc modelContent
	if err := json.Unmarshal(raw, &mc); err != nil {
		return Fragments{}, &UnrepairableError{Err: err, Snippet: truncateSnippet(string(raw))}
	}

	frags := Fragments{
		ValueGeneration: sectionText(mc.ValueGeneration),
		MarketPosition:  sectionText(mc.MarketPosition),
		ProjectSize:     sectionText(mc.ProjectSize),
		RealWorldImpact: sectionText(mc.RealWorldImpact),
		Founders:        sectionText(mc.Founders),
		ProblemSolving:  sectionText(mc.ProblemSolving),
	}
	if mc.Whitepaper != nil {
		frags.WhitepaperSummary = strings.TrimSpace(mc.Whitepaper.Summary)
	}
	frags.Strengths = completeItems(mc.Strengths, defStrengths)
	frags.Weaknesses = completeItems(mc.Weaknesses, defWeaknesses)
	return frags, nil
}

func sectionText(s *modelSection) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.Description)
}

// completeItems normalizes model-supplied list items and applies the same
// completion policy as the prose extractor: strip emphasis, drop empty or
// duplicate entries, pad from defaults, cap at the target length.
func completeItems(items []core.ListItem, defaults []core.ListItem) []core.ListItem {
	cleaned := make([]core.ListItem, 0, listTarget)
	for _, it := range items {
		title := cleanTitle(it.Title)
		desc := strings.TrimSpace(it.Description)
		if title == "" || desc == "" || hasTitle(cleaned, title) {
			continue
		}
		cleaned = append(cleaned, core.ListItem{Title: title, Description: desc})
	}
	for _, def := range defaults {
		if len(cleaned) >= listTarget {
			break
		}
		cleaned = append(cleaned, def)
	}
	if len(cleaned) > listTarget {
		cleaned = cleaned[:listTarget]
	}
	return cleaned
}
