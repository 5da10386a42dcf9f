package extract

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"coinbrief/internal/core"
	"coinbrief/internal/logger"
)

// Fragments holds whatever the extractors managed to recover from raw model
// output. Empty strings and nil slices mean the corresponding piece was not
// found; the assembler substitutes defaults for those.
type Fragments struct {
	ValueGeneration   string
	MarketPosition    string
	ProjectSize       string
	RealWorldImpact   string
	Founders          string
	ProblemSolving    string
	WhitepaperSummary string
	Strengths         []core.ListItem
	Weaknesses        []core.ListItem
}

// sectionPlan is the ordered list of section headers expected in prose-format
// model output. Each section's content runs from its header to the next
// section's header (or end of text for the terminal section).
var sectionPlan = []struct {
	label string
	next  string
	slot  func(*Fragments) *string
}{
	{"Value Generation", "Market Position", func(f *Fragments) *string { return &f.ValueGeneration }},
	{"Market Position", "Project Size", func(f *Fragments) *string { return &f.MarketPosition }},
	{"Project Size", "Real World Impact", func(f *Fragments) *string { return &f.ProjectSize }},
	{"Real World Impact", "Founders", func(f *Fragments) *string { return &f.RealWorldImpact }},
	{"Founders", "Problem Solving", func(f *Fragments) *string { return &f.Founders }},
	{"Problem Solving", "Strengths", func(f *Fragments) *string { return &f.ProblemSolving }},
	{"Whitepaper Summary", "", func(f *Fragments) *string { return &f.WhitepaperSummary }},
}

var (
	sectionRegexMu sync.Mutex
	sectionRegexes = map[string]*regexp.Regexp{}
)

// sectionRegex builds (and caches) the matcher for one section boundary pair.
// Headers match case-insensitively and tolerate decorations between the label
// and the colon (markdown emphasis, word-count hints), so "**Founders
// (70-100 words)**:" and "FOUNDERS:" both hit. Content is captured lazily up
// to the next header, or to end of text when next is empty.
func sectionRegex(label, next string) *regexp.Regexp {
	key := label + "\x00" + next
	sectionRegexMu.Lock()
	defer sectionRegexMu.Unlock()
	if re, ok := sectionRegexes[key]; ok {
		return re
	}
	var pattern string
	if next == "" {
		pattern = fmt.Sprintf(`(?is)%s.*?:(.*)`, regexp.QuoteMeta(label))
	} else {
		pattern = fmt.Sprintf(`(?is)%s.*?:(.*?)%s`, regexp.QuoteMeta(label), regexp.QuoteMeta(next))
	}
	re := regexp.MustCompile(pattern)
	sectionRegexes[key] = re
	return re
}

// Section extracts the trimmed content of one named section from raw text.
// The second return value reports whether the section was found with
// non-empty content. It never fails; absence is not an error.
func Section(text, label, next string) (string, bool) {
	m := sectionRegex(label, next).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	content := strings.TrimSpace(m[1])
	return content, content != ""
}

// Content parses prose-format model output into fragments. Narrative sections
// that cannot be located stay empty. Strengths and weaknesses are run through
// the list-item cascade over their own bounded section text, completed from
// the supplied default lists.
func Content(text string, defStrengths, defWeaknesses []core.ListItem) Fragments {
	var frags Fragments
	for _, s := range sectionPlan {
		content, ok := Section(text, s.label, s.next)
		if !ok {
			logger.Warn("Section not found in model output, default will be used", "section", s.label)
			continue
		}
		*s.slot(&frags) = content
	}

	strengthsText, ok := Section(text, "Strengths", "Weaknesses")
	if !ok {
		logger.Warn("Strengths section not found, using defaults")
	}
	frags.Strengths = ListItems(strengthsText, defStrengths)

	weaknessesText, ok := Section(text, "Weaknesses", "Whitepaper Summary")
	if !ok {
		logger.Warn("Weaknesses section not found, using defaults")
	}
	frags.Weaknesses = ListItems(weaknessesText, defWeaknesses)

	return frags
}
