package extract

import (
	"regexp"
	"strings"

	"coinbrief/internal/core"
	"coinbrief/internal/logger"
)

// listTarget is the number of items a strengths/weaknesses list must end up
// with, no matter how little the model gave us.
const listTarget = 3

// itemStrategy finds list-entry starts in section text. Group 1 of the
// pattern is the entry title; the description runs from the end of the match
// to the start of the next match (or end of text).
type itemStrategy struct {
	name    string
	pattern *regexp.Regexp
}

// Strategies are tried in priority order; the first one that yields at least
// one usable item wins.
var itemStrategies = []itemStrategy{
	// **Title**: Description
	{"bold", regexp.MustCompile(`\*\*([^:*\n]+?)\*\*:?[ \t]*`)},
	// 1. Title: Description
	{"numbered", regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]*(?:\*\*)?([^:\n]+?)(?:\*\*)?:[ \t]*`)},
	// - Title: Description
	{"dash", regexp.MustCompile(`(?m)^[ \t]*-[ \t]*(?:\*\*)?([^:\n]+?)(?:\*\*)?:[ \t]*`)},
}

var (
	emphasisMarkers = regexp.MustCompile(`\*\*`)
	paragraphSplit  = regexp.MustCompile(`\n[ \t]*\n`)
	sentenceBreak   = regexp.MustCompile(`[.!?][ \t\n]+`)
)

func (s itemStrategy) extract(text string) []core.ListItem {
	locs := s.pattern.FindAllStringSubmatchIndex(text, -1)
	items := make([]core.ListItem, 0, len(locs))
	for i, loc := range locs {
		title := cleanTitle(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		desc := strings.TrimSpace(text[loc[1]:end])
		if title == "" || desc == "" {
			continue
		}
		items = append(items, core.ListItem{Title: title, Description: desc})
	}
	return items
}

func cleanTitle(title string) string {
	return strings.TrimSpace(emphasisMarkers.ReplaceAllString(title, ""))
}

func hasTitle(items []core.ListItem, title string) bool {
	for _, it := range items {
		if it.Title == title {
			return true
		}
	}
	return false
}

// ListItems extracts exactly listTarget (title, description) items from the
// raw text of a strengths/weaknesses section. Structured patterns are tried
// first; paragraph splitting covers free-form output. Items missing after
// both passes are completed from defaults, in the default list's order;
// extras beyond the target are dropped in extraction order.
func ListItems(section string, defaults []core.ListItem) []core.ListItem {
	var items []core.ListItem
	if strings.TrimSpace(section) != "" {
		for _, s := range itemStrategies {
			if found := s.extract(section); len(found) > 0 {
				items = dedupeItems(found)
				break
			}
		}
		if len(items) < listTarget {
			items = appendParagraphItems(items, section)
		}
	}

	if len(items) < listTarget {
		logger.Warn("List extraction came up short, padding from defaults",
			"extracted", len(items), "target", listTarget)
	}
	for _, def := range defaults {
		if len(items) >= listTarget {
			break
		}
		items = append(items, def)
	}
	if len(items) > listTarget {
		items = items[:listTarget]
	}
	return items
}

func dedupeItems(items []core.ListItem) []core.ListItem {
	out := make([]core.ListItem, 0, len(items))
	for _, it := range items {
		if hasTitle(out, it.Title) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// appendParagraphItems is the fallback for sections without recognizable
// list markup: each blank-line-separated paragraph becomes one item. The
// title comes from the text before the first colon, or the first sentence,
// or the leading three words of a short single-sentence paragraph.
func appendParagraphItems(items []core.ListItem, section string) []core.ListItem {
	for _, para := range paragraphSplit.Split(section, -1) {
		if len(items) >= listTarget {
			break
		}
		para = strings.TrimSpace(para)
		if para == "" || coveredByItems(items, para) {
			continue
		}

		var title, desc string
		if before, after, found := strings.Cut(para, ":"); found {
			title = strings.ReplaceAll(before, "*", "")
			desc = after
		} else if title, desc = splitFirstSentence(para); title == "" {
			words := strings.Fields(para)
			if len(words) <= 4 {
				continue
			}
			title = strings.Join(words[:3], " ")
			desc = strings.Join(words[3:], " ")
		}

		title = cleanTitle(title)
		desc = strings.TrimSpace(desc)
		if title == "" || desc == "" || hasTitle(items, title) {
			continue
		}
		items = append(items, core.ListItem{Title: title, Description: desc})
	}
	return items
}

// coveredByItems reports whether the paragraph repeats content already
// captured by an earlier strategy.
func coveredByItems(items []core.ListItem, para string) bool {
	for _, it := range items {
		if strings.Contains(para, it.Description) {
			return true
		}
	}
	return false
}

// splitFirstSentence splits a paragraph into its first sentence and the
// remainder. Both return values are empty when the paragraph holds fewer
// than two sentences.
func splitFirstSentence(para string) (first, rest string) {
	loc := sentenceBreak.FindStringIndex(para)
	if loc == nil {
		return "", ""
	}
	first = strings.TrimSpace(para[:loc[0]+1])
	rest = strings.TrimSpace(para[loc[1]:])
	if rest == "" {
		return "", ""
	}
	return first, rest
}
