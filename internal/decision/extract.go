// Package decision extracts decision statements from narrative text by
// fixed keyword matching. This is deliberately not NLP: a sentence
// qualifies when it contains a trigger keyword, and its category comes
// from an ordered keyword table.
package decision

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/johns/sessiondoc/internal/record"
)

// triggers qualify a sentence as a decision. Matching is
// case-insensitive substring.
var triggers = []string{
	"decided", "decision", "chose", "choosing", "selected", "opted",
	"went with", "will use", "implemented", "approach", "strategy",
	"solution",
}

// categoryRule pairs a decision category with its keywords.
type categoryRule struct {
	cat      record.DecisionCategory
	keywords []string
}

// categoryRules is checked in priority order; first match wins, no
// match yields DecGeneral.
var categoryRules = []categoryRule{
	{record.DecArchitecture, []string{"architecture", "design", "structure", "pattern", "module"}},
	{record.DecBugFix, []string{"fix", "bug", "error", "issue", "problem", "resolve"}},
	{record.DecOptimization, []string{"optimize", "performance", "speed", "efficient", "cache"}},
	{record.DecHandoff, []string{"handoff", "hand-off", "transition", "switch", "pass to"}},
	{record.DecConfig, []string{"config", "configuration", "setting", "environment", "variable"}},
}

var sentenceSplitRe = regexp.MustCompile(`[.!?\n]`)

const maxDescriptionLen = 200

// Extractor finds decisions in narrative text. The id counter lives on
// the extractor so ids keep incrementing across loads.
type Extractor struct {
	counter int
}

// NewExtractor returns an extractor with its id sequence at zero.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract splits text into sentence-like segments and returns one
// Decision per segment containing a trigger keyword.
func (x *Extractor) Extract(text string, ts time.Time) []record.Decision {
	var decisions []record.Decision
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		trigger := matchTrigger(sentence)
		if trigger == "" {
			continue
		}
		decisions = append(decisions, x.Record(sentence, Classify(sentence), rationaleAfter(sentence, trigger), ts))
	}
	return decisions
}

// Record builds one Decision with the next sequential id.
func (x *Extractor) Record(description string, cat record.DecisionCategory, rationale string, ts time.Time) record.Decision {
	x.counter++
	return record.Decision{
		ID:          fmt.Sprintf("DEC_%04d", x.counter),
		Description: truncate(description, maxDescriptionLen),
		Category:    cat,
		Rationale:   rationale,
		Timestamp:   ts,
	}
}

// Reset returns the id sequence to zero.
func (x *Extractor) Reset() {
	x.counter = 0
}

// matchTrigger returns the first trigger keyword present in the
// sentence, or empty when none matches.
func matchTrigger(sentence string) string {
	folded := foldASCII(sentence)
	for _, t := range triggers {
		if strings.Contains(folded, t) {
			return t
		}
	}
	return ""
}

// foldASCII lowercases ASCII letters only. Unlike strings.ToLower it
// never changes byte length, so indexes into the folded string are
// valid in the original even around multi-byte runes.
func foldASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Classify assigns a decision category by checking the ordered
// category rules; the first matching keyword decides.
func Classify(sentence string) record.DecisionCategory {
	lower := strings.ToLower(sentence)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.cat
			}
		}
	}
	return record.DecGeneral
}

// rationaleAfter returns the remainder of the sentence after the
// trigger phrase, or empty when nothing follows it.
func rationaleAfter(sentence, trigger string) string {
	idx := strings.Index(foldASCII(sentence), trigger)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(sentence[idx+len(trigger):])
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
