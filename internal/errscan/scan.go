// Package errscan detects error signatures in session transcripts and
// classifies them by a fixed, ordered keyword table.
package errscan

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/johns/sessiondoc/internal/record"
)

// signaturePatterns match known error shapes: language tracebacks,
// build-tool failure phrases, nonzero exit indicators.
var signaturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^((?:Traceback|panic:|Error|Exception|Failed)[^\n]*(?:\n[ \t][^\n]+){0,10})`),
	regexp.MustCompile(`(?im)((?:error|FAILED|ERROR):\s*[^\n]+)`),
	regexp.MustCompile(`(?im)(Exit code:\s*[1-9]\d*)`),
}

// categoryRule pairs an error type with its trigger keywords.
type categoryRule struct {
	typ      record.ErrorType
	keywords []string
}

// categoryRules is checked in order; the first rule with a matching
// keyword wins. No match falls through to ErrRuntime.
var categoryRules = []categoryRule{
	{record.ErrDependency, []string{"import", "module", "package", "dependency", "pip"}},
	{record.ErrSyntax, []string{"syntax", "parse", "unexpected token", "indent"}},
	{record.ErrBuild, []string{"build", "compile", "gradle", "npm run", "webpack"}},
	{record.ErrNetwork, []string{"network", "connection", "timeout", "socket", "http"}},
	{record.ErrPermission, []string{"permission", "access denied", "unauthorized"}},
}

const maxMessageLen = 500

// Scanner extracts error records from text. The id counter lives on
// the scanner so ids keep incrementing across multiple loaded sources.
type Scanner struct {
	counter int
}

// NewScanner returns a scanner with its id sequence at zero.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan finds error signatures in text and returns one ErrorRecord per
// match, ids continuing from previous scans. Matches are emitted in
// document order; when two signature patterns hit overlapping text the
// earlier pattern in the list wins. Text without any known signature
// yields an empty result.
func (s *Scanner) Scan(text string, ts time.Time) []record.ErrorRecord {
	type hit struct {
		start, end int
		msg        string
	}
	var hits []hit
	for _, re := range signaturePatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			msg := strings.TrimSpace(text[m[2]:m[3]])
			if msg == "" {
				continue
			}
			overlaps := false
			for _, h := range hits {
				if m[2] < h.end && m[3] > h.start {
					overlaps = true
					break
				}
			}
			if !overlaps {
				hits = append(hits, hit{start: m[2], end: m[3], msg: msg})
			}
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	var records []record.ErrorRecord
	for _, h := range hits {
		records = append(records, s.Record(h.msg, ts))
	}
	return records
}

// Record builds one classified ErrorRecord with the next sequential id.
func (s *Scanner) Record(msg string, ts time.Time) record.ErrorRecord {
	s.counter++
	return record.ErrorRecord{
		ID:        fmt.Sprintf("ERR_%04d", s.counter),
		Message:   truncate(msg, maxMessageLen),
		Type:      Classify(msg),
		Timestamp: ts,
	}
}

// NextID returns the id the next recorded error will receive, without
// consuming it.
func (s *Scanner) NextID() string {
	return fmt.Sprintf("ERR_%04d", s.counter+1)
}

// Reset returns the id sequence to zero.
func (s *Scanner) Reset() {
	s.counter = 0
}

// Classify assigns an error type by checking the ordered category
// rules; the first matching keyword decides.
func Classify(msg string) record.ErrorType {
	lower := strings.ToLower(msg)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.typ
			}
		}
	}
	return record.ErrRuntime
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
