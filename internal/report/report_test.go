package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/johns/sessiondoc/internal/metrics"
	"github.com/johns/sessiondoc/internal/record"
)

var genAt = time.Date(2027, 6, 15, 10, 0, 0, 0, time.UTC)

func sampleReport() *Report {
	usages := []record.ToolUsage{
		{ToolName: "read_file", Timestamp: genAt, Success: true, Category: record.CategoryRead},
		{ToolName: "write", Timestamp: genAt.Add(time.Second), Success: true, Category: record.CategoryWrite,
			Arguments: map[string]string{"file_path": "a.go"}},
	}
	mods := []record.FileModification{
		{FilePath: "a.go", Type: record.ModCreated, Timestamp: genAt.Add(time.Second), ToolUsed: "write"},
		{FilePath: "b.go", Type: record.ModEdited, LinesAdded: 4, LinesRemoved: 2,
			Timestamp: genAt.Add(2 * time.Second), ToolUsed: "diff"},
	}
	errs := []record.ErrorRecord{
		{ID: "ERR_0001", Message: "error: connection refused", Type: record.ErrNetwork,
			Timestamp: genAt.Add(3 * time.Second), Solution: "retried with backoff", Effective: true},
	}
	decs := []record.Decision{
		{ID: "DEC_0001", Description: "decided to cache lookups", Category: record.DecOptimization,
			Rationale: "to cache lookups", Timestamp: genAt},
	}
	miles := []record.Milestone{
		{ID: "MS_0001", Title: "First green build", Description: "all tests pass",
			Impact: record.ImpactMajor, Timestamp: genAt.Add(4 * time.Second)},
	}
	return &Report{
		SessionName:       "Demo",
		SessionID:         "abc-123",
		GeneratedAt:       genAt,
		Metrics:           metrics.Compute(usages, mods, errs, decs, miles, genAt, genAt.Add(10*time.Minute)),
		ToolUsages:        usages,
		FileModifications: mods,
		Errors:            errs,
		Decisions:         decs,
		Milestones:        miles,
	}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []string{"structured", "json", "yaml", "yml", "narrative", "markdown", "md", "plain", "text", "txt"} {
		if _, err := NewRenderer(format); err != nil {
			t.Errorf("NewRenderer(%q) failed: %v", format, err)
		}
	}
	if _, err := NewRenderer("xml"); err == nil {
		t.Error("NewRenderer(xml) should fail")
	}
}

func TestRendererExtensions(t *testing.T) {
	tests := []struct{ format, ext string }{
		{"structured", "json"},
		{"yaml", "yaml"},
		{"narrative", "md"},
		{"plain", "txt"},
	}
	for _, tt := range tests {
		r, err := NewRenderer(tt.format)
		if err != nil {
			t.Fatalf("NewRenderer(%q): %v", tt.format, err)
		}
		if got := r.Extension(); got != tt.ext {
			t.Errorf("%s extension = %q, want %q", tt.format, got, tt.ext)
		}
	}
}

// The structured encoding must round-trip: decoding it and recomputing
// metrics from the embedded lists reproduces the serialized metrics.
func TestStructuredRoundTrip(t *testing.T) {
	r := sampleReport()
	var buf bytes.Buffer
	if err := (&StructuredRenderer{}).Render(r, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	var back Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.SessionName != "Demo" || back.SessionID != "abc-123" {
		t.Errorf("identity = %q/%q", back.SessionName, back.SessionID)
	}

	recomputed := metrics.Compute(back.ToolUsages, back.FileModifications,
		back.Errors, back.Decisions, back.Milestones, genAt, genAt.Add(10*time.Minute))
	if recomputed != back.Metrics {
		t.Errorf("recomputed metrics = %+v, want %+v", recomputed, back.Metrics)
	}
}

func TestNarrativeSections(t *testing.T) {
	var buf bytes.Buffer
	if err := (&NarrativeRenderer{}).Render(sampleReport(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	wantSections := []string{
		"# Demo Summary",
		"## Quick Stats",
		"## Tool Usage Breakdown",
		"### Top Tools Used",
		"## File Modifications",
		"## Errors & Solutions",
		"## Key Decisions",
		"## Milestones",
		"## Timeline",
		"*Generated by sessiondoc*",
	}
	for _, s := range wantSections {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}

	if !strings.Contains(out, "| read | 1 | 50.0% |") {
		t.Errorf("category row missing:\n%s", out)
	}
	if !strings.Contains(out, "| b.go | edited | +4/-2 | diff |") {
		t.Errorf("diff-sourced file row missing:\n%s", out)
	}
	if !strings.Contains(out, "| a.go | created | +0/-0 | tool |") {
		t.Errorf("tool-sourced file row missing:\n%s", out)
	}
	if !strings.Contains(out, "[OK] ERR_0001: NETWORK") {
		t.Errorf("resolved error marker missing:\n%s", out)
	}
	if !strings.Contains(out, "**Solution:** retried with backoff") {
		t.Errorf("solution line missing:\n%s", out)
	}
	if !strings.Contains(out, "[*] **First green build**") {
		t.Errorf("milestone marker missing:\n%s", out)
	}
}

func TestNarrativeEmptyReport(t *testing.T) {
	r := &Report{SessionName: "Empty", GeneratedAt: genAt}
	var buf bytes.Buffer
	if err := (&NarrativeRenderer{}).Render(r, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, s := range []string{
		"*No tool calls recorded*",
		"*No file modifications tracked*",
		"*No errors encountered*",
		"*No decisions tracked*",
		"*No milestones defined*",
		"No events recorded",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("empty report missing %q", s)
		}
	}
}

func TestNarrativeDecisionGrouping(t *testing.T) {
	r := &Report{
		SessionName: "G",
		GeneratedAt: genAt,
		Decisions: []record.Decision{
			{ID: "DEC_0001", Description: "one", Category: record.DecBugFix},
			{ID: "DEC_0002", Description: "two", Category: record.DecArchitecture},
			{ID: "DEC_0003", Description: "three", Category: record.DecBugFix},
		},
	}
	var buf bytes.Buffer
	if err := (&NarrativeRenderer{}).Render(r, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	bugIdx := strings.Index(out, "### BUG_FIX")
	archIdx := strings.Index(out, "### ARCHITECTURE")
	if bugIdx < 0 || archIdx < 0 {
		t.Fatalf("group headings missing:\n%s", out)
	}
	if bugIdx > archIdx {
		t.Error("groups should appear in first-seen order")
	}
}

func TestPlainRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&PlainRenderer{}).Render(sampleReport(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, s := range []string{
		"DEMO SUMMARY",
		"METRICS",
		"Tool Calls:     2 (2 successful)",
		"TOP TOOLS",
		"1. read_file: 1",
		"END OF SUMMARY",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("plain output missing %q", s)
		}
	}
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLRenderer{}).Render(sampleReport(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "session_name: Demo") {
		t.Errorf("yaml missing session_name:\n%s", out)
	}
	if !strings.Contains(out, "tool_usages:") {
		t.Errorf("yaml missing tool_usages:\n%s", out)
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	s := strings.Repeat("é", 100)
	got := truncate(s, 21)
	if len(got) > 21 {
		t.Errorf("length = %d, want <= 21", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated text contains invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis: %q", got)
	}
}

func TestTimelineMarkers(t *testing.T) {
	var b strings.Builder
	writeTimeline(&b, sampleReport())
	out := b.String()
	for _, marker := range []string{"[T]", "[F]", "[!]", "[*]"} {
		if !strings.Contains(out, marker) {
			t.Errorf("timeline missing %s marker:\n%s", marker, out)
		}
	}
}
