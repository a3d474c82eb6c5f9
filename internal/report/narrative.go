package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/johns/sessiondoc/internal/metrics"
	"github.com/johns/sessiondoc/internal/record"
)

const (
	maxFileRows     = 20
	maxErrorBlocks  = 10
	maxDecisionRows = 15
	topToolLimit    = 10
)

// NarrativeRenderer emits the sectioned human-readable markdown
// document: stats table, category breakdown, top tools, file
// modifications, errors, decisions grouped by category, milestones
// and a timeline.
type NarrativeRenderer struct{}

func (*NarrativeRenderer) Extension() string { return "md" }

func (*NarrativeRenderer) Render(r *Report, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Summary\n\n", r.SessionName)
	fmt.Fprintf(&b, "**Generated:** %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Duration:** %.1f minutes\n\n", r.Metrics.DurationMinutes)

	writeQuickStats(&b, r.Metrics)
	writeCategoryBreakdown(&b, r.ToolUsages)
	writeTopTools(&b, r.ToolUsages)
	writeFileModifications(&b, r.FileModifications)
	writeErrors(&b, r.Errors)
	writeDecisions(&b, r.Decisions)
	writeMilestones(&b, r.Milestones)
	writeTimeline(&b, r)

	b.WriteString("---\n")
	b.WriteString("*Generated by sessiondoc*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeQuickStats(b *strings.Builder, m record.Metrics) {
	b.WriteString("## Quick Stats\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Total Tool Calls | %d |\n", m.TotalToolCalls)
	fmt.Fprintf(b, "| Successful | %d |\n", m.SuccessfulToolCalls)
	fmt.Fprintf(b, "| Files Created | %d |\n", m.FilesCreated)
	fmt.Fprintf(b, "| Files Edited | %d |\n", m.FilesEdited)
	fmt.Fprintf(b, "| Files Deleted | %d |\n", m.FilesDeleted)
	fmt.Fprintf(b, "| Lines Added | %d |\n", m.TotalLinesAdded)
	fmt.Fprintf(b, "| Lines Removed | %d |\n", m.TotalLinesRemoved)
	fmt.Fprintf(b, "| Errors Encountered | %d |\n", m.ErrorsEncountered)
	fmt.Fprintf(b, "| Errors Resolved | %d |\n", m.ErrorsResolved)
	fmt.Fprintf(b, "| Decisions Made | %d |\n", m.DecisionsMade)
	fmt.Fprintf(b, "| Milestones | %d |\n", m.MilestonesAchieved)
	b.WriteString("\n")
}

// writeCategoryBreakdown renders the per-category table. The table is
// omitted entirely when there are no tool calls, which also avoids a
// zero division in the percentage column.
func writeCategoryBreakdown(b *strings.Builder, usages []record.ToolUsage) {
	b.WriteString("## Tool Usage Breakdown\n\n")
	rows := metrics.CategoryBreakdown(usages)
	if len(rows) == 0 {
		b.WriteString("*No tool calls recorded*\n\n")
		return
	}
	b.WriteString("| Category | Count | Percentage |\n")
	b.WriteString("|----------|-------|------------|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", row.Category, row.Count, row.Percent)
	}
	b.WriteString("\n")
}

func writeTopTools(b *strings.Builder, usages []record.ToolUsage) {
	b.WriteString("### Top Tools Used\n\n")
	rows := metrics.TopTools(usages, topToolLimit)
	if len(rows) == 0 {
		b.WriteString("*None*\n\n")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(b, "- `%s`: %d\n", row.Name, row.Count)
	}
	b.WriteString("\n")
}

// writeFileModifications renders the modification table. The Source
// column says whether line counts came from a parsed diff (exact) or
// were inferred from tool arguments (always 0/0).
func writeFileModifications(b *strings.Builder, mods []record.FileModification) {
	b.WriteString("## File Modifications\n\n")
	if len(mods) == 0 {
		b.WriteString("*No file modifications tracked*\n\n")
		return
	}
	b.WriteString("| File | Type | Lines +/- | Source |\n")
	b.WriteString("|------|------|-----------|--------|\n")
	shown := mods
	if len(shown) > maxFileRows {
		shown = shown[:maxFileRows]
	}
	for _, m := range shown {
		source := "tool"
		if m.FromDiff() {
			source = "diff"
		}
		fmt.Fprintf(b, "| %s | %s | +%d/-%d | %s |\n",
			filepath.Base(m.FilePath), m.Type, m.LinesAdded, m.LinesRemoved, source)
	}
	if len(mods) > maxFileRows {
		fmt.Fprintf(b, "| ... | ... | (%d more) | |\n", len(mods)-maxFileRows)
	}
	b.WriteString("\n")
}

func writeErrors(b *strings.Builder, errors []record.ErrorRecord) {
	b.WriteString("## Errors & Solutions\n\n")
	if len(errors) == 0 {
		b.WriteString("*No errors encountered*\n\n")
		return
	}
	shown := errors
	if len(shown) > maxErrorBlocks {
		shown = shown[:maxErrorBlocks]
	}
	for _, e := range shown {
		marker := "[x]"
		if e.Effective {
			marker = "[OK]"
		}
		fmt.Fprintf(b, "### %s %s: %s\n", marker, e.ID, strings.ToUpper(string(e.Type)))
		fmt.Fprintf(b, "**Error:** %s\n", truncate(e.Message, 200))
		if e.Solution != "" {
			fmt.Fprintf(b, "**Solution:** %s\n", e.Solution)
		}
		b.WriteString("\n")
	}
}

// writeDecisions groups decisions by category, categories in
// first-seen order, decisions in source order within each group.
func writeDecisions(b *strings.Builder, decisions []record.Decision) {
	b.WriteString("## Key Decisions\n\n")
	if len(decisions) == 0 {
		b.WriteString("*No decisions tracked*\n\n")
		return
	}

	grouped := make(map[record.DecisionCategory][]record.Decision)
	var order []record.DecisionCategory
	shown := decisions
	if len(shown) > maxDecisionRows {
		shown = shown[:maxDecisionRows]
	}
	for _, d := range shown {
		if _, ok := grouped[d.Category]; !ok {
			order = append(order, d.Category)
		}
		grouped[d.Category] = append(grouped[d.Category], d)
	}

	for _, cat := range order {
		fmt.Fprintf(b, "### %s\n\n", strings.ToUpper(string(cat)))
		for _, d := range grouped[cat] {
			if d.Rationale != "" && d.Rationale != d.Description {
				fmt.Fprintf(b, "- %s (rationale: %s)\n", d.Description, d.Rationale)
			} else {
				fmt.Fprintf(b, "- %s\n", d.Description)
			}
		}
		b.WriteString("\n")
	}
}

func writeMilestones(b *strings.Builder, milestones []record.Milestone) {
	b.WriteString("## Milestones\n\n")
	if len(milestones) == 0 {
		b.WriteString("*No milestones defined*\n\n")
		return
	}
	for _, ms := range milestones {
		fmt.Fprintf(b, "- %s **%s**: %s\n", impactMarker(ms.Impact), ms.Title, ms.Description)
	}
	b.WriteString("\n")
}

func impactMarker(impact record.Impact) string {
	switch impact {
	case record.ImpactCritical:
		return "[!]"
	case record.ImpactMajor:
		return "[*]"
	default:
		return "[-]"
	}
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
