package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/johns/sessiondoc/internal/metrics"
)

// PlainRenderer emits the condensed line-oriented summary: counts only,
// no detail lists.
type PlainRenderer struct{}

func (*PlainRenderer) Extension() string { return "txt" }

func (*PlainRenderer) Render(r *Report, w io.Writer) error {
	var b strings.Builder
	sep := strings.Repeat("=", 60)
	rule := strings.Repeat("-", 60)

	b.WriteString(sep + "\n")
	fmt.Fprintf(&b, "  %s SUMMARY\n", strings.ToUpper(r.SessionName))
	b.WriteString(sep + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration:  %.1f minutes\n\n", r.Metrics.DurationMinutes)

	b.WriteString(rule + "\n")
	b.WriteString("METRICS\n")
	b.WriteString(rule + "\n")
	m := r.Metrics
	fmt.Fprintf(&b, "  Tool Calls:     %d (%d successful)\n", m.TotalToolCalls, m.SuccessfulToolCalls)
	fmt.Fprintf(&b, "  Files Created:  %d\n", m.FilesCreated)
	fmt.Fprintf(&b, "  Files Edited:   %d\n", m.FilesEdited)
	fmt.Fprintf(&b, "  Files Deleted:  %d\n", m.FilesDeleted)
	fmt.Fprintf(&b, "  Lines Added:    %d\n", m.TotalLinesAdded)
	fmt.Fprintf(&b, "  Lines Removed:  %d\n", m.TotalLinesRemoved)
	fmt.Fprintf(&b, "  Errors:         %d (%d resolved)\n", m.ErrorsEncountered, m.ErrorsResolved)
	fmt.Fprintf(&b, "  Decisions:      %d\n", m.DecisionsMade)
	fmt.Fprintf(&b, "  Milestones:     %d\n", m.MilestonesAchieved)
	b.WriteString("\n")

	b.WriteString(rule + "\n")
	b.WriteString("TOP TOOLS\n")
	b.WriteString(rule + "\n")
	for i, row := range metrics.TopTools(r.ToolUsages, 5) {
		fmt.Fprintf(&b, "  %d. %s: %d\n", i+1, row.Name, row.Count)
	}
	b.WriteString("\n")

	b.WriteString(sep + "\n")
	b.WriteString("END OF SUMMARY\n")
	b.WriteString(sep + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
