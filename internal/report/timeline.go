package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// timelineEvent is one row of the ASCII timeline.
type timelineEvent struct {
	ts   time.Time
	kind string // tool, file, error, milestone
	desc string
}

// writeTimeline renders a compact chronological event listing.
// Milestones and errors are always shown; runs of same-kind events are
// compressed once the listing grows.
func writeTimeline(b *strings.Builder, r *Report) {
	b.WriteString("## Timeline\n\n")
	b.WriteString("```\n")
	b.WriteString(asciiTimeline(r))
	b.WriteString("```\n\n")
}

func asciiTimeline(r *Report) string {
	var events []timelineEvent

	for _, u := range r.ToolUsages {
		events = append(events, timelineEvent{u.Timestamp, "tool", u.ToolName})
	}
	for _, m := range r.FileModifications {
		events = append(events, timelineEvent{m.Timestamp, "file",
			fmt.Sprintf("%s: %s", m.Type, filepath.Base(m.FilePath))})
	}
	for _, e := range r.Errors {
		events = append(events, timelineEvent{e.Timestamp, "error", string(e.Type)})
	}
	for _, ms := range r.Milestones {
		events = append(events, timelineEvent{ms.Timestamp, "milestone", ms.Title})
	}

	if len(events) == 0 {
		return "No events recorded\n"
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].ts.Before(events[j].ts) })

	markers := map[string]string{
		"tool": "[T]", "file": "[F]", "error": "[!]", "milestone": "[*]",
	}

	var b strings.Builder
	shown := 0
	prevKind := ""
	for _, ev := range events {
		if ev.kind == "milestone" || ev.kind == "error" || ev.kind != prevKind || shown < 10 {
			fmt.Fprintf(&b, "%s %s %s\n", ev.ts.Format("15:04:05"), markers[ev.kind], truncate(ev.desc, 40))
			shown++
		}
		prevKind = ev.kind

		if shown >= 20 {
			fmt.Fprintf(&b, "... (%d more events)\n", len(events)-shown)
			break
		}
	}
	return b.String()
}
