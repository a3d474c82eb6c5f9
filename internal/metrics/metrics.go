// Package metrics reduces extracted session records into a single
// aggregate. Compute is a pure function; it is safe to call repeatedly
// as records accumulate.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/johns/sessiondoc/internal/record"
)

// Compute aggregates all record lists plus the session time bounds into
// a Metrics value. Duration is (end - start) in minutes and zero when
// either bound is unset.
func Compute(
	usages []record.ToolUsage,
	mods []record.FileModification,
	errors []record.ErrorRecord,
	decisions []record.Decision,
	milestones []record.Milestone,
	start, end time.Time,
) record.Metrics {
	var m record.Metrics

	if !start.IsZero() && !end.IsZero() {
		m.DurationMinutes = round2(end.Sub(start).Minutes())
	}

	m.TotalToolCalls = len(usages)
	for _, u := range usages {
		if u.Success {
			m.SuccessfulToolCalls++
		}
	}

	unique := make(map[string]bool, len(mods))
	for _, mod := range mods {
		switch mod.Type {
		case record.ModCreated:
			m.FilesCreated++
		case record.ModEdited:
			m.FilesEdited++
		case record.ModDeleted:
			m.FilesDeleted++
		}
		m.TotalLinesAdded += mod.LinesAdded
		m.TotalLinesRemoved += mod.LinesRemoved
		unique[mod.FilePath] = true
	}
	m.UniqueFilesTouched = len(unique)

	m.ErrorsEncountered = len(errors)
	for _, e := range errors {
		if e.Effective {
			m.ErrorsResolved++
		}
	}

	m.DecisionsMade = len(decisions)
	m.MilestonesAchieved = len(milestones)

	return m
}

// CategoryCount is one row of the tool-category breakdown.
type CategoryCount struct {
	Category record.ToolCategory
	Count    int
	Percent  float64
}

// CategoryBreakdown counts usages per category with percentages of the
// total. Rows are ordered by descending count; ties keep the order the
// category was first seen in the usage list. An empty usage list yields
// no rows.
func CategoryBreakdown(usages []record.ToolUsage) []CategoryCount {
	counts := make(map[record.ToolCategory]int)
	var order []record.ToolCategory
	for _, u := range usages {
		if counts[u.Category] == 0 {
			order = append(order, u.Category)
		}
		counts[u.Category]++
	}

	total := len(usages)
	rows := make([]CategoryCount, 0, len(order))
	for _, cat := range order {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[cat]) / float64(total) * 100
		}
		rows = append(rows, CategoryCount{Category: cat, Count: counts[cat], Percent: pct})
	}

	// Stable sort preserves first-seen order among equal counts.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows
}

// ToolCount is one row of the per-tool ranking.
type ToolCount struct {
	Name  string
	Count int
}

// TopTools ranks tools by usage count, descending, ties by first-seen
// order, capped at limit.
func TopTools(usages []record.ToolUsage, limit int) []ToolCount {
	counts := make(map[string]int)
	var order []string
	for _, u := range usages {
		if counts[u.ToolName] == 0 {
			order = append(order, u.ToolName)
		}
		counts[u.ToolName]++
	}

	rows := make([]ToolCount, 0, len(order))
	for _, name := range order {
		rows = append(rows, ToolCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
