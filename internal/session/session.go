// Package session owns the mutable state of one documentation session:
// every extracted and manually added record, append-only until Reset.
// A Session is not safe for concurrent use; callers hold one per
// session and serialize access.
package session

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johns/sessiondoc/internal/decision"
	"github.com/johns/sessiondoc/internal/errscan"
	"github.com/johns/sessiondoc/internal/filemod"
	"github.com/johns/sessiondoc/internal/metrics"
	"github.com/johns/sessiondoc/internal/record"
	"github.com/johns/sessiondoc/internal/report"
	"github.com/johns/sessiondoc/internal/toolcall"
)

// DefaultName is used when the caller never names the session.
const DefaultName = "Session"

// Session accumulates records from loaded transcripts, diffs and
// manual annotations, and renders them into reports.
type Session struct {
	name string
	id   string

	// base seeds synthetic timestamps for records without explicit
	// ones; seq only grows, so ordering survives multiple loads.
	base time.Time
	seq  int

	start time.Time
	end   time.Time

	usages     []record.ToolUsage
	mods       []record.FileModification
	errors     []record.ErrorRecord
	decisions  []record.Decision
	milestones []record.Milestone

	errScanner *errscan.Scanner
	decExtract *decision.Extractor
	msCounter  int

	now func() time.Time
}

// Option configures a Session at construction.
type Option func(*Session)

// WithBaseTime fixes the synthetic timestamp base, keeping output
// reproducible in tests.
func WithBaseTime(t time.Time) Option {
	return func(s *Session) {
		s.base = t
		s.now = func() time.Time { return t }
	}
}

// New constructs an empty session accumulator.
func New(name string, opts ...Option) *Session {
	if name == "" {
		name = DefaultName
	}
	s := &Session{
		name:       name,
		id:         uuid.NewString(),
		errScanner: errscan.NewScanner(),
		decExtract: decision.NewExtractor(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.base.IsZero() {
		s.base = s.now()
	}
	return s
}

// Name returns the session name.
func (s *Session) Name() string { return s.name }

// SetName renames the session.
func (s *Session) SetName(name string) {
	if name != "" {
		s.name = name
	}
}

// ID returns the generated session identifier.
func (s *Session) ID() string { return s.id }

// SetTimeBounds sets the explicit session start and end used for the
// duration metric. Duration stays zero until both are set.
func (s *Session) SetTimeBounds(start, end time.Time) {
	s.start = start
	s.end = end
}

// Load parses one text blob and appends every record it yields: tool
// usages, tool-inferred file modifications, detected errors and
// decisions. Text with no recognizable patterns appends nothing; that
// is a parse miss, not an error. Repeated calls only ever append.
func (s *Session) Load(text string) {
	loadTS := s.base.Add(time.Duration(s.seq) * time.Second)

	usages, next := toolcall.Extract(text, s.base, s.seq)
	s.seq = next
	s.usages = append(s.usages, usages...)

	s.mods = append(s.mods, filemod.FromToolUsages(usages)...)
	s.errors = append(s.errors, s.errScanner.Scan(text, loadTS)...)
	s.decisions = append(s.decisions, s.decExtract.Extract(text, loadTS)...)
}

// LoadDiff parses unified diff text and appends the resulting file
// modification records. Unparseable blocks are skipped; the rest of
// the diff still loads.
func (s *Session) LoadDiff(diffText string) {
	ts := s.base.Add(time.Duration(s.seq) * time.Second)
	s.mods = append(s.mods, filemod.ParseDiff(diffText, ts)...)
}

// AddMilestone appends a manually declared milestone. An out-of-enum
// impact is rejected and nothing is appended.
func (s *Session) AddMilestone(title, description, impact string) (record.Milestone, error) {
	imp, err := record.ParseImpact(impact)
	if err != nil {
		return record.Milestone{}, err
	}
	s.msCounter++
	ms := record.Milestone{
		ID:          fmt.Sprintf("MS_%04d", s.msCounter),
		Title:       title,
		Description: description,
		Impact:      imp,
		Timestamp:   s.now(),
	}
	s.milestones = append(s.milestones, ms)
	return ms, nil
}

// AddDecision appends a manually declared decision. An out-of-enum
// category is rejected and nothing is appended.
func (s *Session) AddDecision(description, category, rationale string) (record.Decision, error) {
	cat, err := record.ParseDecisionCategory(category)
	if err != nil {
		return record.Decision{}, err
	}
	d := s.decExtract.Record(description, cat, rationale, s.now())
	s.decisions = append(s.decisions, d)
	return d, nil
}

// AddErrorSolution appends a manually annotated error with its
// solution. An out-of-enum error type is rejected and nothing is
// appended.
func (s *Session) AddErrorSolution(message, errType, solution string, effective bool) (record.ErrorRecord, error) {
	typ, err := record.ParseErrorType(errType)
	if err != nil {
		return record.ErrorRecord{}, err
	}
	e := s.errScanner.Record(message, s.now())
	e.Type = typ
	e.Solution = solution
	e.Effective = effective
	s.errors = append(s.errors, e)
	return e, nil
}

// Metrics recomputes the aggregate from the current record lists.
func (s *Session) Metrics() record.Metrics {
	return metrics.Compute(s.usages, s.mods, s.errors, s.decisions, s.milestones, s.start, s.end)
}

// Report assembles the full record set and computed metrics for
// rendering. Slices are copied so renderers cannot mutate the
// accumulator.
func (s *Session) Report() *report.Report {
	return &report.Report{
		SessionName:       s.name,
		SessionID:         s.id,
		GeneratedAt:       s.now(),
		Metrics:           s.Metrics(),
		ToolUsages:        append([]record.ToolUsage(nil), s.usages...),
		FileModifications: append([]record.FileModification(nil), s.mods...),
		Errors:            append([]record.ErrorRecord(nil), s.errors...),
		Decisions:         append([]record.Decision(nil), s.decisions...),
		Milestones:        append([]record.Milestone(nil), s.milestones...),
	}
}

// RenderTo encodes the current report in the given format. Unknown
// formats are a rejected call. Nothing here touches the filesystem.
func (s *Session) RenderTo(format string, w io.Writer) error {
	r, err := report.NewRenderer(format)
	if err != nil {
		return err
	}
	return r.Render(s.Report(), w)
}

// Render encodes the current report and returns it as text.
func (s *Session) Render(format string) (string, error) {
	var b strings.Builder
	if err := s.RenderTo(format, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Summary is the condensed metrics-only view for programmatic use.
type Summary struct {
	SessionName     string  `json:"session_name"`
	DurationMinutes float64 `json:"duration_minutes"`
	ToolCalls       int     `json:"tool_calls"`
	FilesTouched    int     `json:"files_touched"`
	Errors          int     `json:"errors"`
	ErrorsResolved  int     `json:"errors_resolved"`
	Decisions       int     `json:"decisions"`
	Milestones      int     `json:"milestones"`
}

// Summary returns the condensed view of the current metrics.
func (s *Session) Summary() Summary {
	m := s.Metrics()
	return Summary{
		SessionName:     s.name,
		DurationMinutes: m.DurationMinutes,
		ToolCalls:       m.TotalToolCalls,
		FilesTouched:    m.UniqueFilesTouched,
		Errors:          m.ErrorsEncountered,
		ErrorsResolved:  m.ErrorsResolved,
		Decisions:       m.DecisionsMade,
		Milestones:      m.MilestonesAchieved,
	}
}

// Reset clears all accumulated state back to empty: record lists, id
// sequences, synthetic timestamp sequence, time bounds and name.
func (s *Session) Reset() {
	s.usages = nil
	s.mods = nil
	s.errors = nil
	s.decisions = nil
	s.milestones = nil
	s.errScanner.Reset()
	s.decExtract.Reset()
	s.msCounter = 0
	s.seq = 0
	s.start = time.Time{}
	s.end = time.Time{}
	s.name = DefaultName
}
