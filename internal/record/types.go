package record

import "time"

// ToolCategory is the coarse classification bucket for a tool usage.
type ToolCategory string

const (
	CategoryRead     ToolCategory = "read"
	CategoryWrite    ToolCategory = "write"
	CategorySearch   ToolCategory = "search"
	CategoryTerminal ToolCategory = "terminal"
	CategoryBrowser  ToolCategory = "browser"
	CategoryWeb      ToolCategory = "web"
	CategoryPlanning ToolCategory = "planning"
	CategoryMemory   ToolCategory = "memory"
	CategoryOther    ToolCategory = "other"
)

// ToolUsage represents one recorded invocation of a named tool.
// Immutable once created; records keep source-text order.
type ToolUsage struct {
	ToolName  string            `json:"tool_name" yaml:"tool_name"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Arguments map[string]string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Result    string            `json:"result,omitempty" yaml:"result,omitempty"`
	Success   bool              `json:"success" yaml:"success"`
	// DurationMS is the call duration in whole milliseconds.
	DurationMS int64        `json:"duration_ms" yaml:"duration_ms"`
	Category   ToolCategory `json:"category" yaml:"category"`
}

// ModificationType classifies a file modification event.
type ModificationType string

const (
	ModCreated ModificationType = "created"
	ModEdited  ModificationType = "edited"
	ModDeleted ModificationType = "deleted"
)

// FileModification represents a single file change event. Two
// modifications to the same path are both retained; order matters.
type FileModification struct {
	FilePath      string           `json:"file_path" yaml:"file_path"`
	Type          ModificationType `json:"modification_type" yaml:"modification_type"`
	Timestamp     time.Time        `json:"timestamp" yaml:"timestamp"`
	BeforeSnippet string           `json:"before_snippet,omitempty" yaml:"before_snippet,omitempty"`
	AfterSnippet  string           `json:"after_snippet,omitempty" yaml:"after_snippet,omitempty"`
	LinesAdded    int              `json:"lines_added" yaml:"lines_added"`
	LinesRemoved  int              `json:"lines_removed" yaml:"lines_removed"`
	ToolUsed      string           `json:"tool_used,omitempty" yaml:"tool_used,omitempty"`
}

// FromDiff reports whether the modification's line counts came from a
// parsed unified diff rather than being inferred from tool arguments.
func (m FileModification) FromDiff() bool {
	return m.ToolUsed == "diff"
}

// ErrorType classifies an extracted error.
type ErrorType string

const (
	ErrDependency ErrorType = "dependency"
	ErrSyntax     ErrorType = "syntax"
	ErrBuild      ErrorType = "build"
	ErrNetwork    ErrorType = "network"
	ErrPermission ErrorType = "permission"
	ErrRuntime    ErrorType = "runtime"
)

// ErrorRecord represents one detected or manually annotated error.
type ErrorRecord struct {
	ID        string    `json:"error_id" yaml:"error_id"`
	Message   string    `json:"error_message" yaml:"error_message"`
	Type      ErrorType `json:"error_type" yaml:"error_type"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Solution  string    `json:"solution,omitempty" yaml:"solution,omitempty"`
	Effective bool      `json:"effective" yaml:"effective"`
}

// DecisionCategory classifies an extracted decision.
type DecisionCategory string

const (
	DecArchitecture DecisionCategory = "architecture"
	DecBugFix       DecisionCategory = "bug_fix"
	DecOptimization DecisionCategory = "optimization"
	DecHandoff      DecisionCategory = "handoff"
	DecConfig       DecisionCategory = "config"
	DecGeneral      DecisionCategory = "general"
)

// Decision represents a key decision made during the session.
type Decision struct {
	ID          string           `json:"decision_id" yaml:"decision_id"`
	Description string           `json:"description" yaml:"description"`
	Category    DecisionCategory `json:"category" yaml:"category"`
	Rationale   string           `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Timestamp   time.Time        `json:"timestamp" yaml:"timestamp"`
}

// Impact is the severity-like level of a milestone.
type Impact string

const (
	ImpactMinor    Impact = "minor"
	ImpactMajor    Impact = "major"
	ImpactCritical Impact = "critical"
)

// Milestone is a manually declared notable achievement. Milestones are
// never auto-detected.
type Milestone struct {
	ID          string    `json:"milestone_id" yaml:"milestone_id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Impact      Impact    `json:"impact" yaml:"impact"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

// Metrics is the derived aggregate over all record lists. It has no
// identity of its own and is recomputed on demand.
type Metrics struct {
	DurationMinutes     float64 `json:"duration_minutes" yaml:"duration_minutes"`
	TotalToolCalls      int     `json:"total_tool_calls" yaml:"total_tool_calls"`
	SuccessfulToolCalls int     `json:"successful_tool_calls" yaml:"successful_tool_calls"`
	FilesCreated        int     `json:"files_created" yaml:"files_created"`
	FilesEdited         int     `json:"files_edited" yaml:"files_edited"`
	FilesDeleted        int     `json:"files_deleted" yaml:"files_deleted"`
	TotalLinesAdded     int     `json:"total_lines_added" yaml:"total_lines_added"`
	TotalLinesRemoved   int     `json:"total_lines_removed" yaml:"total_lines_removed"`
	ErrorsEncountered   int     `json:"errors_encountered" yaml:"errors_encountered"`
	ErrorsResolved      int     `json:"errors_resolved" yaml:"errors_resolved"`
	DecisionsMade       int     `json:"decisions_made" yaml:"decisions_made"`
	MilestonesAchieved  int     `json:"milestones_achieved" yaml:"milestones_achieved"`
	UniqueFilesTouched  int     `json:"unique_files_touched" yaml:"unique_files_touched"`
}
