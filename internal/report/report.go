// Package report renders the accumulated session records into one of
// several textual encodings: structured JSON, structured YAML, a
// narrative markdown document, or a plain condensed summary.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/johns/sessiondoc/internal/record"
)

// Report holds everything a renderer needs: identity, the computed
// metrics, and every record list in source order.
type Report struct {
	SessionName       string                    `json:"session_name" yaml:"session_name"`
	SessionID         string                    `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	GeneratedAt       time.Time                 `json:"generated_at" yaml:"generated_at"`
	Metrics           record.Metrics            `json:"metrics" yaml:"metrics"`
	ToolUsages        []record.ToolUsage        `json:"tool_usages" yaml:"tool_usages"`
	FileModifications []record.FileModification `json:"file_modifications" yaml:"file_modifications"`
	Errors            []record.ErrorRecord      `json:"errors" yaml:"errors"`
	Decisions         []record.Decision         `json:"decisions" yaml:"decisions"`
	Milestones        []record.Milestone        `json:"milestones" yaml:"milestones"`
}

// Renderer encodes a report to a writer.
type Renderer interface {
	Render(r *Report, w io.Writer) error
	Extension() string
}

// NewRenderer returns the renderer for a format name. Unrecognized
// formats are a rejected call, never a silent default.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "structured", "json":
		return &StructuredRenderer{}, nil
	case "yaml", "yml":
		return &YAMLRenderer{}, nil
	case "narrative", "markdown", "md":
		return &NarrativeRenderer{}, nil
	case "plain", "text", "txt":
		return &PlainRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: structured, yaml, narrative, plain)", format)
	}
}
