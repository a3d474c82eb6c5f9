// Package filemod derives file modification events from two sources:
// write-like tool usages and unified diff text. Records from both
// sources are kept side by side; diff-derived records carry exact line
// counts while tool-inferred ones default to zero.
package filemod

import (
	"github.com/johns/sessiondoc/internal/record"
)

// pathKeys are argument names checked, in order, for a file path.
var pathKeys = []string{"file_path", "target_file", "notebook_path", "path", "file"}

// creatorTools write whole files; their modifications count as created.
var creatorTools = map[string]bool{
	"write": true,
}

// editorTools patch or replace existing content.
var editorTools = map[string]bool{
	"search_replace": true,
	"edit_notebook":  true,
}

// deleterTools remove files.
var deleterTools = map[string]bool{
	"delete_file": true,
}

// FromToolUsages infers one FileModification per write-like tool usage.
// Usages that are not write-like, or that carry no path-like argument,
// contribute nothing.
func FromToolUsages(usages []record.ToolUsage) []record.FileModification {
	var mods []record.FileModification
	for _, u := range usages {
		typ, ok := classifyTool(u)
		if !ok {
			continue
		}
		mods = append(mods, record.FileModification{
			FilePath:  pathArg(u.Arguments),
			Type:      typ,
			Timestamp: u.Timestamp,
			ToolUsed:  u.ToolName,
		})
	}
	return mods
}

func classifyTool(u record.ToolUsage) (record.ModificationType, bool) {
	switch {
	case creatorTools[u.ToolName]:
		return record.ModCreated, true
	case editorTools[u.ToolName]:
		return record.ModEdited, true
	case deleterTools[u.ToolName]:
		return record.ModDeleted, true
	case u.Category == record.CategoryWrite:
		// Write-category tool outside the known tables: treat as an edit.
		return record.ModEdited, true
	}
	return "", false
}

func pathArg(args map[string]string) string {
	for _, k := range pathKeys {
		if v, ok := args[k]; ok && v != "" {
			return v
		}
	}
	return "unknown"
}

// Merge concatenates tool-inferred and diff-derived modifications.
// Both records are kept when they describe the same path; downstream
// reporting prefers the diff-derived line counts.
func Merge(fromTools, fromDiff []record.FileModification) []record.FileModification {
	merged := make([]record.FileModification, 0, len(fromTools)+len(fromDiff))
	merged = append(merged, fromTools...)
	merged = append(merged, fromDiff...)
	return merged
}

// UniquePaths counts distinct file paths across modifications
// regardless of modification type.
func UniquePaths(mods []record.FileModification) int {
	seen := make(map[string]bool, len(mods))
	for _, m := range mods {
		seen[m.FilePath] = true
	}
	return len(seen)
}
