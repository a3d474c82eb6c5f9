package toolcall

import "github.com/johns/sessiondoc/internal/record"

// categories maps known tool names to their category. Tools absent
// from the table fall into CategoryOther.
var categories = map[string]record.ToolCategory{
	// Read operations
	"read_file": record.CategoryRead,
	"list_dir":  record.CategoryRead,

	// Search operations
	"glob_file_search": record.CategorySearch,
	"grep":             record.CategorySearch,
	"codebase_search":  record.CategorySearch,

	// Write operations
	"write":          record.CategoryWrite,
	"search_replace": record.CategoryWrite,
	"edit_notebook":  record.CategoryWrite,
	"delete_file":    record.CategoryWrite,

	// Terminal operations
	"run_terminal_cmd": record.CategoryTerminal,

	// Browser operations
	"mcp_cursor-ide-browser_browser_navigate": record.CategoryBrowser,
	"mcp_cursor-ide-browser_browser_snapshot": record.CategoryBrowser,
	"mcp_cursor-ide-browser_browser_click":    record.CategoryBrowser,
	"mcp_cursor-ide-browser_browser_type":     record.CategoryBrowser,

	// Other
	"web_search":    record.CategoryWeb,
	"todo_write":    record.CategoryPlanning,
	"update_memory": record.CategoryMemory,
}

// Categorize returns the category for a tool name.
func Categorize(name string) record.ToolCategory {
	if c, ok := categories[name]; ok {
		return c
	}
	return record.CategoryOther
}

// Known reports whether a tool name appears in the category table.
func Known(name string) bool {
	_, ok := categories[name]
	return ok
}
