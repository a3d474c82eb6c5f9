package toolcall

import (
	"testing"
	"time"

	"github.com/johns/sessiondoc/internal/record"
)

var base = time.Date(2027, 6, 15, 10, 0, 0, 0, time.UTC)

func TestExtract_NoPatterns(t *testing.T) {
	usages, seq := Extract("just some prose about nothing in particular", base, 0)
	if len(usages) != 0 {
		t.Fatalf("usages = %d, want 0", len(usages))
	}
	if seq != 0 {
		t.Errorf("seq = %d, want 0", seq)
	}
}

func TestExtract_TagBlockWithParams(t *testing.T) {
	text := `<invoke name="read_file">
<parameter name="file_path">/src/main.go</parameter>
</invoke>`
	usages, _ := Extract(text, base, 0)
	if len(usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(usages))
	}
	u := usages[0]
	if u.ToolName != "read_file" {
		t.Errorf("tool = %q", u.ToolName)
	}
	if u.Category != record.CategoryRead {
		t.Errorf("category = %q, want read", u.Category)
	}
	if u.Arguments["file_path"] != "/src/main.go" {
		t.Errorf("file_path = %q", u.Arguments["file_path"])
	}
	if !u.Success {
		t.Error("success should default to true")
	}
}

func TestExtract_ToolTag(t *testing.T) {
	text := `<tool name="grep"><param name="query">TODO</param></tool>`
	usages, _ := Extract(text, base, 0)
	if len(usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(usages))
	}
	if usages[0].Category != record.CategorySearch {
		t.Errorf("category = %q, want search", usages[0].Category)
	}
	if usages[0].Arguments["query"] != "TODO" {
		t.Errorf("query = %q", usages[0].Arguments["query"])
	}
}

func TestExtract_BareInvoke(t *testing.T) {
	usages, _ := Extract(`<invoke name="run_terminal_cmd"/>`, base, 0)
	if len(usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(usages))
	}
	if usages[0].Category != record.CategoryTerminal {
		t.Errorf("category = %q, want terminal", usages[0].Category)
	}
}

func TestExtract_JSONShape(t *testing.T) {
	text := `log: {"tool": "write", "args": {"file_path": "a.go", "lines": 12}} done`
	usages, _ := Extract(text, base, 0)
	if len(usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(usages))
	}
	u := usages[0]
	if u.ToolName != "write" || u.Category != record.CategoryWrite {
		t.Errorf("tool = %q category = %q", u.ToolName, u.Category)
	}
	if u.Arguments["file_path"] != "a.go" {
		t.Errorf("file_path = %q", u.Arguments["file_path"])
	}
	if u.Arguments["lines"] != "12" {
		t.Errorf("lines = %q", u.Arguments["lines"])
	}
}

func TestExtract_JSONNestedArgs(t *testing.T) {
	text := `{"tool": "todo_write", "args": {"todos": [{"task": "a"}, {"task": "b"}]}}`
	usages, _ := Extract(text, base, 0)
	if len(usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(usages))
	}
	if usages[0].Category != record.CategoryPlanning {
		t.Errorf("category = %q, want planning", usages[0].Category)
	}
}

func TestExtract_FunctionShape(t *testing.T) {
	usages, _ := Extract(`read_file(file="main.py")`, base, 0)
	if len(usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(usages))
	}
	if usages[0].Arguments["file"] != "main.py" {
		t.Errorf("file = %q", usages[0].Arguments["file"])
	}
}

func TestExtract_FunctionShapeIgnoresProse(t *testing.T) {
	usages, _ := Extract("we called foo(the helper) and it worked", base, 0)
	if len(usages) != 0 {
		t.Fatalf("usages = %d, want 0 for prose parens", len(usages))
	}
}

func TestExtract_UnknownToolFallsToOther(t *testing.T) {
	usages, _ := Extract(`<invoke name="mystery_tool"/>`, base, 0)
	if len(usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(usages))
	}
	if usages[0].Category != record.CategoryOther {
		t.Errorf("category = %q, want other", usages[0].Category)
	}
}

func TestExtract_MixedShapesDocumentOrder(t *testing.T) {
	text := `first <invoke name="read_file"/> then
{"tool": "write", "args": {"file_path": "a.go"}}
and finally run_terminal_cmd(command="go test ./...")`
	usages, seq := Extract(text, base, 0)
	if len(usages) != 3 {
		t.Fatalf("usages = %d, want 3", len(usages))
	}
	want := []string{"read_file", "write", "run_terminal_cmd"}
	for i, name := range want {
		if usages[i].ToolName != name {
			t.Errorf("usages[%d] = %q, want %q", i, usages[i].ToolName, name)
		}
	}
	if seq != 3 {
		t.Errorf("seq = %d, want 3", seq)
	}
}

func TestExtract_SyntheticTimestampsIncrease(t *testing.T) {
	text := `<invoke name="read_file"/><invoke name="write"/><invoke name="grep"/>`
	usages, _ := Extract(text, base, 0)
	if len(usages) != 3 {
		t.Fatalf("usages = %d, want 3", len(usages))
	}
	for i := 1; i < len(usages); i++ {
		if !usages[i].Timestamp.After(usages[i-1].Timestamp) {
			t.Errorf("timestamp %d not after %d", i, i-1)
		}
	}
}

func TestExtract_SeqContinuesAcrossCalls(t *testing.T) {
	first, seq := Extract(`<invoke name="read_file"/>`, base, 0)
	second, seq2 := Extract(`<invoke name="write"/>`, base, seq)
	if seq2 != 2 {
		t.Errorf("seq = %d, want 2", seq2)
	}
	if !second[0].Timestamp.After(first[0].Timestamp) {
		t.Error("second load timestamp should be after first load")
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want record.ToolCategory
	}{
		{"read_file", record.CategoryRead},
		{"codebase_search", record.CategorySearch},
		{"delete_file", record.CategoryWrite},
		{"web_search", record.CategoryWeb},
		{"update_memory", record.CategoryMemory},
		{"nonexistent", record.CategoryOther},
	}
	for _, tt := range tests {
		if got := Categorize(tt.name); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
