package errscan

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/johns/sessiondoc/internal/record"
)

var ts = time.Date(2027, 6, 15, 10, 0, 0, 0, time.UTC)

func TestScan_CleanText(t *testing.T) {
	s := NewScanner()
	recs := s.Scan("everything compiled and the tests all passed", ts)
	if len(recs) != 0 {
		t.Fatalf("records = %d, want 0", len(recs))
	}
}

func TestScan_Traceback(t *testing.T) {
	s := NewScanner()
	text := `Traceback (most recent call last):
  File "main.py", line 3, in <module>
  ModuleNotFoundError: No module named 'requests'`
	recs := s.Scan(text, ts)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.ID != "ERR_0001" {
		t.Errorf("id = %q, want ERR_0001", r.ID)
	}
	if r.Type != record.ErrDependency {
		t.Errorf("type = %q, want dependency", r.Type)
	}
	if !strings.Contains(r.Message, "ModuleNotFoundError") {
		t.Errorf("message missing continuation lines: %q", r.Message)
	}
}

func TestScan_ExitCode(t *testing.T) {
	s := NewScanner()
	recs := s.Scan("the command finished with Exit code: 2", ts)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0].Type != record.ErrRuntime {
		t.Errorf("type = %q, want runtime", recs[0].Type)
	}
}

func TestScan_ZeroExitIgnored(t *testing.T) {
	s := NewScanner()
	recs := s.Scan("Exit code: 0", ts)
	if len(recs) != 0 {
		t.Fatalf("records = %d, want 0 for clean exit", len(recs))
	}
}

func TestScan_OverlappingPatternsSingleRecord(t *testing.T) {
	// The traceback pattern and the "error:" pattern both hit this
	// line; only one record may come out.
	s := NewScanner()
	recs := s.Scan("ERROR: connection refused by upstream", ts)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0].Type != record.ErrNetwork {
		t.Errorf("type = %q, want network", recs[0].Type)
	}
}

func TestScan_IDsContinueAcrossScans(t *testing.T) {
	s := NewScanner()
	s.Scan("error: first failure", ts)
	recs := s.Scan("error: second failure", ts)
	if recs[0].ID != "ERR_0002" {
		t.Errorf("id = %q, want ERR_0002", recs[0].ID)
	}
	if got := s.NextID(); got != "ERR_0003" {
		t.Errorf("NextID = %q, want ERR_0003", got)
	}
}

func TestScan_DocumentOrder(t *testing.T) {
	s := NewScanner()
	text := "error: syntax error near token\nlater: Exit code: 1"
	recs := s.Scan(text, ts)
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].Type != record.ErrSyntax {
		t.Errorf("first type = %q, want syntax", recs[0].Type)
	}
	if recs[1].Type != record.ErrRuntime {
		t.Errorf("second type = %q, want runtime", recs[1].Type)
	}
}

func TestClassify_OrderedRules(t *testing.T) {
	tests := []struct {
		msg  string
		want record.ErrorType
	}{
		{"No module named 'foo'", record.ErrDependency},
		{"SyntaxError: unexpected token", record.ErrSyntax},
		{"npm run build failed", record.ErrBuild},
		{"connection timeout after 30s", record.ErrNetwork},
		{"permission denied: /etc/hosts", record.ErrPermission},
		{"nil pointer dereference", record.ErrRuntime},
		// "import" outranks "build" because dependency is checked first.
		{"build failed: cannot import package", record.ErrDependency},
	}
	for _, tt := range tests {
		if got := Classify(tt.msg); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestRecord_TruncatesLongMessages(t *testing.T) {
	s := NewScanner()
	r := s.Record(strings.Repeat("x", 600), ts)
	if len(r.Message) != 500 {
		t.Errorf("message length = %d, want 500", len(r.Message))
	}
	if !strings.HasSuffix(r.Message, "...") {
		t.Error("truncated message should end with ellipsis")
	}
}

func TestRecord_TruncatesOnRuneBoundary(t *testing.T) {
	s := NewScanner()
	r := s.Record("error: "+strings.Repeat("é", 300), ts)
	if len(r.Message) > 500 {
		t.Errorf("message length = %d, want <= 500", len(r.Message))
	}
	if !utf8.ValidString(r.Message) {
		t.Error("truncated message contains invalid UTF-8")
	}
}

func TestReset(t *testing.T) {
	s := NewScanner()
	s.Record("error: something", ts)
	s.Reset()
	if got := s.NextID(); got != "ERR_0001" {
		t.Errorf("NextID after reset = %q, want ERR_0001", got)
	}
}
