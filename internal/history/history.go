// Package history persists a compact index of generated session
// summaries in SQLite so past sessions can be listed and compared.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/johns/sessiondoc/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id       TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	created_at       TEXT NOT NULL,
	duration_minutes REAL NOT NULL,
	tool_calls       INTEGER NOT NULL,
	files_touched    INTEGER NOT NULL,
	errors           INTEGER NOT NULL,
	errors_resolved  INTEGER NOT NULL,
	decisions        INTEGER NOT NULL,
	milestones       INTEGER NOT NULL,
	report_path      TEXT NOT NULL DEFAULT ''
);
`

// Entry is one recorded session summary.
type Entry struct {
	SessionID       string
	Name            string
	CreatedAt       time.Time
	DurationMinutes float64
	ToolCalls       int
	FilesTouched    int
	Errors          int
	ErrorsResolved  int
	Decisions       int
	Milestones      int
	ReportPath      string
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history db ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts or replaces the summary row for one session.
func (s *Store) Record(sessionID string, sum session.Summary, reportPath string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sessions
		(session_id, name, created_at, duration_minutes, tool_calls,
		 files_touched, errors, errors_resolved, decisions, milestones, report_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, sum.SessionName, at.UTC().Format(time.RFC3339),
		sum.DurationMinutes, sum.ToolCalls, sum.FilesTouched,
		sum.Errors, sum.ErrorsResolved, sum.Decisions, sum.Milestones,
		reportPath,
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// List returns recorded sessions, newest first, capped at limit
// (0 means no cap).
func (s *Store) List(limit int) ([]Entry, error) {
	return s.list("", limit)
}

// ListByName returns recorded sessions with the given name, newest
// first, capped at limit (0 means no cap).
func (s *Store) ListByName(name string, limit int) ([]Entry, error) {
	return s.list(name, limit)
}

func (s *Store) list(name string, limit int) ([]Entry, error) {
	q := `
		SELECT session_id, name, created_at, duration_minutes, tool_calls,
		       files_touched, errors, errors_resolved, decisions, milestones, report_path
		FROM sessions`
	var args []any
	if name != "" {
		q += " WHERE name = ?"
		args = append(args, name)
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.SessionID, &e.Name, &created, &e.DurationMinutes,
			&e.ToolCalls, &e.FilesTouched, &e.Errors, &e.ErrorsResolved,
			&e.Decisions, &e.Milestones, &e.ReportPath); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}

// Get returns one session entry by id.
func (s *Store) Get(sessionID string) (Entry, bool, error) {
	row := s.db.QueryRow(`
		SELECT session_id, name, created_at, duration_minutes, tool_calls,
		       files_touched, errors, errors_resolved, decisions, milestones, report_path
		FROM sessions WHERE session_id = ?`, sessionID)

	var e Entry
	var created string
	err := row.Scan(&e.SessionID, &e.Name, &created, &e.DurationMinutes,
		&e.ToolCalls, &e.FilesTouched, &e.Errors, &e.ErrorsResolved,
		&e.Decisions, &e.Milestones, &e.ReportPath)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get session: %w", err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return e, true, nil
}
