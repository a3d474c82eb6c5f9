package filemod

import (
	"regexp"
	"strings"
	"time"

	"github.com/johns/sessiondoc/internal/record"
)

var diffHeaderRe = regexp.MustCompile(`^diff --git a/(.+?) b/(.+)$`)

// ParseDiff parses unified diff text into FileModification records with
// exact line counts. Blocks that cannot be parsed are skipped; the rest
// of the diff is still processed. Records use ToolUsed "diff" so
// reporting can tell them apart from tool-inferred ones.
func ParseDiff(diffText string, ts time.Time) []record.FileModification {
	var mods []record.FileModification

	var cur *record.FileModification
	var sawOld, sawNew bool // pre-image / post-image present

	flush := func() {
		if cur == nil {
			return
		}
		switch {
		case !sawOld && sawNew:
			cur.Type = record.ModCreated
		case sawOld && !sawNew:
			cur.Type = record.ModDeleted
		default:
			cur.Type = record.ModEdited
		}
		mods = append(mods, *cur)
		cur = nil
	}

	for _, line := range strings.Split(diffText, "\n") {
		if m := diffHeaderRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &record.FileModification{
				FilePath:  m[2],
				Timestamp: ts,
				ToolUsed:  "diff",
			}
			sawOld, sawNew = false, false
			continue
		}
		if cur == nil {
			// Headerless diff: open a block at the first ---/+++ pair.
			if strings.HasPrefix(line, "--- ") {
				cur = &record.FileModification{Timestamp: ts, ToolUsed: "diff"}
				sawOld = markImage(line[4:], &cur.FilePath)
				sawNew = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "--- "):
			if sawNew {
				// Headerless diff rolling into its next file block.
				flush()
				cur = &record.FileModification{Timestamp: ts, ToolUsed: "diff"}
				sawNew = false
			}
			sawOld = markImage(line[4:], &cur.FilePath)
		case strings.HasPrefix(line, "+++ "):
			sawNew = markImage(line[4:], &cur.FilePath)
		case strings.HasPrefix(line, "+"):
			cur.LinesAdded++
		case strings.HasPrefix(line, "-"):
			cur.LinesRemoved++
		case strings.HasPrefix(line, "new file mode"):
			sawOld = false
		case strings.HasPrefix(line, "deleted file mode"):
			sawNew = false
		}
	}
	flush()

	return mods
}

// markImage records whether a ---/+++ header names real content or
// /dev/null, filling in the file path when it is still unknown.
func markImage(name string, path *string) bool {
	name = strings.TrimSpace(name)
	if name == "/dev/null" {
		return false
	}
	name = strings.TrimPrefix(name, "a/")
	name = strings.TrimPrefix(name, "b/")
	if *path == "" {
		*path = name
	}
	return true
}
