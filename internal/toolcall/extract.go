// Package toolcall extracts tool invocations from free-form session
// transcripts. Three textual shapes are recognized: tag-delimited
// blocks with nested parameter sub-blocks, JSON objects with
// tool/args keys, and function-call-like name(key=value) text. All
// matchers run on every scan; results are merged in document order.
package toolcall

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/johns/sessiondoc/internal/record"
)

var (
	invokeBlockRe = regexp.MustCompile(`(?s)<invoke\s+name=["']([^"'<>]+)["']\s*>(.*?)</invoke>`)
	invokeBareRe  = regexp.MustCompile(`<invoke\s+name=["']([^"'<>]+)["']\s*/?>`)
	toolBlockRe   = regexp.MustCompile(`(?s)<tool\s+name=["']([^"'<>]+)["']\s*>(.*?)</tool>`)
	paramRe       = regexp.MustCompile(`(?s)<param(?:eter)?\s+name=["']([^"'<>]+)["']\s*>(.*?)</param(?:eter)?>`)
	jsonStartRe   = regexp.MustCompile(`\{\s*["']tool["']\s*:`)
	funcCallRe    = regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(([^()\n]*)\)`)
	kvPairRe      = regexp.MustCompile(`^\s*(\w+)\s*=\s*(.*?)\s*$`)
)

// candidate is one recognized invocation before timestamp assignment.
type candidate struct {
	pos  int
	end  int
	name string
	args map[string]string
}

// Extract scans text for tool invocations and returns one ToolUsage per
// recognized block, in document order. Text with no recognizable
// patterns yields an empty result, not an error.
//
// Entries carry synthetic sequential timestamps: base + seq seconds for
// the first, increasing by one second per entry. The returned int is
// the next sequence value, so repeated loads into the same accumulator
// keep a strictly increasing timeline.
func Extract(text string, base time.Time, seq int) ([]record.ToolUsage, int) {
	var cands []candidate

	cands = append(cands, matchTagBlocks(text)...)
	cands = append(cands, matchJSONCalls(text)...)
	cands = dedupeOverlaps(cands, matchFuncCalls(text))

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].pos < cands[j].pos })

	var usages []record.ToolUsage
	for _, c := range cands {
		usages = append(usages, record.ToolUsage{
			ToolName:  c.name,
			Timestamp: base.Add(time.Duration(seq) * time.Second),
			Arguments: c.args,
			Success:   true,
			Category:  Categorize(c.name),
		})
		seq++
	}
	return usages, seq
}

// matchTagBlocks finds <invoke name=".."> and <tool name=".."> blocks,
// parsing nested parameter sub-blocks into arguments.
func matchTagBlocks(text string) []candidate {
	var cands []candidate
	covered := make([][2]int, 0, 4)

	for _, re := range []*regexp.Regexp{invokeBlockRe, toolBlockRe} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			name := text[m[2]:m[3]]
			body := text[m[4]:m[5]]
			cands = append(cands, candidate{
				pos:  m[0],
				end:  m[1],
				name: name,
				args: parseParams(body),
			})
			covered = append(covered, [2]int{m[0], m[1]})
		}
	}

	// Bare or self-closing invoke tags that are not part of a block
	// already matched above.
	for _, m := range invokeBareRe.FindAllStringSubmatchIndex(text, -1) {
		if within(covered, m[0]) {
			continue
		}
		cands = append(cands, candidate{
			pos:  m[0],
			end:  m[1],
			name: text[m[2]:m[3]],
		})
	}

	return cands
}

// parseParams extracts parameter sub-blocks from a tag body.
func parseParams(body string) map[string]string {
	matches := paramRe.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	args := make(map[string]string, len(matches))
	for _, m := range matches {
		args[m[1]] = strings.TrimSpace(m[2])
	}
	return args
}

// jsonCall mirrors the {"tool": ..., "args": {...}} wire shape.
type jsonCall struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args"`
}

// matchJSONCalls finds JSON-shaped invocations. The regexp only
// locates the opening of a candidate object; the object itself is
// decoded with encoding/json so nested args survive intact.
func matchJSONCalls(text string) []candidate {
	var cands []candidate
	for _, loc := range jsonStartRe.FindAllStringIndex(text, -1) {
		dec := json.NewDecoder(strings.NewReader(text[loc[0]:]))
		var call jsonCall
		if err := dec.Decode(&call); err != nil || call.Tool == "" {
			continue
		}
		cands = append(cands, candidate{
			pos:  loc[0],
			end:  loc[0] + int(dec.InputOffset()),
			name: call.Tool,
			args: stringifyArgs(call.Args),
		})
	}
	return cands
}

func stringifyArgs(args map[string]interface{}) map[string]string {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]string, len(args))
	for k, v := range args {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64, bool:
			out[k] = fmt.Sprintf("%v", t)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				continue
			}
			out[k] = string(b)
		}
	}
	return out
}

// matchFuncCalls finds function-call-shaped invocations like
// read_file(file="path"). Only names present in the category table or
// calls whose arguments all look like key=value pairs are accepted;
// anything else is ordinary prose and ignored.
func matchFuncCalls(text string) []candidate {
	var cands []candidate
	for _, m := range funcCallRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		rawArgs := text[m[4]:m[5]]

		args, allKV := parseKVArgs(rawArgs)
		if !Known(name) && !allKV {
			continue
		}
		cands = append(cands, candidate{
			pos:  m[0],
			end:  m[1],
			name: name,
			args: args,
		})
	}
	return cands
}

// parseKVArgs splits "key=value, key=value" argument text. The bool
// reports whether every non-empty piece parsed as a key=value pair.
func parseKVArgs(raw string) (map[string]string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	args := make(map[string]string)
	for _, piece := range strings.Split(raw, ",") {
		m := kvPairRe.FindStringSubmatch(piece)
		if m == nil {
			return nil, false
		}
		args[m[1]] = strings.Trim(m[2], `"'`)
	}
	return args, true
}

// dedupeOverlaps drops function-call candidates that fall inside a
// span already claimed by a tag or JSON match, then merges the rest.
func dedupeOverlaps(base []candidate, extra []candidate) []candidate {
	spans := make([][2]int, len(base))
	for i, c := range base {
		spans[i] = [2]int{c.pos, c.end}
	}
	for _, c := range extra {
		if within(spans, c.pos) {
			continue
		}
		base = append(base, c)
	}
	return base
}

func within(spans [][2]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}
