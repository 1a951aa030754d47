package doctor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/valyala/fastjson"

	"github.com/thoreinstein/decimalog/pkg/logging"
)

// maxReportedLines bounds the line numbers listed in the check details.
const maxReportedLines = 5

// requiredJSONKeys must be present as strings on every JSONL record.
var requiredJSONKeys = []string{"timestamp", "level", "name", "message"}

// JSONLCheck verifies that every line of the cumulative JSON Lines file is a
// well-formed record.
type JSONLCheck struct {
	path string
}

var _ Check = (*JSONLCheck)(nil)

// NewJSONLCheck creates a check for the JSONL file at path.
func NewJSONLCheck(path string) *JSONLCheck {
	return &JSONLCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *JSONLCheck) Name() string {
	return "jsonl-integrity"
}

// Category returns the grouping for this check.
func (c *JSONLCheck) Category() string {
	return "logs"
}

// lineProblem is a malformed JSONL line.
type lineProblem struct {
	Line    int    `json:"line"`
	Problem string `json:"problem"`
}

// Run scans the file and classifies each line.
func (c *JSONLCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Status = SeverityInfo
			result.Message = "no JSONL file yet"
			return result
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("read error: %v", err)
		return result
	}
	defer f.Close()

	records, invalid, unknownLevels, err := scanJSONL(f)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("read error: %v", err)
		return result
	}

	result.Details["records"] = records
	result.Details["invalid"] = len(invalid)
	if len(unknownLevels) > 0 {
		result.Details["unknown_levels"] = unknownLevels
	}

	switch {
	case len(invalid) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d of %d line(s) are not valid records (first at line %d)",
			len(invalid), records+len(invalid), invalid[0].Line)
		result.FixHint = "move the damaged file aside; the next run starts a new one"
		if len(invalid) > maxReportedLines {
			invalid = invalid[:maxReportedLines]
		}
		result.Details["problems"] = invalid
	case len(unknownLevels) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("records use %d unregistered level name(s)", len(unknownLevels))
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d record(s) valid", records)
	}
	return result
}

// scanJSONL validates each line of r. Blank lines are ignored.
func scanJSONL(r io.Reader) (records int, invalid []lineProblem, unknownLevels []string, err error) {
	var p fastjson.Parser
	seen := make(map[string]bool)

	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, readErr := br.ReadBytes('\n')
		if line = trimLine(line); len(line) > 0 {
			level, problem := validateRecord(&p, line)
			switch {
			case problem != "":
				invalid = append(invalid, lineProblem{Line: lineNo, Problem: problem})
			default:
				records++
				if _, perr := logging.ParseLevel(level); perr != nil && !seen[level] {
					seen[level] = true
					unknownLevels = append(unknownLevels, level)
				}
			}
		}
		if errors.Is(readErr, io.EOF) {
			return records, invalid, unknownLevels, nil
		}
		if readErr != nil {
			return records, invalid, unknownLevels, readErr
		}
	}
}

// validateRecord checks one non-blank line and returns its level, or a
// description of what is wrong with it.
func validateRecord(p *fastjson.Parser, line []byte) (level, problem string) {
	v, err := p.ParseBytes(line)
	if err != nil {
		return "", fmt.Sprintf("invalid JSON: %v", err)
	}
	obj, err := v.Object()
	if err != nil {
		return "", "not a JSON object"
	}
	for _, key := range requiredJSONKeys {
		field := obj.Get(key)
		if field == nil {
			return "", fmt.Sprintf("missing %q", key)
		}
		if field.Type() != fastjson.TypeString {
			return "", fmt.Sprintf("%q is %s, want string", key, field.Type())
		}
	}
	ts := string(obj.Get("timestamp").GetStringBytes())
	if _, err := time.Parse(logging.JSONTimeFormat, ts); err != nil {
		return "", fmt.Sprintf("bad timestamp %q", ts)
	}
	if ex := obj.Get("exception"); ex != nil && ex.Type() != fastjson.TypeString {
		return "", fmt.Sprintf("%q is %s, want string", "exception", ex.Type())
	}
	if extra := obj.Get("extra"); extra != nil && extra.Type() != fastjson.TypeObject {
		return "", fmt.Sprintf("%q is %s, want object", "extra", extra.Type())
	}
	return string(obj.Get("level").GetStringBytes()), ""
}

func trimLine(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
