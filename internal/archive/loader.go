package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Date layouts accepted for designated date columns. Twitter v2 exports
// use RFC 3339; older archives carry the legacy ruby-style layout.
var dateLayouts = []string{
	time.RFC3339,
	"Mon Jan 02 15:04:05 -0700 2006",
}

// ParseError reports a malformed line in a JSON Lines archive.
type ParseError struct {
	Path string
	Line int // 1-based
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Table is the loaded archive: one row per record, one column per
// distinct dotted field path. Columns preserves first-seen order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Row maps dotted column paths to values. Values are the decoded JSON
// types (string, float64, bool, nil) except designated date columns,
// which hold time.Time.
type Row map[string]interface{}

// HasColumn reports whether any loaded record carried the column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Loader reads JSON Lines tweet archives into a Table.
type Loader struct {
	dateColumns map[string]bool
}

// NewLoader creates a loader that parses the given dotted-path columns
// as date-time values.
func NewLoader(dateColumns ...string) *Loader {
	set := make(map[string]bool, len(dateColumns))
	for _, c := range dateColumns {
		set[c] = true
	}
	return &Loader{dateColumns: set}
}

// Load reads the archive at path. Each non-blank line must be a JSON
// object; nested objects are flattened into dotted-path columns. A
// malformed line or an unparseable date aborts with a *ParseError.
// An empty file yields an empty table.
func (l *Loader) Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	table := &Table{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, &ParseError{Path: path, Line: lineNum, Err: err}
		}

		row := make(Row)
		flatten("", obj, row)

		for col, val := range row {
			if l.dateColumns[col] {
				parsed, err := parseDate(val)
				if err != nil {
					return nil, &ParseError{Path: path, Line: lineNum, Err: fmt.Errorf("column %s: %w", col, err)}
				}
				row[col] = parsed
			}
		}

		for col := range row {
			if !seen[col] {
				seen[col] = true
				table.Columns = append(table.Columns, col)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}

	return table, nil
}

// flatten expands nested objects into dotted-path keys. Arrays and
// scalars are stored as-is under their path.
func flatten(prefix string, obj map[string]interface{}, out Row) {
	for key, val := range obj {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := val.(map[string]interface{}); ok {
			flatten(path, nested, out)
			continue
		}
		out[path] = val
	}
}

func parseDate(val interface{}) (time.Time, error) {
	s, ok := val.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("expected date string, got %T", val)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
