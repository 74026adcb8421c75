// Package records defines the normalized record schema produced by the
// chat parsing pipeline and consumed by all aggregation code.
package records

import (
	"sort"
	"strings"
	"time"
)

// Record is a single parsed chat message as emitted by the assembler.
// Once emitted a Record is never mutated.
type Record struct {
	// Timestamp is the resolved absolute instant of the message.
	Timestamp time.Time

	// Author is the sender name, or the sentinel value for
	// system/notification entries.
	Author string

	// Body is the full message text. Continuation lines are joined
	// with newlines; may be empty but never represents "missing".
	Body string
}

// Row is one entry of the output table: a Record augmented with
// derived calendar fields. All derived fields are computed from
// Timestamp at build time and are never recomputed.
type Row struct {
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Year      int       `json:"year"`
	MonthNum  int       `json:"month_num"` // 1-12
	Month     string    `json:"month"`     // month name
	DayName   string    `json:"day_name"`  // weekday name
	DateOnly  time.Time `json:"date_only"` // midnight-truncated timestamp
	Author    string    `json:"author"`
	Message   string    `json:"message"`
}

// Table is the ordered, immutable record set for one parsed document.
// Rows must be treated as read-only by all consumers; filtered views
// copy rows rather than aliasing them.
type Table struct {
	Rows []Row `json:"rows"`
}

// Build converts an ordered sequence of records into a Table with
// derived calendar fields. It is total: zero records yield a valid
// empty table, never an error.
func Build(recs []Record) *Table {
	rows := make([]Row, 0, len(recs))
	for _, r := range recs {
		ts := r.Timestamp
		rows = append(rows, Row{
			Timestamp: ts,
			Date:      ts.Format("2006-01-02"),
			Year:      ts.Year(),
			MonthNum:  int(ts.Month()),
			Month:     ts.Month().String(),
			DayName:   ts.Weekday().String(),
			DateOnly:  time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
			Author:    r.Author,
			Message:   r.Body,
		})
	}
	return &Table{Rows: rows}
}

// Empty reports whether the table holds no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ByAuthor returns a new table containing only rows by the given
// author. The rows are copied; the receiver is not modified.
func (t *Table) ByAuthor(author string) *Table {
	out := &Table{}
	if t == nil {
		return out
	}
	for _, row := range t.Rows {
		if row.Author == author {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Authors returns the sorted distinct author names in the table,
// excluding blank names and the given sentinel.
func (t *Table) Authors(sentinel string) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		name := strings.TrimSpace(row.Author)
		if name == "" || name == sentinel {
			continue
		}
		seen[name] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
