// Package report models the raw rows of a 1C batch-movement report and
// classifies them by structural role. A report is a loosely-typed spreadsheet:
// a title block, a header row, then an indented hierarchy of warehouse, group,
// product, batch and document rows that all share the same column grid.
//
// The package is purely about recognising what each row is; building the
// ledger tree out of classified rows is the ledger package's job.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one spreadsheet row as read from the source file. Cells are kept as
// raw strings; numeric and date interpretation happens lazily because the
// same column can hold text, numbers or nothing depending on the row's role.
type Row struct {
	// Cells holds the raw cell values. Trailing empty cells may be absent
	// entirely, so all access must go through Cell.
	Cells []string

	// Line is the 1-based row number in the source sheet, for diagnostics.
	Line int
}

// NewRow creates a row from raw cell values.
func NewRow(line int, cells ...string) Row {
	return Row{Cells: cells, Line: line}
}

// Cell returns the trimmed value of the i-th cell, or "" when the index is
// out of range. Reports from different exports disagree on column counts, so
// out-of-range access is treated as an absent value rather than an error.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[i])
}

// First returns the first non-empty cell value, trimmed. The hierarchy level
// of a row is encoded by which column its text starts in, but the role
// heuristics only care about the text itself.
func (r Row) First() string {
	for i := range r.Cells {
		if v := strings.TrimSpace(r.Cells[i]); v != "" {
			return v
		}
	}
	return ""
}

// IsEmpty reports whether every cell is empty or blank.
func (r Row) IsEmpty() bool {
	return r.First() == ""
}

// Quantity parses the i-th cell as a decimal quantity. Absent, blank or
// unparsable cells yield zero; the source data routinely leaves quantity
// columns empty to mean "no movement".
func (r Row) Quantity(i int) decimal.Decimal {
	v := r.Cell(i)
	if v == "" {
		return decimal.Zero
	}
	// 1C exports localise decimal separators and group digits with
	// non-breaking spaces.
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, ",", ".")

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Normalize lowercases and trims a cell value for keyword and set matching.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
