// Package tabular decodes uploaded and reference files into a uniform
// positional table.
//
// Input files arrive as delimited text (unknown delimiter, UTF-8 or Latin-1)
// or as spreadsheets. Decode hides those differences behind one Table type:
// a header row plus positional data rows. Rows may be ragged; Cell pads
// short rows with empty strings so callers never index out of range.
package tabular

import "strings"

// Table is one decoded tabular file. The first row of the source is the
// header row; Rows holds the remaining rows in source order.
type Table struct {
	Headers []string
	Rows    [][]string

	// SkippedRows counts malformed records dropped during a lenient decode.
	SkippedRows int
}

// Cell returns the cell at (row, col), or the empty string when the row is
// shorter than the header row or the indexes are out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// NormalizeHeader prepares a raw column header for vocabulary matching:
// lowercased and trimmed of surrounding whitespace.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
