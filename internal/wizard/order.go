package wizard

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DisplayOrder maps between canonical professor indices and the sorted row
// positions shown to the user. Storage stays keyed by canonical index; the
// order governs presentation only.
type DisplayOrder struct {
	rows  []int // display row -> canonical index
	rowOf []int // canonical index -> display row
}

// NewDisplayOrder sorts canonical indices by professor name under Italian
// collation, case- and accent-insensitive, stable on ties (ties keep
// canonical order). The collator is built per call: collate.Collator keeps
// mutable iterator state inside CompareString, so a shared instance is not
// safe for concurrent sessions.
func NewDisplayOrder(names []string) DisplayOrder {
	collator := collate.New(language.Italian, collate.Loose)
	rows := make([]int, len(names))
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return collator.CompareString(names[rows[a]], names[rows[b]]) < 0
	})

	rowOf := make([]int, len(names))
	for row, canonical := range rows {
		rowOf[canonical] = row
	}
	return DisplayOrder{rows: rows, rowOf: rowOf}
}

// Len returns the number of rows.
func (o DisplayOrder) Len() int {
	return len(o.rows)
}

// Canonical returns the canonical index displayed at the given row.
func (o DisplayOrder) Canonical(row int) int {
	return o.rows[row]
}

// RowOf returns the display row of a canonical index.
func (o DisplayOrder) RowOf(canonical int) int {
	return o.rowOf[canonical]
}

// Rows returns a copy of the display-row permutation.
func (o DisplayOrder) Rows() []int {
	return append([]int(nil), o.rows...)
}
