package engine

import (
	"github.com/freightlens/freightlens/dataset"
)

// ============================================================================
// VIEW — Zero-Copy Row Access
// ============================================================================
// The engine never copies rows. A View is an index window over a table's row
// slice; filters and groupings derive sub-views that share the same backing
// storage. Rows are read-only after normalization, so sharing is safe.
// ============================================================================

// View is an indexed window over a canonical table. The zero View is empty.
type View struct {
	rows []dataset.Row
	idx  []int // nil means every row
}

// NewView wraps a whole table.
func NewView(t *dataset.Table) View {
	if t == nil {
		return View{}
	}
	return View{rows: t.Rows}
}

// Len returns the number of rows visible through the view.
func (v View) Len() int {
	if v.idx != nil {
		return len(v.idx)
	}
	return len(v.rows)
}

// Row returns the i-th visible row. The pointer aliases table storage and
// must be treated as read-only.
func (v View) Row(i int) *dataset.Row {
	if v.idx != nil {
		return &v.rows[v.idx[i]]
	}
	return &v.rows[i]
}

// Where derives a sub-view of the rows matching pred, preserving order.
func (v View) Where(pred func(*dataset.Row) bool) View {
	idx := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if pred(v.Row(i)) {
			idx = append(idx, v.at(i))
		}
	}
	return View{rows: v.rows, idx: idx}
}

func (v View) at(i int) int {
	if v.idx != nil {
		return v.idx[i]
	}
	return i
}

func subView(v View, idx []int) View {
	return View{rows: v.rows, idx: idx}
}
