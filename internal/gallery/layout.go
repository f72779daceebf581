package gallery

import "sort"

// Columns is a column assignment: one ordered bucket of items per column.
type Columns [][]Item

// Order returns the visible items in display order: hidden ids are dropped
// and pinned ids move ahead of everything else. The sort is stable so
// re-renders never reshuffle unrelated items.
func Order(items []Item, pinned, hidden IDSet) []Item {
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if hidden.Has(item.ID) {
			continue
		}
		visible = append(visible, item)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return pinned.Has(visible[i].ID) && !pinned.Has(visible[j].ID)
	})
	return visible
}

// Arrange packs the ordered items into columnCount buckets round-robin: the
// item at position i lands in column i mod columnCount. A column count below
// one is treated as one. The result always has exactly columnCount non-nil
// buckets, even for an empty list.
func Arrange(items []Item, pinned, hidden IDSet, columnCount int) Columns {
	if columnCount < 1 {
		columnCount = 1
	}
	ordered := Order(items, pinned, hidden)
	columns := make(Columns, columnCount)
	for i := range columns {
		columns[i] = make([]Item, 0, len(ordered)/columnCount+1)
	}
	for i, item := range ordered {
		columns[i%columnCount] = append(columns[i%columnCount], item)
	}
	return columns
}

// Flatten reads the buckets back in round-robin assignment order.
func (c Columns) Flatten() []Item {
	total := 0
	rows := 0
	for _, col := range c {
		total += len(col)
		rows = max(rows, len(col))
	}
	out := make([]Item, 0, total)
	for row := 0; row < rows; row++ {
		for _, col := range c {
			if row < len(col) {
				out = append(out, col[row])
			}
		}
	}
	return out
}

// Locate returns the column and row of id, or (-1, -1).
func (c Columns) Locate(id string) (int, int) {
	for col, bucket := range c {
		if row := indexOf(bucket, id); row >= 0 {
			return col, row
		}
	}
	return -1, -1
}
