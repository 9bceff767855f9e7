package timeline

// packItem is one interval entering row packing. packEnd already folds
// in any label width, so packing treats labelled point events as wide
// enough not to collide with the next marker.
type packItem struct {
	start   float64
	packEnd float64
}

// packRows assigns each item to the first row whose rightmost occupant
// ends at least gap before the item starts (an exact end+gap == start
// touch shares the row), opening a new row when none fits. Items must be
// sorted by start ascending. The greedy first-fit scan over start-sorted
// intervals is the standard interval-graph coloring construction, so the
// number of rows equals the maximum number of mutually overlapping
// intervals.
func packRows(items []packItem, gap float64) (rows []int, rowCount int) {
	rows = make([]int, len(items))
	var rowEnds []float64

	for i, item := range items {
		placed := false
		for r, end := range rowEnds {
			if end+gap <= item.start {
				rows[i] = r
				rowEnds[r] = item.packEnd
				placed = true
				break
			}
		}
		if !placed {
			rows[i] = len(rowEnds)
			rowEnds = append(rowEnds, item.packEnd)
		}
	}
	return rows, len(rowEnds)
}
