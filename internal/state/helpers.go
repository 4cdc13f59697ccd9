package state

// offsets of the 8-connected neighbourhood, clockwise from north
var (
	neighborRows = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
	neighborCols = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

func withinBounds(height, width, row, col int) bool {
	return 0 <= row && row < height && 0 <= col && col < width
}

// forEachNeighbor calls fn for every in-bounds neighbour of (row, col).
func forEachNeighbor(height, width, row, col int, fn func(r, c int)) {
	for k := range neighborRows {
		r, c := row+neighborRows[k], col+neighborCols[k]
		if withinBounds(height, width, r, c) {
			fn(r, c)
		}
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
