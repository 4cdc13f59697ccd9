package state

import "math/rand/v2"

const mineValue int8 = -1

// layout is the hidden minefield. Each value is either mineValue or the
// number of mines around that cell. A layout is never written after
// generateLayout returns, so successive engine values share it.
type layout struct {
	height, width int
	values        []int8
}

// generateLayout places mines uniformly at random outside the 3x3 block
// centred on (startRow, startCol) and fills in the adjacency counts.
//
// The caller guarantees mines <= height*width - 9, which always leaves at
// least that many candidate cells.
func generateLayout(height, width, mines, startRow, startCol int, r *rand.Rand) *layout {
	values := make([]int8, height*width)

	candidates := make([]int, 0, height*width)
	for row := range height {
		for col := range width {
			if absDiff(startRow, row) > 1 || absDiff(startCol, col) > 1 {
				candidates = append(candidates, row*width+col)
			}
		}
	}

	// pick without replacement: swap the chosen slot out of the live prefix
	k := len(candidates)
	for range mines {
		i := r.IntN(k)
		values[candidates[i]] = mineValue
		k--
		candidates[i] = candidates[k]
	}

	return newLayout(height, width, values)
}

// newLayout fills in the adjacency counts around the mines already marked
// in values.
func newLayout(height, width int, values []int8) *layout {
	for row := range height {
		for col := range width {
			i := row*width + col
			if values[i] == mineValue {
				continue
			}
			var n int8
			forEachNeighbor(height, width, row, col, func(r, c int) {
				if values[r*width+c] == mineValue {
					n++
				}
			})
			values[i] = n
		}
	}

	return &layout{height: height, width: width, values: values}
}

func (l *layout) isMine(row, col int) bool {
	return l.values[row*l.width+col] == mineValue
}

// count returns the adjacency count of a safe cell.
func (l *layout) count(row, col int) int8 {
	return l.values[row*l.width+col]
}

func (l *layout) mineCount() int {
	n := 0
	for _, v := range l.values {
		if v == mineValue {
			n++
		}
	}
	return n
}
