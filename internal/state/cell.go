package state

import "strconv"

// Cell is what the player sees at one board position.
//
// Values 0 to 8 are revealed safe cells carrying their adjacent mine count.
// The remaining values are the named constants below.
type Cell int8

const (
	Hidden       Cell = -1
	Flagged      Cell = -2
	Mine         Cell = 9  // a mine shown once the game is lost
	ExplodedMine Cell = 10 // the mine that ended the game
)

// IsRevealed reports whether the cell has been opened, including mines
// uncovered at the end of a lost game.
func (c Cell) IsRevealed() bool {
	return c >= 0
}

// Count returns the adjacent mine count of a revealed safe cell.
func (c Cell) Count() (int, bool) {
	if 0 <= c && c <= 8 {
		return int(c), true
	}
	return 0, false
}

func (c Cell) String() string {
	switch {
	case c == Hidden:
		return "#"
	case c == Flagged:
		return "F"
	case c == Mine:
		return "*"
	case c == ExplodedMine:
		return "X"
	case c == 0:
		return "."
	case 1 <= c && c <= 8:
		return strconv.Itoa(int(c))
	default:
		return "?"
	}
}
