package state

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/looplab/fsm"
)

const (
	// MinSize is the smallest accepted height or width.
	MinSize = 4
	// safeZone is the first click plus its 8 neighbours.
	safeZone = 9
)

// MaxMines returns the largest mine budget a board of the given size accepts.
func MaxMines(height, width int) int {
	return height*width - safeZone
}

// Options are the game parameters fixed at construction.
type Options struct {
	Height    int
	Width     int
	Mines     int
	TimeLimit int // whole seconds, 0 disables the countdown
}

// Option customises an Engine at construction.
type Option func(*Engine)

// WithRand sets the random source used to place mines on the first reveal.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// Engine is one immutable snapshot of a game. Every action returns a new
// Engine and leaves the receiver untouched, so callers may hold on to older
// values freely.
type Engine struct {
	opts   Options
	board  []Cell
	layout *layout // nil until the first reveal
	rand   *rand.Rand
	fsm    *fsm.FSM

	flagsRemaining int
	hidden         int // cells not yet revealed, mines included
	timeRemaining  int
	timerActive    bool
	reason         EndReason

	notifications []Notification
}

// NewEngine validates opts and returns a game in the NotStarted status.
func NewEngine(opts Options, options ...Option) (*Engine, error) {
	if opts.Height < MinSize || opts.Width < MinSize {
		return nil, fmt.Errorf("%w: %dx%d, both sides must be at least %d",
			ErrInvalidDimensions, opts.Height, opts.Width, MinSize)
	}
	if limit := MaxMines(opts.Height, opts.Width); opts.Mines < 0 || opts.Mines > limit {
		return nil, fmt.Errorf("%w: %d is outside [0, %d]", ErrInvalidMineBudget, opts.Mines, limit)
	}
	if opts.TimeLimit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTimeLimit, opts.TimeLimit)
	}

	board := make([]Cell, opts.Height*opts.Width)
	for i := range board {
		board[i] = Hidden
	}

	e := &Engine{
		opts:           opts,
		board:          board,
		flagsRemaining: opts.Mines,
		hidden:         len(board),
		timeRemaining:  opts.TimeLimit,
	}
	for _, o := range options {
		o(e)
	}
	if e.rand == nil {
		seed := uint64(time.Now().UnixNano())
		e.rand = rand.New(rand.NewPCG(seed, seed>>32|1))
	}
	e.fsm = newStatusMachine(e, NotStarted)

	return e, nil
}

// clone copies everything a transition may write. The layout and random
// source are shared.
func (e *Engine) clone() *Engine {
	c := *e
	c.board = slices.Clone(e.board)
	c.notifications = nil
	c.fsm = newStatusMachine(&c, e.Status())
	return &c
}

// Reveal opens the cell at (row, col). The first in-bounds reveal places
// the mines, keeping the cell and its neighbours safe, and starts the game.
// Out-of-bounds coordinates, finished games, and cells already revealed or
// flagged leave the state as it was.
func (e *Engine) Reveal(row, col int) *Engine {
	next := e.clone()
	if !next.inBounds(row, col) {
		return next
	}

	if next.Status() == NotStarted {
		next.layout = generateLayout(next.opts.Height, next.opts.Width, next.opts.Mines, row, col, next.rand)
		next.fire(eventStart)
	}
	if next.Status() != InProgress {
		return next
	}

	next.open(row, col)
	next.checkCleared()
	return next
}

// Flag toggles a flag on a hidden cell of a game in progress. A new flag
// needs at least one flag remaining; removing one always succeeds.
func (e *Engine) Flag(row, col int) *Engine {
	next := e.clone()
	if next.Status() != InProgress || !next.inBounds(row, col) {
		return next
	}

	i := next.index(row, col)
	switch next.board[i] {
	case Hidden:
		if next.flagsRemaining == 0 {
			return next
		}
		next.board[i] = Flagged
		next.flagsRemaining--
		next.notify(Notification{Kind: FlagPlaced, Row: row, Col: col})
	case Flagged:
		next.board[i] = Hidden
		next.flagsRemaining++
		next.notify(Notification{Kind: FlagRemoved, Row: row, Col: col})
	}
	return next
}

// Chord opens every unflagged hidden neighbour of a revealed number once the
// player has placed exactly that many flags around it.
func (e *Engine) Chord(row, col int) *Engine {
	next := e.clone()
	if next.Status() != InProgress || !next.inBounds(row, col) {
		return next
	}
	n, ok := next.board[next.index(row, col)].Count()
	if !ok || n == 0 {
		return next
	}

	h, w := next.opts.Height, next.opts.Width
	flags := 0
	forEachNeighbor(h, w, row, col, func(r, c int) {
		if next.board[next.index(r, c)] == Flagged {
			flags++
		}
	})
	if flags != n {
		return next
	}

	forEachNeighbor(h, w, row, col, func(r, c int) {
		if next.Status() == InProgress {
			next.open(r, c)
			next.checkCleared()
		}
	})
	return next
}

// TimerTick consumes one unit of the countdown. Running out of time loses
// the game. Without a timer, or outside a game in progress, it does nothing.
func (e *Engine) TimerTick() *Engine {
	next := e.clone()
	if next.Status() != InProgress || !next.timerActive {
		return next
	}

	next.timeRemaining--
	if next.timeRemaining <= 0 {
		next.timeRemaining = 0
		next.fire(eventTimeout)
	}
	return next
}

// open reveals a hidden cell and, from zero cells, floods outward with an
// explicit stack. Cells are revealed before they are pushed so none is
// visited twice.
func (e *Engine) open(row, col int) {
	i := e.index(row, col)
	if e.board[i] != Hidden {
		return
	}
	if e.layout.isMine(row, col) {
		e.detonate(row, col)
		return
	}

	e.uncover(row, col)
	if e.board[i] != 0 {
		return
	}

	h, w := e.opts.Height, e.opts.Width
	stack := []int{i}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		forEachNeighbor(h, w, j/w, j%w, func(r, c int) {
			k := r*w + c
			if e.board[k] != Hidden {
				return
			}
			// neighbours of a zero cell are never mines
			e.uncover(r, c)
			if e.board[k] == 0 {
				stack = append(stack, k)
			}
		})
	}
}

func (e *Engine) uncover(row, col int) {
	e.board[e.index(row, col)] = Cell(e.layout.count(row, col))
	e.hidden--
}

// detonate shows every mine and marks the one at (row, col) as the cause.
func (e *Engine) detonate(row, col int) {
	for i, v := range e.layout.values {
		if v == mineValue {
			e.board[i] = Mine
		}
	}
	e.board[e.index(row, col)] = ExplodedMine
	e.fire(eventDetonate, row, col)
}

func (e *Engine) checkCleared() {
	if e.Status() == InProgress && e.hidden == e.opts.Mines {
		e.fire(eventClear)
	}
}

func (e *Engine) notify(n Notification) {
	e.notifications = append(e.notifications, n)
}

func (e *Engine) inBounds(row, col int) bool {
	return withinBounds(e.opts.Height, e.opts.Width, row, col)
}

func (e *Engine) index(row, col int) int {
	return row*e.opts.Width + col
}

func (e *Engine) Status() Status {
	return parseStatus(e.fsm.Current())
}

func (e *Engine) IsOver() bool {
	s := e.Status()
	return s == Won || s == Lost
}

func (e *Engine) IsWin() bool {
	return e.Status() == Won
}

// EndReason is EndNone until the game is over.
func (e *Engine) EndReason() EndReason {
	return e.reason
}

// Board returns a copy of the visible board, indexed [row][col].
func (e *Engine) Board() [][]Cell {
	w := e.opts.Width
	rows := make([][]Cell, e.opts.Height)
	for r := range rows {
		rows[r] = slices.Clone(e.board[r*w : (r+1)*w])
	}
	return rows
}

// Cell returns the visible state of one cell. ok is false out of bounds.
func (e *Engine) Cell(row, col int) (cell Cell, ok bool) {
	if !e.inBounds(row, col) {
		return Hidden, false
	}
	return e.board[e.index(row, col)], true
}

func (e *Engine) Height() int         { return e.opts.Height }
func (e *Engine) Width() int          { return e.opts.Width }
func (e *Engine) Mines() int          { return e.opts.Mines }
func (e *Engine) TimeLimit() int      { return e.opts.TimeLimit }
func (e *Engine) FlagsRemaining() int { return e.flagsRemaining }
func (e *Engine) TimeRemaining() int  { return e.timeRemaining }

// TimerActive reports whether the host should keep delivering ticks.
func (e *Engine) TimerActive() bool {
	return e.timerActive
}

// SafeCellsRemaining is the number of safe cells still to reveal. It is zero
// exactly when the game is won.
func (e *Engine) SafeCellsRemaining() int {
	return e.hidden - e.opts.Mines
}

// Notifications lists what the transition that produced e emitted.
func (e *Engine) Notifications() []Notification {
	return slices.Clone(e.notifications)
}
