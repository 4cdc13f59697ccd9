package game

import (
	"fmt"
	"strconv"
	"strings"

	"go-sweep/internal/state"
)

const (
	// DefaultSize is used for an empty rows or cols field.
	DefaultSize = 16
	// MaxMines is the largest count the mine counter can display.
	MaxMines = 999
	// MaxTime is the largest countdown the timer can display.
	MaxTime = 999
)

// Params are the parameters of one game as chosen by the player.
type Params struct {
	Rows      int
	Cols      int
	Mines     int
	TimeLimit int // seconds, 0 for no countdown
}

// ParseParams turns the raw text of the start screen fields into Params.
// Empty fields fall back to defaults and out-of-range values are clamped
// into something playable; only non-numeric input is an error.
func ParseParams(rows, cols, timeLimit, mines string) (Params, error) {
	var p Params
	var err error

	if p.Rows, err = parseField("rows", rows, DefaultSize); err != nil {
		return Params{}, err
	}
	if p.Cols, err = parseField("cols", cols, DefaultSize); err != nil {
		return Params{}, err
	}
	if p.TimeLimit, err = parseField("time", timeLimit, 0); err != nil {
		return Params{}, err
	}
	p.Rows = max(state.MinSize, p.Rows)
	p.Cols = max(state.MinSize, p.Cols)
	p.TimeLimit = min(MaxTime, max(0, p.TimeLimit))

	// the default density is one mine every eight cells
	if p.Mines, err = parseField("mines", mines, p.Rows*p.Cols/8); err != nil {
		return Params{}, err
	}
	p.Mines = min(MaxMines, state.MaxMines(p.Rows, p.Cols), max(0, p.Mines))

	return p, nil
}

func parseField(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}

// Options converts p into engine construction options.
func (p Params) Options() state.Options {
	return state.Options{
		Height:    p.Rows,
		Width:     p.Cols,
		Mines:     p.Mines,
		TimeLimit: p.TimeLimit,
	}
}

// Key identifies the board configuration for best-time records.
func (p Params) Key() string {
	return fmt.Sprintf("%dx%d/%d/t%d", p.Rows, p.Cols, p.Mines, p.TimeLimit)
}

// Title is a human readable description of the board.
func (p Params) Title() string {
	title := fmt.Sprintf("%dx%d, %d mines", p.Rows, p.Cols, p.Mines)
	if p.TimeLimit > 0 {
		title += fmt.Sprintf(", %ds", p.TimeLimit)
	}
	return title
}
