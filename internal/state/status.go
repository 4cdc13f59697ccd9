package state

import (
	"context"

	"github.com/looplab/fsm"
)

// Status is the lifecycle stage of a game. It only ever moves forward:
// NotStarted, InProgress, then Won or Lost.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "inProgress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "notStarted"
	}
}

func parseStatus(name string) Status {
	switch name {
	case "inProgress":
		return InProgress
	case "won":
		return Won
	case "lost":
		return Lost
	default:
		return NotStarted
	}
}

// status machine events
const (
	eventStart    = "start"
	eventClear    = "clear"
	eventDetonate = "detonate"
	eventTimeout  = "timeout"
)

func newStatusMachine(e *Engine, current Status) *fsm.FSM {
	return fsm.NewFSM(
		current.String(),
		getStatusTransitions(),
		getStatusCallbacks(e),
	)
}

func getStatusTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: eventStart, Src: []string{NotStarted.String()}, Dst: InProgress.String()},
		{Name: eventClear, Src: []string{InProgress.String()}, Dst: Won.String()},
		{Name: eventDetonate, Src: []string{InProgress.String()}, Dst: Lost.String()},
		{Name: eventTimeout, Src: []string{InProgress.String()}, Dst: Lost.String()},
	}
}

func getStatusCallbacks(e *Engine) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + InProgress.String(): func(_ context.Context, _ *fsm.Event) {
			e.timerActive = e.opts.TimeLimit > 0
			e.notify(Notification{Kind: GameStarted, Row: -1, Col: -1})
		},
		"enter_" + Won.String(): func(_ context.Context, _ *fsm.Event) {
			e.finish(EndCleared, -1, -1)
		},
		"enter_" + Lost.String(): func(_ context.Context, ev *fsm.Event) {
			if ev.Event == eventTimeout {
				e.finish(EndTimeout, -1, -1)
				return
			}
			row, col := -1, -1
			if len(ev.Args) == 2 {
				row, _ = ev.Args[0].(int)
				col, _ = ev.Args[1].(int)
			}
			e.finish(EndMine, row, col)
		},
	}
}

// fire moves the status machine. Events that are not valid from the
// current status are dropped, which keeps finished games finished.
func (e *Engine) fire(event string, args ...any) {
	_ = e.fsm.Event(context.Background(), event, args...)
}

func (e *Engine) finish(reason EndReason, row, col int) {
	e.timerActive = false
	e.reason = reason
	e.notify(Notification{
		Kind:   GameEnded,
		Row:    row,
		Col:    col,
		Won:    reason == EndCleared,
		Reason: reason,
	})
}
