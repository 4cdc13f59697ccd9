package game

import (
	"fmt"
	"time"

	"go-sweep/internal/scoring"
	"go-sweep/internal/state"

	"github.com/sirupsen/logrus"
)

// Log receives the game lifecycle. The host decides where it goes.
var Log logrus.FieldLogger = logrus.New()

// Game holds the latest engine value of one game, independent of the UI.
type Game struct {
	State  *state.Engine
	Params Params
	Score  *scoring.Scoring // nil when records are unavailable

	StartedAt time.Time
	EndedAt   time.Time

	now func() time.Time
}

// NewGame initializes a new game instance.
func NewGame(p Params, sc *scoring.Scoring, opts ...state.Option) (*Game, error) {
	e, err := state.NewEngine(p.Options(), opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create game %s: %w", p.Key(), err)
	}
	return &Game{
		State:  e,
		Params: p,
		Score:  sc,
		now:    time.Now,
	}, nil
}

// HandleReveal opens a cell and returns what the move produced.
func (g *Game) HandleReveal(row, col int) []state.Notification {
	return g.apply(g.State.Reveal(row, col))
}

// HandleFlag toggles a flag.
func (g *Game) HandleFlag(row, col int) []state.Notification {
	return g.apply(g.State.Flag(row, col))
}

// HandleChord opens the neighbours of a satisfied number.
func (g *Game) HandleChord(row, col int) []state.Notification {
	return g.apply(g.State.Chord(row, col))
}

// HandleTick processes a timer tick.
func (g *Game) HandleTick() []state.Notification {
	return g.apply(g.State.TimerTick())
}

func (g *Game) apply(next *state.Engine) []state.Notification {
	g.State = next

	ns := next.Notifications()
	for _, n := range ns {
		log := Log.WithFields(logrus.Fields{
			"board": g.Params.Key(),
			"event": n.Kind.String(),
		})

		switch n.Kind {
		case state.GameStarted:
			g.StartedAt = g.now()
			log.WithField("timer", next.TimerActive()).Info("game started")
		case state.FlagPlaced, state.FlagRemoved:
			log.WithFields(logrus.Fields{
				"row":            n.Row,
				"col":            n.Col,
				"flagsRemaining": next.FlagsRemaining(),
			}).Debug("flag toggled")
		case state.GameEnded:
			g.EndedAt = g.now()
			log = log.WithFields(logrus.Fields{
				"won":     n.Won,
				"reason":  n.Reason.String(),
				"elapsed": g.Elapsed().String(),
			})
			if n.Won {
				g.recordWin(log)
			}
			log.Info("game ended")
		}
	}

	return ns
}

func (g *Game) recordWin(log logrus.FieldLogger) {
	if g.Score == nil {
		return
	}
	g.Score.RecordWin(g.Seconds())
	if err := g.Score.SaveEntries(); err != nil {
		log.WithError(err).Warn("could not save best time")
	}
}

// Elapsed is the play time so far, frozen once the game ends.
func (g *Game) Elapsed() time.Duration {
	if g.StartedAt.IsZero() {
		return 0
	}
	end := g.EndedAt
	if end.IsZero() {
		end = g.now()
	}
	return end.Sub(g.StartedAt)
}

// Seconds is Elapsed rounded to whole seconds, the unit of best times.
func (g *Game) Seconds() int {
	return int(g.Elapsed().Round(time.Second).Seconds())
}

func (g *Game) IsOver() bool {
	return g.State.IsOver()
}
