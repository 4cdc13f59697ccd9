package game

import (
	"go-sweep/internal/scoring"
	"go-sweep/internal/state"
)

// Session runs consecutive games with the same parameters and keeps the
// tallies across restarts.
type Session struct {
	Params       Params
	CurrentGame  *Game
	ScoreStorage scoring.ScoreStorage
	// EngineOptions are passed to every new engine.
	EngineOptions []state.Option

	Played int
	Wins   int
	Losses int

	counted bool // the current game is already in the tallies
}

func NewSession(p Params, storage scoring.ScoreStorage, opts ...state.Option) (*Session, error) {
	s := &Session{
		Params:        p,
		ScoreStorage:  storage,
		EngineOptions: opts,
	}

	// Initialize first game
	if err := s.NextGame(); err != nil {
		return nil, err
	}

	return s, nil
}

// NextGame replaces the current game with a fresh one. A game that was left
// unfinished is not counted.
func (s *Session) NextGame() error {
	var sc *scoring.Scoring
	if s.ScoreStorage != nil {
		var err error
		sc, err = scoring.InitScoring(s.Params.Key(), s.Params.Title(), s.ScoreStorage)
		if err != nil {
			// records are optional, the game is not
			Log.WithError(err).WithField("board", s.Params.Key()).Warn("best times unavailable")
			sc = nil
		}
	}

	g, err := NewGame(s.Params, sc, s.EngineOptions...)
	if err != nil {
		return err
	}

	s.CurrentGame = g
	s.counted = false
	return nil
}

// Restart starts over with the same parameters.
func (s *Session) Restart() error {
	s.Update()
	return s.NextGame()
}

// Reconfigure switches to new parameters. On error the session keeps its
// current parameters and game.
func (s *Session) Reconfigure(p Params) error {
	s.Update()

	prev := s.Params
	s.Params = p
	if err := s.NextGame(); err != nil {
		s.Params = prev
		return err
	}
	return nil
}

// Update syncs the tallies with the current game. Call it after every move.
func (s *Session) Update() {
	if s.CurrentGame == nil || s.counted || !s.CurrentGame.IsOver() {
		return
	}
	s.counted = true
	s.Played++
	if s.CurrentGame.State.IsWin() {
		s.Wins++
	} else {
		s.Losses++
	}
}

func (s *Session) IsOver() bool {
	return s.CurrentGame != nil && s.CurrentGame.IsOver()
}
