package game

import (
	"errors"
	"testing"
	"time"

	"go-sweep/internal/scoring"
	"go-sweep/internal/state"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// MockStorage implements scoring.ScoreStorage for testing
type MockStorage struct {
	Entries    []scoring.ScoreHistoryEntry
	SaveCalled bool
	LoadErr    error
}

func (m *MockStorage) LoadAll() ([]scoring.ScoreHistoryEntry, error) {
	return m.Entries, m.LoadErr
}

func (m *MockStorage) SaveAll(entries []scoring.ScoreHistoryEntry) error {
	m.Entries = entries
	m.SaveCalled = true
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// crowded leaves exactly two safe cells outside the 3x3 block around the
// centre, so revealing (5, 5) opens that block and nothing else.
var crowded = Params{Rows: 10, Cols: 10, Mines: 89}

func newTestGame(t *testing.T, p Params, store scoring.ScoreStorage) (*Game, *fakeClock) {
	t.Helper()
	var sc *scoring.Scoring
	if store != nil {
		var err error
		sc, err = scoring.InitScoring(p.Key(), p.Title(), store)
		if err != nil {
			t.Fatalf("InitScoring: %v", err)
		}
	}
	g, err := NewGame(p, sc)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	g.now = clock.Now
	return g, clock
}

func captureLog(t *testing.T) *test.Hook {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	prev := Log
	Log = logger
	t.Cleanup(func() { Log = prev })
	return hook
}

func kinds(ns []state.Notification) []state.NotificationKind {
	out := make([]state.NotificationKind, len(ns))
	for i, n := range ns {
		out[i] = n.Kind
	}
	return out
}

func TestNewGame_InvalidParams(t *testing.T) {
	_, err := NewGame(Params{Rows: 2, Cols: 8, Mines: 1}, nil)
	if !errors.Is(err, state.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestGame_WinRecordsBestTime(t *testing.T) {
	hook := captureLog(t)
	store := &MockStorage{}
	g, _ := newTestGame(t, Params{Rows: 4, Cols: 4}, store)

	ns := g.HandleReveal(0, 0)

	got := kinds(ns)
	if len(got) != 2 || got[0] != state.GameStarted || got[1] != state.GameEnded {
		t.Fatalf("expected [GameStarted GameEnded], got %v", got)
	}
	if !ns[1].Won || ns[1].Reason != state.EndCleared {
		t.Errorf("expected a cleared win, got %+v", ns[1])
	}
	if !g.IsOver() || !g.Score.Won {
		t.Error("game should be over and scored as won")
	}
	if !store.SaveCalled {
		t.Fatal("expected the win to be saved")
	}
	if len(store.Entries) != 1 || store.Entries[0].Board != "4x4/0/t0" {
		t.Errorf("unexpected saved entries: %+v", store.Entries)
	}

	if last := hook.LastEntry(); last == nil || last.Message != "game ended" {
		t.Fatalf("expected a game ended log entry, got %+v", last)
	} else if last.Data["won"] != true {
		t.Errorf("expected won=true in log fields, got %v", last.Data["won"])
	}
}

func TestGame_TimeoutAndElapsed(t *testing.T) {
	p := crowded
	p.TimeLimit = 2
	store := &MockStorage{}
	g, clock := newTestGame(t, p, store)

	if g.Elapsed() != 0 {
		t.Errorf("elapsed before start should be 0, got %v", g.Elapsed())
	}

	ns := g.HandleReveal(5, 5)
	if len(ns) != 1 || ns[0].Kind != state.GameStarted {
		t.Fatalf("expected GameStarted, got %v", kinds(ns))
	}
	if !g.State.TimerActive() {
		t.Fatal("timer should be active")
	}

	clock.Advance(time.Second)
	if ns := g.HandleTick(); len(ns) != 0 {
		t.Errorf("first tick should be silent, got %v", kinds(ns))
	}
	if g.Elapsed() != time.Second {
		t.Errorf("expected 1s elapsed, got %v", g.Elapsed())
	}

	clock.Advance(time.Second)
	ns = g.HandleTick()
	if len(ns) != 1 || ns[0].Kind != state.GameEnded {
		t.Fatalf("expected GameEnded, got %v", kinds(ns))
	}
	if ns[0].Won || ns[0].Reason != state.EndTimeout {
		t.Errorf("expected a timeout loss, got %+v", ns[0])
	}

	clock.Advance(time.Minute)
	if g.Elapsed() != 2*time.Second {
		t.Errorf("elapsed should freeze at 2s, got %v", g.Elapsed())
	}
	if store.SaveCalled {
		t.Error("a loss must not be saved")
	}
}

func TestGame_FlagLogging(t *testing.T) {
	hook := captureLog(t)
	g, _ := newTestGame(t, crowded, nil)
	g.HandleReveal(5, 5)

	ns := g.HandleFlag(0, 0)
	if len(ns) != 1 || ns[0].Kind != state.FlagPlaced {
		t.Fatalf("expected FlagPlaced, got %v", kinds(ns))
	}
	if got := hook.LastEntry().Data["flagsRemaining"]; got != 88 {
		t.Errorf("expected 88 flags remaining in log, got %v", got)
	}

	ns = g.HandleFlag(0, 0)
	if len(ns) != 1 || ns[0].Kind != state.FlagRemoved {
		t.Fatalf("expected FlagRemoved, got %v", kinds(ns))
	}
	if got := hook.LastEntry().Data["flagsRemaining"]; got != 89 {
		t.Errorf("expected 89 flags remaining in log, got %v", got)
	}

	// a revealed cell can't be flagged
	if ns := g.HandleFlag(5, 5); len(ns) != 0 {
		t.Errorf("expected no notifications, got %v", kinds(ns))
	}

	if n := len(hook.AllEntries()); n != 3 {
		t.Errorf("expected 3 log entries, got %d", n)
	}
}

func TestGame_ChordWithoutFlagsDoesNothing(t *testing.T) {
	g, _ := newTestGame(t, crowded, nil)
	g.HandleReveal(5, 5)
	before := g.State

	if ns := g.HandleChord(4, 4); len(ns) != 0 {
		t.Errorf("expected no notifications, got %v", kinds(ns))
	}
	if g.State.Status() != state.InProgress {
		t.Errorf("expected InProgress, got %v", g.State.Status())
	}
	if g.State.SafeCellsRemaining() != before.SafeCellsRemaining() {
		t.Error("chord without flags must not open anything")
	}
}
