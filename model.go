package main

import (
	"strconv"
	"time"
	"unicode"

	"go-sweep/internal/game"
	"go-sweep/internal/scoring"
	"go-sweep/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	startScreen screen = iota
	gameScreen
)

// start screen fields, in the order they are shown
const (
	fieldRows = iota
	fieldCols
	fieldTime
	fieldMines
	fieldCount
)

var (
	fieldLabels       = [fieldCount]string{"Rows", "Cols", "Time", "Mines"}
	fieldPlaceholders = [fieldCount]string{"16", "16", "off", "auto"}
)

// TickMsg is one second of the countdown for the game of that generation.
type TickMsg struct {
	Generation int
}

func tickCmd(generation int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Generation: generation}
	})
}

type LocalState struct {
	Session    *game.Session
	storage    scoring.ScoreStorage
	engineOpts []state.Option

	screen   screen
	inputs   []textinput.Model
	focus    int
	inputErr error

	keys      gameKeyMap
	startKeys startKeyMap
	help      help.Model

	cursorRow, cursorCol int
	offsetRow, offsetCol int
	width, height        int

	// generation changes with every new game so stale ticks can be dropped
	generation int
	ticking    bool
}

func initialModel(fields [fieldCount]string, skipStart bool, storage scoring.ScoreStorage, opts ...state.Option) (*LocalState, error) {
	s := &LocalState{
		storage:    storage,
		engineOpts: opts,
		keys:       newGameKeyMap(),
		startKeys:  newStartKeyMap(),
		help:       help.New(),
		inputs:     make([]textinput.Model, fieldCount),
	}

	for i := range s.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 3
		ti.Width = 4
		ti.SetValue(fields[i])
		s.inputs[i] = ti
	}
	s.inputs[fieldRows].Focus()

	if skipStart {
		if err := s.startFromInputs(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *LocalState) Init() tea.Cmd {
	if s.screen == startScreen {
		return textinput.Blink
	}
	return nil
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.help.Width = msg.Width
		s.scrollToCursor()
		return s, nil
	case TickMsg:
		return s, s.handleTick(msg)
	}

	if s.screen == startScreen {
		return s.updateStart(msg)
	}
	return s.updateGame(msg)
}

func (s *LocalState) updateStart(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, s.startKeys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.startKeys.Next):
			return s, s.focusField(s.focus + 1)
		case key.Matches(msg, s.startKeys.Prev):
			return s, s.focusField(s.focus - 1)
		case key.Matches(msg, s.startKeys.Start):
			if err := s.startFromInputs(); err != nil {
				game.Log.WithError(err).Warn("could not start game")
				s.inputErr = err
				return s, nil
			}
			s.inputErr = nil
			return s, nil
		}

		// the fields only take digits
		if len(msg.Runes) > 0 && !onlyDigits(msg.Runes) {
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LocalState) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	g := s.Session.CurrentGame

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keys.Help):
			s.help.ShowAll = !s.help.ShowAll
		case key.Matches(msg, s.keys.Back):
			s.screen = startScreen
			s.stopClock()
			return s, s.focusField(s.focus)
		case key.Matches(msg, s.keys.Restart):
			if err := s.Session.Restart(); err != nil {
				game.Log.WithError(err).Error("could not restart game")
				return s, nil
			}
			s.newGame()
		case key.Matches(msg, s.keys.Up):
			s.moveCursor(-1, 0)
		case key.Matches(msg, s.keys.Down):
			s.moveCursor(1, 0)
		case key.Matches(msg, s.keys.Left):
			s.moveCursor(0, -1)
		case key.Matches(msg, s.keys.Right):
			s.moveCursor(0, 1)
		case key.Matches(msg, s.keys.Reveal):
			return s, s.apply(g.HandleReveal(s.cursorRow, s.cursorCol))
		case key.Matches(msg, s.keys.Flag):
			return s, s.apply(g.HandleFlag(s.cursorRow, s.cursorCol))
		case key.Matches(msg, s.keys.Chord):
			return s, s.apply(g.HandleChord(s.cursorRow, s.cursorCol))
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return s, nil
		}
		row, col, ok := s.cellAt(msg.X, msg.Y)
		if !ok {
			return s, nil
		}
		s.cursorRow, s.cursorCol = row, col

		switch msg.Button {
		case tea.MouseButtonLeft:
			return s, s.apply(g.HandleReveal(row, col))
		case tea.MouseButtonRight:
			return s, s.apply(g.HandleFlag(row, col))
		case tea.MouseButtonMiddle:
			return s, s.apply(g.HandleChord(row, col))
		}
	}

	return s, nil
}

// apply reacts to the notifications of one transition and returns the
// command that keeps the clock going, if any.
func (s *LocalState) apply(ns []state.Notification) tea.Cmd {
	s.Session.Update()

	var cmd tea.Cmd
	for _, n := range ns {
		switch n.Kind {
		case state.GameStarted:
			if s.Session.CurrentGame.State.TimerActive() && !s.ticking {
				s.ticking = true
				cmd = tickCmd(s.generation)
			}
		case state.GameEnded:
			s.ticking = false
		}
	}
	return cmd
}

func (s *LocalState) handleTick(msg TickMsg) tea.Cmd {
	if msg.Generation != s.generation || !s.ticking {
		return nil
	}
	s.apply(s.Session.CurrentGame.HandleTick())
	if !s.ticking {
		return nil
	}
	return tickCmd(s.generation)
}

func (s *LocalState) stopClock() {
	s.generation++
	s.ticking = false
}

func (s *LocalState) startFromInputs() error {
	p, err := game.ParseParams(
		s.inputs[fieldRows].Value(),
		s.inputs[fieldCols].Value(),
		s.inputs[fieldTime].Value(),
		s.inputs[fieldMines].Value(),
	)
	if err != nil {
		return err
	}

	if s.Session == nil {
		sess, err := game.NewSession(p, s.storage, s.engineOpts...)
		if err != nil {
			return err
		}
		s.Session = sess
	} else if err := s.Session.Reconfigure(p); err != nil {
		return err
	}

	// show the values actually in use next time the form is opened
	s.inputs[fieldRows].SetValue(strconv.Itoa(p.Rows))
	s.inputs[fieldCols].SetValue(strconv.Itoa(p.Cols))
	s.inputs[fieldMines].SetValue(strconv.Itoa(p.Mines))
	if p.TimeLimit > 0 {
		s.inputs[fieldTime].SetValue(strconv.Itoa(p.TimeLimit))
	} else {
		s.inputs[fieldTime].SetValue("")
	}

	s.newGame()
	return nil
}

func (s *LocalState) newGame() {
	s.stopClock()
	e := s.Session.CurrentGame.State
	s.cursorRow, s.cursorCol = e.Height()/2, e.Width()/2
	s.offsetRow, s.offsetCol = 0, 0
	s.screen = gameScreen
	s.scrollToCursor()
}

func (s *LocalState) focusField(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (i + fieldCount) % fieldCount
	return s.inputs[s.focus].Focus()
}

func (s *LocalState) moveCursor(dr, dc int) {
	e := s.Session.CurrentGame.State
	s.cursorRow = min(max(s.cursorRow+dr, 0), e.Height()-1)
	s.cursorCol = min(max(s.cursorCol+dc, 0), e.Width()-1)
	s.scrollToCursor()
}

// scrollToCursor moves the visible window of the board just enough to
// contain the cursor.
func (s *LocalState) scrollToCursor() {
	if s.Session == nil {
		return
	}
	rows, cols := s.visibleRows(), s.visibleCols()

	if s.cursorRow < s.offsetRow {
		s.offsetRow = s.cursorRow
	}
	if s.cursorRow >= s.offsetRow+rows {
		s.offsetRow = s.cursorRow - rows + 1
	}
	if s.cursorCol < s.offsetCol {
		s.offsetCol = s.cursorCol
	}
	if s.cursorCol >= s.offsetCol+cols {
		s.offsetCol = s.cursorCol - cols + 1
	}
}

func (s *LocalState) visibleRows() int {
	h := s.Session.CurrentGame.State.Height()
	if s.height == 0 {
		return h
	}
	return min(max(s.height-boardTop-footerLines, 1), h)
}

func (s *LocalState) visibleCols() int {
	w := s.Session.CurrentGame.State.Width()
	if s.width == 0 {
		return w
	}
	return min(max(s.width/cellWidth, 1), w)
}

// cellAt maps a terminal position to the board cell drawn there.
func (s *LocalState) cellAt(x, y int) (row, col int, ok bool) {
	r, c := y-boardTop, x/cellWidth
	if r < 0 || c < 0 || r >= s.visibleRows() || c >= s.visibleCols() {
		return 0, 0, false
	}
	return s.offsetRow + r, s.offsetCol + c, true
}

func onlyDigits(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
