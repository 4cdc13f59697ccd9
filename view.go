package main

import (
	"fmt"
	"strings"

	"go-sweep/internal/state"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth   = 2 // symbol and a space
	boardTop    = 2 // status line and a blank line
	footerLines = 3
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	hiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boomStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9"))
)

// classic minesweeper number colours, indexed by count
var numberColors = [9]lipgloss.Color{"240", "12", "10", "9", "5", "1", "6", "7", "8"}

func (s *LocalState) View() string {
	if s.screen == startScreen {
		return s.startView()
	}
	return s.gameView()
}

func (s *LocalState) startView() string {
	var b strings.Builder

	b.WriteString(boldStyle.Render("go-sweep") + "\n\n")
	for i, ti := range s.inputs {
		label := fmt.Sprintf("%-6s", fieldLabels[i])
		if i == s.focus {
			label = boldStyle.Render(label)
		}
		b.WriteString(label + " " + ti.View() + "\n")
	}

	if s.inputErr != nil {
		b.WriteString("\n" + redStyle.Render(s.inputErr.Error()) + "\n")
	}
	b.WriteString("\n" + s.help.View(s.startKeys))

	return b.String()
}

func (s *LocalState) gameView() string {
	var b strings.Builder

	b.WriteString(s.statusLine() + "\n\n")

	rows, cols := s.visibleRows(), s.visibleCols()
	for r := s.offsetRow; r < s.offsetRow+rows; r++ {
		for c := s.offsetCol; c < s.offsetCol+cols; c++ {
			b.WriteString(s.renderCell(r, c))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + s.message() + "\n")
	b.WriteString(s.help.View(s.keys))

	return b.String()
}

func (s *LocalState) renderCell(row, col int) string {
	e := s.Session.CurrentGame.State
	cell, _ := e.Cell(row, col)

	style := cellStyle(cell)
	if !e.IsOver() && row == s.cursorRow && col == s.cursorCol {
		style = style.Reverse(true)
	}
	return style.Render(cell.String()) + " "
}

func cellStyle(cell state.Cell) lipgloss.Style {
	switch cell {
	case state.Hidden:
		return hiddenStyle
	case state.Flagged:
		return flagStyle
	case state.Mine:
		return mineStyle
	case state.ExplodedMine:
		return boomStyle
	}
	n, _ := cell.Count()
	return lipgloss.NewStyle().Foreground(numberColors[n])
}

// statusLine is the classic counter, face and clock row.
func (s *LocalState) statusLine() string {
	g := s.Session.CurrentGame
	e := g.State

	face := ":)"
	switch e.Status() {
	case state.Won:
		face = "B)"
	case state.Lost:
		face = "X("
	}

	var clock string
	timeStyle := scoreStyle
	if e.TimeLimit() > 0 {
		if e.TimeRemaining()*3 <= e.TimeLimit() {
			timeStyle = redStyle
		}
		clock = fmt.Sprintf("%03d", e.TimeRemaining())
	} else {
		clock = fmt.Sprintf("%03d", min(999, int(g.Elapsed().Seconds())))
	}

	return scoreStyle.Render(fmt.Sprintf("MINES: %03d", e.FlagsRemaining())) + " | " +
		boldStyle.Render(face) + " | " +
		scoreStyle.Render("TIME: ") + timeStyle.Render(clock) + " | " +
		g.Params.Title()
}

func (s *LocalState) message() string {
	g := s.Session.CurrentGame
	e := g.State
	tally := fmt.Sprintf(" | Played: %d, won: %d, lost: %d", s.Session.Played, s.Session.Wins, s.Session.Losses)

	switch e.Status() {
	case state.NotStarted:
		if g.Score != nil && g.Score.GetAttempts() > 0 {
			return fmt.Sprintf("Best time (this board): %ds", g.Score.GetBestTime().Seconds)
		}
		return "Reveal any cell to start. The first one is always safe!"

	case state.InProgress:
		return fmt.Sprintf("%d safe cells left", e.SafeCellsRemaining()) + tally

	case state.Won:
		msg := greenStyle.Render(fmt.Sprintf("Cleared in %ds!", g.Seconds())) + tally
		if g.Score != nil && g.Score.GotBestTime() {
			msg += "\nNew best time! Top 5 times:"
			for _, entry := range g.Score.GetNScoreEntries(5) {
				msg += fmt.Sprintf("\n  * %ds on %s", entry.Seconds, entry.Timestamp)
			}
		}
		return msg
	}

	if e.EndReason() == state.EndTimeout {
		return redStyle.Render("Time's up! Press r to try again.") + tally
	}
	return redStyle.Render("Boom! Press r to try again.") + tally
}
