package state

import (
	"testing"
)

func TestStatusMachine_OneDirectional(t *testing.T) {
	e, err := NewEngine(Options{Height: 4, Width: 4, Mines: 1})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	// nothing but start leaves NotStarted
	for _, ev := range []string{eventClear, eventDetonate, eventTimeout} {
		e.fire(ev)
		if got := e.Status(); got != NotStarted {
			t.Fatalf("after %q from NotStarted got %v", ev, got)
		}
	}

	e.fire(eventStart)
	if got := e.Status(); got != InProgress {
		t.Fatalf("expected InProgress, got %v", got)
	}

	e.fire(eventTimeout)
	if got := e.Status(); got != Lost {
		t.Fatalf("expected Lost, got %v", got)
	}

	for _, ev := range []string{eventStart, eventClear, eventDetonate, eventTimeout} {
		e.fire(ev)
		if got := e.Status(); got != Lost {
			t.Errorf("after %q from Lost got %v", ev, got)
		}
	}

	ended := 0
	for _, n := range e.notifications {
		if n.Kind == GameEnded {
			ended++
		}
	}
	if ended != 1 {
		t.Errorf("expected one GameEnded notification, got %d", ended)
	}
}

func TestStatus_String(t *testing.T) {
	for _, s := range []Status{NotStarted, InProgress, Won, Lost} {
		if got := parseStatus(s.String()); got != s {
			t.Errorf("parseStatus(%q) = %v, want %v", s.String(), got, s)
		}
	}
}

func TestCell_String(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Hidden, "#"},
		{Flagged, "F"},
		{Mine, "*"},
		{ExplodedMine, "X"},
		{0, "."},
		{3, "3"},
		{8, "8"},
	}

	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.want {
			t.Errorf("Cell(%d).String() = %q, want %q", tt.cell, got, tt.want)
		}
	}
}
