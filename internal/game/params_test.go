package game

import "testing"

func TestParseParams(t *testing.T) {
	tests := []struct {
		name                    string
		rows, cols, time, mines string
		want                    Params
	}{
		{"defaults", "", "", "", "", Params{Rows: 16, Cols: 16, Mines: 32}},
		{"beginner", "9", "9", "", "10", Params{Rows: 9, Cols: 9, Mines: 10}},
		{"spaces", " 8 ", "8", " 30", "", Params{Rows: 8, Cols: 8, Mines: 8, TimeLimit: 30}},
		{"too small", "2", "3", "", "", Params{Rows: 4, Cols: 4, Mines: 2}},
		{"too many mines", "4", "4", "", "50", Params{Rows: 4, Cols: 4, Mines: 7}},
		{"counter limit", "100", "100", "", "5000", Params{Rows: 100, Cols: 100, Mines: 999}},
		{"negative", "16", "16", "-5", "-3", Params{Rows: 16, Cols: 16}},
		{"timer limit", "16", "16", "2000", "40", Params{Rows: 16, Cols: 16, Mines: 40, TimeLimit: 999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.rows, tt.cols, tt.time, tt.mines)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseParams_NotANumber(t *testing.T) {
	inputs := [][4]string{
		{"abc", "", "", ""},
		{"", "1x", "", ""},
		{"", "", "soon", ""},
		{"", "", "", "many"},
	}
	for _, in := range inputs {
		if _, err := ParseParams(in[0], in[1], in[2], in[3]); err == nil {
			t.Errorf("expected an error for %q", in)
		}
	}
}

func TestParams_KeyAndTitle(t *testing.T) {
	p := Params{Rows: 16, Cols: 30, Mines: 99}
	if got := p.Key(); got != "16x30/99/t0" {
		t.Errorf("Key() = %q", got)
	}
	if got := p.Title(); got != "16x30, 99 mines" {
		t.Errorf("Title() = %q", got)
	}

	p.TimeLimit = 60
	if got := p.Key(); got != "16x30/99/t60" {
		t.Errorf("Key() = %q", got)
	}
	if got := p.Title(); got != "16x30, 99 mines, 60s" {
		t.Errorf("Title() = %q", got)
	}
}
