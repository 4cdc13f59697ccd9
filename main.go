package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"go-sweep/internal/game"
	"go-sweep/internal/scoring"
	"go-sweep/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

type timerFlag int

// autoTimer asks for one second per safe cell.
const autoTimer timerFlag = -1

func (t *timerFlag) String() string {
	if *t == autoTimer {
		return "auto"
	}
	return fmt.Sprint(int(*t))
}

func (t *timerFlag) Set(s string) error {
	if s == "true" {
		*t = autoTimer
		return nil
	}
	if s == "false" {
		*t = 0 // Disabled
		return nil
	}

	// Try parsing as simple integer first
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		*t = timerFlag(val)
		return nil
	}

	// Try parsing MM:SS
	parts := strings.Split(s, ":")
	if len(parts) == 2 {
		min, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && min >= 0 && sec >= 0 {
			*t = timerFlag(min*60 + sec)
			return nil
		}
	}

	return fmt.Errorf("invalid timer format: %s (use 'MM:SS' or seconds)", s)
}

func (t *timerFlag) IsBoolFlag() bool { return true }

type strictIntFlag int

func (i *strictIntFlag) String() string {
	return fmt.Sprint(int(*i))
}

func (i *strictIntFlag) Set(s string) error {
	if s == "true" {
		return fmt.Errorf("value required (format: -flag=value)")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*i = strictIntFlag(v)
	return nil
}

func (i *strictIntFlag) IsBoolFlag() bool { return true }

// startFields turns the command line into the initial start screen fields.
// The start screen is skipped once the board is fully described.
func startFields(rows, cols, mines *strictIntFlag, timer timerFlag, given map[string]bool) (fields [fieldCount]string, skipStart bool, err error) {
	if given["rows"] || given["r"] {
		fields[fieldRows] = rows.String()
	}
	if given["cols"] || given["c"] {
		fields[fieldCols] = cols.String()
	}
	if given["mines"] || given["m"] {
		fields[fieldMines] = mines.String()
	}
	skipStart = fields[fieldRows] != "" && fields[fieldCols] != "" && fields[fieldMines] != ""

	switch {
	case timer == autoTimer:
		p, err := game.ParseParams(fields[fieldRows], fields[fieldCols], "", fields[fieldMines])
		if err != nil {
			return fields, false, err
		}
		fields[fieldTime] = strconv.Itoa(min(game.MaxTime, p.Rows*p.Cols-p.Mines))
	case timer > 0:
		fields[fieldTime] = timer.String()
	}

	return fields, skipStart, nil
}

func main() {
	var rows, cols, mines strictIntFlag
	var tFlag timerFlag
	var noTimer bool
	var logLevel string
	var seed uint64

	flag.Var(&rows, "rows", "Number of rows")
	flag.Var(&rows, "r", "Number of rows (shorthand)")
	flag.Var(&cols, "cols", "Number of columns")
	flag.Var(&cols, "c", "Number of columns (shorthand)")
	flag.Var(&mines, "mines", "Number of mines")
	flag.Var(&mines, "m", "Number of mines (shorthand)")

	// Timer flags
	flag.Var(&tFlag, "timer", "Set countdown timer (e.g. 90 or 1:30). Without a value, one second per safe cell.")
	flag.Var(&tFlag, "t", "Set countdown timer (shorthand)")

	flag.BoolVar(&noTimer, "notimer", false, "Disable the timer")
	flag.BoolVar(&noTimer, "nt", false, "Disable the timer (shorthand)")

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Uint64Var(&seed, "seed", 0, "Seed for mine placement, 0 for random")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "    -r, --rows=N           Number of rows (at least 4)\n")
		fmt.Fprintf(os.Stderr, "    -c, --cols=N           Number of columns (at least 4)\n")
		fmt.Fprintf(os.Stderr, "    -m, --mines=N          Number of mines\n")
		fmt.Fprintf(os.Stderr, "    -t, --timer[=value]    Set countdown timer (e.g. 90 or 1:30). Default is one second per safe cell.\n")
		fmt.Fprintf(os.Stderr, "   -nt, --notimer          Disable the timer\n")
		fmt.Fprintf(os.Stderr, "        --log-level=LEVEL  Log level written to ~/.config/go-sweep/go-sweep.log\n")
		fmt.Fprintf(os.Stderr, "        --seed=N           Seed for mine placement\n")
		fmt.Fprintf(os.Stderr, "    -h, --help             Show this help message\n")
		fmt.Fprintf(os.Stderr, "\nThe start screen is skipped when rows, cols and mines are all given.\n")
	}

	flag.Parse()

	given := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { given[f.Name] = true })

	if noTimer {
		tFlag = 0
	}

	if _, err := setupLogging(logLevel); err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}

	fields, skipStart, err := startFields(&rows, &cols, &mines, tFlag, given)
	if err != nil {
		fmt.Printf("Error reading options: %v\n", err)
		os.Exit(1)
	}

	var opts []state.Option
	if seed != 0 {
		opts = append(opts, state.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}

	// Create the concrete storage implementation.
	storage, err := scoring.NewJSONFileStorage()
	if err != nil {
		fmt.Printf("Error creating score storage: %v\n", err)
		os.Exit(1)
	}

	model, err := initialModel(fields, skipStart, storage, opts...)
	if err != nil {
		fmt.Printf("Error initializing model: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}

	if s := model.Session; s != nil && s.Played > 0 {
		fmt.Printf("Played %d, won %d, lost %d\n", s.Played, s.Wins, s.Losses)
	}
}
