package scoring

import (
	"sort"
)

// ScoreHistory holds the recorded wins for one board configuration,
// including the current game's time once it has been won.
type ScoreHistory struct {
	Entries      []ScoreHistoryEntry
	BestEntry    *ScoreHistoryEntry
	CurrentEntry *ScoreHistoryEntry
	Attempts     int
}

// ScoreHistoryEntry is a single winning time for a board configuration.
type ScoreHistoryEntry struct {
	Board     string `json:"board"`
	Seconds   int    `json:"seconds"`
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

// GetBestEntry returns the fastest recorded win, or nil without history.
func (sh ScoreHistory) GetBestEntry() *ScoreHistoryEntry {
	return sh.BestEntry
}

// GetNScoreEntries returns the N fastest wins, the current one included.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	// Make a copy to avoid modifying the original slice.
	entriesCopy := make([]ScoreHistoryEntry, len(sh.Entries), len(sh.Entries)+1)
	copy(entriesCopy, sh.Entries)
	if sh.CurrentEntry != nil {
		entriesCopy = append(entriesCopy, *sh.CurrentEntry)
	}

	sort.SliceStable(entriesCopy, func(i, j int) bool {
		return entriesCopy[i].Seconds < entriesCopy[j].Seconds
	})

	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}

// GotBestTime reports whether the current win is at least as fast as every
// earlier one. It is false until the current game has been won.
func (sh ScoreHistory) GotBestTime() bool {
	if sh.CurrentEntry == nil {
		return false
	}
	if sh.BestEntry == nil {
		return true
	}
	return sh.CurrentEntry.Seconds <= sh.BestEntry.Seconds
}
