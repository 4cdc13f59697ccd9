package scoring

import (
	"fmt"
	"sort"
	"time"
)

// Scoring tracks the winning time of one game and the recorded wins for
// its board configuration.
type Scoring struct {
	// public
	Seconds int
	Won     bool
	// private
	storage  ScoreStorage // The interface for loading/saving scores.
	history  ScoreHistory
	boardKey string
	title    string
	now      func() time.Time
}

// InitScoring loads the recorded wins for boardKey from storage.
func InitScoring(boardKey string, title string, storage ScoreStorage) (*Scoring, error) {
	s := &Scoring{
		storage:  storage,
		boardKey: boardKey,
		title:    title,
		now:      time.Now,
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load score history: %w", err)
	}

	filteredEntries := []ScoreHistoryEntry{}
	for _, entry := range allEntries {
		if entry.Board == s.boardKey {
			filteredEntries = append(filteredEntries, entry)
		}
	}

	sort.SliceStable(filteredEntries, func(i, j int) bool {
		return filteredEntries[i].Seconds < filteredEntries[j].Seconds
	})

	s.history.Entries = filteredEntries
	s.history.Attempts = len(filteredEntries)
	if len(filteredEntries) > 0 {
		s.history.BestEntry = &filteredEntries[0]
	}

	return s, nil
}

// RecordWin stores the winning time of the current game. Only the first call
// counts.
func (s *Scoring) RecordWin(seconds int) {
	if s.Won {
		return
	}
	s.Won = true
	s.Seconds = seconds
	s.history.CurrentEntry = &ScoreHistoryEntry{
		Board:     s.boardKey,
		Seconds:   seconds,
		Timestamp: s.now().Format(time.RFC3339Nano),
		Title:     s.title,
	}
}

// SaveEntries persists the winning time of the current game, if any.
// It reads all scores, updates the list, and writes it back using the storage interface.
func (s *Scoring) SaveEntries() error {
	if s.history.CurrentEntry == nil {
		return nil // Nothing to save.
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load scores for saving: %w", err)
	}

	// Keep the other boards as they are and rebuild this board's list.
	updatedEntries := make([]ScoreHistoryEntry, 0, len(allEntries)+1)
	for _, entry := range allEntries {
		if entry.Board != s.boardKey {
			updatedEntries = append(updatedEntries, entry)
		}
	}

	updatedEntries = append(updatedEntries, *s.history.CurrentEntry)
	for _, entry := range s.history.Entries {
		if entry.Timestamp != s.history.CurrentEntry.Timestamp {
			updatedEntries = append(updatedEntries, entry)
		}
	}

	return s.storage.SaveAll(updatedEntries)
}

// Accessor methods for score history, delegating to the history object.
func (s *Scoring) GetBestTime() *ScoreHistoryEntry {
	return s.history.GetBestEntry()
}

func (s *Scoring) GetAttempts() int {
	return s.history.Attempts
}

func (s *Scoring) GotBestTime() bool {
	return s.history.GotBestTime()
}

func (s *Scoring) GetNScoreEntries(n int) []ScoreHistoryEntry {
	return s.history.GetNScoreEntries(n)
}

func (s *Scoring) BoardKey() string {
	return s.boardKey
}
