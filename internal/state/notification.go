package state

// NotificationKind identifies what a transition wants the host to react to.
type NotificationKind int

const (
	// GameStarted is emitted by the first reveal. Hosts start their clock
	// here when TimerActive reports true.
	GameStarted NotificationKind = iota
	FlagPlaced
	FlagRemoved
	// GameEnded is emitted once, on the transition into Won or Lost.
	GameEnded
)

func (k NotificationKind) String() string {
	switch k {
	case GameStarted:
		return "game_started"
	case FlagPlaced:
		return "flag_placed"
	case FlagRemoved:
		return "flag_removed"
	case GameEnded:
		return "game_ended"
	default:
		return "unknown"
	}
}

// EndReason tells how a finished game finished.
type EndReason int

const (
	EndNone EndReason = iota
	EndCleared
	EndMine
	EndTimeout
)

func (r EndReason) String() string {
	switch r {
	case EndCleared:
		return "cleared"
	case EndMine:
		return "mine"
	case EndTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// Notification is an outbound effect produced by a single transition.
type Notification struct {
	Kind NotificationKind
	// Row and Col locate the cell for flag notifications and the losing
	// mine for a GameEnded caused by EndMine. Both are -1 otherwise.
	Row, Col int
	Won      bool
	Reason   EndReason
}
