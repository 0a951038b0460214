package game

import (
	"strings"
	"time"
)

// Slot is the broadcast-time category of a game. It determines which
// submission deadline offset applies.
type Slot string

const (
	SlotEarly       Slot = "early"
	SlotLate        Slot = "late"
	SlotThursday    Slot = "thursday"
	SlotSundayNight Slot = "sunday-night"
	SlotMonday      Slot = "monday"
)

// ParseSlot normalizes a raw slot value. Unknown values fall back to the
// Sunday early slot so a malformed feed record still gets a usable deadline.
func ParseSlot(value string) Slot {
	switch Slot(strings.ToLower(strings.TrimSpace(value))) {
	case SlotLate:
		return SlotLate
	case SlotThursday:
		return SlotThursday
	case SlotSundayNight:
		return SlotSundayNight
	case SlotMonday:
		return SlotMonday
	default:
		return SlotEarly
	}
}

// Side identifies one participant of a game from the picker's point of view.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	// SideNone is the winner of a game that ended level. Picks never hold it.
	SideNone Side = "none"
)

func ParseSide(value string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(value))) {
	case SideHome:
		return SideHome, true
	case SideAway:
		return SideAway, true
	default:
		return "", false
	}
}

// Game is one scheduled matchup. Immutable once created except for the
// scheduled -> final transition (scores, IsFinal) and kickoff reschedules.
type Game struct {
	ID           string
	Season       int
	Week         int
	ExternalID   int64
	HomeTeam     string // canonical team key, resolved once at ingestion
	AwayTeam     string
	KickoffAt    time.Time
	Slot         Slot
	HomeScore    *int
	AwayScore    *int
	IsFinal      bool
	IsTiebreaker bool
	UpdatedAt    time.Time
}

// HasFinalScore reports whether the game is settled with both scores present.
func (g Game) HasFinalScore() bool {
	return g.IsFinal && g.HomeScore != nil && g.AwayScore != nil
}

// Winner returns the winning side of a finalized game. A level score yields
// SideNone: no side gets credit. The second return is false until the game
// has a final score.
func (g Game) Winner() (Side, bool) {
	if !g.HasFinalScore() {
		return "", false
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return SideHome, true
	case *g.AwayScore > *g.HomeScore:
		return SideAway, true
	default:
		return SideNone, true
	}
}

// WeekComplete reports whether every game of the week has a final score.
// An empty week is not complete.
func WeekComplete(games []Game) bool {
	if len(games) == 0 {
		return false
	}
	for _, item := range games {
		if !item.HasFinalScore() {
			return false
		}
	}
	return true
}

// TiebreakerOf returns the week's designated tiebreaker game.
func TiebreakerOf(games []Game) (Game, bool) {
	for _, item := range games {
		if item.IsTiebreaker {
			return item, true
		}
	}
	return Game{}, false
}
