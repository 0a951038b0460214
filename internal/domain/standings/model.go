package standings

import "time"

// WeeklyResult is one user's outcome for one completed week. Fully derived
// from picks and games; always rebuilt wholesale, never patched in place.
type WeeklyResult struct {
	Season       int
	Week         int
	UserID       string
	CorrectCount int
	Rank         int
	IsWinner     bool
	CalculatedAt time.Time
}

// SeasonStanding is one user's season row: how many weeks they won.
// Ties share a rank and are not broken further.
type SeasonStanding struct {
	Season       int
	UserID       string
	WeeklyWins   int
	Rank         int
	CalculatedAt time.Time
}
