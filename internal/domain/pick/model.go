package pick

import (
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
)

// Correctness is the tri-state settlement mark on a pick. It is written
// exclusively by settlement, never by a user action.
type Correctness string

const (
	CorrectnessUnknown   Correctness = "unknown"
	CorrectnessCorrect   Correctness = "correct"
	CorrectnessIncorrect Correctness = "incorrect"
)

// Pick is one user's selection for one game, unique per (user, game).
// Score predictions are held only for the week's tiebreaker game.
type Pick struct {
	ID                 string
	UserID             string
	GameID             string
	Season             int
	Week               int
	SelectedSide       game.Side
	PredictedHomeScore *int
	PredictedAwayScore *int
	Correctness        Correctness
	UpdatedAt          time.Time
}

// HasPrediction reports whether both tiebreaker score predictions are set.
func (p Pick) HasPrediction() bool {
	return p.PredictedHomeScore != nil && p.PredictedAwayScore != nil
}
