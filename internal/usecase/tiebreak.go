package usecase

import (
	"sort"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
)

// TiebreakEvaluator orders users tied on correct-pick count by how close
// their tiebreaker prediction came to the actual score. Picking the game's
// actual winner is a hard prerequisite: a losing-side picker never ranks
// ahead of a winning-side picker no matter how close the prediction.
type TiebreakEvaluator struct{}

func NewTiebreakEvaluator() *TiebreakEvaluator {
	return &TiebreakEvaluator{}
}

type tiebreakKey struct {
	sideBucket int
	predBucket int
	homeDiff   int
	awayDiff   int
	totalDiff  int
}

// Classes orders candidates into equivalence classes, best first. Users in
// the same class remain tied after every rule has been applied and share a
// rank. The tiebreaker game must be final with scores present; the caller
// guarantees that by ranking only completed weeks.
func (TiebreakEvaluator) Classes(candidates []string, picksByUser map[string]pick.Pick, tiebreaker game.Game) [][]string {
	if len(candidates) == 0 {
		return nil
	}

	winner := game.SideNone
	if side, ok := tiebreaker.Winner(); ok {
		winner = side
	}
	actualHome, actualAway := 0, 0
	if tiebreaker.HomeScore != nil {
		actualHome = *tiebreaker.HomeScore
	}
	if tiebreaker.AwayScore != nil {
		actualAway = *tiebreaker.AwayScore
	}

	keys := make(map[string]tiebreakKey, len(candidates))
	for _, userID := range candidates {
		keys[userID] = tiebreakKeyFor(picksByUser[userID], winner, actualHome, actualAway)
	}

	ordered := make([]string, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return lessTiebreakKey(keys[ordered[i]], keys[ordered[j]])
	})

	var classes [][]string
	for _, userID := range ordered {
		if len(classes) > 0 {
			last := classes[len(classes)-1]
			if keys[last[0]] == keys[userID] {
				classes[len(classes)-1] = append(last, userID)
				continue
			}
		}
		classes = append(classes, []string{userID})
	}
	return classes
}

func tiebreakKeyFor(p pick.Pick, winner game.Side, actualHome, actualAway int) tiebreakKey {
	key := tiebreakKey{}
	// A drawn tiebreaker game has no winner, so the side rule cannot
	// discriminate and every candidate lands in the same bucket.
	if winner != game.SideNone && p.SelectedSide != winner {
		key.sideBucket = 1
	}
	if !p.HasPrediction() {
		key.predBucket = 1
		return key
	}
	key.homeDiff = absInt(*p.PredictedHomeScore - actualHome)
	key.awayDiff = absInt(*p.PredictedAwayScore - actualAway)
	key.totalDiff = absInt((*p.PredictedHomeScore + *p.PredictedAwayScore) - (actualHome + actualAway))
	return key
}

func lessTiebreakKey(a, b tiebreakKey) bool {
	if a.sideBucket != b.sideBucket {
		return a.sideBucket < b.sideBucket
	}
	if a.predBucket != b.predBucket {
		return a.predBucket < b.predBucket
	}
	if a.homeDiff != b.homeDiff {
		return a.homeDiff < b.homeDiff
	}
	if a.awayDiff != b.awayDiff {
		return a.awayDiff < b.awayDiff
	}
	return a.totalDiff < b.totalDiff
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
