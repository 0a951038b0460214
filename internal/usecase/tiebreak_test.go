package usecase

import (
	"reflect"
	"testing"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
)

func intPtr(v int) *int { return &v }

func finalGame(home, away int) game.Game {
	return game.Game{
		ID:           "tb1",
		IsFinal:      true,
		IsTiebreaker: true,
		HomeScore:    intPtr(home),
		AwayScore:    intPtr(away),
	}
}

func tbPick(userID string, side game.Side, home, away int) pick.Pick {
	return pick.Pick{
		UserID:             userID,
		GameID:             "tb1",
		SelectedSide:       side,
		PredictedHomeScore: intPtr(home),
		PredictedAwayScore: intPtr(away),
	}
}

func TestTiebreakLosingSideNeverWins(t *testing.T) {
	t.Parallel()

	// Home won 24-20. B predicted the exact score but picked away.
	tb := finalGame(24, 20)
	picks := map[string]pick.Pick{
		"user-a": tbPick("user-a", game.SideHome, 30, 10),
		"user-b": tbPick("user-b", game.SideAway, 24, 20),
	}

	classes := NewTiebreakEvaluator().Classes([]string{"user-a", "user-b"}, picks, tb)
	want := [][]string{{"user-a"}, {"user-b"}}
	if !reflect.DeepEqual(classes, want) {
		t.Fatalf("Classes = %v, want %v", classes, want)
	}
}

func TestTiebreakHomeDiffBeforeAwayDiff(t *testing.T) {
	t.Parallel()

	// Home won 24-20. A: 24-21 (home diff 0, away diff 1). B: 23-20 (home
	// diff 1, away diff 0). Home diff is compared first, so A wins.
	tb := finalGame(24, 20)
	picks := map[string]pick.Pick{
		"user-a": tbPick("user-a", game.SideHome, 24, 21),
		"user-b": tbPick("user-b", game.SideHome, 23, 20),
	}

	classes := NewTiebreakEvaluator().Classes([]string{"user-b", "user-a"}, picks, tb)
	want := [][]string{{"user-a"}, {"user-b"}}
	if !reflect.DeepEqual(classes, want) {
		t.Fatalf("Classes = %v, want %v", classes, want)
	}
}

func TestTiebreakAwayThenTotalDiff(t *testing.T) {
	t.Parallel()

	tb := finalGame(24, 20)
	picks := map[string]pick.Pick{
		// home diff 1, away diff 2, total diff 1.
		"user-a": tbPick("user-a", game.SideHome, 25, 18),
		// home diff 1, away diff 3, total diff 2. Loses to c on away diff
		// even though its total diff is smaller.
		"user-b": tbPick("user-b", game.SideHome, 23, 23),
		// home diff 1, away diff 2, total diff 3.
		"user-c": tbPick("user-c", game.SideHome, 25, 22),
	}

	classes := NewTiebreakEvaluator().Classes([]string{"user-c", "user-b", "user-a"}, picks, tb)
	want := [][]string{{"user-a"}, {"user-c"}, {"user-b"}}
	if !reflect.DeepEqual(classes, want) {
		t.Fatalf("Classes = %v, want %v", classes, want)
	}
}

func TestTiebreakResidualTieShared(t *testing.T) {
	t.Parallel()

	tb := finalGame(24, 20)
	picks := map[string]pick.Pick{
		"user-a": tbPick("user-a", game.SideHome, 24, 20),
		"user-b": tbPick("user-b", game.SideHome, 24, 20),
	}

	classes := NewTiebreakEvaluator().Classes([]string{"user-a", "user-b"}, picks, tb)
	if len(classes) != 1 || len(classes[0]) != 2 {
		t.Fatalf("Classes = %v, want a single shared class of two", classes)
	}
}

func TestTiebreakDrawnGameFallsBackToDiffs(t *testing.T) {
	t.Parallel()

	// The tiebreaker ended level, so nobody picked "the winner" and the
	// ordering runs on score closeness alone.
	tb := finalGame(20, 20)
	picks := map[string]pick.Pick{
		"user-a": tbPick("user-a", game.SideAway, 20, 21),
		"user-b": tbPick("user-b", game.SideHome, 14, 10),
	}

	classes := NewTiebreakEvaluator().Classes([]string{"user-b", "user-a"}, picks, tb)
	want := [][]string{{"user-a"}, {"user-b"}}
	if !reflect.DeepEqual(classes, want) {
		t.Fatalf("Classes = %v, want %v", classes, want)
	}
}

func TestTiebreakMissingPredictionSortsLast(t *testing.T) {
	t.Parallel()

	tb := finalGame(24, 20)
	picks := map[string]pick.Pick{
		"user-a": {UserID: "user-a", GameID: "tb1", SelectedSide: game.SideHome},
		"user-b": tbPick("user-b", game.SideHome, 40, 3),
		"user-c": {UserID: "user-c", GameID: "tb1", SelectedSide: game.SideAway},
	}

	classes := NewTiebreakEvaluator().Classes([]string{"user-a", "user-b", "user-c"}, picks, tb)
	want := [][]string{{"user-b"}, {"user-a"}, {"user-c"}}
	if !reflect.DeepEqual(classes, want) {
		t.Fatalf("Classes = %v, want %v", classes, want)
	}
}
