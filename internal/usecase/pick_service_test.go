package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
)

func newPickServiceForTest(games ...game.Game) (*PickService, *stubPickRepository) {
	gameRepo := newStubGameRepository(games...)
	pickRepo := newStubPickRepository()
	gate := NewDeadlineGate(nil, 5*time.Minute)
	service := NewPickService(gameRepo, pickRepo, gate, &seqIDGenerator{})
	return service, pickRepo
}

func TestPickServiceSubmitPick(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.September, 13, 17, 0, 0, 0, time.UTC)
	service, pickRepo := newPickServiceForTest(game.Game{
		ID: "g1", Season: 2026, Week: 1, KickoffAt: kickoff, Slot: game.SlotEarly,
	})
	service.now = func() time.Time { return kickoff.Add(-time.Hour) }

	got, err := service.SubmitPick(context.Background(), SubmitPickInput{
		UserID: "user-a", Season: 2026, Week: 1, GameID: "g1", SelectedSide: "home",
	})
	if err != nil {
		t.Fatalf("SubmitPick error: %v", err)
	}
	if got.ID == "" || got.SelectedSide != game.SideHome || got.Correctness != pick.CorrectnessUnknown {
		t.Fatalf("unexpected pick: %+v", got)
	}

	stored, ok := pickRepo.get(got.ID)
	if !ok {
		t.Fatalf("pick was not persisted")
	}
	if stored.Season != 2026 || stored.Week != 1 {
		t.Fatalf("stored pick has wrong week: %+v", stored)
	}
}

func TestPickServiceResubmitKeepsID(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.September, 13, 17, 0, 0, 0, time.UTC)
	service, _ := newPickServiceForTest(game.Game{
		ID: "g1", Season: 2026, Week: 1, KickoffAt: kickoff, Slot: game.SlotEarly,
	})
	service.now = func() time.Time { return kickoff.Add(-time.Hour) }

	input := SubmitPickInput{UserID: "user-a", Season: 2026, Week: 1, GameID: "g1", SelectedSide: "home"}
	first, err := service.SubmitPick(context.Background(), input)
	if err != nil {
		t.Fatalf("first SubmitPick error: %v", err)
	}

	input.SelectedSide = "away"
	second, err := service.SubmitPick(context.Background(), input)
	if err != nil {
		t.Fatalf("second SubmitPick error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("resubmit changed pick id: %s -> %s", first.ID, second.ID)
	}
	if second.SelectedSide != game.SideAway {
		t.Fatalf("resubmit did not replace the side: %+v", second)
	}
}

func TestPickServiceRejectsAfterDeadline(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.September, 13, 17, 0, 0, 0, time.UTC)
	service, _ := newPickServiceForTest(game.Game{
		ID: "g1", Season: 2026, Week: 1, KickoffAt: kickoff, Slot: game.SlotEarly,
	})
	service.now = func() time.Time { return kickoff.Add(-time.Minute) }

	_, err := service.SubmitPick(context.Background(), SubmitPickInput{
		UserID: "user-a", Season: 2026, Week: 1, GameID: "g1", SelectedSide: "home",
	})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
}

func TestPickServiceTiebreakerPredictionRules(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.September, 14, 0, 15, 0, 0, time.UTC)
	service, _ := newPickServiceForTest(
		game.Game{ID: "g1", Season: 2026, Week: 1, KickoffAt: kickoff, Slot: game.SlotEarly},
		game.Game{ID: "tb1", Season: 2026, Week: 1, KickoffAt: kickoff, Slot: game.SlotMonday, IsTiebreaker: true},
	)
	service.now = func() time.Time { return kickoff.Add(-time.Hour) }

	_, err := service.SubmitPick(context.Background(), SubmitPickInput{
		UserID: "user-a", Season: 2026, Week: 1, GameID: "tb1", SelectedSide: "home",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("tiebreaker pick without prediction should fail, got %v", err)
	}

	_, err = service.SubmitPick(context.Background(), SubmitPickInput{
		UserID: "user-a", Season: 2026, Week: 1, GameID: "g1", SelectedSide: "home",
		PredictedHomeScore: intPtr(21), PredictedAwayScore: intPtr(17),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("prediction on a regular game should fail, got %v", err)
	}

	got, err := service.SubmitPick(context.Background(), SubmitPickInput{
		UserID: "user-a", Season: 2026, Week: 1, GameID: "tb1", SelectedSide: "home",
		PredictedHomeScore: intPtr(21), PredictedAwayScore: intPtr(17),
	})
	if err != nil {
		t.Fatalf("tiebreaker pick with prediction failed: %v", err)
	}
	if !got.HasPrediction() {
		t.Fatalf("prediction was not stored: %+v", got)
	}
}

func TestPickServiceUnknownGame(t *testing.T) {
	t.Parallel()

	service, _ := newPickServiceForTest()
	_, err := service.SubmitPick(context.Background(), SubmitPickInput{
		UserID: "user-a", Season: 2026, Week: 1, GameID: "missing", SelectedSide: "home",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPickServiceWeekMismatch(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.September, 13, 17, 0, 0, 0, time.UTC)
	service, _ := newPickServiceForTest(game.Game{
		ID: "g1", Season: 2026, Week: 2, KickoffAt: kickoff, Slot: game.SlotEarly,
	})
	service.now = func() time.Time { return kickoff.Add(-time.Hour) }

	_, err := service.SubmitPick(context.Background(), SubmitPickInput{
		UserID: "user-a", Season: 2026, Week: 1, GameID: "g1", SelectedSide: "home",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for week mismatch, got %v", err)
	}
}
