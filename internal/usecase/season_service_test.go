package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/standings"
)

func weeklyRow(week int, userID string, rank int, winner bool) standings.WeeklyResult {
	return standings.WeeklyResult{Season: 2026, Week: week, UserID: userID, Rank: rank, IsWinner: winner}
}

func TestAggregateSeasonCountsWeeklyWins(t *testing.T) {
	t.Parallel()

	weeklyRepo := newStubWeeklyRepository()
	seasonRepo := newStubSeasonRepository()
	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 1, []standings.WeeklyResult{
		weeklyRow(1, "user-a", 1, true),
		weeklyRow(1, "user-b", 2, false),
	})
	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 2, []standings.WeeklyResult{
		weeklyRow(2, "user-b", 1, true),
		weeklyRow(2, "user-a", 2, false),
	})
	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 3, []standings.WeeklyResult{
		weeklyRow(3, "user-a", 1, true),
		weeklyRow(3, "user-c", 2, false),
	})

	service := NewSeasonService(weeklyRepo, seasonRepo, nil)
	rows, err := service.AggregateSeason(context.Background(), 2026)
	if err != nil {
		t.Fatalf("AggregateSeason error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 standings rows, got %d", len(rows))
	}
	if rows[0].UserID != "user-a" || rows[0].WeeklyWins != 2 || rows[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].UserID != "user-b" || rows[1].WeeklyWins != 1 || rows[1].Rank != 2 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[2].UserID != "user-c" || rows[2].WeeklyWins != 0 || rows[2].Rank != 3 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}

func TestAggregateSeasonCoRanksTies(t *testing.T) {
	t.Parallel()

	weeklyRepo := newStubWeeklyRepository()
	seasonRepo := newStubSeasonRepository()
	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 1, []standings.WeeklyResult{
		weeklyRow(1, "user-a", 1, true),
		weeklyRow(1, "user-b", 2, false),
	})
	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 2, []standings.WeeklyResult{
		weeklyRow(2, "user-b", 1, true),
		weeklyRow(2, "user-a", 2, false),
	})

	service := NewSeasonService(weeklyRepo, seasonRepo, nil)
	rows, err := service.AggregateSeason(context.Background(), 2026)
	if err != nil {
		t.Fatalf("AggregateSeason error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.WeeklyWins != 1 || row.Rank != 1 {
			t.Fatalf("tied users must share rank 1, got %+v", row)
		}
	}
}

func TestAggregateSeasonMatchesFullRebuild(t *testing.T) {
	t.Parallel()

	weeklyRepo := newStubWeeklyRepository()
	seasonRepo := newStubSeasonRepository()
	service := NewSeasonService(weeklyRepo, seasonRepo, nil)
	fixed := time.Date(2026, time.November, 2, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 1, []standings.WeeklyResult{
		weeklyRow(1, "user-a", 1, true),
	})
	if _, err := service.AggregateSeason(context.Background(), 2026); err != nil {
		t.Fatalf("AggregateSeason error: %v", err)
	}

	// A later week lands, then the first week's result gets corrected.
	// Incremental reaggregation must equal a from-scratch rebuild.
	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 2, []standings.WeeklyResult{
		weeklyRow(2, "user-b", 1, true),
		weeklyRow(2, "user-a", 2, false),
	})
	_ = weeklyRepo.ReplaceWeek(context.Background(), 2026, 1, []standings.WeeklyResult{
		weeklyRow(1, "user-b", 1, true),
		weeklyRow(1, "user-a", 2, false),
	})
	incremental, err := service.AggregateSeason(context.Background(), 2026)
	if err != nil {
		t.Fatalf("AggregateSeason error: %v", err)
	}

	freshRepo := newStubSeasonRepository()
	fresh := NewSeasonService(weeklyRepo, freshRepo, nil)
	fresh.now = service.now
	rebuilt, err := fresh.AggregateSeason(context.Background(), 2026)
	if err != nil {
		t.Fatalf("rebuild AggregateSeason error: %v", err)
	}

	if len(incremental) != len(rebuilt) {
		t.Fatalf("row count mismatch: %d vs %d", len(incremental), len(rebuilt))
	}
	for i := range incremental {
		if incremental[i] != rebuilt[i] {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, incremental[i], rebuilt[i])
		}
	}
}
