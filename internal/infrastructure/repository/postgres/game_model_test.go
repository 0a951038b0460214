package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
)

func TestGameTableModel_ToDomain(t *testing.T) {
	kickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	row := gameTableModel{
		ID:           "game-1",
		ExternalID:   9001,
		Season:       2026,
		Week:         1,
		HomeTeam:     "gb",
		AwayTeam:     "chi",
		KickoffAt:    sql.NullTime{Time: kickoff, Valid: true},
		Slot:         "early",
		HomeScore:    sql.NullInt64{Int64: 24, Valid: true},
		AwayScore:    sql.NullInt64{},
		IsFinal:      false,
		IsTiebreaker: true,
	}

	got := row.toDomain()

	if got.Slot != game.SlotEarly {
		t.Fatalf("unexpected slot: %s", got.Slot)
	}
	if !got.KickoffAt.Equal(kickoff) {
		t.Fatalf("unexpected kickoff: %v", got.KickoffAt)
	}
	if got.HomeScore == nil || *got.HomeScore != 24 {
		t.Fatalf("unexpected home score: %v", got.HomeScore)
	}
	if got.AwayScore != nil {
		t.Fatalf("expected nil away score, got %v", *got.AwayScore)
	}
}

func TestTimeToNullTime(t *testing.T) {
	if got := timeToNullTime(time.Time{}); got.Valid {
		t.Fatalf("expected invalid null time for zero value")
	}

	kickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	got := timeToNullTime(kickoff)
	if !got.Valid || !got.Time.Equal(kickoff) {
		t.Fatalf("unexpected null time: %+v", got)
	}
}

func TestIntPtrToNullInt64(t *testing.T) {
	if got := intPtrToNullInt64(nil); got.Valid {
		t.Fatalf("expected invalid null int for nil pointer")
	}

	value := 17
	got := intPtrToNullInt64(&value)
	if !got.Valid || got.Int64 != 17 {
		t.Fatalf("unexpected null int: %+v", got)
	}
}
