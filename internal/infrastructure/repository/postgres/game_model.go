package postgres

import (
	"database/sql"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
)

type gameTableModel struct {
	ID           string        `db:"id"`
	ExternalID   int64         `db:"external_id"`
	Season       int           `db:"season"`
	Week         int           `db:"week"`
	HomeTeam     string        `db:"home_team"`
	AwayTeam     string        `db:"away_team"`
	KickoffAt    sql.NullTime  `db:"kickoff_at"`
	Slot         string        `db:"slot"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	IsFinal      bool          `db:"is_final"`
	IsTiebreaker bool          `db:"is_tiebreaker"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func (m gameTableModel) toDomain() game.Game {
	out := game.Game{
		ID:           m.ID,
		ExternalID:   m.ExternalID,
		Season:       m.Season,
		Week:         m.Week,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		Slot:         game.Slot(m.Slot),
		HomeScore:    nullInt64ToIntPtr(m.HomeScore),
		AwayScore:    nullInt64ToIntPtr(m.AwayScore),
		IsFinal:      m.IsFinal,
		IsTiebreaker: m.IsTiebreaker,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.KickoffAt.Valid {
		out.KickoffAt = m.KickoffAt.Time
	}
	return out
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int64)
	return &out
}

func intPtrToNullInt64(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func timeToNullTime(value time.Time) sql.NullTime {
	if value.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value, Valid: true}
}
