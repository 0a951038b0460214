package postgres

import (
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/standings"
)

type weeklyResultTableModel struct {
	Season       int       `db:"season"`
	Week         int       `db:"week"`
	UserID       string    `db:"user_id"`
	CorrectCount int       `db:"correct_count"`
	Rank         int       `db:"rank"`
	IsWinner     bool      `db:"is_winner"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func (m weeklyResultTableModel) toDomain() standings.WeeklyResult {
	return standings.WeeklyResult{
		Season:       m.Season,
		Week:         m.Week,
		UserID:       m.UserID,
		CorrectCount: m.CorrectCount,
		Rank:         m.Rank,
		IsWinner:     m.IsWinner,
		CalculatedAt: m.CalculatedAt,
	}
}

type seasonStandingTableModel struct {
	Season       int       `db:"season"`
	UserID       string    `db:"user_id"`
	WeeklyWins   int       `db:"weekly_wins"`
	Rank         int       `db:"rank"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func (m seasonStandingTableModel) toDomain() standings.SeasonStanding {
	return standings.SeasonStanding{
		Season:       m.Season,
		UserID:       m.UserID,
		WeeklyWins:   m.WeeklyWins,
		Rank:         m.Rank,
		CalculatedAt: m.CalculatedAt,
	}
}
