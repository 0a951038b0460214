package postgres

import (
	"database/sql"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
)

type pickTableModel struct {
	ID                 string        `db:"id"`
	UserID             string        `db:"user_id"`
	GameID             string        `db:"game_id"`
	Season             int           `db:"season"`
	Week               int           `db:"week"`
	SelectedSide       string        `db:"selected_side"`
	PredictedHomeScore sql.NullInt64 `db:"predicted_home_score"`
	PredictedAwayScore sql.NullInt64 `db:"predicted_away_score"`
	Correctness        string        `db:"correctness"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

func (m pickTableModel) toDomain() pick.Pick {
	return pick.Pick{
		ID:                 m.ID,
		UserID:             m.UserID,
		GameID:             m.GameID,
		Season:             m.Season,
		Week:               m.Week,
		SelectedSide:       game.Side(m.SelectedSide),
		PredictedHomeScore: nullInt64ToIntPtr(m.PredictedHomeScore),
		PredictedAwayScore: nullInt64ToIntPtr(m.PredictedAwayScore),
		Correctness:        pick.Correctness(m.Correctness),
		UpdatedAt:          m.UpdatedAt,
	}
}
