package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-pool/internal/domain/game"
	qb "github.com/pickemhq/pickem-pool/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", gameID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *GameRepository) GetByExternalID(ctx context.Context, externalID int64) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by external id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by external id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("kickoff_at NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by week query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by week: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("season", season)).
		OrderBy("week", "kickoff_at NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by season query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by season: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) error {
	const upsertQuery = `
INSERT INTO games (id, external_id, season, week, home_team, away_team, kickoff_at, slot, home_score, away_score, is_final, is_tiebreaker)
VALUES (:id, :external_id, :season, :week, :home_team, :away_team, :kickoff_at, :slot, :home_score, :away_score, :is_final, :is_tiebreaker)
ON CONFLICT (id)
DO UPDATE SET
    kickoff_at = EXCLUDED.kickoff_at,
    slot = EXCLUDED.slot,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    is_final = EXCLUDED.is_final,
    is_tiebreaker = EXCLUDED.is_tiebreaker,
    updated_at = NOW()`

	args := map[string]any{
		"id":            item.ID,
		"external_id":   item.ExternalID,
		"season":        item.Season,
		"week":          item.Week,
		"home_team":     item.HomeTeam,
		"away_team":     item.AwayTeam,
		"kickoff_at":    timeToNullTime(item.KickoffAt),
		"slot":          string(item.Slot),
		"home_score":    intPtrToNullInt64(item.HomeScore),
		"away_score":    intPtrToNullInt64(item.AwayScore),
		"is_final":      item.IsFinal,
		"is_tiebreaker": item.IsTiebreaker,
	}

	query, queryArgs, err := sqlx.Named(upsertQuery, args)
	if err != nil {
		return fmt.Errorf("bind upsert game query: %w", err)
	}
	query = r.db.Rebind(query)

	if _, err := r.db.ExecContext(ctx, query, queryArgs...); err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	return nil
}
