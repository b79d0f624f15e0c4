package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	qb "github.com/riskibarqy/event-scoring/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Upsert(ctx context.Context, s score.Score) (score.Score, error) {
	query, args, err := qb.InsertModel("scores", scoreInsertModel{
		ActivityID: s.ActivityID,
		TeamID:     s.TeamID,
		CategoryID: s.CategoryID,
		Value:      s.Value,
		ScoredBy:   s.ScoredBy,
		Notes:      s.Notes,
		ScoredAt:   s.ScoredAt,
	}, `ON CONFLICT (activity_id, team_id, category_id)
DO UPDATE SET
    score_value = EXCLUDED.score_value,
    scored_by = EXCLUDED.scored_by,
    notes = EXCLUDED.notes,
    scored_at = EXCLUDED.scored_at
RETURNING id`)
	if err != nil {
		return score.Score{}, fmt.Errorf("build upsert score query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return score.Score{}, fmt.Errorf("upsert score: %w", err)
	}

	rows, err := r.list(ctx, qb.Eq("s.id", id))
	if err != nil {
		return score.Score{}, err
	}
	if len(rows) == 0 {
		return score.Score{}, fmt.Errorf("upsert score: no row returned")
	}
	return rows[0], nil
}

func (r *ScoreRepository) ListByActivity(ctx context.Context, activityID int64) ([]score.Score, error) {
	return r.list(ctx, qb.Eq("s.activity_id", activityID))
}

func (r *ScoreRepository) ListByEvent(ctx context.Context, eventID int64) ([]score.Score, error) {
	return r.list(ctx, qb.Expr("s.activity_id IN (SELECT id FROM activities WHERE event_id = ?)", eventID))
}

func (r *ScoreRepository) list(ctx context.Context, cond qb.Condition) ([]score.Score, error) {
	query, args, err := scoreSelectBuilder().Where(cond).OrderBy("s.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	out := make([]score.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func scoreSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"s.id", "s.activity_id", "s.team_id", "s.category_id", "s.score_value", "s.scored_by", "s.notes", "s.scored_at",
		"t.name AS team_name", "c.name AS category_name", "u.name AS scored_by_name",
	).
		From("scores s").
		LeftJoin("teams t ON t.id = s.team_id").
		LeftJoin("score_categories c ON c.id = s.category_id").
		LeftJoin("users u ON u.id = s.scored_by")
}
