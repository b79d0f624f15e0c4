package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	qb "github.com/riskibarqy/event-scoring/internal/platform/querybuilder"
)

type LeaderRepository struct {
	db *sqlx.DB
}

func NewLeaderRepository(db *sqlx.DB) *LeaderRepository {
	return &LeaderRepository{db: db}
}

func (r *LeaderRepository) ListByActivity(ctx context.Context, activityID int64) ([]leader.Assignment, error) {
	return r.list(ctx, qb.Eq("al.activity_id", activityID))
}

func (r *LeaderRepository) ListByEvent(ctx context.Context, eventID int64) ([]leader.Assignment, error) {
	return r.list(ctx, qb.Expr("al.activity_id IN (SELECT id FROM activities WHERE event_id = ?)", eventID))
}

func (r *LeaderRepository) GetByID(ctx context.Context, id int64) (leader.Assignment, bool, error) {
	query, args, err := leaderSelectBuilder().Where(qb.Eq("al.id", id)).ToSQL()
	if err != nil {
		return leader.Assignment{}, false, fmt.Errorf("build get activity leader query: %w", err)
	}

	var row leaderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leader.Assignment{}, false, nil
		}
		return leader.Assignment{}, false, fmt.Errorf("get activity leader: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *LeaderRepository) IsLeader(ctx context.Context, activityID, userID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM activity_leaders WHERE activity_id = $1 AND user_id = $2)`

	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, activityID, userID); err != nil {
		return false, fmt.Errorf("check activity leader: %w", err)
	}
	return ok, nil
}

func (r *LeaderRepository) IsLeaderInEvent(ctx context.Context, eventID, userID int64) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1
    FROM activity_leaders al
    JOIN activities a ON a.id = al.activity_id
    WHERE a.event_id = $1
      AND al.user_id = $2
)`

	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, eventID, userID); err != nil {
		return false, fmt.Errorf("check event leader: %w", err)
	}
	return ok, nil
}

func (r *LeaderRepository) Create(ctx context.Context, a leader.Assignment) (leader.Assignment, error) {
	query, args, err := qb.InsertModel("activity_leaders", leaderInsertModel{
		ActivityID: a.ActivityID,
		UserID:     a.UserID,
		AssignedBy: a.AssignedBy,
	}, "RETURNING id, activity_id, user_id, assigned_by, assigned_at")
	if err != nil {
		return leader.Assignment{}, fmt.Errorf("build insert activity leader query: %w", err)
	}

	var row leaderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err, activityLeadersPairKey) {
			return leader.Assignment{}, leader.ErrAlreadyAssigned
		}
		return leader.Assignment{}, fmt.Errorf("insert activity leader: %w", err)
	}
	return row.toDomain(), nil
}

func (r *LeaderRepository) Delete(ctx context.Context, id int64) error {
	_, err := execBuilt(ctx, r.db, qb.DeleteFrom("activity_leaders").Where(qb.Eq("id", id)), "delete activity leader")
	return err
}

func (r *LeaderRepository) list(ctx context.Context, cond qb.Condition) ([]leader.Assignment, error) {
	query, args, err := leaderSelectBuilder().Where(cond).OrderBy("al.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list activity leaders query: %w", err)
	}

	var rows []leaderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list activity leaders: %w", err)
	}

	out := make([]leader.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func leaderSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"al.id", "al.activity_id", "al.user_id", "al.assigned_by", "al.assigned_at",
		"u.name AS user_name", "u.email AS user_email",
	).
		From("activity_leaders al").
		LeftJoin("users u ON u.id = al.user_id")
}
