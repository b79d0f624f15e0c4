package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	qb "github.com/riskibarqy/event-scoring/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByEvent(ctx context.Context, eventID int64) ([]team.Team, error) {
	query, args, err := teamSelectBuilder().
		Where(qb.Eq("t.event_id", eventID)).
		OrderBy("t.name", "t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by event query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by event: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := teamSelectBuilder().Where(qb.Eq("t.id", id)).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		EventID:   t.EventID,
		Name:      t.Name,
		CreatedBy: t.CreatedBy,
	}, "RETURNING id, event_id, name, created_by, created_at")
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err, teamsEventNameKey) {
			return team.Team{}, team.ErrDuplicateName
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}
	return row.toDomain(), nil
}

func (r *TeamRepository) Rename(ctx context.Context, id int64, name string) error {
	_, err := execBuilt(ctx, r.db, qb.Update("teams").Set("name", name).Where(qb.Eq("id", id)), "rename team")
	if isUniqueViolation(err, teamsEventNameKey) {
		return team.ErrDuplicateName
	}
	return err
}

func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, "team delete", func(tx *sqlx.Tx) error {
		if _, err := execBuilt(ctx, tx, qb.DeleteFrom("scores").Where(qb.Eq("team_id", id)), "delete team scores"); err != nil {
			return err
		}
		_, err := execBuilt(ctx, tx, qb.DeleteFrom("teams").Where(qb.Eq("id", id)), "delete team")
		return err
	})
}

func teamSelectBuilder() *qb.SelectBuilder {
	return qb.Select("t.id", "t.event_id", "t.name", "t.created_by", "u.name AS created_by_name", "t.created_at").
		From("teams t").
		LeftJoin("users u ON u.id = t.created_by")
}
