package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	qb "github.com/riskibarqy/event-scoring/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := eventSelectBuilder().OrderBy("e.start_date", "e.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (event.Event, bool, error) {
	query, args, err := eventSelectBuilder().Where(qb.Eq("e.id", id)).ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	query, args, err := qb.InsertModel("events", eventInsertModel{
		CreatorID:   e.CreatorID,
		Name:        e.Name,
		Description: e.Description,
		StartDate:   dateOnly(e.StartDate),
		EndDate:     dateOnly(e.EndDate),
	}, "RETURNING id, creator_id, name, description, start_date, end_date, created_at")
	if err != nil {
		return event.Event{}, fmt.Errorf("build insert event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return event.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return row.toDomain(), nil
}

func (r *EventRepository) Update(ctx context.Context, id int64, patch event.Patch) error {
	if patch.IsEmpty() {
		return nil
	}

	b := qb.Update("events")
	if patch.Name != nil {
		b.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.StartDate != nil {
		b.Set("start_date", dateOnly(*patch.StartDate))
	}
	if patch.EndDate != nil {
		b.Set("end_date", dateOnly(*patch.EndDate))
	}
	_, err := execBuilt(ctx, r.db, b.Where(qb.Eq("id", id)), "update event")
	return err
}

// Delete removes dependents child-first because foreign keys are RESTRICT.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, "event delete", func(tx *sqlx.Tx) error {
		var activityIDs []int64
		if err := tx.SelectContext(ctx, &activityIDs, `SELECT id FROM activities WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("list event activities: %w", err)
		}
		if err := deleteActivityRows(ctx, tx, activityIDs); err != nil {
			return err
		}

		steps := []struct {
			what string
			b    builder
		}{
			{"delete event team scores", qb.DeleteFrom("scores").Where(qb.Expr("team_id IN (SELECT id FROM teams WHERE event_id = ?)", id))},
			{"delete event teams", qb.DeleteFrom("teams").Where(qb.Eq("event_id", id))},
			{"delete event", qb.DeleteFrom("events").Where(qb.Eq("id", id))},
		}
		for _, step := range steps {
			if _, err := execBuilt(ctx, tx, step.b, step.what); err != nil {
				return err
			}
		}
		return nil
	})
}

func eventSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"e.id", "e.creator_id", "u.name AS creator_name", "e.name", "e.description",
		"e.start_date", "e.end_date", "e.created_at",
	).
		From("events e").
		LeftJoin("users u ON u.id = e.creator_id")
}
