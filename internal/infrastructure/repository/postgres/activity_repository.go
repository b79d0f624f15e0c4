package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	qb "github.com/riskibarqy/event-scoring/internal/platform/querybuilder"
)

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) ListByEvent(ctx context.Context, eventID int64) ([]activity.Activity, error) {
	query, args, err := activitySelectBuilder().
		Where(qb.Eq("event_id", eventID)).
		OrderBy("activity_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list activities query: %w", err)
	}

	var rows []activityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list activities by event: %w", err)
	}

	out := make([]activity.Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (activity.Activity, bool, error) {
	query, args, err := activitySelectBuilder().Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return activity.Activity{}, false, fmt.Errorf("build get activity query: %w", err)
	}

	var row activityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return activity.Activity{}, false, nil
		}
		return activity.Activity{}, false, fmt.Errorf("get activity: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a activity.Activity, categories []activity.ScoreCategory) (activity.Activity, []activity.ScoreCategory, error) {
	var (
		created activity.Activity
		saved   []activity.ScoreCategory
	)
	err := inTx(ctx, r.db, "activity create", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModel("activities", activityInsertModel{
			EventID:      a.EventID,
			Name:         a.Name,
			Description:  a.Description,
			ActivityDate: dateOnly(a.ActivityDate),
		}, "RETURNING id, event_id, name, description, activity_date, created_at")
		if err != nil {
			return fmt.Errorf("build insert activity query: %w", err)
		}

		var row activityTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		created = row.toDomain()

		saved = make([]activity.ScoreCategory, 0, len(categories))
		for _, c := range categories {
			inserted, err := insertCategory(ctx, tx, created.ID, c)
			if err != nil {
				return err
			}
			saved = append(saved, inserted)
		}
		return nil
	})
	if err != nil {
		return activity.Activity{}, nil, err
	}
	return created, saved, nil
}

func (r *ActivityRepository) Update(ctx context.Context, id int64, patch activity.Patch) error {
	if patch.IsEmpty() {
		return nil
	}

	b := qb.Update("activities")
	if patch.Name != nil {
		b.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.ActivityDate != nil {
		b.Set("activity_date", dateOnly(*patch.ActivityDate))
	}
	_, err := execBuilt(ctx, r.db, b.Where(qb.Eq("id", id)), "update activity")
	return err
}

func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, "activity delete", func(tx *sqlx.Tx) error {
		return deleteActivityRows(ctx, tx, []int64{id})
	})
}

func (r *ActivityRepository) ListCategories(ctx context.Context, activityID int64) ([]activity.ScoreCategory, error) {
	return r.listCategories(ctx, qb.Eq("activity_id", activityID))
}

func (r *ActivityRepository) ListCategoriesByEvent(ctx context.Context, eventID int64) ([]activity.ScoreCategory, error) {
	return r.listCategories(ctx, qb.Expr("activity_id IN (SELECT id FROM activities WHERE event_id = ?)", eventID))
}

func (r *ActivityRepository) GetCategory(ctx context.Context, id int64) (activity.ScoreCategory, bool, error) {
	query, args, err := categorySelectBuilder().Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return activity.ScoreCategory{}, false, fmt.Errorf("build get score category query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return activity.ScoreCategory{}, false, nil
		}
		return activity.ScoreCategory{}, false, fmt.Errorf("get score category: %w", err)
	}
	return row.toDomain(), true, nil
}

// SaveCategories runs in one transaction; an id owned by another activity rolls back the batch.
func (r *ActivityRepository) SaveCategories(ctx context.Context, activityID int64, categories []activity.ScoreCategory) ([]activity.ScoreCategory, error) {
	var saved []activity.ScoreCategory
	err := inTx(ctx, r.db, "score categories save", func(tx *sqlx.Tx) error {
		saved = make([]activity.ScoreCategory, 0, len(categories))
		for _, c := range categories {
			if c.ID == 0 {
				inserted, err := insertCategory(ctx, tx, activityID, c)
				if err != nil {
					return err
				}
				saved = append(saved, inserted)
				continue
			}

			res, err := execBuilt(ctx, tx, qb.Update("score_categories").
				Set("name", c.Name).
				Set("max_score", c.MaxScore).
				Set("weight", c.Weight).
				Where(qb.Eq("id", c.ID), qb.Eq("activity_id", activityID)), "update score category")
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("count updated score category rows: %w", err)
			}
			if affected == 0 {
				return activity.ErrCategoryMismatch
			}
			c.ActivityID = activityID
			saved = append(saved, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *ActivityRepository) listCategories(ctx context.Context, cond qb.Condition) ([]activity.ScoreCategory, error) {
	query, args, err := categorySelectBuilder().Where(cond).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list score categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score categories: %w", err)
	}

	out := make([]activity.ScoreCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func insertCategory(ctx context.Context, tx *sqlx.Tx, activityID int64, c activity.ScoreCategory) (activity.ScoreCategory, error) {
	query, args, err := qb.InsertModel("score_categories", categoryInsertModel{
		ActivityID: activityID,
		Name:       c.Name,
		MaxScore:   c.MaxScore,
		Weight:     c.Weight,
	}, "RETURNING id, activity_id, name, max_score, weight")
	if err != nil {
		return activity.ScoreCategory{}, fmt.Errorf("build insert score category query: %w", err)
	}

	var row categoryTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return activity.ScoreCategory{}, fmt.Errorf("insert score category %q: %w", c.Name, err)
	}
	return row.toDomain(), nil
}

// deleteActivityRows removes the activities and everything that references them.
func deleteActivityRows(ctx context.Context, tx *sqlx.Tx, activityIDs []int64) error {
	if len(activityIDs) == 0 {
		return nil
	}
	ids := int64sToAny(activityIDs)
	steps := []struct {
		what  string
		table string
		col   string
	}{
		{"delete activity scores", "scores", "activity_id"},
		{"delete activity leaders", "activity_leaders", "activity_id"},
		{"delete score categories", "score_categories", "activity_id"},
		{"delete activities", "activities", "id"},
	}
	for _, step := range steps {
		if _, err := execBuilt(ctx, tx, qb.DeleteFrom(step.table).Where(qb.In(step.col, ids)), step.what); err != nil {
			return err
		}
	}
	return nil
}

func activitySelectBuilder() *qb.SelectBuilder {
	return qb.Select("id", "event_id", "name", "description", "activity_date", "created_at").From("activities")
}

func categorySelectBuilder() *qb.SelectBuilder {
	return qb.Select("id", "activity_id", "name", "max_score", "weight").From("score_categories")
}
