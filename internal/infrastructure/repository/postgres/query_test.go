package postgres

import (
	"testing"

	qb "github.com/riskibarqy/event-scoring/internal/platform/querybuilder"
)

func TestUserSearchQuery(t *testing.T) {
	query, args, err := userSelectBuilder().
		Where(qb.Or(qb.ILike("name", "ann"), qb.ILike("email", "ann"))).
		OrderBy("name", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT id, name, email, password_hash, created_at FROM users WHERE (name ILIKE $1 OR email ILIKE $2) ORDER BY name, id LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "%ann%" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestScoreListByEventQuery(t *testing.T) {
	query, args, err := scoreSelectBuilder().
		Where(qb.Expr("s.activity_id IN (SELECT id FROM activities WHERE event_id = ?)", int64(3))).
		OrderBy("s.id").
		ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT s.id, s.activity_id, s.team_id, s.category_id, s.score_value, s.scored_by, s.notes, s.scored_at, " +
		"t.name AS team_name, c.name AS category_name, u.name AS scored_by_name FROM scores s " +
		"LEFT JOIN teams t ON t.id = s.team_id LEFT JOIN score_categories c ON c.id = s.category_id " +
		"LEFT JOIN users u ON u.id = s.scored_by WHERE s.activity_id IN (SELECT id FROM activities WHERE event_id = $1) ORDER BY s.id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestActivityCascadeDeleteQuery(t *testing.T) {
	query, args, err := qb.DeleteFrom("scores").Where(qb.In("activity_id", int64sToAny([]int64{4, 9}))).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if query != "DELETE FROM scores WHERE activity_id IN ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}
}
