package querybuilder

import "strings"

// Condition is one predicate of a WHERE clause. Conditions passed together are ANDed.
type Condition interface {
	writeTo(w *sqlWriter)
}

type conditionFunc func(w *sqlWriter)

func (f conditionFunc) writeTo(w *sqlWriter) { f(w) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.text(column, " = ")
		w.bind(value)
	})
}

// In renders a false predicate for an empty value list.
func In(column string, values []any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		if len(values) == 0 {
			w.text("1=0")
			return
		}
		w.text(column, " IN (")
		for i, v := range values {
			if i > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	})
}

// Expr is a raw predicate with '?' placeholders, e.g. Expr("start_date <= ?", day).
func Expr(fragment string, args ...any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.expr(fragment, args)
	})
}

// ILike matches column against a case-insensitive substring. LIKE wildcards in
// substring are escaped.
func ILike(column, substring string) Condition {
	pattern := "%" + likeEscaper.Replace(substring) + "%"
	return conditionFunc(func(w *sqlWriter) {
		w.text(column, " ILIKE ")
		w.bind(pattern)
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Or groups conditions into a parenthesized disjunction; an empty Or is false.
func Or(conditions ...Condition) Condition {
	return conditionFunc(func(w *sqlWriter) {
		if len(conditions) == 0 {
			w.text("1=0")
			return
		}
		w.text("(")
		for i, c := range conditions {
			if i > 0 {
				w.text(" OR ")
			}
			c.writeTo(w)
		}
		w.text(")")
	})
}
