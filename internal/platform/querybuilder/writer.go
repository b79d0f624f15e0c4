package querybuilder

import (
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and its positional ($n) arguments.
type sqlWriter struct {
	sql  strings.Builder
	args []any
}

func (w *sqlWriter) text(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

// bind appends v as the next positional argument.
func (w *sqlWriter) bind(v any) {
	w.args = append(w.args, v)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes fragment, binding each '?' to the next value in values. Extra
// '?' characters are written as-is.
func (w *sqlWriter) expr(fragment string, values []any) {
	if len(values) == 0 {
		w.sql.WriteString(fragment)
		return
	}

	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.sql.WriteByte(fragment[i])
	}
}

func (w *sqlWriter) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.writeTo(w)
	}
}

func (w *sqlWriter) list(keyword string, items []string) {
	if len(items) > 0 {
		w.text(" ", keyword, " ", strings.Join(items, ", "))
	}
}

func (w *sqlWriter) suffix(s string) {
	if s != "" {
		w.text(" ", s)
	}
}

func (w *sqlWriter) result() (string, []any, error) {
	if w.args == nil {
		w.args = []any{}
	}
	return w.sql.String(), w.args, nil
}
