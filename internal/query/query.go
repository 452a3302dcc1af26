package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownColumn is returned when a predicate or ordering names a column
// the target table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// Expr is a predicate over table columns.
type Expr interface {
	render(w *writer) error
}

type writer struct {
	sb      strings.Builder
	args    []any
	columns map[string]bool
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) render(w *writer) error {
	if !w.columns[c.column] {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, c.column)
	}
	w.sb.WriteString(c.column)
	w.sb.WriteString(" ")
	w.sb.WriteString(c.op)
	w.sb.WriteString(" ?")
	w.args = append(w.args, sqlValue(c.value))
	return nil
}

type group struct {
	sep   string
	empty string
	exprs []Expr
}

func (g group) render(w *writer) error {
	if len(g.exprs) == 0 {
		w.sb.WriteString(g.empty)
		return nil
	}
	w.sb.WriteString("(")
	for i, e := range g.exprs {
		if i > 0 {
			w.sb.WriteString(g.sep)
		}
		if err := e.render(w); err != nil {
			return err
		}
	}
	w.sb.WriteString(")")
	return nil
}

func Eq(column string, value any) Expr  { return compare{column, "=", value} }
func Gt(column string, value any) Expr  { return compare{column, ">", value} }
func Gte(column string, value any) Expr { return compare{column, ">=", value} }
func Lt(column string, value any) Expr  { return compare{column, "<", value} }
func Lte(column string, value any) Expr { return compare{column, "<=", value} }

// Or matches when any of exprs matches. An empty Or matches nothing.
func Or(exprs ...Expr) Expr { return group{sep: " OR ", empty: "1=0", exprs: exprs} }

// And matches when all of exprs match. An empty And matches everything.
func And(exprs ...Expr) Expr { return group{sep: " AND ", empty: "1=1", exprs: exprs} }

// Timestamps are stored as unix seconds.
func sqlValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Unix()
	}
	return v
}

// Query describes a filtered read against one table. Zero-valued fields
// do not constrain the result.
type Query struct {
	EntityID string
	Provider string
	Start    time.Time // inclusive
	End      time.Time // inclusive
	Filters  []Expr
	OrderBy  []string
}

// Where renders the query's predicates as a SQL WHERE clause (with a
// leading space) and its positional arguments.
func (q Query) Where(columns map[string]bool) (string, []any, error) {
	var exprs []Expr
	if q.EntityID != "" {
		exprs = append(exprs, Eq("entity_id", q.EntityID))
	}
	if q.Provider != "" {
		exprs = append(exprs, Eq("provider", q.Provider))
	}
	if !q.Start.IsZero() {
		exprs = append(exprs, Gte("timestamp", q.Start))
	}
	if !q.End.IsZero() {
		exprs = append(exprs, Lte("timestamp", q.End))
	}
	exprs = append(exprs, q.Filters...)
	if len(exprs) == 0 {
		return "", nil, nil
	}

	w := &writer{columns: columns}
	if err := And(exprs...).render(w); err != nil {
		return "", nil, err
	}
	return " WHERE " + w.sb.String(), w.args, nil
}

// Order renders an ORDER BY clause, falling back to def when the query
// names no ordering.
func (q Query) Order(columns map[string]bool, def ...string) (string, error) {
	order := q.OrderBy
	if len(order) == 0 {
		order = def
	}
	if len(order) == 0 {
		return "", nil
	}
	for _, col := range order {
		if !columns[col] {
			return "", fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}
	return " ORDER BY " + strings.Join(order, ", "), nil
}
