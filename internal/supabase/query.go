package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Query is the chainable table call surface shared by the real client and the
// fallback. Chain methods never fail; problems surface in Execute's Result.
type Query interface {
	Select(columns string) Query
	Insert(record any) Query
	Upsert(record any) Query
	Update(record any) Query
	Delete() Query
	Eq(column string, value any) Query
	Order(column string, ascending bool) Query
	Limit(n int) Query
	Single() Query
	MaybeSingle() Query
	Execute(ctx context.Context) Result
}

type Operation int

const (
	OpSelect Operation = iota
	OpInsert
	OpUpsert
	OpUpdate
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpsert:
		return "upsert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "select"
	}
}

// Cardinality is how many rows the caller expects back.
type Cardinality int

const (
	Many Cardinality = iota
	One
	MaybeOne
)

type Filter struct {
	Column string
	Value  string
}

type Ordering struct {
	Column    string
	Ascending bool
}

// Plan is the accumulated description of a chained call.
type Plan struct {
	Table       string
	Op          Operation
	Columns     string
	Record      any
	Filters     []Filter
	Orders      []Ordering
	Limit       int
	Cardinality Cardinality
	// Returning asks a mutation to send the written rows back.
	Returning bool
}

// Executor runs a finished plan and returns the raw JSON rows.
type Executor interface {
	Execute(ctx context.Context, plan Plan) (json.RawMessage, error)
}

type planQuery struct {
	plan Plan
	exec Executor
}

// NewQuery starts a chain against table that will be run by exec.
func NewQuery(table string, exec Executor) Query {
	return &planQuery{plan: Plan{Table: table, Columns: "*"}, exec: exec}
}

func (q *planQuery) Select(columns string) Query {
	if columns == "" {
		columns = "*"
	}
	q.plan.Columns = columns
	if q.plan.Op != OpSelect {
		q.plan.Returning = true
	}
	return q
}

func (q *planQuery) Insert(record any) Query {
	q.plan.Op = OpInsert
	q.plan.Record = record
	return q
}

func (q *planQuery) Upsert(record any) Query {
	q.plan.Op = OpUpsert
	q.plan.Record = record
	return q
}

func (q *planQuery) Update(record any) Query {
	q.plan.Op = OpUpdate
	q.plan.Record = record
	return q
}

func (q *planQuery) Delete() Query {
	q.plan.Op = OpDelete
	return q
}

func (q *planQuery) Eq(column string, value any) Query {
	q.plan.Filters = append(q.plan.Filters, Filter{Column: column, Value: fmt.Sprint(value)})
	return q
}

func (q *planQuery) Order(column string, ascending bool) Query {
	q.plan.Orders = append(q.plan.Orders, Ordering{Column: column, Ascending: ascending})
	return q
}

func (q *planQuery) Limit(n int) Query {
	if n > 0 {
		q.plan.Limit = n
	}
	return q
}

func (q *planQuery) Single() Query {
	q.plan.Cardinality = One
	return q
}

func (q *planQuery) MaybeSingle() Query {
	q.plan.Cardinality = MaybeOne
	return q
}

func (q *planQuery) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Result{Error: asError(err)}
	}
	raw, err := q.exec.Execute(ctx, q.plan)
	if err != nil {
		return Result{Error: asError(err)}
	}
	return shape(raw, q.plan.Cardinality)
}

func shape(raw json.RawMessage, card Cardinality) Result {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		if card == One {
			return Result{Error: noRows(0)}
		}
		return Result{}
	}
	if card == Many {
		return Result{Data: raw}
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		// already a single object
		return Result{Data: raw}
	}
	switch {
	case len(rows) == 1:
		return Result{Data: rows[0]}
	case len(rows) == 0 && card == MaybeOne:
		return Result{}
	default:
		return Result{Error: noRows(len(rows))}
	}
}

func noRows(n int) *Error {
	return &Error{
		Code:    "PGRST116",
		Message: fmt.Sprintf("JSON object requested, multiple (or no) rows returned (%d rows)", n),
	}
}
