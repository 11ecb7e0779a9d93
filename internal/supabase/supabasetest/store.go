// Package supabasetest provides an in-memory supabase.Store for tests.
package supabasetest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"portfolio-backend/internal/supabase"
)

// PublicBase is the prefix of every public URL handed out by the fake buckets.
const PublicBase = "https://store.test/storage/v1/object/public"

type rule struct {
	match func(supabase.Plan) bool
	err   *supabase.Error
}

// Store is an in-memory table engine that evaluates supabase plans. It
// records every executed plan and can be told to fail selected calls.
type Store struct {
	mu        sync.Mutex
	tables    map[string][]map[string]any
	objects   map[string]map[string][]byte
	calls     []supabase.Plan
	rules     []rule
	uploadErr error
}

func New() *Store {
	return &Store{
		tables:  make(map[string][]map[string]any),
		objects: make(map[string]map[string][]byte),
	}
}

// Seed appends rows to table. Rows may be structs or maps.
func (s *Store) Seed(table string, rows ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		m, err := toRows(row)
		if err != nil {
			panic(fmt.Sprintf("supabasetest: seed %s: %v", table, err))
		}
		s.tables[table] = append(s.tables[table], m...)
	}
}

// Rows returns a copy of the rows currently stored in table.
func (s *Store) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		out = append(out, clone(row))
	}
	return out
}

// Calls returns the plans executed so far, in order.
func (s *Store) Calls() []supabase.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]supabase.Plan(nil), s.calls...)
}

// Reset forgets the call log.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// FailWhen makes every plan matching fn fail with err without being applied.
func (s *Store) FailWhen(fn func(supabase.Plan) bool, err *supabase.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, rule{match: fn, err: err})
}

// FailUploads makes every bucket upload return err.
func (s *Store) FailUploads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadErr = err
}

// Object returns the bytes stored under name in bucket.
func (s *Store) Object(bucket, name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[bucket][name]
	return data, ok
}

func (s *Store) From(table string) supabase.Query {
	return supabase.NewQuery(table, s)
}

func (s *Store) Storage(bucket string) supabase.Bucket {
	return &Bucket{store: s, name: bucket}
}

func (s *Store) Configured() bool { return true }

func (s *Store) Execute(ctx context.Context, plan supabase.Plan) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, plan)
	for _, r := range s.rules {
		if r.match(plan) {
			return nil, r.err
		}
	}

	var (
		out []map[string]any
		err error
	)
	switch plan.Op {
	case supabase.OpInsert:
		out, err = s.insert(plan)
	case supabase.OpUpsert:
		out, err = s.upsert(plan)
	case supabase.OpUpdate:
		out, err = s.update(plan)
	case supabase.OpDelete:
		out = s.delete(plan)
	default:
		out = s.selectRows(plan)
	}
	if err != nil {
		return nil, err
	}
	if plan.Op != supabase.OpSelect && !plan.Returning {
		return nil, nil
	}
	if out == nil {
		out = []map[string]any{}
	}
	return json.Marshal(out)
}

func (s *Store) selectRows(plan supabase.Plan) []map[string]any {
	var rows []map[string]any
	for _, row := range s.tables[plan.Table] {
		if matches(row, plan.Filters) {
			rows = append(rows, row)
		}
	}
	if len(plan.Orders) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, o := range plan.Orders {
				c := compare(rows[i][o.Column], rows[j][o.Column])
				if c == 0 {
					continue
				}
				if o.Ascending {
					return c < 0
				}
				return c > 0
			}
			return false
		})
	}
	if plan.Limit > 0 && len(rows) > plan.Limit {
		rows = rows[:plan.Limit]
	}
	return project(rows, plan.Columns)
}

func (s *Store) insert(plan supabase.Plan) ([]map[string]any, error) {
	rows, err := toRows(plan.Record)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if id, ok := row["id"]; !ok || id == nil || id == "" {
			row["id"] = uuid.NewString()
		}
		for _, existing := range s.tables[plan.Table] {
			if fmt.Sprint(existing["id"]) == fmt.Sprint(row["id"]) {
				return nil, &supabase.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
			}
		}
	}
	s.tables[plan.Table] = append(s.tables[plan.Table], rows...)
	return project(rows, plan.Columns), nil
}

func (s *Store) upsert(plan supabase.Plan) ([]map[string]any, error) {
	rows, err := toRows(plan.Record)
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for _, row := range rows {
		merged := false
		for _, existing := range s.tables[plan.Table] {
			if id, ok := row["id"]; ok && fmt.Sprint(existing["id"]) == fmt.Sprint(id) {
				for k, v := range row {
					existing[k] = v
				}
				out = append(out, existing)
				merged = true
				break
			}
		}
		if !merged {
			if id, ok := row["id"]; !ok || id == nil {
				row["id"] = uuid.NewString()
			}
			s.tables[plan.Table] = append(s.tables[plan.Table], row)
			out = append(out, row)
		}
	}
	return project(out, plan.Columns), nil
}

func (s *Store) update(plan supabase.Plan) ([]map[string]any, error) {
	patch, err := toRows(plan.Record)
	if err != nil {
		return nil, err
	}
	if len(patch) != 1 {
		return nil, &supabase.Error{Code: "PGRST102", Message: "update expects a single object"}
	}
	var out []map[string]any
	for _, row := range s.tables[plan.Table] {
		if !matches(row, plan.Filters) {
			continue
		}
		for k, v := range patch[0] {
			row[k] = v
		}
		out = append(out, row)
	}
	return project(out, plan.Columns), nil
}

func (s *Store) delete(plan supabase.Plan) []map[string]any {
	var kept, removed []map[string]any
	for _, row := range s.tables[plan.Table] {
		if matches(row, plan.Filters) {
			removed = append(removed, row)
		} else {
			kept = append(kept, row)
		}
	}
	s.tables[plan.Table] = kept
	return project(removed, plan.Columns)
}

// Bucket is an in-memory object bucket.
type Bucket struct {
	store *Store
	name  string
}

func (b *Bucket) Upload(ctx context.Context, name string, data io.Reader, opts supabase.UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	if b.store.uploadErr != nil {
		return b.store.uploadErr
	}
	objects := b.store.objects[b.name]
	if objects == nil {
		objects = make(map[string][]byte)
		b.store.objects[b.name] = objects
	}
	if _, exists := objects[name]; exists && !opts.Upsert {
		return fmt.Errorf("The resource already exists")
	}
	objects[name] = bytes.Clone(content)
	return nil
}

func (b *Bucket) PublicURL(name string) string {
	return PublicBase + "/" + b.name + "/" + name
}

func toRows(record any) ([]map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var rows []map[string]any
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return []map[string]any{row}, nil
}

func matches(row map[string]any, filters []supabase.Filter) bool {
	for _, f := range filters {
		v, ok := row[f.Column]
		if !ok || v == nil || fmt.Sprint(v) != f.Value {
			return false
		}
	}
	return true
}

func project(rows []map[string]any, columns string) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	cols := strings.Split(columns, ",")
	all := columns == "" || columns == "*"
	for _, row := range rows {
		if all {
			out = append(out, clone(row))
			continue
		}
		picked := make(map[string]any, len(cols))
		for _, c := range cols {
			c = strings.TrimSpace(c)
			picked[c] = row[c]
		}
		out = append(out, picked)
	}
	return out
}

func clone(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
