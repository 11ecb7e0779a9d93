package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	postgrest "github.com/supabase-community/postgrest-go"
	storage "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// Client is the Store backed by a hosted Supabase project.
type Client struct {
	// Supabase is nil when the client was built without an access key.
	Supabase *supabase.Client

	from    func(table string) *postgrest.QueryBuilder
	storage *storage.Client
	baseURL string
}

// NewClient builds a configured store for rawURL. An empty key is accepted:
// requests are then sent without credentials and fail at the remote end.
func NewClient(rawURL, key, schema string) (*Client, error) {
	if !ValidURL(rawURL) {
		return nil, fmt.Errorf("invalid Supabase URL %q", rawURL)
	}
	baseURL := strings.TrimRight(rawURL, "/")
	if schema == "" {
		schema = "public"
	}

	c := &Client{baseURL: baseURL}
	if key == "" {
		// supabase-go refuses an empty key
		rest := postgrest.NewClient(baseURL+supabase.REST_URL, schema, nil)
		c.from = rest.From
		c.storage = storage.NewClient(baseURL+supabase.STORGAGE_URL, "", nil)
		return c, nil
	}

	client, err := supabase.NewClient(baseURL, key, &supabase.ClientOptions{Schema: schema})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	c.Supabase = client
	c.from = client.From
	c.storage = client.Storage
	return c, nil
}

func (c *Client) From(table string) Query {
	return NewQuery(table, c)
}

func (c *Client) Storage(bucket string) Bucket {
	return &StorageBucket{client: c.storage, bucket: bucket}
}

func (c *Client) Configured() bool { return true }

// Execute runs plan through PostgREST. Single rows are unwrapped by the
// caller so that zero-row lookups do not turn into HTTP 406 errors.
func (c *Client) Execute(ctx context.Context, plan Plan) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if plan.Record != nil {
		if _, err := json.Marshal(plan.Record); err != nil {
			return nil, fmt.Errorf("failed to encode %s record: %w", plan.Table, err)
		}
	}

	returning := "minimal"
	if plan.Returning {
		returning = "representation"
	}

	qb := c.from(plan.Table)
	var fb *postgrest.FilterBuilder
	switch plan.Op {
	case OpInsert:
		fb = qb.Insert(plan.Record, false, "", returning, "")
	case OpUpsert:
		fb = qb.Upsert(plan.Record, "", returning, "")
	case OpUpdate:
		fb = qb.Update(plan.Record, returning, "")
	case OpDelete:
		fb = qb.Delete(returning, "")
	default:
		fb = qb.Select(plan.Columns, "", false)
	}

	for _, f := range plan.Filters {
		fb = fb.Eq(f.Column, f.Value)
	}
	for _, o := range plan.Orders {
		fb = fb.Order(o.Column, &postgrest.OrderOpts{Ascending: o.Ascending})
	}
	if plan.Limit > 0 {
		fb = fb.Limit(plan.Limit, "")
	}

	body, _, err := fb.Execute()
	if err != nil {
		return nil, err
	}
	return body, nil
}
