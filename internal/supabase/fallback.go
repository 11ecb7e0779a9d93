package supabase

import (
	"context"
	"io"
	"net/url"
)

// ValidURL reports whether raw is a well-formed absolute URL with a host.
func ValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// nullQuery answers every chain with itself and resolves to the empty Result.
type nullQuery struct{}

func (q nullQuery) Select(string) Query      { return q }
func (q nullQuery) Insert(any) Query         { return q }
func (q nullQuery) Upsert(any) Query         { return q }
func (q nullQuery) Update(any) Query         { return q }
func (q nullQuery) Delete() Query            { return q }
func (q nullQuery) Eq(string, any) Query     { return q }
func (q nullQuery) Order(string, bool) Query { return q }
func (q nullQuery) Limit(int) Query          { return q }
func (q nullQuery) Single() Query            { return q }
func (q nullQuery) MaybeSingle() Query       { return q }

func (nullQuery) Execute(context.Context) Result { return Result{} }

type nullBucket struct{}

func (nullBucket) Upload(context.Context, string, io.Reader, UploadOptions) error {
	return ErrNotConfigured
}

func (nullBucket) PublicURL(string) string { return "" }

type nullStore struct{}

func (nullStore) From(string) Query     { return nullQuery{} }
func (nullStore) Storage(string) Bucket { return nullBucket{} }
func (nullStore) Configured() bool      { return false }

// Fallback returns the store used when no backend is configured.
func Fallback() Store { return nullStore{} }
