package supabase

import (
	"context"
	"io"
	"log"

	"portfolio-backend/internal/config"
)

// Store is the data access façade. Callers never check whether a backend is
// configured; an unconfigured store answers with empty results.
type Store interface {
	From(table string) Query
	Storage(bucket string) Bucket
	Configured() bool
}

// Bucket is the object storage surface: upload and public URL lookup.
type Bucket interface {
	Upload(ctx context.Context, name string, data io.Reader, opts UploadOptions) error
	PublicURL(name string) string
}

type UploadOptions struct {
	// Upsert overwrites an existing object with the same name.
	Upsert      bool
	ContentType string
}

// Open is the single initialization point for the store.
func Open(cfg *config.Config) Store {
	var store Store
	if !ValidURL(cfg.SupabaseURL) {
		log.Printf("Warning: SUPABASE_URL is missing or malformed, running without a backend")
		store = Fallback()
	} else {
		client, err := NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseSchema)
		if err != nil {
			log.Printf("Warning: Failed to initialize Supabase client: %v", err)
			store = Fallback()
		} else {
			store = client
		}
	}

	if cfg.S3Enabled() {
		s3, err := NewS3Storage(S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize S3 storage, keeping Supabase buckets: %v", err)
			return store
		}
		return &s3Store{Store: store, s3: s3}
	}
	return store
}

// s3Store serves tables from the wrapped store and buckets from S3.
type s3Store struct {
	Store
	s3 *S3Storage
}

func (s *s3Store) Storage(bucket string) Bucket {
	return s.s3.Bucket(bucket)
}
