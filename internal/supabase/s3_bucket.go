package supabase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// PublicURL is the base for public object links. Defaults to the endpoint.
	PublicURL string
}

// S3Storage serves buckets from S3-compatible object storage.
type S3Storage struct {
	client     *minio.Client
	region     string
	publicBase string

	mu      sync.Mutex
	buckets map[string]*S3Bucket
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	publicBase := strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = scheme + "://" + endpoint
	}

	return &S3Storage{
		client:     client,
		region:     region,
		publicBase: publicBase,
		buckets:    make(map[string]*S3Bucket),
	}, nil
}

// Bucket returns the handle for name, creating the bucket lazily on first upload.
func (s *S3Storage) Bucket(name string) *S3Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.buckets[name]; ok {
		return b
	}
	b := &S3Bucket{storage: s, name: name}
	s.buckets[name] = b
	return b
}

type S3Bucket struct {
	storage *S3Storage
	name    string

	mu    sync.Mutex
	ready bool
}

// ensureBucket creates the bucket on first use. A failed check is retried on
// the next upload.
func (b *S3Bucket) ensureBucket(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready {
		return nil
	}

	exists, err := b.storage.client.BucketExists(ctx, b.name)
	if err != nil {
		return err
	}
	if !exists {
		if err := b.storage.client.MakeBucket(ctx, b.name, minio.MakeBucketOptions{Region: b.storage.region}); err != nil {
			return err
		}
	}
	b.ready = true
	return nil
}

func (b *S3Bucket) Upload(ctx context.Context, name string, data io.Reader, opts UploadOptions) error {
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	if name == "" {
		return fmt.Errorf("object name is required")
	}
	if err := b.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	if !opts.Upsert {
		_, err := b.storage.client.StatObject(ctx, b.name, name, minio.StatObjectOptions{})
		if err == nil {
			return fmt.Errorf("object %s already exists", name)
		}
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return fmt.Errorf("stat %s: %w", name, err)
		}
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := b.storage.client.PutObject(ctx, b.name, name, data, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

func (b *S3Bucket) PublicURL(name string) string {
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	return b.storage.publicBase + "/" + url.PathEscape(b.name) + "/" + escapePath(name)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
