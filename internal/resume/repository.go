package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

const (
	Table = "resume"
	// ObjectName is the storage key the resume PDF is always written to.
	ObjectName = "resume.pdf"
)

var ErrEmptyURL = errors.New("resume url is required")

type Repository struct {
	store  supabase.Store
	bucket string
	now    func() time.Time
}

func NewRepository(store supabase.Store, bucket string) *Repository {
	return &Repository{store: store, bucket: bucket, now: time.Now}
}

// Get returns the resume record, or nil when there is none.
func (r *Repository) Get(ctx context.Context) (*models.Resume, error) {
	res := r.store.From(Table).Select("id, file_url, updated_at").Limit(1).MaybeSingle().Execute(ctx)
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if res.Empty() {
		return nil, nil
	}

	var rec models.Resume
	if err := res.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return &rec, nil
}

// PublicURL is the link visitors follow to view the resume. It reports
// false when no resume is available for any reason.
func (r *Repository) PublicURL(ctx context.Context) (string, bool) {
	res := r.store.From(Table).Select("file_url").Limit(1).MaybeSingle().Execute(ctx)

	var rec struct {
		FileURL string `json:"file_url"`
	}
	if err := res.Decode(&rec); err != nil {
		log.Printf("Warning: failed to look up resume: %v", err)
		return "", false
	}
	if rec.FileURL == "" {
		return "", false
	}
	return rec.FileURL, true
}

// SaveURL points the resume record at url with a single upsert.
func (r *Repository) SaveURL(ctx context.Context, url string) (*models.Resume, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyURL
	}

	rec := models.Resume{ID: models.ResumeID, FileURL: url, UpdatedAt: r.now().UTC()}
	res := r.store.From(Table).Upsert(rec).Execute(ctx)
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &rec, nil
}

// Upload overwrites the stored resume PDF and records its public URL.
func (r *Repository) Upload(ctx context.Context, data io.Reader) (*models.Resume, error) {
	bucket := r.store.Storage(r.bucket)
	err := bucket.Upload(ctx, ObjectName, data, supabase.UploadOptions{
		Upsert:      true,
		ContentType: "application/pdf",
	})
	if err != nil {
		return nil, err
	}
	return r.SaveURL(ctx, bucket.PublicURL(ObjectName))
}
