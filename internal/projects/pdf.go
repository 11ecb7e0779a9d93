package projects

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"portfolio-backend/internal/supabase"
)

// PDFs stores project documents in the projects bucket.
type PDFs struct {
	bucket supabase.Bucket
	now    func() time.Time
}

func NewPDFs(store supabase.Store, bucket string) *PDFs {
	return &PDFs{bucket: store.Storage(bucket), now: time.Now}
}

// Upload stores data under a timestamped name derived from title and
// returns its public URL.
func (p *PDFs) Upload(ctx context.Context, title string, data io.Reader) (string, error) {
	name := PDFName(p.now(), title)
	err := p.bucket.Upload(ctx, name, data, supabase.UploadOptions{
		Upsert:      true,
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", err
	}
	return p.bucket.PublicURL(name), nil
}

// PDFName is "<unix millis>-<title>.pdf", with "project" for an empty title.
func PDFName(at time.Time, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "project"
	}
	title = strings.NewReplacer("/", "-", "\\", "-").Replace(title)
	return fmt.Sprintf("%d-%s.pdf", at.UnixMilli(), title)
}
