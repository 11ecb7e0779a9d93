package supabase

import (
	"context"
	"fmt"
	"io"

	storage "github.com/supabase-community/storage-go"
)

// StorageBucket is a Supabase Storage bucket.
type StorageBucket struct {
	client *storage.Client
	bucket string
}

func (b *StorageBucket) Upload(ctx context.Context, name string, data io.Reader, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	upsert := opts.Upsert
	fileOpts := storage.FileOptions{Upsert: &upsert}
	if opts.ContentType != "" {
		contentType := opts.ContentType
		fileOpts.ContentType = &contentType
	}

	if _, err := b.client.UploadFile(b.bucket, name, data, fileOpts); err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

func (b *StorageBucket) PublicURL(name string) string {
	return b.client.GetPublicUrl(b.bucket, name).SignedURL
}
