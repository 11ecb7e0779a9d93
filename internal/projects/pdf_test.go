package projects_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/projects"
	"portfolio-backend/internal/supabase"
	"portfolio-backend/internal/supabase/supabasetest"
)

func TestPDFName(t *testing.T) {
	at := time.UnixMilli(1718000000123)

	assert.Equal(t, "1718000000123-Pricing teardown.pdf", projects.PDFName(at, "Pricing teardown"))
	assert.Equal(t, "1718000000123-project.pdf", projects.PDFName(at, "  "))
	assert.Equal(t, "1718000000123-a-b.pdf", projects.PDFName(at, "a/b"))
}

func TestPDFs_Upload(t *testing.T) {
	store := supabasetest.New()
	pdfs := projects.NewPDFs(store, "projects")

	url, err := pdfs.Upload(context.Background(), "Onboarding PRD", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, supabasetest.PublicBase+"/projects/"))
	assert.True(t, strings.HasSuffix(url, "-Onboarding PRD.pdf"))
}

func TestPDFs_UploadFallback(t *testing.T) {
	pdfs := projects.NewPDFs(supabase.Fallback(), "projects")

	url, err := pdfs.Upload(context.Background(), "x", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, supabase.ErrNotConfigured)
	assert.Empty(t, url)
}
