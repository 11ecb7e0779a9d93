package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/resume"
	"portfolio-backend/internal/supabase"
	"portfolio-backend/internal/supabase/supabasetest"
)

func resumeRouter(store supabase.Store) *gin.Engine {
	h := handlers.NewResumeHandler(resume.NewRepository(store, "resume"))

	router := gin.New()
	router.GET("/resume", h.GetResume)
	router.POST("/admin/resume", h.UploadResume)
	router.PUT("/admin/resume", h.SetResumeURL)
	return router
}

func TestGetResume(t *testing.T) {
	store := supabasetest.New()
	store.Seed(resume.Table, map[string]any{"id": 1, "file_url": "https://x/resume.pdf"})

	w := doJSON(resumeRouter(store), "GET", "/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://x/resume.pdf", decode[models.ResumeResponse](t, w).FileURL)
}

func TestGetResume_ComingSoon(t *testing.T) {
	failing := supabasetest.New()
	failing.FailWhen(func(supabase.Plan) bool { return true }, &supabase.Error{Message: "boom"})

	stores := map[string]supabase.Store{
		"no record": supabasetest.New(),
		"fallback":  supabase.Fallback(),
		"error":     failing,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			w := doJSON(resumeRouter(store), "GET", "/resume", nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "Resume coming soon")
		})
	}
}

func TestUploadResume(t *testing.T) {
	store := supabasetest.New()
	router := resumeRouter(store)

	w := doUpload(router, "/admin/resume", "cv.pdf", []byte("%PDF-1.7"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.ResumeResponse](t, w)
	assert.Equal(t, supabasetest.PublicBase+"/resume/"+resume.ObjectName, resp.FileURL)
	assert.NotNil(t, resp.UpdatedAt)

	data, ok := store.Object("resume", resume.ObjectName)
	require.True(t, ok)
	assert.Equal(t, "%PDF-1.7", string(data))

	rows := store.Rows(resume.Table)
	require.Len(t, rows, 1)
	assert.Equal(t, resp.FileURL, rows[0]["file_url"])

	// a second upload overwrites in place
	w = doUpload(router, "/admin/resume", "cv.pdf", []byte("%PDF-2.0"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.Rows(resume.Table), 1)
}

func TestUploadResume_StorageFailure(t *testing.T) {
	store := supabasetest.New()
	store.FailUploads(errors.New("bucket not found"))

	w := doUpload(resumeRouter(store), "/admin/resume", "cv.pdf", []byte("%PDF"), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "bucket not found")
	assert.Empty(t, store.Rows(resume.Table))
}

func TestSetResumeURL(t *testing.T) {
	store := supabasetest.New()
	router := resumeRouter(store)

	w := doJSON(router, "PUT", "/admin/resume", map[string]any{"file_url": " https://drive.example/cv.pdf "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://drive.example/cv.pdf", decode[models.ResumeResponse](t, w).FileURL)

	w = doJSON(router, "PUT", "/admin/resume", map[string]any{"file_url": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "PUT", "/admin/resume", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
