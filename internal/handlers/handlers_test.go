package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/projects"
	"portfolio-backend/internal/supabase/supabasetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seededStore() *supabasetest.Store {
	store := supabasetest.New()
	store.Seed(projects.Table,
		models.Project{ID: "1", Title: "Checkout teardown", Type: models.TypeTeardown, OrderIndex: 1},
		models.Project{ID: "2", Title: "Search PRD", Type: models.TypePRD, OrderIndex: 2},
		models.Project{ID: "3", Title: "Onboarding study", Type: models.TypeWireframes, OrderIndex: 3},
	)
	return store
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doUpload(router *gin.Engine, path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if filename != "" {
		part, _ := mw.CreateFormFile("file", filename)
		_, _ = part.Write(content)
	}
	_ = mw.Close()

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func ids(list []models.Project) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = string(p.ID)
	}
	return out
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
