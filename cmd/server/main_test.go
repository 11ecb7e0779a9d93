package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/projects"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/supabase"
	"portfolio-backend/internal/supabase/supabasetest"
)

func testConfig() *config.Config {
	return &config.Config{
		ProjectsBucket:     "projects",
		ResumeBucket:       "resume",
		LoginRatePerMinute: 3,
		CORSOrigins:        []string{"https://portfolio.dev"},
	}
}

func testRouter(t *testing.T, store supabase.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	revocations, err := session.NewMemoryStore(16)
	require.NoError(t, err)
	return newRouter(testConfig(), app{
		store:       store,
		tokens:      admin.NewTokens("router-test-secret", time.Hour),
		revocations: revocations,
		policy:      projects.BestEffort,
	})
}

func call(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := call(router, "POST", "/api/v1/admin/login", "", map[string]string{"password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestRouter_AdminWorkflow(t *testing.T) {
	store := supabasetest.New()
	store.Seed(admin.SettingsTable, map[string]any{"id": 1, "password": "secret"})
	router := testRouter(t, store)

	// admin routes need a session
	w := call(router, "POST", "/api/v1/admin/projects", "", map[string]string{"title": "A"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, router)
	for _, title := range []string{"A", "B", "C"} {
		w = call(router, "POST", "/api/v1/admin/projects", token, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = call(router, "POST", "/api/v1/admin/projects/reorder", token, map[string]int{"from": 2, "to": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(router, "GET", "/api/v1/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.ProjectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Projects, 3)
	var titles []string
	for i, p := range list.Projects {
		titles = append(titles, p.Title)
		assert.Equal(t, i+1, p.OrderIndex)
	}
	assert.Equal(t, []string{"C", "A", "B"}, titles)
	assert.Equal(t, []string{"All", "PRD"}, list.Types)

	w = call(router, "POST", "/api/v1/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(router, "DELETE", "/api/v1/admin/projects/"+string(list.Projects[0].ID), token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Unconfigured(t *testing.T) {
	router := testRouter(t, supabase.Fallback())

	w := call(router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unconfigured")

	w = call(router, "GET", "/api/v1/projects", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projects":[],"types":["All"]}`, w.Body.String())

	w = call(router, "GET", "/api/v1/resume", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(router, "POST", "/api/v1/admin/login", "", map[string]string{"password": "secret"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_LoginRateLimited(t *testing.T) {
	store := supabasetest.New()
	store.Seed(admin.SettingsTable, map[string]any{"id": 1, "password": "secret"})
	router := testRouter(t, store)

	for i := 0; i < 3; i++ {
		w := call(router, "POST", "/api/v1/admin/login", "", map[string]string{"password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := call(router, "POST", "/api/v1/admin/login", "", map[string]string{"password": "secret"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	router := testRouter(t, supabase.Fallback())

	req, _ := http.NewRequest("OPTIONS", "/api/v1/projects", nil)
	req.Header.Set("Origin", "https://portfolio.dev")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://portfolio.dev", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	assert.True(t, corsConfig(nil).AllowAllOrigins)

	cfg := corsConfig([]string{"https://a.dev"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.dev"}, cfg.AllowOrigins)
}
