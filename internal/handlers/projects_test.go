package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/projects"
	"portfolio-backend/internal/supabase"
	"portfolio-backend/internal/supabase/supabasetest"
)

func projectsRouter(store supabase.Store, policy projects.ReorderPolicy) *gin.Engine {
	h := handlers.NewProjectsHandler(projects.NewRepository(store), projects.NewPDFs(store, "projects"), policy)

	router := gin.New()
	router.GET("/projects", h.ListProjects)
	router.POST("/admin/projects", h.CreateProject)
	router.PUT("/admin/projects/:project_id", h.UpdateProject)
	router.DELETE("/admin/projects/:project_id", h.DeleteProject)
	router.POST("/admin/projects/reorder", h.ReorderProjects)
	router.POST("/admin/projects/pdf", h.UploadProjectPDF)
	return router
}

func TestListProjects(t *testing.T) {
	router := projectsRouter(seededStore(), projects.BestEffort)

	w := doJSON(router, "GET", "/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ProjectListResponse](t, w)
	assert.Equal(t, []string{"1", "2", "3"}, ids(resp.Projects))
	assert.Equal(t, []string{"All", "Teardown", "PRD", "Wireframes"}, resp.Types)
}

func TestListProjects_FilterKeepsAllTypes(t *testing.T) {
	router := projectsRouter(seededStore(), projects.BestEffort)

	w := doJSON(router, "GET", "/projects?type=PRD", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ProjectListResponse](t, w)
	assert.Equal(t, []string{"2"}, ids(resp.Projects))
	assert.Len(t, resp.Types, 4)
}

func TestListProjects_Degrades(t *testing.T) {
	failing := seededStore()
	failing.FailWhen(func(supabase.Plan) bool { return true }, &supabase.Error{Code: "42P01", Message: "relation does not exist"})

	for name, store := range map[string]supabase.Store{"fallback": supabase.Fallback(), "store error": failing} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(projectsRouter(store, projects.BestEffort), "GET", "/projects", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"projects":[],"types":["All"]}`, w.Body.String())
		})
	}
}

func TestCreateProject(t *testing.T) {
	store := seededStore()
	router := projectsRouter(store, projects.BestEffort)

	w := doJSON(router, "POST", "/admin/projects", map[string]any{
		"title":       "  Pricing page  ",
		"description": "Experiments",
		"pdf_url":     "",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[models.ProjectResponse](t, w)
	assert.NotEmpty(t, resp.Project.ID)
	assert.Equal(t, "Pricing page", resp.Project.Title)
	assert.Equal(t, models.TypePRD, resp.Project.Type)
	assert.Equal(t, 4, resp.Project.OrderIndex)
	assert.Nil(t, resp.Project.PDFURL)
	assert.Len(t, store.Rows(projects.Table), 4)
}

func TestCreateProject_Invalid(t *testing.T) {
	router := projectsRouter(seededStore(), projects.BestEffort)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"type": "PRD"}},
		{"blank title", map[string]any{"title": "   "}},
		{"unknown type", map[string]any{"title": "X", "type": "Poem"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, "POST", "/admin/projects", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateProject_Unconfigured(t *testing.T) {
	router := projectsRouter(supabase.Fallback(), projects.BestEffort)

	w := doJSON(router, "POST", "/admin/projects", map[string]any{"title": "X"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateProject_StoreError(t *testing.T) {
	store := seededStore()
	store.FailWhen(func(p supabase.Plan) bool { return p.Op == supabase.OpInsert },
		&supabase.Error{Code: "42501", Message: "permission denied"})
	router := projectsRouter(store, projects.BestEffort)

	w := doJSON(router, "POST", "/admin/projects", map[string]any{"title": "X"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "permission denied")
}

func TestCreateProject_ListError(t *testing.T) {
	store := seededStore()
	store.FailWhen(func(p supabase.Plan) bool { return p.Op == supabase.OpSelect },
		&supabase.Error{Code: "57014", Message: "canceling statement due to statement timeout"})
	router := projectsRouter(store, projects.BestEffort)

	w := doJSON(router, "POST", "/admin/projects", map[string]any{"title": "New"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Save failed")

	assert.Len(t, store.Rows(projects.Table), 3)
	for _, call := range store.Calls() {
		assert.NotEqual(t, supabase.OpInsert, call.Op)
	}
}

func TestUpdateProject(t *testing.T) {
	store := seededStore()
	router := projectsRouter(store, projects.BestEffort)

	w := doJSON(router, "PUT", "/admin/projects/2", map[string]any{
		"title":   "Search PRD v2",
		"type":    "Data Analysis",
		"pdf_url": "https://x/search.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rows := store.Rows(projects.Table)
	assert.Equal(t, "Search PRD v2", rows[1]["title"])
	assert.Equal(t, "Data Analysis", rows[1]["type"])
	assert.Equal(t, "https://x/search.pdf", rows[1]["pdf_url"])
	assert.Equal(t, float64(2), rows[1]["order_index"])
	assert.Equal(t, "Checkout teardown", rows[0]["title"])
}

func TestDeleteProject(t *testing.T) {
	store := seededStore()
	router := projectsRouter(store, projects.BestEffort)

	w := doJSON(router, "DELETE", "/admin/projects/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := store.Rows(projects.Table)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0]["id"])
}

func TestReorderProjects(t *testing.T) {
	store := seededStore()
	router := projectsRouter(store, projects.BestEffort)

	w := doJSON(router, "POST", "/admin/projects/reorder", map[string]any{"from": 0, "to": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.ProjectListResponse](t, w)
	assert.Equal(t, []string{"2", "3", "1"}, ids(resp.Projects))

	order := map[string]float64{}
	for _, row := range store.Rows(projects.Table) {
		order[row["id"].(string)] = row["order_index"].(float64)
	}
	assert.Equal(t, map[string]float64{"2": 1, "3": 2, "1": 3}, order)
}

func TestReorderProjects_BadRequest(t *testing.T) {
	router := projectsRouter(seededStore(), projects.BestEffort)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing to", map[string]any{"from": 0}},
		{"out of range", map[string]any{"from": 0, "to": 3}},
		{"negative", map[string]any{"from": -1, "to": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, "POST", "/admin/projects/reorder", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestReorderProjects_ListError(t *testing.T) {
	store := seededStore()
	store.FailWhen(func(p supabase.Plan) bool { return p.Op == supabase.OpSelect },
		&supabase.Error{Code: "57014", Message: "canceling statement due to statement timeout"})
	router := projectsRouter(store, projects.BestEffort)

	w := doJSON(router, "POST", "/admin/projects/reorder", map[string]any{"from": 0, "to": 2})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Reorder failed")

	for _, row := range store.Rows(projects.Table) {
		id := row["id"].(string)
		assert.Equal(t, map[string]float64{"1": 1, "2": 2, "3": 3}[id], row["order_index"], id)
	}
}

func TestReorderProjects_AllOrNothingRollsBack(t *testing.T) {
	store := seededStore()
	store.FailWhen(func(p supabase.Plan) bool {
		return p.Op == supabase.OpUpdate && len(p.Filters) == 1 && p.Filters[0].Value == "1"
	}, &supabase.Error{Message: "timeout"})
	router := projectsRouter(store, projects.AllOrNothing)

	w := doJSON(router, "POST", "/admin/projects/reorder", map[string]any{"from": 0, "to": 2})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Reorder failed")

	for _, row := range store.Rows(projects.Table) {
		id := row["id"].(string)
		assert.Equal(t, map[string]float64{"1": 1, "2": 2, "3": 3}[id], row["order_index"], id)
	}
}

func TestUploadProjectPDF(t *testing.T) {
	store := seededStore()
	router := projectsRouter(store, projects.BestEffort)

	w := doUpload(router, "/admin/projects/pdf", "deck.pdf", []byte("%PDF-1.4"), map[string]string{"title": "Search PRD"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.PDFUploadResponse](t, w)
	require.True(t, strings.HasPrefix(resp.PDFURL, supabasetest.PublicBase+"/projects/"), resp.PDFURL)
	assert.True(t, strings.HasSuffix(resp.PDFURL, "-Search PRD.pdf"), resp.PDFURL)

	name := strings.TrimPrefix(resp.PDFURL, supabasetest.PublicBase+"/projects/")
	data, ok := store.Object("projects", name)
	require.True(t, ok)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestUploadProjectPDF_Rejected(t *testing.T) {
	router := projectsRouter(seededStore(), projects.BestEffort)

	w := doUpload(router, "/admin/projects/pdf", "", nil, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doUpload(router, "/admin/projects/pdf", "notes.txt", []byte("hello"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "only PDF files")
}

func TestUploadProjectPDF_Unconfigured(t *testing.T) {
	router := projectsRouter(supabase.Fallback(), projects.BestEffort)

	w := doUpload(router, "/admin/projects/pdf", "deck.pdf", []byte("%PDF"), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Supabase not configured")
}
