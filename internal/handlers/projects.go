package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/projects"
)

type ProjectsHandler struct {
	repo   *projects.Repository
	pdfs   *projects.PDFs
	policy projects.ReorderPolicy
}

func NewProjectsHandler(repo *projects.Repository, pdfs *projects.PDFs, policy projects.ReorderPolicy) *ProjectsHandler {
	return &ProjectsHandler{
		repo:   repo,
		pdfs:   pdfs,
		policy: policy,
	}
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns every project ascending by order_index, optionally filtered by type.
// @Description The types list always starts with "All" and is computed from the unfiltered list.
// @Description An unavailable backend yields an empty list, never an error.
// @Tags        projects
// @Produce     json
// @Param       type query string false "Project type filter (All for every type)"
// @Success     200 {object} models.ProjectListResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	list := h.repo.List(c.Request.Context())
	c.JSON(http.StatusOK, models.ProjectListResponse{
		Projects: projects.FilterByType(list, c.Query("type")),
		Types:    projects.Types(list),
	})
}

// CreateProject godoc
// @Summary     Create a project
// @Description Adds a project after the current last one.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProjectRequest true "Project fields"
// @Success     201 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /admin/projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	in, ok := bindProject(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	current, err := h.repo.Fetch(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Save failed",
			Message: err.Error(),
		})
		return
	}

	project, err := h.repo.Create(ctx, in, projects.NextOrderIndex(current))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, projects.ErrNoRecord) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "Save failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.ProjectResponse{Project: project})
}

// UpdateProject godoc
// @Summary     Update a project
// @Description Overwrites title, type, description and pdf_url. The position is unchanged.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       request body models.ProjectRequest true "Project fields"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id} [put]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	in, ok := bindProject(c)
	if !ok {
		return
	}

	id := models.ProjectID(c.Param("project_id"))
	if err := h.repo.Update(c.Request.Context(), id, in); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Save failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Project updated!"})
}

// DeleteProject godoc
// @Summary     Delete a project
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Success     200 {object} models.MessageResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	id := models.ProjectID(c.Param("project_id"))
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Delete failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Project deleted"})
}

// ReorderProjects godoc
// @Summary     Move a project
// @Description Moves the project at position from to position to (0-based) and persists
// @Description order_index = position + 1 for every project, one update at a time.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ReorderRequest true "Source and destination positions"
// @Success     200 {object} models.ProjectListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /admin/projects/reorder [post]
func (h *ProjectsHandler) ReorderProjects(c *gin.Context) {
	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	before, err := h.repo.Fetch(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Reorder failed",
			Message: err.Error(),
		})
		return
	}

	after, err := projects.Move(before, *req.From, *req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid position",
			Message: err.Error(),
		})
		return
	}

	if err := h.repo.PersistOrder(ctx, before, after, h.policy); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Reorder failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{
		Projects: after,
		Types:    projects.Types(after),
	})
}

// UploadProjectPDF godoc
// @Summary     Upload a project PDF
// @Description Stores the PDF in the projects bucket and returns its public URL,
// @Description to be sent as pdf_url when saving the project.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "PDF file"
// @Param       title formData string false "Project title, used to name the object"
// @Success     200 {object} models.PDFUploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /admin/projects/pdf [post]
func (h *ProjectsHandler) UploadProjectPDF(c *gin.Context) {
	file, _, ok := pdfFile(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.pdfs.Upload(c.Request.Context(), c.PostForm("title"), file)
	if err != nil {
		uploadFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PDFUploadResponse{PDFURL: url})
}

func bindProject(c *gin.Context) (projects.ProjectInput, bool) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return projects.ProjectInput{}, false
	}

	in := projects.ProjectInput{
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		PDFURL:      req.PDFURL,
	}.Normalize()
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid project",
			Message: err.Error(),
		})
		return projects.ProjectInput{}, false
	}
	return in, true
}
