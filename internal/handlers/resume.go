package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/resume"
)

type ResumeHandler struct {
	repo *resume.Repository
}

func NewResumeHandler(repo *resume.Repository) *ResumeHandler {
	return &ResumeHandler{repo: repo}
}

// GetResume godoc
// @Summary     Resume link
// @Description Returns the public URL of the resume PDF.
// @Tags        resume
// @Produce     json
// @Success     200 {object} models.ResumeResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /resume [get]
func (h *ResumeHandler) GetResume(c *gin.Context) {
	url, ok := h.repo.PublicURL(c.Request.Context())
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Resume coming soon"})
		return
	}
	c.JSON(http.StatusOK, models.ResumeResponse{FileURL: url})
}

// UploadResume godoc
// @Summary     Upload the resume
// @Description Overwrites resume.pdf in the resume bucket and records its public URL.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Resume PDF"
// @Success     200 {object} models.ResumeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /admin/resume [post]
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	file, _, ok := pdfFile(c)
	if !ok {
		return
	}
	defer file.Close()

	rec, err := h.repo.Upload(c.Request.Context(), file)
	if err != nil {
		uploadFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, resumeResponse(rec))
}

// SetResumeURL godoc
// @Summary     Set the resume URL
// @Description Points the resume at an externally hosted file.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ResumeURLRequest true "Resume URL"
// @Success     200 {object} models.ResumeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/resume [put]
func (h *ResumeHandler) SetResumeURL(c *gin.Context) {
	var req models.ResumeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	rec, err := h.repo.SaveURL(c.Request.Context(), req.FileURL)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, resume.ErrEmptyURL) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "Save failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resumeResponse(rec))
}

func resumeResponse(rec *models.Resume) models.ResumeResponse {
	updated := rec.UpdatedAt
	return models.ResumeResponse{FileURL: rec.FileURL, UpdatedAt: &updated}
}
