package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

// maxUploadMemory is the multipart form memory limit (32MB).
const maxUploadMemory = 32 << 20

// pdfFile opens the "file" part of a multipart form. It writes the error
// response itself and returns ok=false when the request carries no PDF.
func pdfFile(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return nil, nil, false
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file is required",
			Message: err.Error(),
		})
		return nil, nil, false
	}

	if !isPDF(header) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid file type",
			Message: "only PDF files are accepted",
		})
		return nil, nil, false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open file",
			Message: err.Error(),
		})
		return nil, nil, false
	}
	return file, header, true
}

func isPDF(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return true
	}
	return strings.HasPrefix(header.Header.Get("Content-Type"), "application/pdf")
}

// uploadFailed reports an upload error, 503 when there is no backend to upload to.
func uploadFailed(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, supabase.ErrNotConfigured) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, models.ErrorResponse{
		Error:   "Upload failed",
		Message: err.Error(),
	})
}
