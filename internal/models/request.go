package models

type ProjectRequest struct {
	Title       string      `json:"title" binding:"required" example:"Checkout flow teardown"`
	Type        ProjectType `json:"type,omitempty" example:"Teardown"`
	Description string      `json:"description,omitempty"`
	// PDFURL is either a link returned by the PDF upload endpoint or any URL.
	PDFURL *string `json:"pdf_url,omitempty"`
}

type ReorderRequest struct {
	From *int `json:"from" binding:"required" example:"0"`
	To   *int `json:"to" binding:"required" example:"2"`
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type ResumeURLRequest struct {
	FileURL string `json:"file_url" binding:"required" example:"https://example.com/resume.pdf"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
