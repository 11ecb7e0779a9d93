package models

import "time"

type HealthResponse struct {
	Status string `json:"status"`
	// Backend is "supabase" or "unconfigured".
	Backend string `json:"backend"`
}

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
	Types    []string  `json:"types"`
}

type ProjectResponse struct {
	Project Project `json:"project"`
}

type PDFUploadResponse struct {
	PDFURL string `json:"pdf_url"`
}

type ResumeResponse struct {
	FileURL   string     `json:"file_url"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
