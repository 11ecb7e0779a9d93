package projects

import (
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/internal/models"
)

var ErrEmptyTitle = errors.New("title is required")

// ProjectInput carries the editable fields of a project. order_index is not
// one of them: only reordering changes it.
type ProjectInput struct {
	Title       string
	Type        models.ProjectType
	Description string
	PDFURL      *string
}

// InputFrom copies the editable fields of p.
func InputFrom(p models.Project) ProjectInput {
	return ProjectInput{
		Title:       p.Title,
		Type:        p.Type,
		Description: p.Description,
		PDFURL:      p.PDFURL,
	}
}

// Normalize trims the title, defaults the type and maps an empty PDF link to null.
func (in ProjectInput) Normalize() ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.Type == "" {
		in.Type = models.DefaultProjectType
	}
	if in.PDFURL != nil {
		url := strings.TrimSpace(*in.PDFURL)
		if url == "" {
			in.PDFURL = nil
		} else {
			in.PDFURL = &url
		}
	}
	return in
}

func (in ProjectInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if in.Type != "" && !in.Type.Valid() {
		return fmt.Errorf("unknown project type %q", in.Type)
	}
	return nil
}

// Apply writes the input over p, keeping its id, order and position.
func (in ProjectInput) Apply(p models.Project) models.Project {
	p.Title = in.Title
	p.Type = in.Type
	p.Description = in.Description
	p.PDFURL = in.PDFURL
	return p
}

// projectFields is the update payload. pdf_url is always sent so it can be cleared.
type projectFields struct {
	Title       string             `json:"title"`
	Type        models.ProjectType `json:"type"`
	Description string             `json:"description"`
	PDFURL      *string            `json:"pdf_url"`
}

type projectRow struct {
	projectFields
	OrderIndex int `json:"order_index"`
}

func fieldsOf(in ProjectInput) projectFields {
	return projectFields{
		Title:       in.Title,
		Type:        in.Type,
		Description: in.Description,
		PDFURL:      in.PDFURL,
	}
}
