package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type ProjectType string

const (
	TypePRD                ProjectType = "PRD"
	TypeProductImprovement ProjectType = "Product Improvement"
	TypeMVPPRD             ProjectType = "MVP PRD"
	TypeWireframes         ProjectType = "Wireframes"
	TypeDataAnalysis       ProjectType = "Data Analysis"
	TypeMarketCaseStudy    ProjectType = "Market Case Study"
	TypeTeardown           ProjectType = "Teardown"
	TypeOther              ProjectType = "Other"
)

// DefaultProjectType is used when a project is saved without a type.
const DefaultProjectType = TypePRD

// ProjectTypes lists the accepted types in display order.
var ProjectTypes = []ProjectType{
	TypePRD,
	TypeProductImprovement,
	TypeMVPPRD,
	TypeWireframes,
	TypeDataAnalysis,
	TypeMarketCaseStudy,
	TypeTeardown,
	TypeOther,
}

func (t ProjectType) Valid() bool {
	for _, known := range ProjectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ProjectID is assigned by the store. Both uuid and integer keys decode.
type ProjectID string

func (id *ProjectID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProjectID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProjectID(n.String())
	return nil
}

func (id ProjectID) String() string { return string(id) }

type Project struct {
	ID          ProjectID   `json:"id"`
	Title       string      `json:"title"`
	Type        ProjectType `json:"type"`
	Description string      `json:"description"`
	PDFURL      *string     `json:"pdf_url"`
	OrderIndex  int         `json:"order_index"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
}
