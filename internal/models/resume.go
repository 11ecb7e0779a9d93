package models

import "time"

// ResumeID is the primary key of the only resume row.
const ResumeID = 1

type Resume struct {
	ID        int       `json:"id"`
	FileURL   string    `json:"file_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
