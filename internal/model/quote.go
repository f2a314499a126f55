package model

import "time"

// QuoteRequest is a submitted request for a proposal. Estimate is computed
// server-side when the request is stored.
type QuoteRequest struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Company            string    `json:"company"`
	ServiceType        string    `json:"service_type"`
	ProjectTitle       string    `json:"project_title"`
	Description        string    `json:"description"`
	Features           []string  `json:"features"`
	Timeline           string    `json:"timeline"`
	Budget             string    `json:"budget"`
	HasExistingWebsite string    `json:"has_existing_website"`
	PreferredStyle     string    `json:"preferred_style"`
	TargetAudience     string    `json:"target_audience"`
	AdditionalNotes    string    `json:"additional_notes"`
	Estimate           float64   `json:"estimate"`
	CreatedAt          time.Time `json:"created_at"`
}
