package model

import "time"

// Project is a portfolio entry.
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Image        string    `json:"image"`
	Link         string    `json:"link,omitempty"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectFilter narrows a project listing. A nil Featured means "any".
type ProjectFilter struct {
	Featured *bool
	Category string
	Limit    int
	Offset   int
}

// ProjectPatch carries the fields of a partial update; nil means unchanged.
type ProjectPatch struct {
	Title        *string
	Description  *string
	Category     *string
	Image        *string
	Link         *string
	Technologies *[]string
	Featured     *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ProjectPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Image == nil && p.Link == nil && p.Technologies == nil && p.Featured == nil
}

// Apply merges the patch into pr.
func (p ProjectPatch) Apply(pr *Project) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
	if p.Image != nil {
		pr.Image = *p.Image
	}
	if p.Link != nil {
		pr.Link = *p.Link
	}
	if p.Technologies != nil {
		pr.Technologies = append([]string{}, (*p.Technologies)...)
	}
	if p.Featured != nil {
		pr.Featured = *p.Featured
	}
}

// ProjectPage is one page of a listing.
type ProjectPage struct {
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
	Items  []Project `json:"items"`
}
