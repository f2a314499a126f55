package mq

import "time"

type QuoteRequestedPayload struct {
	QuoteID      int64     `json:"quote_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Company      string    `json:"company,omitempty"`
	ServiceType  string    `json:"service_type"`
	ProjectTitle string    `json:"project_title"`
	Features     []string  `json:"features"`
	Timeline     string    `json:"timeline"`
	Budget       string    `json:"budget,omitempty"`
	Estimate     float64   `json:"estimate"`
	RequestedAt  time.Time `json:"requested_at"`
}
