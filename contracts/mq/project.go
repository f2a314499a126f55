package mq

import "time"

// ProjectCreatedPayload is published for cache warmers and audit consumers.
// The worker does not mail on it.
type ProjectCreatedPayload struct {
	ProjectID int64     `json:"project_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}
