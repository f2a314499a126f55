package model

import (
	"encoding/json"
	"time"
)

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
)

// Review is a client testimonial. Status is the only source of truth for
// moderation; the JSON "approved" field is derived from it.
type Review struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Company     string       `json:"company"`
	Message     string       `json:"message"`
	Rating      int          `json:"rating"`
	ProjectType string       `json:"project_type"`
	Status      ReviewStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (r Review) Approved() bool {
	return r.Status == ReviewApproved
}

func (r Review) MarshalJSON() ([]byte, error) {
	type plain Review
	return json.Marshal(struct {
		plain
		Approved bool `json:"approved"`
	}{plain(r), r.Approved()})
}

// ReviewFilter narrows a review listing. Empty Status means every status.
type ReviewFilter struct {
	Status ReviewStatus
	Limit  int
	Offset int
}
