package mq

import "time"

type ReviewSubmittedPayload struct {
	ReviewID    int64     `json:"review_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}
