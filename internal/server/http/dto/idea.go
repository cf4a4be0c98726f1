package dto

import "time"

// IdeaPayload carries editorial content fields.
type IdeaPayload struct {
	ID             int64     `json:"id,omitempty"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug,omitempty"`
	Excerpt        string    `json:"excerpt,omitempty"`
	Content        string    `json:"content,omitempty"`
	SEOTitle       string    `json:"seoTitle,omitempty"`
	SEODescription string    `json:"seoDescription,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}
