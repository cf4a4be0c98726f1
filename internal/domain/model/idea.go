package model

import "time"

// Idea is an editorial content entry shown on the storefront.
type Idea struct {
	ID             int64
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	SEOTitle       string
	SEODescription string
	CreatedAt      time.Time
}
