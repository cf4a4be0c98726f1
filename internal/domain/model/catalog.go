package model

import "time"

// Category groups products in the storefront.
type Category struct {
	ID             int64
	Title          string
	Slug           string
	Subtitle       string
	Description    string
	SEOTitle       string
	SEODescription string
}

// ProductFile is a downloadable asset attached to a product. URL is opaque to
// the backend; blob storage lives elsewhere.
type ProductFile struct {
	Name string
	URL  string
}

// Product is a purchasable catalog entry.
type Product struct {
	ID         int64
	Title      string
	Slug       string
	Price      float64
	CategoryID *int64
	Content    string
	Files      []ProductFile
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SpecialOffer bundles several products at a discounted price.
type SpecialOffer struct {
	ID              int64
	Title           string
	Slug            string
	TotalPrice      float64
	Discount        float64
	DiscountedPrice float64
	Subtitle        string
	Excerpt         string
	ProductIDs      []int64
}
