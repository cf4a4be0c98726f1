package dto

// CategoryPayload carries category fields for create/update requests and
// responses.
type CategoryPayload struct {
	ID             int64  `json:"id,omitempty"`
	Title          string `json:"title"`
	Slug           string `json:"slug,omitempty"`
	Subtitle       string `json:"subtitle,omitempty"`
	Description    string `json:"description,omitempty"`
	SEOTitle       string `json:"seoTitle,omitempty"`
	SEODescription string `json:"seoDescription,omitempty"`
}

// ProductFilePayload is a downloadable asset attached to a product.
type ProductFilePayload struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProductPayload carries product fields.
type ProductPayload struct {
	ID         int64                `json:"id,omitempty"`
	Title      string               `json:"title"`
	Slug       string               `json:"slug,omitempty"`
	Price      float64              `json:"price"`
	CategoryID *int64               `json:"categoryId,omitempty"`
	Content    string               `json:"content,omitempty"`
	Files      []ProductFilePayload `json:"files,omitempty"`
}

// OfferPayload carries special-offer fields.
type OfferPayload struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	Slug            string  `json:"slug,omitempty"`
	TotalPrice      float64 `json:"totalPrice"`
	Discount        float64 `json:"discount"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Subtitle        string  `json:"subtitle,omitempty"`
	Excerpt         string  `json:"excerpt,omitempty"`
	ProductIDs      []int64 `json:"productIds,omitempty"`
}
