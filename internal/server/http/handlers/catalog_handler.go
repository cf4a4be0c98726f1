package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/server/http/dto"
)

// CatalogHandler manages categories, products, and special offers.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// --- categories ---

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	response := make([]dto.CategoryPayload, 0, len(categories))
	for _, cat := range categories {
		response = append(response, toCategoryPayload(cat))
	}
	c.JSON(http.StatusOK, response)
}

// GetCategory handles GET /api/categories/:slug.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.facade.CategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryPayload(*category))
}

// CreateCategory handles POST /api/categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateCategory(c.Request.Context(), toCategoryModel(req))
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryPayload(*created))
}

// UpdateCategory handles PUT /api/categories/:id.
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.CategoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	category := toCategoryModel(req)
	category.ID = id
	updated, err := h.facade.UpdateCategory(c.Request.Context(), category)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryPayload(*updated))
}

// DeleteCategory handles DELETE /api/categories/:id.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.facade.DeleteCategory(c.Request.Context(), id); err != nil {
		writeReadError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- products ---

// ListProducts handles GET /api/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	response := make([]dto.ProductPayload, 0, len(products))
	for _, p := range products {
		response = append(response, toProductPayload(p))
	}
	c.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/products/:slug.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.facade.ProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductPayload(*product))
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateProduct(c.Request.Context(), toProductModel(req))
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductPayload(*created))
}

// UpdateProduct handles PUT /api/products/:id.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := toProductModel(req)
	product.ID = id
	updated, err := h.facade.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductPayload(*updated))
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		writeReadError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- special offers ---

// ListOffers handles GET /api/special-offers.
func (h *CatalogHandler) ListOffers(c *gin.Context) {
	offers, err := h.facade.Offers(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	response := make([]dto.OfferPayload, 0, len(offers))
	for _, o := range offers {
		response = append(response, toOfferPayload(o))
	}
	c.JSON(http.StatusOK, response)
}

// GetOffer handles GET /api/special-offers/:slug.
func (h *CatalogHandler) GetOffer(c *gin.Context) {
	offer, err := h.facade.OfferBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferPayload(*offer))
}

// CreateOffer handles POST /api/special-offers.
func (h *CatalogHandler) CreateOffer(c *gin.Context) {
	var req dto.OfferPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateOffer(c.Request.Context(), toOfferModel(req))
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOfferPayload(*created))
}

// UpdateOffer handles PUT /api/special-offers/:id.
func (h *CatalogHandler) UpdateOffer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.OfferPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	offer := toOfferModel(req)
	offer.ID = id
	updated, err := h.facade.UpdateOffer(c.Request.Context(), offer)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferPayload(*updated))
}

// DeleteOffer handles DELETE /api/special-offers/:id.
func (h *CatalogHandler) DeleteOffer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.facade.DeleteOffer(c.Request.Context(), id); err != nil {
		writeReadError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- shared error mapping and conversions ---

func writeReadError(c *gin.Context, err error) {
	if errors.Is(err, domainErrors.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusInternalServerError)
}

func writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrEmptyTitle):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toCategoryModel(req dto.CategoryPayload) *model.Category {
	return &model.Category{
		ID:             req.ID,
		Title:          req.Title,
		Subtitle:       req.Subtitle,
		Description:    req.Description,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	}
}

func toCategoryPayload(category model.Category) dto.CategoryPayload {
	return dto.CategoryPayload{
		ID:             category.ID,
		Title:          category.Title,
		Slug:           category.Slug,
		Subtitle:       category.Subtitle,
		Description:    category.Description,
		SEOTitle:       category.SEOTitle,
		SEODescription: category.SEODescription,
	}
}

func toProductModel(req dto.ProductPayload) *model.Product {
	files := make([]model.ProductFile, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, model.ProductFile{Name: f.Name, URL: f.URL})
	}
	return &model.Product{
		ID:         req.ID,
		Title:      req.Title,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		Content:    req.Content,
		Files:      files,
	}
}

func toProductPayload(product model.Product) dto.ProductPayload {
	files := make([]dto.ProductFilePayload, 0, len(product.Files))
	for _, f := range product.Files {
		files = append(files, dto.ProductFilePayload{Name: f.Name, URL: f.URL})
	}
	return dto.ProductPayload{
		ID:         product.ID,
		Title:      product.Title,
		Slug:       product.Slug,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Content:    product.Content,
		Files:      files,
	}
}

func toOfferModel(req dto.OfferPayload) *model.SpecialOffer {
	return &model.SpecialOffer{
		ID:              req.ID,
		Title:           req.Title,
		TotalPrice:      req.TotalPrice,
		Discount:        req.Discount,
		DiscountedPrice: req.DiscountedPrice,
		Subtitle:        req.Subtitle,
		Excerpt:         req.Excerpt,
		ProductIDs:      req.ProductIDs,
	}
}

func toOfferPayload(offer model.SpecialOffer) dto.OfferPayload {
	return dto.OfferPayload{
		ID:              offer.ID,
		Title:           offer.Title,
		Slug:            offer.Slug,
		TotalPrice:      offer.TotalPrice,
		Discount:        offer.Discount,
		DiscountedPrice: offer.DiscountedPrice,
		Subtitle:        offer.Subtitle,
		Excerpt:         offer.Excerpt,
		ProductIDs:      offer.ProductIDs,
	}
}
