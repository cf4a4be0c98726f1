package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/server/http/dto"
)

// IdeaHandler manages editorial content endpoints.
type IdeaHandler struct {
	facade ContentFacade
}

// NewIdeaHandler constructs IdeaHandler.
func NewIdeaHandler(facade ContentFacade) *IdeaHandler {
	return &IdeaHandler{facade: facade}
}

// List handles GET /api/ideas.
func (h *IdeaHandler) List(c *gin.Context) {
	ideas, err := h.facade.Ideas(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	response := make([]dto.IdeaPayload, 0, len(ideas))
	for _, idea := range ideas {
		response = append(response, toIdeaPayload(idea))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/ideas/:slug.
func (h *IdeaHandler) Get(c *gin.Context) {
	idea, err := h.facade.IdeaBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, toIdeaPayload(*idea))
}

// Create handles POST /api/ideas.
func (h *IdeaHandler) Create(c *gin.Context) {
	var req dto.IdeaPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateIdea(c.Request.Context(), toIdeaModel(req))
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toIdeaPayload(*created))
}

// Update handles PUT /api/ideas/:id.
func (h *IdeaHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.IdeaPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	idea := toIdeaModel(req)
	idea.ID = id
	updated, err := h.facade.UpdateIdea(c.Request.Context(), idea)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, toIdeaPayload(*updated))
}

// Delete handles DELETE /api/ideas/:id.
func (h *IdeaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.facade.DeleteIdea(c.Request.Context(), id); err != nil {
		writeReadError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toIdeaModel(req dto.IdeaPayload) *model.Idea {
	return &model.Idea{
		ID:             req.ID,
		Title:          req.Title,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	}
}

func toIdeaPayload(idea model.Idea) dto.IdeaPayload {
	return dto.IdeaPayload{
		ID:             idea.ID,
		Title:          idea.Title,
		Slug:           idea.Slug,
		Excerpt:        idea.Excerpt,
		Content:        idea.Content,
		SEOTitle:       idea.SEOTitle,
		SEODescription: idea.SEODescription,
		CreatedAt:      idea.CreatedAt,
	}
}
