package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/demandcast/backend/internal/application/catalog"
)

// SKUHandler handles SKU dimension and taxonomy API endpoints
type SKUHandler struct {
	BaseHandler
	skuService *catalogapp.SKUService
}

// NewSKUHandler creates a new SKUHandler
func NewSKUHandler(skuService *catalogapp.SKUService) *SKUHandler {
	return &SKUHandler{skuService: skuService}
}

// List returns SKUs matching the taxonomy filter, paginated.
func (h *SKUHandler) List(c *gin.Context) {
	var filter catalogapp.SKUListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 50
	}

	skus, total, err := h.skuService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, skus, total, filter.Page, filter.PageSize)
}

// GetByID returns a single SKU by numeric id.
func (h *SKUHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid SKU ID")
		return
	}

	sku, err := h.skuService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sku)
}

// Groups returns the distinct product groups.
func (h *SKUHandler) Groups(c *gin.Context) {
	groups, err := h.skuService.Groups(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// Categories returns the distinct categories, optionally narrowed by group.
func (h *SKUHandler) Categories(c *gin.Context) {
	var filter catalogapp.TaxonomyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	categories, err := h.skuService.Categories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// Subcategories returns the distinct subcategories, optionally narrowed by
// group and category.
func (h *SKUHandler) Subcategories(c *gin.Context) {
	var filter catalogapp.TaxonomyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	subcategories, err := h.skuService.Subcategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subcategories)
}

// RegisterRoutes registers SKU and taxonomy routes
func (h *SKUHandler) RegisterRoutes(rg *gin.RouterGroup) {
	skus := rg.Group("/skus")
	{
		skus.GET("", h.List)
		skus.GET("/groups", h.Groups)
		skus.GET("/categories", h.Categories)
		skus.GET("/subcategories", h.Subcategories)
		skus.GET("/:id", h.GetByID)
	}
}
