package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/demandcast/backend/internal/application/catalog"
)

// SaleHandler handles daily sales fact API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *catalogapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *catalogapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List returns sales facts matching the query filter, paginated.
func (h *SaleHandler) List(c *gin.Context) {
	var filter catalogapp.SaleListFilter
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

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers sales routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sales", h.List)
}
