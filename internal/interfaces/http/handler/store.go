package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/demandcast/backend/internal/application/catalog"
)

// StoreHandler handles store dimension API endpoints
type StoreHandler struct {
	BaseHandler
	storeService *catalogapp.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *catalogapp.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List returns stores matching the query filter, paginated.
func (h *StoreHandler) List(c *gin.Context) {
	var filter catalogapp.StoreListFilter
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

	stores, total, err := h.storeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, stores, total, filter.Page, filter.PageSize)
}

// GetByID returns a single store by numeric id.
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, store)
}

// RegisterRoutes registers store routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores")
	{
		stores.GET("", h.List)
		stores.GET("/:id", h.GetByID)
	}
}
