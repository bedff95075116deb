package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/demandcast/backend/internal/application/catalog"
)

// ForecastHandler handles forecast fact API endpoints, including bulk
// ingestion of new forecast batches.
type ForecastHandler struct {
	BaseHandler
	forecastService *catalogapp.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *catalogapp.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// List returns stored forecasts matching the query filter, paginated.
func (h *ForecastHandler) List(c *gin.Context) {
	var filter catalogapp.ForecastListFilter
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

	forecasts, total, err := h.forecastService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, forecasts, total, filter.Page, filter.PageSize)
}

// Ingest accepts a forecast batch and upserts it into the fact table.
// Rows repeating a (store, SKU, forecast date) key are folded together
// before writing.
func (h *ForecastHandler) Ingest(c *gin.Context) {
	var req catalogapp.IngestForecastsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.forecastService.Ingest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers forecast routes
func (h *ForecastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	forecasts := rg.Group("/forecasts")
	{
		forecasts.GET("", h.List)
		forecasts.POST("", h.Ingest)
	}
}
