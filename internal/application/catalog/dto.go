package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
)

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"store"`
	City       string `json:"city"`
	Division   string `json:"division"`
	TypeFormat int    `json:"type_format"`
	Loc        int    `json:"loc"`
	Size       int    `json:"size"`
	IsActive   bool   `json:"is_active"`
	Timezone   string `json:"timezone"`
}

// StoreListFilter represents filter options for the store list
type StoreListFilter struct {
	City     string `form:"city"`
	Division string `form:"division"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// SKUResponse represents a SKU in API responses
type SKUResponse struct {
	ID          int64  `json:"id"`
	Group       string `json:"group"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Name        string `json:"sku"`
	UOM         int    `json:"uom"`
}

// SKUListFilter represents filter options for the SKU list
type SKUListFilter struct {
	Groups        []string `form:"group"`
	Categories    []string `form:"category"`
	Subcategories []string `form:"subcategory"`
	Page          int      `form:"page" binding:"omitempty,min=1"`
	PageSize      int      `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// TaxonomyFilter narrows distinct category/subcategory lookups.
type TaxonomyFilter struct {
	Groups     []string `form:"group"`
	Categories []string `form:"category"`
}

// SaleResponse represents a daily sales fact in API responses
type SaleResponse struct {
	ID              int64           `json:"id"`
	StoreID         int64           `json:"store_id"`
	SKUID           int64           `json:"sku_id"`
	Date            shared.Date     `json:"date"`
	Promo           bool            `json:"sales_type"`
	SalesUnits      int64           `json:"sales_units"`
	SalesUnitsPromo int64           `json:"sales_units_promo"`
	SalesRub        decimal.Decimal `json:"sales_rub"`
	SalesRubPromo   decimal.Decimal `json:"sales_rub_promo"`
}

// SaleListFilter represents filter options for the sales list
type SaleListFilter struct {
	StoreIDs []int64 `form:"store_id"`
	SKUIDs   []int64 `form:"sku_id"`
	DateFrom string  `form:"date_from"`
	DateTo   string  `form:"date_to"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// ForecastEntryPayload is one {date, target} pair in forecast requests and
// responses.
type ForecastEntryPayload struct {
	Date   shared.Date `json:"date" binding:"required"`
	Target int64       `json:"target" binding:"min=0"`
}

// ForecastResponse represents a forecast fact in API responses
type ForecastResponse struct {
	ID           int64                  `json:"id"`
	StoreID      int64                  `json:"store_id"`
	SKUID        int64                  `json:"sku_id"`
	ForecastDate shared.Date            `json:"forecast_date"`
	Forecast     []ForecastEntryPayload `json:"forecast"`
}

// ForecastListFilter represents filter options for the forecast list
type ForecastListFilter struct {
	StoreIDs     []int64 `form:"store_id"`
	SKUIDs       []int64 `form:"sku_id"`
	ForecastDate string  `form:"forecast_date"`
	Page         int     `form:"page" binding:"omitempty,min=1"`
	PageSize     int     `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// IngestForecastItem is one forecast row of an ingestion batch.
type IngestForecastItem struct {
	StoreID      int64                  `json:"store_id" binding:"required,gt=0"`
	SKUID        int64                  `json:"sku_id" binding:"required,gt=0"`
	ForecastDate shared.Date            `json:"forecast_date" binding:"required"`
	Forecast     []ForecastEntryPayload `json:"forecast" binding:"required,min=1,dive"`
}

// IngestForecastsRequest represents a bulk forecast upload.
type IngestForecastsRequest struct {
	Data []IngestForecastItem `json:"data" binding:"required,min=1,dive"`
}

// IngestForecastsResponse reports how an ingestion batch was folded.
type IngestForecastsResponse struct {
	Received int `json:"received"`
	Stored   int `json:"stored"`
}

const defaultPageSize = 50

func toPage(number, size int) forecasting.Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	return forecasting.Page{Number: number, Size: size}
}

// ToStoreResponse converts a domain Store to StoreResponse
func ToStoreResponse(s *forecasting.Store) StoreResponse {
	return StoreResponse{
		ID:         s.ID,
		Name:       s.Name,
		City:       s.City,
		Division:   s.Division,
		TypeFormat: s.TypeFormat,
		Loc:        s.Loc,
		Size:       s.Size,
		IsActive:   s.IsActive,
		Timezone:   s.Timezone,
	}
}

// ToSKUResponse converts a domain SKU to SKUResponse
func ToSKUResponse(s *forecasting.SKU) SKUResponse {
	return SKUResponse{
		ID:          s.ID,
		Group:       s.Group,
		Category:    s.Category,
		Subcategory: s.Subcategory,
		Name:        s.Name,
		UOM:         s.UOM,
	}
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *forecasting.Sale) SaleResponse {
	return SaleResponse{
		ID:              s.ID,
		StoreID:         s.StoreID,
		SKUID:           s.SKUID,
		Date:            s.Date,
		Promo:           s.Promo,
		SalesUnits:      s.SalesUnits,
		SalesUnitsPromo: s.SalesUnitsPromo,
		SalesRub:        s.SalesRub,
		SalesRubPromo:   s.SalesRubPromo,
	}
}

// ToForecastResponse converts a domain Forecast to ForecastResponse
func ToForecastResponse(f *forecasting.Forecast) ForecastResponse {
	entries := make([]ForecastEntryPayload, len(f.Payload))
	for i, e := range f.Payload {
		entries[i] = ForecastEntryPayload{Date: e.Date, Target: e.Target}
	}
	return ForecastResponse{
		ID:           f.ID,
		StoreID:      f.StoreID,
		SKUID:        f.SKUID,
		ForecastDate: f.ForecastDate,
		Forecast:     entries,
	}
}
