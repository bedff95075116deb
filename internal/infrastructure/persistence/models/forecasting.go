package models

import (
	"github.com/shopspring/decimal"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
)

// StoreModel persists retail outlets. IDs are assigned by the upstream
// catalog feed, not generated here.
type StoreModel struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"column:store;size:255;not null;uniqueIndex:idx_stores_identity,priority:1"`
	City       string `gorm:"size:255;not null;uniqueIndex:idx_stores_identity,priority:2"`
	Division   string `gorm:"size:255;not null;uniqueIndex:idx_stores_identity,priority:3"`
	TypeFormat int    `gorm:"not null;uniqueIndex:idx_stores_identity,priority:4"`
	Loc        int    `gorm:"not null;uniqueIndex:idx_stores_identity,priority:5"`
	Size       int    `gorm:"not null;uniqueIndex:idx_stores_identity,priority:6"`
	IsActive   bool   `gorm:"not null;default:true;index"`
	Timezone   string `gorm:"size:64;not null;default:'Europe/Moscow'"`
}

// TableName returns the table name for StoreModel
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts StoreModel to a domain Store
func (m *StoreModel) ToDomain() *forecasting.Store {
	return &forecasting.Store{
		ID:         m.ID,
		Name:       m.Name,
		City:       m.City,
		Division:   m.Division,
		TypeFormat: m.TypeFormat,
		Loc:        m.Loc,
		Size:       m.Size,
		IsActive:   m.IsActive,
		Timezone:   m.Timezone,
	}
}

// StoreModelFromDomain converts a domain Store to StoreModel
func StoreModelFromDomain(s *forecasting.Store) *StoreModel {
	return &StoreModel{
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

// SKUModel persists sellable product variants.
type SKUModel struct {
	ID          int64  `gorm:"primaryKey"`
	Group       string `gorm:"column:group;size:255;not null;uniqueIndex:idx_skus_identity,priority:1;index"`
	Category    string `gorm:"size:255;not null;uniqueIndex:idx_skus_identity,priority:2;index"`
	Subcategory string `gorm:"size:255;not null;uniqueIndex:idx_skus_identity,priority:3;index"`
	Name        string `gorm:"column:sku;size:255;not null;uniqueIndex:idx_skus_identity,priority:4"`
	UOM         int    `gorm:"not null;uniqueIndex:idx_skus_identity,priority:5"`
}

// TableName returns the table name for SKUModel
func (SKUModel) TableName() string {
	return "skus"
}

// ToDomain converts SKUModel to a domain SKU
func (m *SKUModel) ToDomain() *forecasting.SKU {
	return &forecasting.SKU{
		ID:          m.ID,
		Group:       m.Group,
		Category:    m.Category,
		Subcategory: m.Subcategory,
		Name:        m.Name,
		UOM:         m.UOM,
	}
}

// SKUModelFromDomain converts a domain SKU to SKUModel
func SKUModelFromDomain(s *forecasting.SKU) *SKUModel {
	return &SKUModel{
		ID:          s.ID,
		Group:       s.Group,
		Category:    s.Category,
		Subcategory: s.Subcategory,
		Name:        s.Name,
		UOM:         s.UOM,
	}
}

// SaleModel persists daily sales facts, one row per (store, sku, date).
type SaleModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	StoreID         int64           `gorm:"not null;uniqueIndex:idx_sales_fact,priority:1;index"`
	SKUID           int64           `gorm:"column:sku_id;not null;uniqueIndex:idx_sales_fact,priority:2;index"`
	Date            shared.Date     `gorm:"type:date;not null;uniqueIndex:idx_sales_fact,priority:3;index"`
	Promo           bool            `gorm:"column:sales_type;not null;default:false"`
	SalesUnits      int64           `gorm:"not null;default:0"`
	SalesUnitsPromo int64           `gorm:"not null;default:0"`
	SalesRub        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	SalesRubPromo   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
}

// TableName returns the table name for SaleModel
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts SaleModel to a domain Sale
func (m *SaleModel) ToDomain() *forecasting.Sale {
	return &forecasting.Sale{
		ID:              m.ID,
		StoreID:         m.StoreID,
		SKUID:           m.SKUID,
		Date:            m.Date,
		Promo:           m.Promo,
		SalesUnits:      m.SalesUnits,
		SalesUnitsPromo: m.SalesUnitsPromo,
		SalesRub:        m.SalesRub,
		SalesRubPromo:   m.SalesRubPromo,
	}
}

// SaleModelFromDomain converts a domain Sale to SaleModel
func SaleModelFromDomain(s *forecasting.Sale) *SaleModel {
	return &SaleModel{
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

// ForecastModel persists forecast facts, one row per
// (store, sku, forecast_date) with the {date, target} entries as JSON.
type ForecastModel struct {
	ID           int64                       `gorm:"primaryKey;autoIncrement"`
	StoreID      int64                       `gorm:"not null;uniqueIndex:idx_forecasts_fact,priority:1;index"`
	SKUID        int64                       `gorm:"column:sku_id;not null;uniqueIndex:idx_forecasts_fact,priority:2;index"`
	ForecastDate shared.Date                 `gorm:"type:date;not null;uniqueIndex:idx_forecasts_fact,priority:3;index"`
	Forecast     forecasting.ForecastPayload `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for ForecastModel
func (ForecastModel) TableName() string {
	return "forecasts"
}

// ToDomain converts ForecastModel to a domain Forecast
func (m *ForecastModel) ToDomain() *forecasting.Forecast {
	return &forecasting.Forecast{
		ID:           m.ID,
		StoreID:      m.StoreID,
		SKUID:        m.SKUID,
		ForecastDate: m.ForecastDate,
		Payload:      m.Forecast,
	}
}

// ForecastModelFromDomain converts a domain Forecast to ForecastModel
func ForecastModelFromDomain(f *forecasting.Forecast) *ForecastModel {
	return &ForecastModel{
		ID:           f.ID,
		StoreID:      f.StoreID,
		SKUID:        f.SKUID,
		ForecastDate: f.ForecastDate,
		Forecast:     f.Payload,
	}
}
