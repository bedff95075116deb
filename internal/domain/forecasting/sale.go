package forecasting

import (
	"github.com/shopspring/decimal"

	"github.com/demandcast/backend/internal/domain/shared"
)

// Sale is a daily sales fact for one (store, SKU) pair.
// The tuple (store, sku, date) is unique.
type Sale struct {
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

// SaleFieldLabels maps technical sale field names to display labels.
func SaleFieldLabels() map[string]string {
	return map[string]string{
		"date":              "Sale date",
		"sales_type":        "Promo",
		"sales_units":       "Units sold without promo",
		"sales_units_promo": "Units sold with promo",
		"sales_rub":         "Sales amount without promo",
		"sales_rub_promo":   "Sales amount with promo",
	}
}
