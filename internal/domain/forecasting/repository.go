package forecasting

import (
	"context"

	"github.com/demandcast/backend/internal/domain/shared"
)

// Page holds offset pagination parameters for list queries.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// StoreFilter narrows store list queries.
type StoreFilter struct {
	IDs      []int64
	City     string
	Division string
	IsActive *bool
}

// SKUFilter narrows SKU list queries. Empty slices mean "no restriction";
// every non-empty slice is applied as an IN filter.
type SKUFilter struct {
	IDs           []int64
	Groups        []string
	Categories    []string
	Subcategories []string
}

// IsEmpty reports whether no filter values are present at all.
func (f SKUFilter) IsEmpty() bool {
	return len(f.IDs) == 0 && len(f.Groups) == 0 && len(f.Categories) == 0 && len(f.Subcategories) == 0
}

// SaleFilter narrows sale list queries.
type SaleFilter struct {
	StoreIDs []int64
	SKUIDs   []int64
	DateFrom shared.Date
	DateTo   shared.Date
}

// ForecastFilter narrows forecast list queries.
type ForecastFilter struct {
	StoreIDs     []int64
	SKUIDs       []int64
	ForecastDate shared.Date
}

// StoreRepository provides access to store records.
type StoreRepository interface {
	FindByID(ctx context.Context, id int64) (*Store, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Store, error)
	FindAll(ctx context.Context, filter StoreFilter, page Page) ([]Store, int64, error)
}

// SKURepository provides access to SKU records and their taxonomy.
type SKURepository interface {
	FindByID(ctx context.Context, id int64) (*SKU, error)
	Find(ctx context.Context, filter SKUFilter) ([]SKU, error)
	FindAll(ctx context.Context, filter SKUFilter, page Page) ([]SKU, int64, error)
	DistinctGroups(ctx context.Context) ([]string, error)
	DistinctCategories(ctx context.Context, groups []string) ([]string, error)
	DistinctSubcategories(ctx context.Context, groups, categories []string) ([]string, error)
}

// SaleRepository provides access to sales facts.
type SaleRepository interface {
	FindAll(ctx context.Context, filter SaleFilter, page Page) ([]Sale, int64, error)
	FindInRange(ctx context.Context, storeIDs, skuIDs []int64, from, to shared.Date) ([]Sale, error)
}

// ForecastRepository provides access to forecast facts.
type ForecastRepository interface {
	FindAll(ctx context.Context, filter ForecastFilter, page Page) ([]Forecast, int64, error)
	FindForDate(ctx context.Context, forecastDate shared.Date, storeIDs, skuIDs []int64) ([]Forecast, error)
	// Upsert inserts the forecast or, when a row for the same
	// (store, sku, forecast_date) exists, merges the payload entries into it.
	Upsert(ctx context.Context, forecast *Forecast) error
}
