package report

import (
	"context"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/report"
)

// ResolvedData is the concrete record set a report request selects.
type ResolvedData struct {
	Stores    []forecasting.Store
	SKUs      []forecasting.SKU
	Forecasts []forecasting.Forecast
}

// Resolver turns a report request into concrete record sets.
type Resolver struct {
	stores    forecasting.StoreRepository
	skus      forecasting.SKURepository
	sales     forecasting.SaleRepository
	forecasts forecasting.ForecastRepository
}

// NewResolver creates a new Resolver.
func NewResolver(
	stores forecasting.StoreRepository,
	skus forecasting.SKURepository,
	sales forecasting.SaleRepository,
	forecasts forecasting.ForecastRepository,
) *Resolver {
	return &Resolver{
		stores:    stores,
		skus:      skus,
		sales:     sales,
		forecasts: forecasts,
	}
}

// ResolveForecasts selects the stores, SKUs and forecasts the request
// filters down to. Fails with report.ErrNoForecasts when no forecast rows
// match.
func (r *Resolver) ResolveForecasts(ctx context.Context, req *report.Request) (*ResolvedData, error) {
	stores, err := r.stores.FindByIDs(ctx, req.StoreIDs)
	if err != nil {
		return nil, err
	}

	skus, err := r.resolveSKUs(ctx, req)
	if err != nil {
		return nil, err
	}

	forecasts, err := r.forecasts.FindForDate(ctx, req.ForecastDate, req.StoreIDs, skuIDs(skus))
	if err != nil {
		return nil, err
	}
	if len(forecasts) == 0 {
		return nil, report.ErrNoForecasts
	}

	return &ResolvedData{Stores: stores, SKUs: skus, Forecasts: forecasts}, nil
}

// ResolveSales selects the sales facts for the statistics path: rows whose
// store and SKU are in the resolved sets and whose date falls within the
// request window (inclusive). Fails with report.ErrNoSales when empty.
func (r *Resolver) ResolveSales(ctx context.Context, req *report.Request, skus []forecasting.SKU) ([]forecasting.Sale, error) {
	var from, to = req.ForecastDate, req.ForecastDate
	if req.HasWindow() {
		from, to = *req.FromDate, *req.ToDate
	}
	sales, err := r.sales.FindInRange(ctx, req.StoreIDs, skuIDs(skus), from, to)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, report.ErrNoSales
	}
	return sales, nil
}

// resolveSKUs applies whichever taxonomy filters the request carries.
// When no filter value is present at all, resolution degrades to all SKUs.
func (r *Resolver) resolveSKUs(ctx context.Context, req *report.Request) ([]forecasting.SKU, error) {
	filter := forecasting.SKUFilter{
		IDs:           req.SKUIDs,
		Groups:        req.Groups,
		Categories:    req.Categories,
		Subcategories: req.Subcategories,
	}
	return r.skus.Find(ctx, filter)
}

func skuIDs(skus []forecasting.SKU) []int64 {
	ids := make([]int64, len(skus))
	for i, s := range skus {
		ids[i] = s.ID
	}
	return ids
}
