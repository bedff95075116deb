package catalog

import (
	"context"
	"sort"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
)

// ForecastService serves the forecast fact list and the bulk upload feed.
type ForecastService struct {
	forecastRepo forecasting.ForecastRepository
}

// NewForecastService creates a new ForecastService
func NewForecastService(forecastRepo forecasting.ForecastRepository) *ForecastService {
	return &ForecastService{forecastRepo: forecastRepo}
}

// List retrieves forecast facts matching the filter with the total count.
func (s *ForecastService) List(ctx context.Context, filter ForecastListFilter) ([]ForecastResponse, int64, error) {
	domainFilter := forecasting.ForecastFilter{
		StoreIDs: filter.StoreIDs,
		SKUIDs:   filter.SKUIDs,
	}
	if filter.ForecastDate != "" {
		date, err := shared.ParseDate(filter.ForecastDate)
		if err != nil {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
		domainFilter.ForecastDate = date
	}

	forecasts, total, err := s.forecastRepo.FindAll(ctx, domainFilter, toPage(filter.Page, filter.PageSize))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ForecastResponse, len(forecasts))
	for i := range forecasts {
		responses[i] = ToForecastResponse(&forecasts[i])
	}
	return responses, total, nil
}

type forecastKey struct {
	StoreID      int64
	SKUID        int64
	ForecastDate string
}

// Ingest stores a forecast batch. Items sharing the same
// (store, sku, forecast_date) key are folded into one row first, summing
// targets per date; each folded row is then upserted, merging into any row
// already persisted for the key.
func (s *ForecastService) Ingest(ctx context.Context, req IngestForecastsRequest) (*IngestForecastsResponse, error) {
	folded := make(map[forecastKey]*forecasting.Forecast, len(req.Data))
	order := make([]forecastKey, 0, len(req.Data))

	for _, item := range req.Data {
		key := forecastKey{
			StoreID:      item.StoreID,
			SKUID:        item.SKUID,
			ForecastDate: item.ForecastDate.String(),
		}
		entries := make([]forecasting.ForecastEntry, len(item.Forecast))
		for i, e := range item.Forecast {
			entries[i] = forecasting.ForecastEntry{Date: e.Date, Target: e.Target}
		}

		row, ok := folded[key]
		if !ok {
			row = &forecasting.Forecast{
				StoreID:      item.StoreID,
				SKUID:        item.SKUID,
				ForecastDate: item.ForecastDate,
			}
			folded[key] = row
			order = append(order, key)
		}
		row.Payload = row.Payload.Merge(entries...)
	}

	// Deterministic write order keeps retries and logs comparable.
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		if a.SKUID != b.SKUID {
			return a.SKUID < b.SKUID
		}
		return a.ForecastDate < b.ForecastDate
	})

	for _, key := range order {
		if err := s.forecastRepo.Upsert(ctx, folded[key]); err != nil {
			return nil, err
		}
	}

	return &IngestForecastsResponse{Received: len(req.Data), Stored: len(order)}, nil
}
