package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
	"github.com/demandcast/backend/internal/infrastructure/persistence/models"
)

// GormForecastRepository implements ForecastRepository using GORM
type GormForecastRepository struct {
	db *gorm.DB
}

// NewGormForecastRepository creates a new GormForecastRepository
func NewGormForecastRepository(db *gorm.DB) *GormForecastRepository {
	return &GormForecastRepository{db: db}
}

// FindAll lists forecast facts matching the filter with the total count.
func (r *GormForecastRepository) FindAll(ctx context.Context, filter forecasting.ForecastFilter, page forecasting.Page) ([]forecasting.Forecast, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ForecastModel{})

	if len(filter.StoreIDs) > 0 {
		query = query.Where("store_id IN ?", filter.StoreIDs)
	}
	if len(filter.SKUIDs) > 0 {
		query = query.Where("sku_id IN ?", filter.SKUIDs)
	}
	if !filter.ForecastDate.IsZero() {
		query = query.Where("forecast_date = ?", filter.ForecastDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ForecastModel
	if err := query.
		Order("forecast_date").
		Order("store_id").
		Order("sku_id").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toForecasts(rows), total, nil
}

// FindForDate lists the forecasts issued on forecastDate for the given
// store and SKU sets.
func (r *GormForecastRepository) FindForDate(ctx context.Context, forecastDate shared.Date, storeIDs, skuIDs []int64) ([]forecasting.Forecast, error) {
	if len(storeIDs) == 0 || len(skuIDs) == 0 {
		return []forecasting.Forecast{}, nil
	}
	var rows []models.ForecastModel
	if err := r.db.WithContext(ctx).
		Where("forecast_date = ?", forecastDate).
		Where("store_id IN ?", storeIDs).
		Where("sku_id IN ?", skuIDs).
		Order("sku_id").
		Order("store_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toForecasts(rows), nil
}

// Upsert inserts the forecast or, when a row for the same
// (store, sku, forecast_date) already exists, merges the payload entries
// into it inside a transaction.
func (r *GormForecastRepository) Upsert(ctx context.Context, forecast *forecasting.Forecast) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ForecastModel
		err := tx.
			Where("store_id = ? AND sku_id = ? AND forecast_date = ?",
				forecast.StoreID, forecast.SKUID, forecast.ForecastDate).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			model := models.ForecastModelFromDomain(forecast)
			if err := tx.Create(model).Error; err != nil {
				return err
			}
			forecast.ID = model.ID
			return nil
		}
		if err != nil {
			return err
		}

		existing.Forecast = existing.Forecast.Merge(forecast.Payload...)
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		forecast.ID = existing.ID
		forecast.Payload = existing.Forecast
		return nil
	})
}

func toForecasts(rows []models.ForecastModel) []forecasting.Forecast {
	forecasts := make([]forecasting.Forecast, len(rows))
	for i := range rows {
		forecasts[i] = *rows[i].ToDomain()
	}
	return forecasts
}
