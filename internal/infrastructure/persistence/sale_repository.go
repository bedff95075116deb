package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
	"github.com/demandcast/backend/internal/infrastructure/persistence/models"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindAll lists sales facts matching the filter with the total match count.
func (r *GormSaleRepository) FindAll(ctx context.Context, filter forecasting.SaleFilter, page forecasting.Page) ([]forecasting.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})

	if len(filter.StoreIDs) > 0 {
		query = query.Where("store_id IN ?", filter.StoreIDs)
	}
	if len(filter.SKUIDs) > 0 {
		query = query.Where("sku_id IN ?", filter.SKUIDs)
	}
	if !filter.DateFrom.IsZero() {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query = query.Where("date <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SaleModel
	if err := query.
		Order("date").
		Order("store_id").
		Order("sku_id").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toSales(rows), total, nil
}

// FindInRange lists the sales facts for the given store and SKU sets whose
// date falls inside [from, to].
func (r *GormSaleRepository) FindInRange(ctx context.Context, storeIDs, skuIDs []int64, from, to shared.Date) ([]forecasting.Sale, error) {
	if len(storeIDs) == 0 || len(skuIDs) == 0 {
		return []forecasting.Sale{}, nil
	}
	var rows []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("store_id IN ?", storeIDs).
		Where("sku_id IN ?", skuIDs).
		Where("date BETWEEN ? AND ?", from, to).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSales(rows), nil
}

func toSales(rows []models.SaleModel) []forecasting.Sale {
	sales := make([]forecasting.Sale, len(rows))
	for i := range rows {
		sales[i] = *rows[i].ToDomain()
	}
	return sales
}
