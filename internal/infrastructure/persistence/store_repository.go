package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
	"github.com/demandcast/backend/internal/infrastructure/persistence/models"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id int64) (*forecasting.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the stores whose IDs are in the given set. Unknown IDs
// are skipped, not an error.
func (r *GormStoreRepository) FindByIDs(ctx context.Context, ids []int64) ([]forecasting.Store, error) {
	if len(ids) == 0 {
		return []forecasting.Store{}, nil
	}
	var rows []models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStores(rows), nil
}

// FindAll lists stores matching the filter with the total match count.
func (r *GormStoreRepository) FindAll(ctx context.Context, filter forecasting.StoreFilter, page forecasting.Page) ([]forecasting.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StoreModel{})

	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Division != "" {
		query = query.Where("division = ?", filter.Division)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.StoreModel
	if err := query.
		Order("id").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toStores(rows), total, nil
}

func toStores(rows []models.StoreModel) []forecasting.Store {
	stores := make([]forecasting.Store, len(rows))
	for i := range rows {
		stores[i] = *rows[i].ToDomain()
	}
	return stores
}
