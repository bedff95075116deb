package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
	"github.com/demandcast/backend/internal/infrastructure/persistence/models"
)

// GormSKURepository implements SKURepository using GORM
type GormSKURepository struct {
	db *gorm.DB
}

// NewGormSKURepository creates a new GormSKURepository
func NewGormSKURepository(db *gorm.DB) *GormSKURepository {
	return &GormSKURepository{db: db}
}

// FindByID finds a SKU by its ID
func (r *GormSKURepository) FindByID(ctx context.Context, id int64) (*forecasting.SKU, error) {
	var model models.SKUModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Find lists every SKU matching the filter without pagination. An empty
// filter selects the whole catalog.
func (r *GormSKURepository) Find(ctx context.Context, filter forecasting.SKUFilter) ([]forecasting.SKU, error) {
	var rows []models.SKUModel
	if err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSKUs(rows), nil
}

// FindAll lists SKUs matching the filter with the total match count.
func (r *GormSKURepository) FindAll(ctx context.Context, filter forecasting.SKUFilter, page forecasting.Page) ([]forecasting.SKU, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SKUModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SKUModel
	if err := query.
		Order("id").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toSKUs(rows), total, nil
}

// DistinctGroups lists every distinct group in the SKU taxonomy.
func (r *GormSKURepository) DistinctGroups(ctx context.Context) ([]string, error) {
	var groups []string
	// "group" is a reserved word, map-based conditions keep it quoted.
	if err := r.db.WithContext(ctx).
		Model(&models.SKUModel{}).
		Distinct().
		Order(clause.OrderByColumn{Column: clause.Column{Name: "group"}}).
		Pluck("group", &groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DistinctCategories lists distinct categories, optionally narrowed to the
// given groups.
func (r *GormSKURepository) DistinctCategories(ctx context.Context, groups []string) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.SKUModel{})
	if len(groups) > 0 {
		query = query.Where(map[string]any{"group": groups})
	}

	var categories []string
	if err := query.
		Distinct().
		Order(clause.OrderByColumn{Column: clause.Column{Name: "category"}}).
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DistinctSubcategories lists distinct subcategories, optionally narrowed
// to the given groups and categories.
func (r *GormSKURepository) DistinctSubcategories(ctx context.Context, groups, categories []string) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.SKUModel{})
	if len(groups) > 0 {
		query = query.Where(map[string]any{"group": groups})
	}
	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}

	var subcategories []string
	if err := query.
		Distinct().
		Order(clause.OrderByColumn{Column: clause.Column{Name: "subcategory"}}).
		Pluck("subcategory", &subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *GormSKURepository) applyFilter(query *gorm.DB, filter forecasting.SKUFilter) *gorm.DB {
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if len(filter.Groups) > 0 {
		query = query.Where(map[string]any{"group": filter.Groups})
	}
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if len(filter.Subcategories) > 0 {
		query = query.Where("subcategory IN ?", filter.Subcategories)
	}
	return query
}

func toSKUs(rows []models.SKUModel) []forecasting.SKU {
	skus := make([]forecasting.SKU, len(rows))
	for i := range rows {
		skus[i] = *rows[i].ToDomain()
	}
	return skus
}
