package catalog

import (
	"context"

	"github.com/demandcast/backend/internal/domain/forecasting"
)

// SKUService serves the read-only SKU catalog and its taxonomy.
type SKUService struct {
	skuRepo forecasting.SKURepository
}

// NewSKUService creates a new SKUService
func NewSKUService(skuRepo forecasting.SKURepository) *SKUService {
	return &SKUService{skuRepo: skuRepo}
}

// GetByID retrieves a single SKU.
func (s *SKUService) GetByID(ctx context.Context, id int64) (*SKUResponse, error) {
	sku, err := s.skuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSKUResponse(sku)
	return &resp, nil
}

// List retrieves SKUs matching the taxonomy filter with the total count.
func (s *SKUService) List(ctx context.Context, filter SKUListFilter) ([]SKUResponse, int64, error) {
	domainFilter := forecasting.SKUFilter{
		Groups:        filter.Groups,
		Categories:    filter.Categories,
		Subcategories: filter.Subcategories,
	}
	skus, total, err := s.skuRepo.FindAll(ctx, domainFilter, toPage(filter.Page, filter.PageSize))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SKUResponse, len(skus))
	for i := range skus {
		responses[i] = ToSKUResponse(&skus[i])
	}
	return responses, total, nil
}

// Groups lists every distinct SKU group.
func (s *SKUService) Groups(ctx context.Context) ([]string, error) {
	return s.skuRepo.DistinctGroups(ctx)
}

// Categories lists distinct categories, optionally narrowed to groups.
func (s *SKUService) Categories(ctx context.Context, filter TaxonomyFilter) ([]string, error) {
	return s.skuRepo.DistinctCategories(ctx, filter.Groups)
}

// Subcategories lists distinct subcategories, optionally narrowed to groups
// and categories.
func (s *SKUService) Subcategories(ctx context.Context, filter TaxonomyFilter) ([]string, error) {
	return s.skuRepo.DistinctSubcategories(ctx, filter.Groups, filter.Categories)
}
