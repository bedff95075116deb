package catalog

import (
	"context"

	"github.com/demandcast/backend/internal/domain/forecasting"
)

// StoreService serves the read-only store catalog.
type StoreService struct {
	storeRepo forecasting.StoreRepository
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo forecasting.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// GetByID retrieves a single store.
func (s *StoreService) GetByID(ctx context.Context, id int64) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStoreResponse(store)
	return &resp, nil
}

// List retrieves stores matching the filter with the paired total count.
func (s *StoreService) List(ctx context.Context, filter StoreListFilter) ([]StoreResponse, int64, error) {
	domainFilter := forecasting.StoreFilter{
		City:     filter.City,
		Division: filter.Division,
		IsActive: filter.IsActive,
	}
	stores, total, err := s.storeRepo.FindAll(ctx, domainFilter, toPage(filter.Page, filter.PageSize))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses, total, nil
}
