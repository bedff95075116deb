package catalog

import (
	"context"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
)

// SaleService serves the read-only sales fact list.
type SaleService struct {
	saleRepo forecasting.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo forecasting.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// List retrieves sales facts matching the filter with the total count.
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := forecasting.SaleFilter{
		StoreIDs: filter.StoreIDs,
		SKUIDs:   filter.SKUIDs,
	}
	if filter.DateFrom != "" {
		from, err := shared.ParseDate(filter.DateFrom)
		if err != nil {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
		domainFilter.DateFrom = from
	}
	if filter.DateTo != "" {
		to, err := shared.ParseDate(filter.DateTo)
		if err != nil {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
		domainFilter.DateTo = to
	}

	sales, total, err := s.saleRepo.FindAll(ctx, domainFilter, toPage(filter.Page, filter.PageSize))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses, total, nil
}
