package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
)

// MockSKURepository is a mock implementation of forecasting.SKURepository
type MockSKURepository struct {
	mock.Mock
}

func (m *MockSKURepository) FindByID(ctx context.Context, id int64) (*forecasting.SKU, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecasting.SKU), args.Error(1)
}

func (m *MockSKURepository) Find(ctx context.Context, filter forecasting.SKUFilter) ([]forecasting.SKU, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]forecasting.SKU), args.Error(1)
}

func (m *MockSKURepository) FindAll(ctx context.Context, filter forecasting.SKUFilter, page forecasting.Page) ([]forecasting.SKU, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]forecasting.SKU), args.Get(1).(int64), args.Error(2)
}

func (m *MockSKURepository) DistinctGroups(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSKURepository) DistinctCategories(ctx context.Context, groups []string) ([]string, error) {
	args := m.Called(ctx, groups)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSKURepository) DistinctSubcategories(ctx context.Context, groups, categories []string) ([]string, error) {
	args := m.Called(ctx, groups, categories)
	return args.Get(0).([]string), args.Error(1)
}

func TestSKUService_List(t *testing.T) {
	repo := new(MockSKURepository)
	service := NewSKUService(repo)
	ctx := context.Background()

	skus := []forecasting.SKU{
		{ID: 5, Group: "dairy", Category: "milk", Subcategory: "uht", Name: "Milk 3.2% 1L", UOM: forecasting.UOMByPiece},
	}
	repo.On("FindAll", ctx,
		forecasting.SKUFilter{Groups: []string{"dairy"}},
		forecasting.Page{Number: 2, Size: 10},
	).Return(skus, int64(11), nil)

	responses, total, err := service.List(ctx, SKUListFilter{Groups: []string{"dairy"}, Page: 2, PageSize: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), total)
	assert.Len(t, responses, 1)
	assert.Equal(t, "Milk 3.2% 1L", responses[0].Name)
	repo.AssertExpectations(t)
}

func TestSKUService_GetByID_NotFound(t *testing.T) {
	repo := new(MockSKURepository)
	service := NewSKUService(repo)

	repo.On("FindByID", mock.Anything, int64(404)).Return(nil, shared.ErrNotFound)

	resp, err := service.GetByID(context.Background(), 404)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSKUService_Taxonomy(t *testing.T) {
	repo := new(MockSKURepository)
	service := NewSKUService(repo)
	ctx := context.Background()

	repo.On("DistinctGroups", ctx).Return([]string{"bakery", "dairy"}, nil)
	repo.On("DistinctCategories", ctx, []string{"dairy"}).Return([]string{"milk"}, nil)
	repo.On("DistinctSubcategories", ctx, []string{"dairy"}, []string{"milk"}).Return([]string{"uht"}, nil)

	groups, err := service.Groups(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"bakery", "dairy"}, groups)

	categories, err := service.Categories(ctx, TaxonomyFilter{Groups: []string{"dairy"}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"milk"}, categories)

	subcategories, err := service.Subcategories(ctx, TaxonomyFilter{Groups: []string{"dairy"}, Categories: []string{"milk"}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"uht"}, subcategories)
	repo.AssertExpectations(t)
}
