package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/demandcast/backend/internal/application/catalog"
	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
	"github.com/demandcast/backend/internal/interfaces/http/dto"
)

// MockStoreRepository is a mock implementation of forecasting.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id int64) (*forecasting.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecasting.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDs(ctx context.Context, ids []int64) ([]forecasting.Store, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]forecasting.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, filter forecasting.StoreFilter, page forecasting.Page) ([]forecasting.Store, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]forecasting.Store), args.Get(1).(int64), args.Error(2)
}

func newStoreTestServer(repo *MockStoreRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewStoreHandler(catalogapp.NewStoreService(repo)).RegisterRoutes(api)
	return engine
}

func TestStoreHandler_List(t *testing.T) {
	repo := new(MockStoreRepository)
	repo.On("FindAll", mock.Anything, forecasting.StoreFilter{City: "Moscow"}, forecasting.Page{Number: 1, Size: 50}).
		Return([]forecasting.Store{
			{ID: 7, Name: "Central", City: "Moscow", IsActive: true},
		}, int64(1), nil)

	engine := newStoreTestServer(repo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stores?city=Moscow", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)

	stores := resp.Data.([]any)
	require.Len(t, stores, 1)
	assert.Equal(t, "Central", stores[0].(map[string]any)["store"])
	repo.AssertExpectations(t)
}

func TestStoreHandler_GetByID(t *testing.T) {
	repo := new(MockStoreRepository)
	repo.On("FindByID", mock.Anything, int64(7)).
		Return(&forecasting.Store{ID: 7, Name: "Central", City: "Moscow"}, nil)

	engine := newStoreTestServer(repo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stores/7", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Central", resp.Data.(map[string]any)["store"])
}

func TestStoreHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockStoreRepository)
	repo.On("FindByID", mock.Anything, int64(999)).Return(nil, shared.ErrNotFound)

	engine := newStoreTestServer(repo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stores/999", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestStoreHandler_GetByID_InvalidID(t *testing.T) {
	engine := newStoreTestServer(new(MockStoreRepository))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stores/abc", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
