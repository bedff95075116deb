package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
	"github.com/demandcast/backend/internal/infrastructure/persistence/models"
)

func setupForecastTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ForecastModel{})
	require.NoError(t, err)

	return db
}

func TestForecastRepository_Upsert_CreatesNewRow(t *testing.T) {
	db := setupForecastTestDB(t)
	repo := NewGormForecastRepository(db)
	ctx := context.Background()

	day := shared.NewDate(2024, time.March, 1)
	forecast := &forecasting.Forecast{
		StoreID:      10,
		SKUID:        5,
		ForecastDate: day,
		Payload: forecasting.ForecastPayload{
			{Date: shared.NewDate(2024, time.March, 2), Target: 4},
		},
	}

	require.NoError(t, repo.Upsert(ctx, forecast))
	assert.NotZero(t, forecast.ID)

	found, err := repo.FindForDate(ctx, day, []int64{10}, []int64{5})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(4), found[0].Payload[0].Target)
}

func TestForecastRepository_Upsert_MergesIntoExistingRow(t *testing.T) {
	db := setupForecastTestDB(t)
	repo := NewGormForecastRepository(db)
	ctx := context.Background()

	day := shared.NewDate(2024, time.March, 1)
	march2 := shared.NewDate(2024, time.March, 2)
	march3 := shared.NewDate(2024, time.March, 3)

	first := &forecasting.Forecast{
		StoreID: 10, SKUID: 5, ForecastDate: day,
		Payload: forecasting.ForecastPayload{{Date: march2, Target: 4}},
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &forecasting.Forecast{
		StoreID: 10, SKUID: 5, ForecastDate: day,
		Payload: forecasting.ForecastPayload{
			{Date: march2, Target: 3},
			{Date: march3, Target: 7},
		},
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	found, err := repo.FindForDate(ctx, day, []int64{10}, []int64{5})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Len(t, found[0].Payload, 2)
	assert.Equal(t, int64(7), found[0].Payload[0].Target) // march2: 4+3
	assert.Equal(t, int64(7), found[0].Payload[1].Target) // march3
	assert.Equal(t, "2024-03-02", found[0].Payload[0].Date.String())
	assert.Equal(t, "2024-03-03", found[0].Payload[1].Date.String())
}

func TestForecastRepository_FindForDate_FiltersByKey(t *testing.T) {
	db := setupForecastTestDB(t)
	repo := NewGormForecastRepository(db)
	ctx := context.Background()

	day := shared.NewDate(2024, time.March, 1)
	otherDay := shared.NewDate(2024, time.March, 2)
	payload := forecasting.ForecastPayload{{Date: shared.NewDate(2024, time.March, 3), Target: 1}}

	for _, f := range []*forecasting.Forecast{
		{StoreID: 10, SKUID: 5, ForecastDate: day, Payload: payload},
		{StoreID: 20, SKUID: 5, ForecastDate: day, Payload: payload},
		{StoreID: 10, SKUID: 5, ForecastDate: otherDay, Payload: payload},
	} {
		require.NoError(t, repo.Upsert(ctx, f))
	}

	found, err := repo.FindForDate(ctx, day, []int64{10}, []int64{5})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(10), found[0].StoreID)

	empty, err := repo.FindForDate(ctx, day, nil, []int64{5})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestForecastRepository_FindAll_Paginates(t *testing.T) {
	db := setupForecastTestDB(t)
	repo := NewGormForecastRepository(db)
	ctx := context.Background()

	day := shared.NewDate(2024, time.March, 1)
	payload := forecasting.ForecastPayload{{Date: shared.NewDate(2024, time.March, 3), Target: 1}}
	for storeID := int64(1); storeID <= 5; storeID++ {
		require.NoError(t, repo.Upsert(ctx, &forecasting.Forecast{
			StoreID: storeID, SKUID: 5, ForecastDate: day, Payload: payload,
		}))
	}

	page, total, err := repo.FindAll(ctx,
		forecasting.ForecastFilter{ForecastDate: day},
		forecasting.Page{Number: 2, Size: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].StoreID)
	assert.Equal(t, int64(4), page[1].StoreID)
}
