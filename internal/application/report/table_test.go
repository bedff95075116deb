package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/report"
	"github.com/demandcast/backend/internal/domain/shared"
)

func testStore() forecasting.Store {
	return forecasting.Store{
		ID:         10,
		Name:       "Central",
		City:       "Moscow",
		Division:   "North",
		TypeFormat: 1,
		Loc:        2,
		Size:       1200,
		IsActive:   true,
		Timezone:   "Europe/Moscow",
	}
}

func testSKU() forecasting.SKU {
	return forecasting.SKU{
		ID:          5,
		Group:       "dairy",
		Category:    "milk",
		Subcategory: "uht",
		Name:        "Milk 3.2% 1L",
		UOM:         forecasting.UOMByPiece,
	}
}

func TestReshape_SumsCollidingDates(t *testing.T) {
	forecastDate := shared.NewDate(2024, time.March, 1)
	target := shared.NewDate(2024, time.March, 4)

	forecasts := []forecasting.Forecast{
		{
			StoreID:      10,
			SKUID:        5,
			ForecastDate: forecastDate,
			Payload: forecasting.ForecastPayload{
				{Date: target, Target: 5},
			},
		},
		{
			StoreID:      10,
			SKUID:        5,
			ForecastDate: forecastDate,
			Payload: forecasting.ForecastPayload{
				{Date: target, Target: 7},
			},
		},
	}
	req := &report.Request{StoreIDs: []int64{10}, ForecastDate: forecastDate}

	table := Reshape(forecasts, []forecasting.SKU{testSKU()}, []forecasting.Store{testStore()}, req)

	assert.Len(t, table.Rows, 1)
	assert.Equal(t, "2024-03-04", table.Columns[len(table.Columns)-1])
	row := table.Rows[0]
	assert.Equal(t, int64(12), row[len(row)-1])
}

func TestReshape_ColumnOrderAndLabels(t *testing.T) {
	forecastDate := shared.NewDate(2024, time.March, 1)
	forecasts := []forecasting.Forecast{
		{
			StoreID:      10,
			SKUID:        5,
			ForecastDate: forecastDate,
			Payload: forecasting.ForecastPayload{
				{Date: shared.NewDate(2024, time.March, 3), Target: 2},
				{Date: shared.NewDate(2024, time.March, 2), Target: 1},
			},
		},
	}
	req := &report.Request{StoreIDs: []int64{10}, ForecastDate: forecastDate}

	table := Reshape(forecasts, []forecasting.SKU{testSKU()}, []forecasting.Store{testStore()}, req)

	assert.Equal(t, []string{
		"Store name", "City", "Division", "Store format", "Store location", "Store size", "Active", "Timezone",
		"Group", "Category", "Subcategory", "Product name", "Unit of measure",
		"Forecast date",
		"2024-03-02", "2024-03-03",
	}, table.Columns)

	assert.NotContains(t, table.Columns, "store_id")
	assert.NotContains(t, table.Columns, "sku_id")

	row := table.Rows[0]
	assert.Equal(t, "Central", row[0])
	assert.Equal(t, "dairy", row[8])
	assert.Equal(t, "2024-03-01", row[13])
	assert.Equal(t, int64(1), row[14])
	assert.Equal(t, int64(2), row[15])
}

func TestReshape_WindowLimitsDateColumns(t *testing.T) {
	forecastDate := shared.NewDate(2024, time.March, 1)
	from := shared.NewDate(2024, time.March, 2)
	to := shared.NewDate(2024, time.March, 3)
	forecasts := []forecasting.Forecast{
		{
			StoreID:      10,
			SKUID:        5,
			ForecastDate: forecastDate,
			Payload: forecasting.ForecastPayload{
				{Date: shared.NewDate(2024, time.March, 1), Target: 1},
				{Date: shared.NewDate(2024, time.March, 2), Target: 2},
				{Date: shared.NewDate(2024, time.March, 3), Target: 3},
				{Date: shared.NewDate(2024, time.March, 4), Target: 4},
			},
		},
	}
	req := &report.Request{
		StoreIDs:     []int64{10},
		ForecastDate: forecastDate,
		FromDate:     &from,
		ToDate:       &to,
	}

	table := Reshape(forecasts, []forecasting.SKU{testSKU()}, []forecasting.Store{testStore()}, req)

	assert.Equal(t, []string{"2024-03-02", "2024-03-03"}, table.Columns[len(table.Columns)-2:])
	row := table.Rows[0]
	assert.Equal(t, int64(2), row[len(row)-2])
	assert.Equal(t, int64(3), row[len(row)-1])
}

func TestReshape_MissingDimensionsFillNil(t *testing.T) {
	forecastDate := shared.NewDate(2024, time.March, 1)
	forecasts := []forecasting.Forecast{
		{
			StoreID:      99, // not in the resolved store set
			SKUID:        5,
			ForecastDate: forecastDate,
			Payload: forecasting.ForecastPayload{
				{Date: shared.NewDate(2024, time.March, 2), Target: 3},
			},
		},
	}
	req := &report.Request{StoreIDs: []int64{99}, ForecastDate: forecastDate}

	table := Reshape(forecasts, []forecasting.SKU{testSKU()}, nil, req)

	row := table.Rows[0]
	for i := 0; i < 8; i++ {
		assert.Nil(t, row[i])
	}
	assert.Equal(t, "dairy", row[8])
}

func TestReshape_RowsSortedByKey(t *testing.T) {
	forecastDate := shared.NewDate(2024, time.March, 1)
	payload := forecasting.ForecastPayload{{Date: shared.NewDate(2024, time.March, 2), Target: 1}}
	forecasts := []forecasting.Forecast{
		{StoreID: 20, SKUID: 7, ForecastDate: forecastDate, Payload: payload},
		{StoreID: 10, SKUID: 7, ForecastDate: forecastDate, Payload: payload},
		{StoreID: 10, SKUID: 5, ForecastDate: forecastDate, Payload: payload},
	}
	skus := []forecasting.SKU{
		{ID: 5, Name: "Milk"},
		{ID: 7, Name: "Butter"},
	}
	stores := []forecasting.Store{
		{ID: 10, Name: "Central"},
		{ID: 20, Name: "East"},
	}
	req := &report.Request{StoreIDs: []int64{10, 20}, ForecastDate: forecastDate}

	table := Reshape(forecasts, skus, stores, req)

	assert.Len(t, table.Rows, 3)
	// sku asc, then store asc
	assert.Equal(t, "Milk", table.Rows[0][11])
	assert.Equal(t, "Central", table.Rows[0][0])
	assert.Equal(t, "Butter", table.Rows[1][11])
	assert.Equal(t, "Central", table.Rows[1][0])
	assert.Equal(t, "Butter", table.Rows[2][11])
	assert.Equal(t, "East", table.Rows[2][0])
}
