package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/shared"
)

func TestComputeStatistics_DerivedMetrics(t *testing.T) {
	day := shared.NewDate(2024, time.March, 1)
	forecasts := []forecasting.Forecast{
		{
			StoreID:      10,
			SKUID:        5,
			ForecastDate: day,
			Payload: forecasting.ForecastPayload{
				{Date: shared.NewDate(2024, time.March, 2), Target: 4},
				{Date: shared.NewDate(2024, time.March, 3), Target: 6},
			},
		},
	}
	sales := []forecasting.Sale{
		{
			StoreID:    10,
			SKUID:      5,
			Date:       shared.NewDate(2024, time.March, 2),
			SalesUnits: 8, SalesUnitsPromo: 2,
			SalesRub: decimal.NewFromInt(400), SalesRubPromo: decimal.NewFromInt(100),
		},
		{
			StoreID:    10,
			SKUID:      5,
			Date:       shared.NewDate(2024, time.March, 3),
			SalesUnits: 12, SalesUnitsPromo: 0,
			SalesRub: decimal.NewFromInt(600), SalesRubPromo: decimal.Zero,
		},
	}

	rows := ComputeStatistics(forecasts, sales)

	assert.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, int64(10), row.StoreID)
	assert.Equal(t, int64(5), row.SKUID)
	assert.Equal(t, int64(10), row.TotalForecast)
	assert.Equal(t, int64(20), row.SalesUnits)
	assert.Equal(t, int64(2), row.SalesUnitsPromo)
	assert.True(t, decimal.NewFromInt(1000).Equal(row.SalesRub))
	// price = 1000 / 20
	assert.True(t, decimal.NewFromInt(50).Equal(row.Price))
	// quantity_difference = 20 - 10
	assert.Equal(t, int64(10), row.QuantityDifference)
	// amount_difference = 10 * 50
	assert.True(t, decimal.NewFromInt(500).Equal(row.AmountDifference))
	// WAPE = 10 / 20
	assert.True(t, decimal.NewFromFloat(0.5).Equal(row.WAPE))
}

func TestComputeStatistics_ZeroUnitsDenominatorGuard(t *testing.T) {
	day := shared.NewDate(2024, time.March, 1)
	forecasts := []forecasting.Forecast{
		{
			StoreID:      10,
			SKUID:        5,
			ForecastDate: day,
			Payload:      forecasting.ForecastPayload{{Date: day, Target: 3}},
		},
	}
	sales := []forecasting.Sale{
		{StoreID: 10, SKUID: 5, Date: day, SalesUnits: 0, SalesRub: decimal.NewFromInt(150)},
	}

	rows := ComputeStatistics(forecasts, sales)

	assert.Len(t, rows, 1)
	// denominator replaced by 1: price = 150, WAPE = (0-3)/1
	assert.True(t, decimal.NewFromInt(150).Equal(rows[0].Price))
	assert.Equal(t, int64(-3), rows[0].QuantityDifference)
	assert.True(t, decimal.NewFromInt(-3).Equal(rows[0].WAPE))
	assert.True(t, decimal.NewFromInt(-450).Equal(rows[0].AmountDifference))
}

func TestComputeStatistics_InnerJoinDropsUnmatchedPairs(t *testing.T) {
	day := shared.NewDate(2024, time.March, 1)
	forecasts := []forecasting.Forecast{
		{StoreID: 10, SKUID: 5, ForecastDate: day, Payload: forecasting.ForecastPayload{{Date: day, Target: 3}}},
		{StoreID: 10, SKUID: 6, ForecastDate: day, Payload: forecasting.ForecastPayload{{Date: day, Target: 4}}},
	}
	sales := []forecasting.Sale{
		{StoreID: 10, SKUID: 5, Date: day, SalesUnits: 3, SalesRub: decimal.NewFromInt(30)},
		{StoreID: 20, SKUID: 5, Date: day, SalesUnits: 9, SalesRub: decimal.NewFromInt(90)},
	}

	rows := ComputeStatistics(forecasts, sales)

	assert.Len(t, rows, 1)
	assert.Equal(t, int64(10), rows[0].StoreID)
	assert.Equal(t, int64(5), rows[0].SKUID)
}

func TestComputeStatistics_RowsSorted(t *testing.T) {
	day := shared.NewDate(2024, time.March, 1)
	payload := forecasting.ForecastPayload{{Date: day, Target: 1}}
	forecasts := []forecasting.Forecast{
		{StoreID: 20, SKUID: 5, ForecastDate: day, Payload: payload},
		{StoreID: 10, SKUID: 6, ForecastDate: day, Payload: payload},
		{StoreID: 10, SKUID: 5, ForecastDate: day, Payload: payload},
	}
	sales := []forecasting.Sale{
		{StoreID: 20, SKUID: 5, Date: day, SalesUnits: 1, SalesRub: decimal.NewFromInt(1)},
		{StoreID: 10, SKUID: 6, Date: day, SalesUnits: 1, SalesRub: decimal.NewFromInt(1)},
		{StoreID: 10, SKUID: 5, Date: day, SalesUnits: 1, SalesRub: decimal.NewFromInt(1)},
	}

	rows := ComputeStatistics(forecasts, sales)

	assert.Len(t, rows, 3)
	assert.Equal(t, int64(10), rows[0].StoreID)
	assert.Equal(t, int64(5), rows[0].SKUID)
	assert.Equal(t, int64(10), rows[1].StoreID)
	assert.Equal(t, int64(6), rows[1].SKUID)
	assert.Equal(t, int64(20), rows[2].StoreID)
}

func TestStatisticsTable_KeepsTechnicalColumnNames(t *testing.T) {
	rows := []StatRow{{StoreID: 10, SKUID: 5, TotalForecast: 3, Price: decimal.NewFromInt(7)}}

	table := StatisticsTable(rows)

	assert.Equal(t, []string{
		"store_id", "sku_id", "target",
		"sales_units", "sales_units_promo", "sales_rub", "sales_rub_promo",
		"price", "quantity_difference", "amount_difference", "WAPE",
	}, table.Columns)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, int64(10), table.Rows[0][0])
	assert.Equal(t, "7", table.Rows[0][7])
}
