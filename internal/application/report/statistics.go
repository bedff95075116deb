package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/demandcast/backend/internal/domain/forecasting"
)

// StatRow is one forecast-accuracy row per (store, SKU) pair.
type StatRow struct {
	StoreID            int64           `json:"store_id"`
	SKUID              int64           `json:"sku_id"`
	TotalForecast      int64           `json:"target"`
	SalesUnits         int64           `json:"sales_units"`
	SalesUnitsPromo    int64           `json:"sales_units_promo"`
	SalesRub           decimal.Decimal `json:"sales_rub"`
	SalesRubPromo      decimal.Decimal `json:"sales_rub_promo"`
	Price              decimal.Decimal `json:"price"`
	QuantityDifference int64           `json:"quantity_difference"`
	AmountDifference   decimal.Decimal `json:"amount_difference"`
	WAPE               decimal.Decimal `json:"WAPE"`
}

type pairKey struct {
	StoreID int64
	SKUID   int64
}

// ComputeStatistics aggregates forecast and sales totals per (store, SKU)
// pair and derives price, quantity/amount variance and WAPE. Pairs present
// on only one side are dropped (inner join). A zero sales_units denominator
// is replaced by 1 for both price and WAPE, so zero actuals never abort the
// computation.
func ComputeStatistics(forecasts []forecasting.Forecast, sales []forecasting.Sale) []StatRow {
	forecastTotals := make(map[pairKey]int64)
	for _, f := range forecasts {
		key := pairKey{StoreID: f.StoreID, SKUID: f.SKUID}
		for _, entry := range f.Payload {
			forecastTotals[key] += entry.Target
		}
	}

	type saleTotals struct {
		Units      int64
		UnitsPromo int64
		Rub        decimal.Decimal
		RubPromo   decimal.Decimal
	}
	salesByPair := make(map[pairKey]*saleTotals)
	for _, s := range sales {
		key := pairKey{StoreID: s.StoreID, SKUID: s.SKUID}
		totals, ok := salesByPair[key]
		if !ok {
			totals = &saleTotals{}
			salesByPair[key] = totals
		}
		totals.Units += s.SalesUnits
		totals.UnitsPromo += s.SalesUnitsPromo
		totals.Rub = totals.Rub.Add(s.SalesRub)
		totals.RubPromo = totals.RubPromo.Add(s.SalesRubPromo)
	}

	rows := make([]StatRow, 0, len(salesByPair))
	for key, totalForecast := range forecastTotals {
		totals, ok := salesByPair[key]
		if !ok {
			continue
		}
		denominator := decimal.NewFromInt(guardZero(totals.Units))
		price := totals.Rub.Div(denominator)
		quantityDiff := totals.Units - totalForecast
		quantity := decimal.NewFromInt(quantityDiff)

		rows = append(rows, StatRow{
			StoreID:            key.StoreID,
			SKUID:              key.SKUID,
			TotalForecast:      totalForecast,
			SalesUnits:         totals.Units,
			SalesUnitsPromo:    totals.UnitsPromo,
			SalesRub:           totals.Rub,
			SalesRubPromo:      totals.RubPromo,
			Price:              price,
			QuantityDifference: quantityDiff,
			AmountDifference:   quantity.Mul(price),
			WAPE:               quantity.Div(denominator),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StoreID != rows[j].StoreID {
			return rows[i].StoreID < rows[j].StoreID
		}
		return rows[i].SKUID < rows[j].SKUID
	})
	return rows
}

// guardZero substitutes 1 for a zero denominator.
func guardZero(units int64) int64 {
	if units == 0 {
		return 1
	}
	return units
}

// StatisticsTable renders statistics rows into a Table. The statistics
// sheet keeps technical column names; only the forecast report relabels.
func StatisticsTable(rows []StatRow) *Table {
	table := &Table{
		Columns: []string{
			"store_id", "sku_id", "target",
			"sales_units", "sales_units_promo", "sales_rub", "sales_rub_promo",
			"price", "quantity_difference", "amount_difference", "WAPE",
		},
	}
	table.Rows = make([][]any, 0, len(rows))
	for _, r := range rows {
		table.Rows = append(table.Rows, []any{
			r.StoreID, r.SKUID, r.TotalForecast,
			r.SalesUnits, r.SalesUnitsPromo, r.SalesRub.String(), r.SalesRubPromo.String(),
			r.Price.String(), r.QuantityDifference, r.AmountDifference.String(), r.WAPE.String(),
		})
	}
	return table
}
