package report

import (
	"sort"

	"github.com/demandcast/backend/internal/domain/forecasting"
	"github.com/demandcast/backend/internal/domain/report"
	"github.com/demandcast/backend/internal/domain/shared"
)

// Table is a flat, column-ordered result ready for spreadsheet rendering.
type Table struct {
	Columns []string
	Rows    [][]any
}

// pivotKey identifies one pivoted row: forecasts are indexed by
// (sku, store, forecast issue date).
type pivotKey struct {
	SKUID        int64
	StoreID      int64
	ForecastDate string
}

// Reshape merges forecast values, SKU attributes and store attributes into
// one table with human-readable column labels.
//
// The forecast payload's {date, target} entries become one column per
// distinct target date; overlapping dates for the same (sku, store,
// forecast_date) key are summed, missing combinations fill with 0. When the
// request carries a date window, only date columns inside the window are
// kept, sorted ascending. Join keys and raw foreign-key ids never reach the
// output.
func Reshape(forecasts []forecasting.Forecast, skus []forecasting.SKU, stores []forecasting.Store, req *report.Request) *Table {
	pivoted := make(map[pivotKey]map[string]int64)
	dateSet := make(map[string]struct{})

	for _, f := range forecasts {
		key := pivotKey{SKUID: f.SKUID, StoreID: f.StoreID, ForecastDate: f.ForecastDate.String()}
		row, ok := pivoted[key]
		if !ok {
			row = make(map[string]int64)
			pivoted[key] = row
		}
		for _, entry := range f.Payload {
			if !insideWindow(entry.Date, req) {
				continue
			}
			label := entry.Date.String()
			row[label] += entry.Target
			dateSet[label] = struct{}{}
		}
	}

	dateColumns := make([]string, 0, len(dateSet))
	for label := range dateSet {
		dateColumns = append(dateColumns, label)
	}
	sort.Strings(dateColumns)

	keys := make([]pivotKey, 0, len(pivoted))
	for key := range pivoted {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].SKUID != keys[j].SKUID {
			return keys[i].SKUID < keys[j].SKUID
		}
		if keys[i].StoreID != keys[j].StoreID {
			return keys[i].StoreID < keys[j].StoreID
		}
		return keys[i].ForecastDate < keys[j].ForecastDate
	})

	skuByID := make(map[int64]forecasting.SKU, len(skus))
	for _, s := range skus {
		skuByID[s.ID] = s
	}
	storeByID := make(map[int64]forecasting.Store, len(stores))
	for _, s := range stores {
		storeByID[s.ID] = s
	}

	labels := collectLabels()
	storeFields := forecasting.StoreAttributeFields()
	skuFields := forecasting.SKUAttributeFields()

	columns := make([]string, 0, len(storeFields)+len(skuFields)+1+len(dateColumns))
	for _, f := range storeFields {
		columns = append(columns, labels[f])
	}
	for _, f := range skuFields {
		columns = append(columns, labels[f])
	}
	columns = append(columns, labels["forecast_date"])
	columns = append(columns, dateColumns...)

	rows := make([][]any, 0, len(keys))
	for _, key := range keys {
		row := make([]any, 0, len(columns))
		store, storeOK := storeByID[key.StoreID]
		for _, f := range storeFields {
			if storeOK {
				row = append(row, store.AttributeValue(f))
			} else {
				row = append(row, nil)
			}
		}
		sku, skuOK := skuByID[key.SKUID]
		for _, f := range skuFields {
			if skuOK {
				row = append(row, sku.AttributeValue(f))
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, key.ForecastDate)
		values := pivoted[key]
		for _, d := range dateColumns {
			row = append(row, values[d])
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}
}

func insideWindow(d shared.Date, req *report.Request) bool {
	if !req.HasWindow() {
		return true
	}
	return !d.Before(*req.FromDate) && !d.After(*req.ToDate)
}

// collectLabels gathers the field-label mappings of all three entities the
// way the report relabels columns: SKU first, forecast, then store.
func collectLabels() map[string]string {
	labels := make(map[string]string)
	for field, label := range forecasting.SKUFieldLabels() {
		labels[field] = label
	}
	for field, label := range forecasting.ForecastFieldLabels() {
		labels[field] = label
	}
	for field, label := range forecasting.StoreFieldLabels() {
		labels[field] = label
	}
	return labels
}
