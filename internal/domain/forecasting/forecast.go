package forecasting

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/demandcast/backend/internal/domain/shared"
)

// ForecastEntry is one predicted quantity for a future calendar date.
type ForecastEntry struct {
	Date   shared.Date `json:"date"`
	Target int64       `json:"target"`
}

// ForecastPayload is the set of {date, target} entries one forecast row
// carries. It is stored as a JSON column.
type ForecastPayload []ForecastEntry

// Value implements driver.Valuer for JSON column storage.
func (p ForecastPayload) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (p *ForecastPayload) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ForecastPayload", src)
	}
}

// Merge folds additional entries into the payload, summing targets for
// dates already present, and keeps entries sorted by date.
func (p ForecastPayload) Merge(entries ...ForecastEntry) ForecastPayload {
	byDate := make(map[string]int64, len(p)+len(entries))
	dates := make(map[string]shared.Date, len(p)+len(entries))
	for _, e := range p {
		byDate[e.Date.String()] += e.Target
		dates[e.Date.String()] = e.Date
	}
	for _, e := range entries {
		byDate[e.Date.String()] += e.Target
		dates[e.Date.String()] = e.Date
	}
	merged := make(ForecastPayload, 0, len(byDate))
	for key, date := range dates {
		merged = append(merged, ForecastEntry{Date: date, Target: byDate[key]})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	return merged
}

// Forecast is a predicted demand fact for one (store, SKU) pair issued on
// ForecastDate. The tuple (store, sku, forecast_date) is unique.
type Forecast struct {
	ID           int64           `json:"id"`
	StoreID      int64           `json:"store_id"`
	SKUID        int64           `json:"sku_id"`
	ForecastDate shared.Date     `json:"forecast_date"`
	Payload      ForecastPayload `json:"forecast"`
}

// ForecastFieldLabels maps technical forecast field names to display labels.
func ForecastFieldLabels() map[string]string {
	return map[string]string{
		"forecast_date": "Forecast date",
		"forecast":      "Forecast",
	}
}
