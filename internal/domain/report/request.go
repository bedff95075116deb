// Package report holds the report-generation domain: the request filter
// payload, the job ledger entity and its repository contract.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/demandcast/backend/internal/domain/shared"
)

// Kind selects which generator a report job runs.
type Kind string

const (
	KindForecast   Kind = "forecast"
	KindStatistics Kind = "statistics"
)

// Valid reports whether the kind is one the orchestrator knows.
func (k Kind) Valid() bool {
	return k == KindForecast || k == KindStatistics
}

// Request is the report filter payload. It doubles as the ledger cache key:
// two requests with the same canonical serialization are the same logical
// report.
type Request struct {
	StoreIDs      []int64      `json:"store_ids"`
	Groups        []string     `json:"groups,omitempty"`
	Categories    []string     `json:"categories,omitempty"`
	Subcategories []string     `json:"subcategories,omitempty"`
	SKUIDs        []int64      `json:"sku_ids,omitempty"`
	ForecastDate  shared.Date  `json:"forecast_date"`
	FromDate      *shared.Date `json:"from_date,omitempty"`
	ToDate        *shared.Date `json:"to_date,omitempty"`
}

// Validate checks the request for the given report kind. Forecast reports
// require groups and a date window; statistics reports require neither, but
// a window must still come in pairs.
func (r *Request) Validate(kind Kind) error {
	if len(r.StoreIDs) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "store_ids must not be empty")
	}
	for _, id := range r.StoreIDs {
		if id <= 0 {
			return shared.NewDomainError("INVALID_INPUT", "store_ids must contain positive values")
		}
	}
	if r.ForecastDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "forecast_date is required")
	}
	if kind == KindForecast {
		if len(r.Groups) == 0 {
			return shared.NewDomainError("INVALID_INPUT", "groups must not be empty")
		}
		if r.FromDate == nil || r.ToDate == nil {
			return shared.NewDomainError("INVALID_INPUT", "from_date and to_date are required")
		}
	}
	if r.FromDate != nil && r.ToDate == nil {
		return shared.NewDomainError("INVALID_INPUT", "to_date is required when from_date is specified")
	}
	if r.ToDate != nil && r.FromDate == nil {
		return shared.NewDomainError("INVALID_INPUT", "from_date is required when to_date is specified")
	}
	if r.FromDate != nil && r.ToDate != nil && r.ToDate.Before(*r.FromDate) {
		return shared.NewDomainError("INVALID_INPUT", "to_date cant be earlier than from_date")
	}
	return nil
}

// HasWindow reports whether a from/to date window was supplied.
func (r *Request) HasWindow() bool {
	return r.FromDate != nil && r.ToDate != nil
}

// Canonical returns a stable JSON serialization of the request: struct
// fields marshal in declaration order and all id/name slices are sorted, so
// identical logical requests serialize identically regardless of the order
// the caller listed values in.
func (r *Request) Canonical() ([]byte, error) {
	c := Request{
		StoreIDs:      sortedInt64s(r.StoreIDs),
		Groups:        sortedStrings(r.Groups),
		Categories:    sortedStrings(r.Categories),
		Subcategories: sortedStrings(r.Subcategories),
		SKUIDs:        sortedInt64s(r.SKUIDs),
		ForecastDate:  r.ForecastDate,
		FromDate:      r.FromDate,
		ToDate:        r.ToDate,
	}
	data, err := json.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("serialize report request: %w", err)
	}
	return data, nil
}

// Fingerprint returns the hex SHA-256 of the canonical serialization,
// used as the ledger dedup key component.
func (r *Request) Fingerprint() (string, error) {
	data, err := r.Canonical()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func sortedInt64s(in []int64) []int64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]int64, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
