// Package forecasting contains the core entities of the demand-forecasting
// data service: stores, SKUs, sales facts and forecast facts.
package forecasting

// Store represents a retail outlet.
// The tuple (name, city, division, type format, location, size) is unique.
type Store struct {
	ID         int64  `json:"id"`
	Name       string `json:"store"`
	City       string `json:"city"`
	Division   string `json:"division"`
	TypeFormat int    `json:"type_format"`
	Loc        int    `json:"loc"`
	Size       int    `json:"size"`
	IsActive   bool   `json:"is_active"`
	Timezone   string `json:"timezone"`
}

// StoreFieldLabels maps technical store field names to the display labels
// used as spreadsheet column headers.
func StoreFieldLabels() map[string]string {
	return map[string]string{
		"store":       "Store name",
		"city":        "City",
		"division":    "Division",
		"type_format": "Store format",
		"loc":         "Store location",
		"size":        "Store size",
		"is_active":   "Active",
		"timezone":    "Timezone",
	}
}

// StoreAttributeFields lists the store fields carried into report tables,
// in output order. Keys match StoreFieldLabels.
func StoreAttributeFields() []string {
	return []string{"store", "city", "division", "type_format", "loc", "size", "is_active", "timezone"}
}

// AttributeValue returns the store's value for a technical field name.
func (s *Store) AttributeValue(field string) any {
	switch field {
	case "store":
		return s.Name
	case "city":
		return s.City
	case "division":
		return s.Division
	case "type_format":
		return s.TypeFormat
	case "loc":
		return s.Loc
	case "size":
		return s.Size
	case "is_active":
		return s.IsActive
	case "timezone":
		return s.Timezone
	default:
		return nil
	}
}
