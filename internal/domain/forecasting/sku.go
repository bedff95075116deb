package forecasting

// Unit-of-measure codes carried over from the upstream catalog feed.
const (
	UOMByPiece  = 1
	UOMByWeight = 17
)

// SKU represents a distinct sellable product variant classified by
// group/category/subcategory. The 5-tuple (group, category, subcategory,
// name, uom) is unique.
type SKU struct {
	ID          int64  `json:"id"`
	Group       string `json:"group"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Name        string `json:"sku"`
	UOM         int    `json:"uom"`
}

// SKUFieldLabels maps technical SKU field names to display labels.
func SKUFieldLabels() map[string]string {
	return map[string]string{
		"group":       "Group",
		"category":    "Category",
		"subcategory": "Subcategory",
		"sku":         "Product name",
		"uom":         "Unit of measure",
	}
}

// SKUAttributeFields lists the SKU fields carried into report tables,
// in output order.
func SKUAttributeFields() []string {
	return []string{"group", "category", "subcategory", "sku", "uom"}
}

// AttributeValue returns the SKU's value for a technical field name.
func (s *SKU) AttributeValue(field string) any {
	switch field {
	case "group":
		return s.Group
	case "category":
		return s.Category
	case "subcategory":
		return s.Subcategory
	case "sku":
		return s.Name
	case "uom":
		return s.UOM
	default:
		return nil
	}
}
