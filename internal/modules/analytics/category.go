package analytics

import "strings"

// categoryKeywords maps a product-name keyword to its derived category.
// Order matters: the first match wins.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"granule", "Granules"},
	{"powder", "Powder"},
	{"liquid", "Liquids"},
	{"seed", "Seeds"},
	{"urea", "Fertilizers"},
	{"npk", "Fertilizers"},
	{"fertilizer", "Fertilizers"},
	{"fertiliser", "Fertilizers"},
	{"pesticide", "Crop Protection"},
	{"insecticide", "Crop Protection"},
	{"fungicide", "Crop Protection"},
	{"herbicide", "Crop Protection"},
	{"organic", "Organic"},
	{"bio", "Organic"},
}

// InferCategory derives a display category from a product name. This is a
// presentation-layer heuristic only; the category is never stored.
func InferCategory(productName string) string {
	name := strings.ToLower(productName)
	for _, kw := range categoryKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.category
		}
	}
	return "General"
}
