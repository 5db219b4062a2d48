// Package sections derives the ordered section list for a layout. This is a
// pure function of the layout preference; no completion call is involved.
package sections

import "dayflow/internal/types"

var (
	daySections = []string{"Morning", "Afternoon", "Evening"}

	prioritySections = []string{"High Priority", "Medium Priority", "Low Priority"}
)

// Plan returns the section labels for the layout, in render order.
// Unstructured layouts have no sections; unknown subcategories fall back to
// the day-sections default.
func Plan(layout types.LayoutPreference) []string {
	if layout.IsUnstructured() {
		return nil
	}
	switch layout.Subcategory {
	case types.SubcategoryPriority:
		return append([]string(nil), prioritySections...)
	case types.SubcategoryCategory:
		return append([]string(nil), types.CategoryVocabulary...)
	default:
		return append([]string(nil), daySections...)
	}
}
