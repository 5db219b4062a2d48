package types

import "strings"

// Layout kinds.
const (
	LayoutStructured   = "structured"
	LayoutUnstructured = "unstructured"
)

// Layout subcategories.
const (
	SubcategoryDaySections = "day-sections"
	SubcategoryPriority    = "priority"
	SubcategoryCategory    = "category"
)

// LayoutPreference is the caller's layout configuration. Timing and
// OrderingPattern may arrive as two fields or as the single legacy
// orderingPattern value; PatternKey normalizes both.
type LayoutPreference struct {
	Layout          string `json:"layout"`
	Subcategory     string `json:"subcategory"`
	Timing          string `json:"timing"`
	OrderingPattern string `json:"orderingPattern"`
}

// IsUnstructured reports whether the layout is a flat list without section
// headers. Legacy callers send values like "todolist-unstructured", so any
// layout naming unstructured counts.
func (p LayoutPreference) IsUnstructured() bool {
	return strings.Contains(p.Layout, LayoutUnstructured)
}

// PatternKey returns the normalized pattern matching key for this layout.
func (p LayoutPreference) PatternKey() PatternKey {
	return NormalizePattern(p.Timing, p.OrderingPattern)
}

// ScheduleRequest is the engine's input, already decoded from the transport
// payload but with the task records still loosely typed. Each element of
// Tasks is either a Task, a *Task, or a Record.
type ScheduleRequest struct {
	Tasks          []any             `json:"tasks"`
	Layout         LayoutPreference  `json:"layout_preference"`
	WorkStartTime  string            `json:"work_start_time"`
	WorkEndTime    string            `json:"work_end_time"`
	EnergyPatterns []string          `json:"energy_patterns"`
	Priorities     map[string]string `json:"priorities"`
}
