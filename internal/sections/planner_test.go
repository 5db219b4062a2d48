package sections

import (
	"reflect"
	"testing"

	"dayflow/internal/types"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		layout types.LayoutPreference
		want   []string
	}{
		{
			"unstructured",
			types.LayoutPreference{Layout: "unstructured"},
			nil,
		},
		{
			"legacy todolist-unstructured",
			types.LayoutPreference{Layout: "todolist-unstructured", Subcategory: "day-sections"},
			nil,
		},
		{
			"day sections",
			types.LayoutPreference{Layout: "structured", Subcategory: "day-sections"},
			[]string{"Morning", "Afternoon", "Evening"},
		},
		{
			"priority",
			types.LayoutPreference{Layout: "structured", Subcategory: "priority"},
			[]string{"High Priority", "Medium Priority", "Low Priority"},
		},
		{
			"category",
			types.LayoutPreference{Layout: "structured", Subcategory: "category"},
			[]string{"Work", "Exercise", "Relationships", "Fun", "Ambition"},
		},
		{
			"unknown subcategory defaults to day sections",
			types.LayoutPreference{Layout: "structured", Subcategory: "whatever"},
			[]string{"Morning", "Afternoon", "Evening"},
		},
		{
			"missing subcategory defaults to day sections",
			types.LayoutPreference{Layout: "structured"},
			[]string{"Morning", "Afternoon", "Evening"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.layout)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Plan(%+v) = %v, want %v", tt.layout, got, tt.want)
			}
		})
	}
}

func TestPlanReturnsFreshSlices(t *testing.T) {
	a := Plan(types.LayoutPreference{Layout: "structured"})
	a[0] = "mutated"
	b := Plan(types.LayoutPreference{Layout: "structured"})
	if b[0] != "Morning" {
		t.Error("Plan must not share backing arrays between calls")
	}
}
