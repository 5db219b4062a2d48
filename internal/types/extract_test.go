package types

import "testing"

func TestTaskFromRecord(t *testing.T) {
	rec := Record{
		"id":         "t1",
		"text":       "write report",
		"categories": []any{"Work", "Ambition"},
		"completed":  true,
		"level":      float64(2),
		"start_time": "9:00am",
		"end_time":   "10:00am",
		"is_recurring": map[string]any{
			"frequency": "weekly",
			"dayOfWeek": "Monday",
		},
	}

	task := TaskFromRecord(rec)
	if task.ID != "t1" || task.Text != "write report" {
		t.Errorf("identity fields wrong: %+v", task)
	}
	if len(task.Categories) != 2 || task.Categories[0] != "Work" {
		t.Errorf("categories wrong: %v", task.Categories)
	}
	if !task.Completed || task.Level != 2 {
		t.Errorf("completed/level wrong: %+v", task)
	}
	if task.Type != TypeTask {
		t.Errorf("type should default to task, got %q", task.Type)
	}
	if task.StartTime == nil || *task.StartTime != "9:00am" {
		t.Errorf("start_time wrong: %v", task.StartTime)
	}
	if task.IsRecurring == nil || task.IsRecurring.Frequency != "weekly" {
		t.Errorf("recurrence wrong: %+v", task.IsRecurring)
	}
}

func TestTaskFromRecordToleratesGarbage(t *testing.T) {
	rec := Record{
		"id":         float64(42),
		"categories": "Work",
		"completed":  "true",
		"level":      "not a number",
		"is_section": true,
	}

	task := TaskFromRecord(rec)
	if task.ID != "42" {
		t.Errorf("numeric id should render as string, got %q", task.ID)
	}
	if len(task.Categories) != 1 || task.Categories[0] != "Work" {
		t.Errorf("bare string category should become one-element slice: %v", task.Categories)
	}
	if !task.Completed {
		t.Error("string \"true\" should coerce to true")
	}
	if task.Level != 0 {
		t.Errorf("bad level should be 0, got %d", task.Level)
	}
	if task.Type != TypeSection {
		t.Errorf("is_section should default type to section, got %q", task.Type)
	}
}

func TestCoerceTask(t *testing.T) {
	typed := Task{ID: "a", Text: "x"}
	if got, ok := CoerceTask(typed); !ok || got.ID != "a" {
		t.Errorf("typed Task should pass through, got %+v ok=%v", got, ok)
	}
	if got, ok := CoerceTask(&typed); !ok || got.ID != "a" {
		t.Errorf("*Task should pass through, got %+v ok=%v", got, ok)
	}
	if got, ok := CoerceTask(map[string]any{"id": "m"}); !ok || got.ID != "m" {
		t.Errorf("map should convert, got %+v ok=%v", got, ok)
	}
	if _, ok := CoerceTask(42); ok {
		t.Error("int is not a task shape")
	}
	if _, ok := CoerceTask((*Task)(nil)); ok {
		t.Error("nil *Task is not usable")
	}
}

func TestNeedsCategorization(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"empty categories", Task{ID: "1"}, true},
		{"unknown value", Task{ID: "1", Categories: []string{"Work", "Chores"}}, true},
		{"all valid", Task{ID: "1", Categories: []string{"Work", "Fun"}}, false},
		{"section never flagged", Task{ID: "1", IsSection: true}, false},
		{"section type never flagged", Task{ID: "1", Type: TypeSection}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.NeedsCategorization(); got != tt.want {
				t.Errorf("NeedsCategorization() = %v, want %v", got, tt.want)
			}
		})
	}
}
