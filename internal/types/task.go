// Package types defines the closed data model for the schedule generation
// engine. Loosely-typed caller input is converted into these types at the
// registry boundary and never leaks past it.
package types

// Category vocabulary. Every task leaving the engine carries a non-empty
// subset of exactly these values.
const (
	CategoryWork          = "Work"
	CategoryExercise      = "Exercise"
	CategoryRelationships = "Relationships"
	CategoryFun           = "Fun"
	CategoryAmbition      = "Ambition"
)

// CategoryVocabulary lists the valid categories in their fixed display order.
var CategoryVocabulary = []string{
	CategoryWork,
	CategoryExercise,
	CategoryRelationships,
	CategoryFun,
	CategoryAmbition,
}

// ValidCategory reports whether name is part of the fixed vocabulary.
func ValidCategory(name string) bool {
	for _, c := range CategoryVocabulary {
		if c == name {
			return true
		}
	}
	return false
}

// Task types.
const (
	TypeTask    = "task"
	TypeSection = "section"
)

// Recurrence describes an optional repeat rule on a task. The engine carries
// it through untouched; scheduling of future occurrences happens elsewhere.
type Recurrence struct {
	Frequency string `json:"frequency"`
	DayOfWeek string `json:"dayOfWeek,omitempty"`
}

// Task is one schedulable item. Section headers are represented as
// pseudo-tasks with IsSection set; those are emitted by the assembly stage
// and never placed by the ordering stage.
type Task struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	Categories  []string    `json:"categories"`
	Completed   bool        `json:"completed"`
	IsSection   bool        `json:"is_section"`
	Section     *string     `json:"section,omitempty"`
	ParentID    *string     `json:"parent_id,omitempty"`
	Level       int         `json:"level"`
	Type        string      `json:"type"`
	IsRecurring *Recurrence `json:"is_recurring,omitempty"`
	StartTime   *string     `json:"start_time,omitempty"`
	EndTime     *string     `json:"end_time,omitempty"`

	// Origin metadata for tasks imported from external systems.
	Source       string `json:"source,omitempty"`
	ExternalLink string `json:"external_link,omitempty"`
}

// NeedsCategorization reports whether the task must go through the
// categorization stage: its category set is empty or contains a value
// outside the fixed vocabulary. Section pseudo-tasks never qualify.
func (t *Task) NeedsCategorization() bool {
	if t.IsSection || t.Type == TypeSection {
		return false
	}
	if len(t.Categories) == 0 {
		return true
	}
	for _, c := range t.Categories {
		if !ValidCategory(c) {
			return true
		}
	}
	return false
}

// Placement is the ordering stage's per-task decision.
type Placement struct {
	TaskID         string  `json:"task_id"`
	Section        string  `json:"section"`
	Order          int     `json:"order"`
	TimeAllocation *string `json:"time_allocation,omitempty"`
}

// ScheduleResult is the engine's output. Success == false results still
// carry a fully-formed, renderable Tasks list.
type ScheduleResult struct {
	Success         bool   `json:"success"`
	Tasks           []Task `json:"tasks"`
	LayoutType      string `json:"layout_type"`
	OrderingPattern string `json:"ordering_pattern"`
	Error           string `json:"error,omitempty"`
	FallbackUsed    bool   `json:"fallback_used,omitempty"`
	AlertUser       bool   `json:"alert_user,omitempty"`
}
