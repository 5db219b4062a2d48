package types

import "fmt"

// Record is a loosely-typed task representation as it arrives from the
// transport layer (decoded JSON). Field values can be any of string, bool,
// float64 (JSON numbers), nested maps, or []any.
//
// The extraction helpers below replace bare type assertions that panic on
// shape mismatch: callers get a zero value instead when the payload carries
// something unexpected.
type Record map[string]any

// String extracts a string field. Numbers and bools are rendered via
// fmt.Sprintf rather than dropped, since ids in particular show up as
// numbers from some clients.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Bool extracts a boolean field. String "true"/"false" is tolerated.
func (r Record) Bool(key string) bool {
	switch t := r[key].(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}

// Int extracts an integer field from a JSON number or numeric string.
func (r Record) Int(key string) int {
	switch t := r[key].(type) {
	case float64:
		return int(t)
	case int:
		return t
	default:
		return 0
	}
}

// StringSlice extracts a list-of-strings field. Non-string elements are
// rendered with fmt.Sprintf; a bare string becomes a one-element slice.
func (r Record) StringSlice(key string) []string {
	switch t := r[key].(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			} else if v != nil {
				out = append(out, fmt.Sprintf("%v", v))
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}

// StringPtr extracts an optional string field, nil when absent or empty.
func (r Record) StringPtr(key string) *string {
	s := r.String(key)
	if s == "" {
		return nil
	}
	return &s
}

// Sub extracts a nested record field, nil when absent or not an object.
func (r Record) Sub(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// TaskFromRecord converts a loose record into a Task, best-effort. Missing
// fields become zero values; the registry builder is responsible for filling
// in a fresh id afterwards.
func TaskFromRecord(rec Record) Task {
	t := Task{
		ID:           rec.String("id"),
		Text:         rec.String("text"),
		Categories:   rec.StringSlice("categories"),
		Completed:    rec.Bool("completed"),
		IsSection:    rec.Bool("is_section"),
		Section:      rec.StringPtr("section"),
		ParentID:     rec.StringPtr("parent_id"),
		Level:        rec.Int("level"),
		Type:         rec.String("type"),
		StartTime:    rec.StringPtr("start_time"),
		EndTime:      rec.StringPtr("end_time"),
		Source:       rec.String("source"),
		ExternalLink: rec.String("external_link"),
	}
	if t.Type == "" {
		if t.IsSection {
			t.Type = TypeSection
		} else {
			t.Type = TypeTask
		}
	}
	if sub := rec.Sub("is_recurring"); sub != nil {
		t.IsRecurring = &Recurrence{
			Frequency: sub.String("frequency"),
			DayOfWeek: sub.String("dayOfWeek"),
		}
	}
	return t
}

// CoerceTask converts any of the accepted task representations into a Task.
// Already-typed tasks pass through; loose records go through TaskFromRecord.
// The second return is false when the value has no usable shape.
func CoerceTask(v any) (Task, bool) {
	switch t := v.(type) {
	case Task:
		return t, true
	case *Task:
		if t == nil {
			return Task{}, false
		}
		return *t, true
	case Record:
		return TaskFromRecord(t), true
	case map[string]any:
		return TaskFromRecord(Record(t)), true
	default:
		return Task{}, false
	}
}
