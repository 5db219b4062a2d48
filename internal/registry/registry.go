// Package registry converts the caller's loosely-typed task payload into the
// engine's closed Task model. This is the single conversion boundary:
// everything downstream of Build works on validated Tasks only.
package registry

import (
	"dayflow/internal/types"

	"github.com/google/uuid"
)

// Registry maps task ids to Tasks for one pipeline invocation. Iteration
// order is insertion order, which the assembly stage relies on when
// appending unplaced tasks deterministically.
type Registry struct {
	ids  []string
	byID map[string]*types.Task
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byID: make(map[string]*types.Task)}
}

// Add inserts or replaces a task. Replacing keeps the task's original
// position, so duplicate ids in the input de-duplicate without reordering.
func (r *Registry) Add(t types.Task) {
	if _, exists := r.byID[t.ID]; !exists {
		r.ids = append(r.ids, t.ID)
	}
	copied := t
	r.byID[t.ID] = &copied
}

// Get returns the task for id, or nil.
func (r *Registry) Get(id string) *types.Task {
	return r.byID[id]
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.ids)
}

// IDs returns all task ids in insertion order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Tasks returns the registered tasks in insertion order. The pointers alias
// registry storage: the categorization stage mutates categories through them.
func (r *Registry) Tasks() []*types.Task {
	out := make([]*types.Task, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Build normalizes the raw task list into a registry and returns the ids of
// tasks that still need categorization. Records with no id get a fresh one;
// section pseudo-tasks are not schedulable and stay out of the registry.
// Build is a pure function of its input aside from id generation.
func Build(raw []any) (*Registry, []string) {
	reg := New()
	var needs []string

	for _, item := range raw {
		task, ok := types.CoerceTask(item)
		if !ok {
			continue
		}
		if task.IsSection || task.Type == types.TypeSection {
			continue
		}
		if task.ID == "" {
			task.ID = uuid.NewString()
		}
		reg.Add(task)
	}

	for _, t := range reg.Tasks() {
		if t.NeedsCategorization() {
			needs = append(needs, t.ID)
		}
	}
	return reg, needs
}
