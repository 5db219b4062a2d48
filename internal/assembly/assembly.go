// Package assembly merges ordering placements with the task registry into
// the final ordered task list: section headers interleaved with placed
// tasks for structured layouts, one flat order-sorted list for unstructured
// ones. Every registry task ends up in the output exactly once.
package assembly

import (
	"sort"
	"strings"

	"dayflow/internal/registry"
	"dayflow/internal/types"
)

// Build produces the schedule result body from placements and the registry.
// Success and fallback flags are owned by the engine; Build only fills the
// task list and layout echo fields.
func Build(placements []types.Placement, reg *registry.Registry, sectionList []string, layout types.LayoutPreference, pattern types.PatternKey) types.ScheduleResult {
	final := dedupe(placements)

	var tasks []types.Task
	if len(sectionList) == 0 {
		tasks = buildFlat(final, reg)
	} else {
		tasks = buildSectioned(final, reg, sectionList)
	}

	return types.ScheduleResult{
		Tasks:           tasks,
		LayoutType:      layout.Layout,
		OrderingPattern: pattern.String(),
	}
}

// dedupe applies last-write-wins per task id while keeping each task's
// original position in the placement sequence.
func dedupe(placements []types.Placement) []types.Placement {
	var final []types.Placement
	pos := make(map[string]int)
	for _, p := range placements {
		if i, seen := pos[p.TaskID]; seen {
			final[i] = p
			continue
		}
		pos[p.TaskID] = len(final)
		final = append(final, p)
	}
	return final
}

func buildSectioned(placements []types.Placement, reg *registry.Registry, sectionList []string) []types.Task {
	known := make(map[string]bool, len(sectionList))
	for _, s := range sectionList {
		known[s] = true
	}

	bySection := make(map[string][]types.Placement)
	placed := make(map[string]bool)
	for _, p := range placements {
		if reg.Get(p.TaskID) == nil || !known[p.Section] {
			continue
		}
		bySection[p.Section] = append(bySection[p.Section], p)
		placed[p.TaskID] = true
	}

	var out []types.Task
	for i, section := range sectionList {
		out = append(out, HeaderTask(section))

		members := bySection[section]
		sort.SliceStable(members, func(a, b int) bool {
			return members[a].Order < members[b].Order
		})
		for _, p := range members {
			out = append(out, placedTask(reg.Get(p.TaskID), p, section))
		}

		// Whatever the model failed to place lands in the last section,
		// after all placed tasks, in registry order.
		if i == len(sectionList)-1 {
			for _, t := range reg.Tasks() {
				if placed[t.ID] {
					continue
				}
				task := *t
				s := section
				task.Section = &s
				task.Type = types.TypeTask
				out = append(out, task)
			}
		}
	}
	return out
}

func buildFlat(placements []types.Placement, reg *registry.Registry) []types.Task {
	var valid []types.Placement
	placed := make(map[string]bool)
	for _, p := range placements {
		if reg.Get(p.TaskID) == nil {
			continue
		}
		valid = append(valid, p)
		placed[p.TaskID] = true
	}
	sort.SliceStable(valid, func(a, b int) bool {
		return valid[a].Order < valid[b].Order
	})

	var out []types.Task
	for _, p := range valid {
		task := *reg.Get(p.TaskID)
		task.Section = nil
		task.Type = types.TypeTask
		applyTimeAllocation(&task, p.TimeAllocation)
		out = append(out, task)
	}
	for _, t := range reg.Tasks() {
		if placed[t.ID] {
			continue
		}
		task := *t
		task.Section = nil
		task.Type = types.TypeTask
		out = append(out, task)
	}
	return out
}

func placedTask(src *types.Task, p types.Placement, section string) types.Task {
	task := *src
	s := section
	task.Section = &s
	task.Type = types.TypeTask
	task.IsSection = false
	applyTimeAllocation(&task, p.TimeAllocation)
	return task
}

func applyTimeAllocation(task *types.Task, allocation *string) {
	if allocation == nil {
		return
	}
	start, end, ok := types.ParseTimeWindow(*allocation)
	if !ok {
		return
	}
	task.StartTime = &start
	task.EndTime = &end
}

// HeaderTask creates the synthetic pseudo-task rendered as a section header.
func HeaderTask(section string) types.Task {
	slug := strings.ToLower(strings.ReplaceAll(section, " ", "-"))
	return types.Task{
		ID:        "section-" + slug,
		Text:      section,
		IsSection: true,
		Type:      types.TypeSection,
	}
}
