// Package prompt builds the ordering prompt sent to the completion service.
// The builder combines pattern definitions, retrieved example templates,
// the user's context and the task summaries under a hard character budget,
// degrading to fewer examples and finally to a template-free prompt so a
// prompt is always produced when one can fit.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"dayflow/internal/catalog"
	"dayflow/internal/registry"
	"dayflow/internal/templates"
	"dayflow/internal/types"

	"go.uber.org/zap"
)

// MaxPromptChars is the hard upper bound on an assembled prompt.
const MaxPromptChars = 12000

const (
	maxExamples     = 3
	maxExampleLines = 5
)

// ErrPromptTooLarge is returned when even the fully truncated prompt
// exceeds MaxPromptChars. Fatal for the request, not the process.
var ErrPromptTooLarge = errors.New("prompt exceeds maximum size after truncation")

// Input carries everything the builder needs for one prompt.
type Input struct {
	Registry       *registry.Registry
	Layout         types.LayoutPreference
	Pattern        types.PatternKey
	Sections       []string
	WorkStartTime  string
	WorkEndTime    string
	EnergyPatterns []string
	Priorities     map[string]string
}

// Builder assembles ordering prompts. The template store is injected; a nil
// store disables retrieval and every prompt takes the template-free path.
type Builder struct {
	store *templates.Store
	log   *zap.Logger
}

// NewBuilder creates a prompt builder backed by the given template store.
func NewBuilder(store *templates.Store, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{store: store, log: log}
}

// Build assembles the ordering prompt. Retrieval problems degrade to a
// template-free prompt; only a prompt that cannot be brought under budget
// fails, with ErrPromptTooLarge.
func (b *Builder) Build(in Input) (string, error) {
	examples, err := b.retrieve(in)
	if err != nil {
		b.log.Warn("template retrieval failed, using template-free prompt", zap.Error(err))
		examples = nil
	}

	for count := min(maxExamples, len(examples)); ; {
		p := b.compose(in, examples[:count])
		if len(p) <= MaxPromptChars {
			if count < len(examples) {
				b.log.Debug("prompt examples truncated to fit budget",
					zap.Int("kept", count), zap.Int("retrieved", len(examples)))
			}
			return p, nil
		}
		switch {
		case count > 2:
			count = 2
		case count > 0:
			count = 0
		default:
			return "", fmt.Errorf("%w: %d characters for %d tasks",
				ErrPromptTooLarge, len(p), in.Registry.Len())
		}
	}
}

// retrieve fetches matching templates, converting any panic from the
// retrieval path into an error so the builder can fall back instead of
// killing the pipeline.
func (b *Builder) retrieve(in Input) (tmpls []templates.Template, err error) {
	if b.store == nil {
		return nil, errors.New("template store unavailable")
	}
	defer func() {
		if r := recover(); r != nil {
			tmpls = nil
			err = fmt.Errorf("template retrieval panicked: %v", r)
		}
	}()

	subcategory := in.Layout.Subcategory
	if subcategory == "" {
		subcategory = types.SubcategoryDaySections
	}
	return b.store.Retrieve(subcategory, in.Pattern), nil
}

func (b *Builder) compose(in Input, examples []templates.Template) string {
	var sb strings.Builder

	sb.WriteString("You are an expert daily-schedule planner. Arrange the user's tasks into the most effective plan for today.\n\n")

	if defs := catalog.Definitions(in.Pattern); len(defs) > 0 {
		sb.WriteString("Ordering pattern to apply:\n")
		for _, d := range defs {
			sb.WriteString("- " + d + "\n")
		}
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(&sb, "Ordering pattern to apply: %s\n\n", in.Pattern)
	}

	if len(examples) > 0 {
		sb.WriteString("Example schedules following this pattern:\n")
		for i, ex := range examples {
			fmt.Fprintf(&sb, "Example %d:\n", i+1)
			lines := ex.Example
			if len(lines) > maxExampleLines {
				lines = lines[:maxExampleLines]
			}
			for _, line := range lines {
				sb.WriteString("  " + line + "\n")
			}
		}
		sb.WriteString("\n")
	}

	writeUserContext(&sb, in)
	writeTaskSummaries(&sb, in.Registry)
	writeInstructions(&sb, in)

	return sb.String()
}

func writeUserContext(sb *strings.Builder, in Input) {
	sb.WriteString("User context:\n")
	if in.WorkStartTime != "" || in.WorkEndTime != "" {
		fmt.Fprintf(sb, "- Work hours: %s - %s\n", in.WorkStartTime, in.WorkEndTime)
	}
	if len(in.EnergyPatterns) > 0 {
		fmt.Fprintf(sb, "- Energy patterns: %s\n", strings.Join(in.EnergyPatterns, ", "))
	}
	if len(in.Priorities) > 0 {
		var parts []string
		for k, v := range in.Priorities {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
		// Map order is random; sort for a stable prompt.
		sort.Strings(parts)
		fmt.Fprintf(sb, "- Priorities: %s\n", strings.Join(parts, ", "))
	}
	if len(in.Sections) > 0 {
		fmt.Fprintf(sb, "- Schedule sections, in order: %s\n", strings.Join(in.Sections, ", "))
	} else {
		sb.WriteString("- Flat task list, no sections\n")
	}
	sb.WriteString("\n")
}

// taskSummary is the per-task line serialized into the prompt.
type taskSummary struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Categories     []string `json:"categories"`
	TimeConstraint string   `json:"time_constraint,omitempty"`
}

func writeTaskSummaries(sb *strings.Builder, reg *registry.Registry) {
	sb.WriteString("Tasks to schedule:\n")
	for _, t := range reg.Tasks() {
		s := taskSummary{ID: t.ID, Text: t.Text, Categories: t.Categories}
		if start, end, ok := types.InlineTimeConstraint(t.Text); ok {
			s.TimeConstraint = start + " - " + end
		} else if t.StartTime != nil && t.EndTime != nil {
			s.TimeConstraint = *t.StartTime + " - " + *t.EndTime
		}
		line, err := json.Marshal(s)
		if err != nil {
			continue
		}
		sb.Write(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeInstructions(sb *strings.Builder, in Input) {
	sb.WriteString("Instructions:\n")
	sb.WriteString("- Place every task into exactly one section with an ascending order value.\n")
	sb.WriteString("- Honor any time constraint a task already carries.\n")
	if len(in.Sections) > 0 {
		fmt.Fprintf(sb, "- Use only these section names: %s.\n", strings.Join(in.Sections, ", "))
	} else {
		sb.WriteString("- Use the section name \"all\" for every task.\n")
	}

	sb.WriteString("\nRespond with ONLY a JSON object of this exact shape:\n")
	if in.Pattern.Untimed() {
		sb.WriteString(`{"placements":[{"task_id":"<id>","section":"<section>","order":0}]}` + "\n")
	} else {
		sb.WriteString(`{"placements":[{"task_id":"<id>","section":"<section>","order":0,"time_allocation":"9:00am - 10:00am"}]}` + "\n")
	}
}
