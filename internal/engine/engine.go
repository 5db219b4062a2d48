// Package engine orchestrates the schedule generation pipeline: registry
// build, categorization, section planning, retrieval-augmented prompt
// construction, the ordering call, and assembly, with tiered fallback when
// stages fail. Generate never returns an error and never panics across its
// boundary; the caller always receives a renderable ScheduleResult.
package engine

import (
	"context"
	"fmt"

	"dayflow/internal/assembly"
	"dayflow/internal/categorize"
	"dayflow/internal/llm"
	"dayflow/internal/ordering"
	"dayflow/internal/prompt"
	"dayflow/internal/registry"
	"dayflow/internal/sections"
	"dayflow/internal/templates"
	"dayflow/internal/types"

	"go.uber.org/zap"
)

// stageStatus makes the fallback state machine explicit instead of hiding
// transitions behind caught exceptions. Each stage reports one of these and
// the pipeline decides the next state at the call site.
type stageStatus int

const (
	stageOK stageStatus = iota
	stageCategorizationFailed
	stageOrderingFailed
	stageFatal
)

func (s stageStatus) String() string {
	switch s {
	case stageOK:
		return "ok"
	case stageCategorizationFailed:
		return "categorization_failed"
	case stageOrderingFailed:
		return "ordering_failed"
	case stageFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Engine runs schedule generation pipelines. One Engine serves concurrent
// invocations; the only shared mutable state is the template store cache,
// which synchronizes itself.
type Engine struct {
	categorizer *categorize.Stage
	orderer     *ordering.Stage
	prompts     *prompt.Builder
	log         *zap.Logger
}

// New creates an engine on the given completion client and template store.
func New(client llm.CompletionClient, store *templates.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		categorizer: categorize.NewStage(client, log),
		orderer:     ordering.NewStage(client, log),
		prompts:     prompt.NewBuilder(store, log),
		log:         log,
	}
}

// Generate runs the full pipeline for one request. It always returns a
// well-formed result: any failure downstream of registry construction
// degrades (round-robin fallback) or terminates in the error response that
// preserves the caller's original schedule. No panic escapes.
func (e *Engine) Generate(ctx context.Context, req types.ScheduleRequest) (result types.ScheduleResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("schedule pipeline panicked", zap.Any("panic", r))
			result = e.errorResult(req, fmt.Errorf("schedule generation failed: %v", r))
		}
	}()
	return e.run(ctx, req)
}

func (e *Engine) run(ctx context.Context, req types.ScheduleRequest) types.ScheduleResult {
	reg, needsCategorization := registry.Build(req.Tasks)
	pattern := req.Layout.PatternKey()
	sectionList := sections.Plan(req.Layout)

	status := stageOK
	if !e.categorizer.Run(ctx, reg, needsCategorization) {
		// Recoverable: flagged tasks were defaulted to Work.
		status = stageCategorizationFailed
	}
	categorize.EnforceVocabulary(reg)

	orderingPrompt, err := e.prompts.Build(prompt.Input{
		Registry:       reg,
		Layout:         req.Layout,
		Pattern:        pattern,
		Sections:       sectionList,
		WorkStartTime:  req.WorkStartTime,
		WorkEndTime:    req.WorkEndTime,
		EnergyPatterns: req.EnergyPatterns,
		Priorities:     req.Priorities,
	})
	if err != nil {
		e.log.Error("prompt construction failed", zap.Error(err))
		return e.errorResult(req, err)
	}

	fallbackUsed := false
	placements, ok := e.orderer.Run(ctx, orderingPrompt)
	if !ok {
		status = stageOrderingFailed
		placements = roundRobin(reg, sectionList)
		fallbackUsed = true
	}

	result := assembly.Build(placements, reg, sectionList, req.Layout, pattern)
	result.Success = true
	result.FallbackUsed = fallbackUsed

	e.log.Info("schedule generated",
		zap.Int("tasks", reg.Len()),
		zap.String("pattern", pattern.String()),
		zap.String("status", status.String()),
		zap.Bool("fallback_used", fallbackUsed))
	return result
}

// roundRobin distributes tasks across the sections deterministically,
// task index mod section count, with ascending order inside each bucket.
// No completion call is involved; availability beats placement quality.
func roundRobin(reg *registry.Registry, sectionList []string) []types.Placement {
	tasks := reg.Tasks()
	out := make([]types.Placement, 0, len(tasks))

	if len(sectionList) == 0 {
		for i, t := range tasks {
			out = append(out, types.Placement{TaskID: t.ID, Section: "all", Order: i})
		}
		return out
	}

	for i, t := range tasks {
		out = append(out, types.Placement{
			TaskID:  t.ID,
			Section: sectionList[i%len(sectionList)],
			Order:   i / len(sectionList),
		})
	}
	return out
}

// errorResult is the terminal error response: the caller's original tasks,
// best-effort, wrapped with the planner's section headers. The pre-existing
// schedule must survive every failure, so the caller can re-render it and
// show a transient notification instead of a broken page.
func (e *Engine) errorResult(req types.ScheduleRequest, cause error) types.ScheduleResult {
	sectionList := sections.Plan(req.Layout)

	var tasks []types.Task
	for _, s := range sectionList {
		tasks = append(tasks, assembly.HeaderTask(s))
	}
	for _, item := range req.Tasks {
		if task, ok := types.CoerceTask(item); ok {
			tasks = append(tasks, task)
		}
	}
	if tasks == nil {
		tasks = []types.Task{}
	}

	return types.ScheduleResult{
		Success:         false,
		Tasks:           tasks,
		LayoutType:      req.Layout.Layout,
		OrderingPattern: req.Layout.PatternKey().String(),
		Error:           cause.Error(),
		FallbackUsed:    true,
		AlertUser:       true,
	}
}
