// Package categorize assigns categories to tasks that arrived without
// valid ones, using a single batched completion call. Categorization failure
// is always recoverable: on any error every flagged task defaults to Work
// and the pipeline continues.
package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dayflow/internal/jsonx"
	"dayflow/internal/llm"
	"dayflow/internal/registry"
	"dayflow/internal/types"

	"go.uber.org/zap"
)

const (
	maxTokens   = 2048
	temperature = 0.2
)

// Stage performs the batched categorization call.
type Stage struct {
	client llm.CompletionClient
	log    *zap.Logger
}

// NewStage creates a categorization stage.
func NewStage(client llm.CompletionClient, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{client: client, log: log}
}

// response is the expected completion payload.
type response struct {
	Categorizations []struct {
		TaskID     string   `json:"task_id"`
		Categories []string `json:"categories"`
	} `json:"categorizations"`
}

// Run categorizes the flagged tasks in one batched request and mutates the
// registry in place. It reports false when the call or its parsing failed
// and the Work default was applied instead; it never returns an error.
func (s *Stage) Run(ctx context.Context, reg *registry.Registry, ids []string) bool {
	if len(ids) == 0 {
		return true
	}

	raw, err := s.client.Complete(ctx, buildPrompt(reg, ids), maxTokens, temperature)
	if err != nil {
		s.log.Warn("categorization call failed, defaulting to Work",
			zap.Int("tasks", len(ids)), zap.Error(err))
		defaultToWork(reg, ids)
		return false
	}

	parsed, ok := parseResponse(raw)
	if !ok {
		s.log.Warn("categorization response unparseable, defaulting to Work",
			zap.Int("tasks", len(ids)))
		defaultToWork(reg, ids)
		return false
	}

	applied := 0
	for _, c := range parsed.Categorizations {
		task := reg.Get(c.TaskID)
		if task == nil {
			continue
		}
		task.Categories = sanitize(c.Categories)
		applied++
	}
	s.log.Debug("categorization applied",
		zap.Int("requested", len(ids)), zap.Int("applied", applied))
	return true
}

// EnforceVocabulary is the defensive closure pass run after the stage:
// any task whose categories are still empty or outside the vocabulary is
// forced to Work. Guarantees the category-closure invariant regardless of
// what the model returned.
func EnforceVocabulary(reg *registry.Registry) {
	for _, t := range reg.Tasks() {
		if t.NeedsCategorization() {
			t.Categories = []string{types.CategoryWork}
		}
	}
}

func buildPrompt(reg *registry.Registry, ids []string) string {
	var b strings.Builder
	b.WriteString("You are a task categorization assistant.\n")
	b.WriteString("Assign one or more categories to each task below.\n")
	b.WriteString("Valid categories: " + strings.Join(types.CategoryVocabulary, ", ") + "\n\n")
	b.WriteString("Tasks:\n")
	for _, id := range ids {
		task := reg.Get(id)
		if task == nil {
			continue
		}
		fmt.Fprintf(&b, "- id: %q text: %q\n", task.ID, task.Text)
	}
	b.WriteString("\nRespond with ONLY a JSON object of this exact shape:\n")
	b.WriteString(`{"categorizations":[{"task_id":"<id>","categories":["Work"]}]}` + "\n")
	b.WriteString("Include every task id exactly once.\n")
	return b.String()
}

func parseResponse(raw string) (response, bool) {
	var parsed response

	obj := jsonx.ExtractObject(raw)
	if obj != "" && json.Unmarshal([]byte(obj), &parsed) == nil && len(parsed.Categorizations) > 0 {
		return parsed, true
	}

	for _, candidate := range jsonx.Candidates(raw) {
		if !strings.Contains(candidate, "categorizations") {
			continue
		}
		parsed = response{}
		if json.Unmarshal([]byte(candidate), &parsed) == nil && len(parsed.Categorizations) > 0 {
			return parsed, true
		}
	}
	return response{}, false
}

// sanitize keeps only vocabulary values, de-duplicated, preserving order.
func sanitize(cats []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range cats {
		c = strings.TrimSpace(c)
		if !types.ValidCategory(c) || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func defaultToWork(reg *registry.Registry, ids []string) {
	for _, id := range ids {
		if task := reg.Get(id); task != nil {
			task.Categories = []string{types.CategoryWork}
		}
	}
}
