// Package ordering drives the single completion call that places tasks into
// sections, and parses the model's free-form response into Placements.
// Parsing is tolerant: prose around the JSON is ignored and individually
// malformed placement entries are dropped without invalidating the rest.
package ordering

import (
	"context"
	"encoding/json"
	"strings"

	"dayflow/internal/jsonx"
	"dayflow/internal/llm"
	"dayflow/internal/types"

	"go.uber.org/zap"
)

const (
	maxTokens   = 4096
	temperature = 0.4
)

// Stage performs the ordering call.
type Stage struct {
	client llm.CompletionClient
	log    *zap.Logger
}

// NewStage creates an ordering stage.
func NewStage(client llm.CompletionClient, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{client: client, log: log}
}

// Run sends the prompt and returns the parsed placements. ok is false when
// the call errored or no valid placement could be parsed; the stage never
// returns an error because ordering failure is recoverable by fallback.
func (s *Stage) Run(ctx context.Context, prompt string) (placements []types.Placement, ok bool) {
	raw, err := s.client.Complete(ctx, prompt, maxTokens, temperature)
	if err != nil {
		s.log.Warn("ordering call failed", zap.Error(err))
		return nil, false
	}

	placements = ParsePlacements(raw)
	if len(placements) == 0 {
		s.log.Warn("ordering response yielded no placements",
			zap.Int("response_chars", len(raw)))
		return nil, false
	}

	s.log.Debug("ordering placements parsed", zap.Int("count", len(placements)))
	return placements, true
}

// rawPlacement uses pointers so missing fields are distinguishable from
// zero values; a placement without task_id, section and order is invalid.
type rawPlacement struct {
	TaskID         *string  `json:"task_id"`
	Section        *string  `json:"section"`
	Order          *float64 `json:"order"`
	TimeAllocation *string  `json:"time_allocation"`
}

type placementsEnvelope struct {
	Placements []rawPlacement `json:"placements"`
}

// ParsePlacements extracts placements from free-form response text. The
// substring from the first '{' to the last '}' is tried first; if that does
// not parse, each balanced JSON candidate mentioning "placements" is tried.
func ParsePlacements(raw string) []types.Placement {
	var env placementsEnvelope

	if obj := jsonx.ExtractObject(raw); obj != "" {
		if json.Unmarshal([]byte(obj), &env) == nil && len(env.Placements) > 0 {
			return validate(env.Placements)
		}
	}

	for _, candidate := range jsonx.Candidates(raw) {
		if !strings.Contains(candidate, "placements") {
			continue
		}
		env = placementsEnvelope{}
		if json.Unmarshal([]byte(candidate), &env) == nil && len(env.Placements) > 0 {
			return validate(env.Placements)
		}
	}
	return nil
}

func validate(raw []rawPlacement) []types.Placement {
	var out []types.Placement
	for _, p := range raw {
		if p.TaskID == nil || *p.TaskID == "" || p.Section == nil || *p.Section == "" || p.Order == nil {
			continue
		}
		out = append(out, types.Placement{
			TaskID:         *p.TaskID,
			Section:        *p.Section,
			Order:          int(*p.Order),
			TimeAllocation: p.TimeAllocation,
		})
	}
	return out
}
