// Package catalog holds the static definitions of the ordering and timing
// patterns the prompt builder can explain to the model.
package catalog

import (
	"fmt"

	"dayflow/internal/types"
)

// definitions maps pattern names to the human-readable explanation embedded
// in ordering prompts.
var definitions = map[string]string{
	"untimed": "Order tasks by logical flow and priority without assigning " +
		"specific time slots. Tasks are sequenced but not scheduled to clock times.",
	"timebox": "Assign every task an explicit start and end time within the " +
		"user's work hours. Time allocations must not overlap and should leave " +
		"short buffers between demanding tasks.",
	"batching": "Group similar tasks (same category or same kind of effort) " +
		"into consecutive blocks to reduce context switching.",
	"alternating": "Alternate between demanding and lighter tasks so focus " +
		"work is interleaved with recovery work.",
	"3-3-3": "Structure the day as: 3 hours of deep work on the most " +
		"important task, then 3 shorter urgent tasks, then 3 small maintenance " +
		"tasks.",
	"energy-based": "Match demanding tasks to the user's reported " +
		"high-energy windows and routine tasks to everything else.",
}

// Definition returns the explanation for one pattern name.
func Definition(name string) (string, bool) {
	def, ok := definitions[name]
	return def, ok
}

// Definitions returns "name: explanation" lines for every pattern the key
// references, in key order. Unknown names are skipped rather than invented.
func Definitions(key types.PatternKey) []string {
	var out []string
	for _, name := range key.Names() {
		if def, ok := definitions[name]; ok {
			out = append(out, fmt.Sprintf("%s: %s", name, def))
		}
	}
	return out
}
