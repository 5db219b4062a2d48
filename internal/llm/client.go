// Package llm defines the completion-service boundary. The engine treats
// the provider as an opaque prompt-in/text-out function; retries, streaming
// and provider-specific behavior stay on the other side of this interface.
package llm

import "context"

// CompletionClient is the minimal interface the pipeline stages use to call
// the completion service. Implementations apply their own request timeout
// and surface it as an ordinary error; the engine treats every failure the
// same way (degrade, don't crash).
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}
