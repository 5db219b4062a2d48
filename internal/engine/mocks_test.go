package engine

import (
	"context"
	"errors"
)

// scriptedClient replays canned completion responses in call order and
// records every prompt it receives.
type scriptedClient struct {
	responses []string
	errs      []error
	prompts   []string
}

func (c *scriptedClient) Complete(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	i := len(c.prompts)
	c.prompts = append(c.prompts, prompt)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", errors.New("scripted client: no response configured")
}
