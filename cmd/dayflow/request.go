package main

import (
	"encoding/json"
	"fmt"
	"os"

	"dayflow/internal/types"
)

// readRequest decodes a schedule request payload. Task records stay loosely
// typed here; the engine's registry builder normalizes them.
func readRequest(path string) (types.ScheduleRequest, error) {
	var req types.ScheduleRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read payload %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse payload %s: %w", path, err)
	}
	return req, nil
}
