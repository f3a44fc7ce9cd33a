package testutil

import (
	"context"

	"github.com/preston-bernstein/goal-light/internal/metrics"
)

// NewRecorderWithShutdown mirrors metrics.Setup's recorder and shutdown pair
// without starting exporters.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	noop := func(context.Context) error { return nil }
	return metrics.NewRecorder(), noop
}
