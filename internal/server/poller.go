package server

import (
	"context"

	"github.com/preston-bernstein/goal-light/internal/poller"
)

// Runner is the long-lived polling loop driven by the server.
type Runner interface {
	Run(ctx context.Context) error
	Status() poller.Status
}
