package engine

import (
	"context"
	"time"
)

// Run evaluates on a fixed cadence until the context is cancelled. The first
// cycle runs immediately so the read API has data before the first tick.
// Cycle-level failures never stop the loop; per-source degradation and
// per-item continue-on-error already contain them.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.runOnce(ctx)
		}
	}
}

func (e *Engine) runOnce(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, e.cycleTimeout)
	defer cancel()
	e.RunCycle(cycleCtx)
}
