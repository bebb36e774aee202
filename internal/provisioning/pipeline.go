package provisioning

import (
	"fmt"
	"time"
)

// RunStages executes all provisioning stages sequentially.
//
// On the first stage failure the run halts immediately and the error names
// the stage that failed. Side effects of completed stages (installed
// packages, downloaded archives) are left in place; there is no rollback
// and no retry at this layer.
func RunStages(ctx *Context, stages []Stage) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d stages...", len(stages))

	for i, stage := range stages {
		stageStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", stage.Name(), i+1, len(stages))

		LogStageStart(ctx.Observer, name)

		if err := stage.Run(ctx); err != nil {
			LogStageFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s stage failed: %w", stage.Name(), err)
		}

		LogStageComplete(ctx.Observer, name, time.Since(stageStart))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
