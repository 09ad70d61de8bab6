package telemetry

import (
	"context"

	"github.com/petasbytes/repostats-agent/internal/metrics"
)

// EmitText records the size of a prompt or reply without its content.
// kind is e.g. "prompt" or "reply"; source names the caller.
func EmitText(ctx context.Context, kind, source, text string) {
	if !Enabled() {
		return
	}
	runID, _ := RunIDFromContext(ctx)
	Emit("text_features", map[string]any{
		"run_id": runID,
		"kind":   kind,
		"source": source,
		"size":   metrics.Measure(text),
	})
}
