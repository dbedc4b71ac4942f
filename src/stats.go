package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Periodic, cosmetic counters: frames received, frames
 *		sent per output, drops per output. Must never block the
 *		ingress or worker paths, so it only reads counters that
 *		are otherwise atomic/mutex-protected and resets its own
 *		deltas each interval.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"time"
)

// RunStats emits a Debug-level log line (visible under --debug or
// --ddebug) every statsInterval until ctx is cancelled, reporting frames received since the last tick and, per
// output, frames sent and lifetime drops.
func RunStats(ctx context.Context, in *Ingress, outputs []*Output) {
	var ticker = time.NewTicker(statsInterval)
	defer ticker.Stop()

	var lastReceived uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var received = in.FramesReceived()
			logger.Debug("stats", "frames_received", received-lastReceived)
			lastReceived = received

			for _, out := range outputs {
				var sent, drops = out.Stats()
				logger.Debug("stats output", "port", out.cfg.Port, "state", out.State().String(),
					"frames_sent", sent, "drops", drops)
			}
		}
	}
}
