// internal/driver/poll.go
package driver

import (
	"context"
	"time"

	"github.com/airsense/co2meter/internal/frame"
)

// TransferTimeout bounds one bulk-in transfer. The sensor reports on
// its own cadence; a quiet bus simply times out and the next iteration
// tries again.
const TransferTimeout = 5000 * time.Millisecond

// poll is one iteration of the background refresh. It rearms its own
// work as the last step, so the loop runs until Detach cancels it.
// Transfer and decode failures are expected noise and never escalate
// past this function.
func (dev *Device) poll() {
	defer dev.work.Schedule()

	buf := dev.pool.TryGet()
	if buf == nil {
		// Recoverable exhaustion: retry without touching the bus.
		dev.log.Warn().Msg("transfer buffer pool exhausted, rescheduling")
		return
	}
	defer dev.pool.Put(buf)

	// tr and ep are attach-time immutable. The guard stays free for
	// the full duration of the blocking transfer so openers are never
	// stalled behind bus IO.
	ctx, cancel := context.WithTimeout(context.Background(), TransferTimeout)
	n, err := dev.tr.BulkIn(ctx, dev.ep, buf)
	cancel()
	if err != nil {
		dev.log.Debug().Err(err).Msg("transfer discarded")
		return
	}

	ppm, ok := frame.Decode(buf, n)
	if !ok {
		dev.log.Debug().Int("len", n).Msg("frame rejected")
		return
	}

	dev.mu.Lock()
	dev.ready = true
	dev.co2 = ppm
	dev.mu.Unlock()

	dev.log.Debug().Uint32("ppm", ppm).Msg("reading cached")
}
