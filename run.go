package matrix

import (
	"context"

	"github.com/BeatGlow/matrix/timing"
)

// Run refreshes d on every tick until ctx is done or a refresh fails. The
// ticker is stopped on return. Hardware errors are returned, not retried.
func Run(ctx context.Context, d Display, ticker timing.Ticker) error {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if err := d.Refresh(); err != nil {
				return err
			}
		}
	}
}
