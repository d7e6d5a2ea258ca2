// Package retry provides a small exponential-backoff helper shared by the
// AI adapter client and the scan driver's RetryFailedScan.
package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Do calls fn up to attempts times, backing off exponentially (base 100ms,
// doubling, capped at 5s) between failures. It returns fn's last error if
// every attempt fails, or nil on the first success. It returns ctx.Err()
// immediately if ctx is cancelled between attempts.
func Do(ctx context.Context, log zerolog.Logger, attempts int, fn func(ctx context.Context) error) error {
	backoff := 100 * time.Millisecond
	const maxBackoff = 5 * time.Second

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		log.Warn().Err(lastErr).Int("attempt", attempt).Int("maxAttempts", attempts).Msg("retry: attempt failed")
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return lastErr
}
