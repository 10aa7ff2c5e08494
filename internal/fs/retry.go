package fs

import (
	"context"
	"fmt"
	"time"
)

// implements retry logic with exponential backoff.
// It is used by the atomic write to handle transient filesystem errors.

const maxRetries = 5

var retryBase = 100 * time.Millisecond

func retry(ctx context.Context, opName string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !isTransient(err) {
			return fmt.Errorf("%s failed permanently: %w", opName, err)
		}

		if attempt == maxRetries {
			break
		}

		timer := time.NewTimer(retryBase * (1 << (attempt - 1)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%s failed after %d retries: %w", opName, maxRetries, lastErr)
}
