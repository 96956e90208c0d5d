package api

import (
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultRetryDelays defines the exponential backoff delays for retry attempts
var DefaultRetryDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
}

// retryLog receives the "retrying" notices
var retryLog io.Writer = os.Stderr

// WithRetryDelays executes a function with automatic retry on rate limit errors,
// sleeping delays[attempt] between attempts (the last delay repeats).
// A Retry-After hint on the error takes precedence over the scheduled delay.
func WithRetryDelays(fn func() error, maxRetries int, delays []time.Duration) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = fn()
		if err == nil || !IsRateLimited(err) {
			return err
		}
		if attempt < maxRetries {
			delay := delays[min(attempt, len(delays)-1)]
			if after := GetRetryAfter(err); after > 0 {
				delay = after
			}
			fmt.Fprintf(retryLog, "Warning: rate limited, retrying in %v...\n", delay)
			time.Sleep(delay)
		}
	}
	return err
}
