package wiktionary

import (
	"context"
	"time"

	"github.com/fwojciec/sanakirja"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(msg string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, waiting delays[i] before the
// (i+2)th attempt. Missing and invalid pages are not retried since asking
// again gives the same answer.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch sanakirja.ErrorCode(err) {
	case sanakirja.ENOTFOUND, sanakirja.EINVALID:
		return false
	}
	return true
}
