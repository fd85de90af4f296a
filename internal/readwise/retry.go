package readwise

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxRetryAfterSeconds is the largest delay a time.Duration can hold.
const maxRetryAfterSeconds = float64(math.MaxInt64 / int64(time.Second))

// retryAfter returns the delay requested by a 429 response's Retry-After header,
// either a number of seconds or an HTTP-date. ok is false when the header is
// absent, unparseable, too large to represent, or names a moment already past.
func retryAfter(h http.Header, now time.Time) (time.Duration, bool) {
	value := strings.TrimSpace(h.Get("Retry-After"))
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds < 0 || math.IsNaN(seconds) || seconds >= maxRetryAfterSeconds {
			return 0, false
		}
		return time.Duration(seconds * float64(time.Second)), true
	}

	if at, err := http.ParseTime(value); err == nil {
		if diff := at.Sub(now); diff > 0 {
			return diff, true
		}
	}

	return 0, false
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
