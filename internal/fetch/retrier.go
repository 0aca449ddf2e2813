package fetch

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/migtools/siteaudit/internal/model"
)

// Retry defaults. The base delay doubles after each throttled or failed
// attempt, capped so a stubborn server cannot stretch a run indefinitely.
const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	defaultMaxDelay   = 16 * time.Second
)

// Retrier wraps a Client with bounded retries. Transport errors are retried
// with exponential backoff; 429 and 503 responses are retried after the
// larger of the Retry-After header and the current backoff. Any other
// response is returned as-is, including non-success statuses, because the
// SEO auditor records the status rather than treating it as a failure.
type Retrier struct {
	client     *Client
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// RetrierOption configures a Retrier.
type RetrierOption func(*Retrier)

// WithMaxRetries sets the number of retries after the initial attempt.
func WithMaxRetries(n int) RetrierOption {
	return func(r *Retrier) {
		if n >= 0 {
			r.maxRetries = n
		}
	}
}

// WithBaseDelay sets the initial backoff delay.
func WithBaseDelay(d time.Duration) RetrierOption {
	return func(r *Retrier) {
		if d > 0 {
			r.baseDelay = d
		}
	}
}

// NewRetrier creates a Retrier around the given Client.
func NewRetrier(client *Client, opts ...RetrierOption) *Retrier {
	r := &Retrier{
		client:     client,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get fetches a URL, retrying on transport errors and throttling responses.
func (r *Retrier) Get(ctx context.Context, pageURL string) (*model.Page, error) {
	delay := r.baseDelay

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		page, err := r.client.Get(ctx, pageURL)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt == r.maxRetries {
				return nil, lastErr
			}
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay = r.nextDelay(delay)
			continue
		}

		if (page.StatusCode == http.StatusTooManyRequests ||
			page.StatusCode == http.StatusServiceUnavailable) && attempt < r.maxRetries {
			wait := delay
			if ra := retryAfter(page.Headers.Get("Retry-After")); ra > wait {
				wait = ra
			}
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
			delay = r.nextDelay(delay)
			continue
		}

		return page, nil
	}

	return nil, lastErr
}

// nextDelay doubles the backoff, capped at maxDelay.
func (r *Retrier) nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > r.maxDelay {
		d = r.maxDelay
	}
	return d
}

// retryAfter parses a Retry-After header given in seconds.
// HTTP-date values are ignored; throttling servers overwhelmingly send
// delta-seconds.
func retryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
