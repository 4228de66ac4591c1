// Package latency measures round-trip network latency to an endpoint,
// independent of the inference workload.
package latency

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/perfkit/llmbench/internal/errs"
)

// DefaultAttempts is the number of probe requests averaged per measurement.
const DefaultAttempts = 5

// Measure performs sequential plain GET requests against the scheme+host root
// of baseURL and returns the mean round-trip time in milliseconds. Each
// attempt times request issue through full body read.
//
// The path and query are stripped so the probe never hits inference routes;
// only connectivity and timing matter, the response body is discarded.
// Any single failed attempt aborts the probe with a NetworkError.
func Measure(ctx context.Context, baseURL string, attempts int) (float64, error) {
	if baseURL == "" {
		return 0, &errs.ConfigurationError{Reason: "empty base URL"}
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return 0, &errs.ConfigurationError{Reason: "invalid base URL", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return 0, &errs.ConfigurationError{Reason: "base URL must include scheme and host"}
	}

	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	root := parsed.Scheme + "://" + parsed.Host
	client := &http.Client{}

	var total time.Duration
	for i := 0; i < attempts; i++ {
		start := time.Now()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, root, nil)
		if err != nil {
			return 0, &errs.NetworkError{URL: root, Err: err}
		}
		resp, err := client.Do(req)
		if err != nil {
			return 0, &errs.NetworkError{URL: root, Err: err}
		}
		_, err = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if err != nil {
			return 0, &errs.NetworkError{URL: root, Err: err}
		}

		total += time.Since(start)
	}

	return total.Seconds() * 1000 / float64(attempts), nil
}
