// Package errs defines the error taxonomy for the benchmark.
//
// ConfigurationError and NetworkError abort a run before any measurement;
// per-request streaming failures are not represented here because they are
// folded into the level's success rate instead of propagating.
package errs

import "fmt"

// ConfigurationError reports invalid or missing benchmark configuration:
// a malformed endpoint URL, mutually exclusive flags, or an endpoint with
// no models to discover.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NetworkError reports a connectivity failure during the latency probe.
// Latency underlies every level's derived rates, so this is fatal to the run.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
