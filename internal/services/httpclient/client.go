// Package httpclient holds the decorators stacked around outbound HTTP calls:
// a response cache keyed by request URL, a bounded retry policy, a circuit
// breaker, a rate limiter and client tracing.
package httpclient

import (
	"net/http"
)

// HTTPClient is the subset of *http.Client every decorator implements.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
