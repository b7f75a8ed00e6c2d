package httpclient

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedClient waits for a limiter token before every request.
type RateLimitedClient struct {
	next    HTTPClient
	limiter *rate.Limiter
}

// NewRateLimitedClient allows rps requests per second (fractional values are
// fine) with bursts up to burst.
func NewRateLimitedClient(next HTTPClient, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	if err := r.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.next.Do(req)
}

var (
	_ HTTPClient = (*RateLimitedClient)(nil)
	_ HTTPClient = (*BreakerClient)(nil)
	_ HTTPClient = (*RetryClient)(nil)
	_ HTTPClient = (*CachingClient)(nil)
)
