package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient opens after RepeatNumber consecutive failures; 5xx responses
// count as failures.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped HTTPClient
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped HTTPClient) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Do(req *http.Request) (*http.Response, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		resp, err := b.wrapped.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return nil, fmt.Errorf("status %s", resp.Status)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return resp, nil
}

// State reports the current breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}
