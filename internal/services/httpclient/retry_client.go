package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

const defaultBackoff = 100 * time.Millisecond

// ErrRetriesExhausted is returned once every attempt allowed by the policy failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// RetryConfig bounds the retry policy: Retries extra attempts after the first,
// sleeping Backoff, 2*Backoff, 4*Backoff... between them.
type RetryConfig struct {
	Retries uint64
	Backoff time.Duration
}

// RetryClient retries transport errors, 429 and 5xx responses.
type RetryClient struct {
	next   HTTPClient
	cfg    RetryConfig
	logger zerolog.Logger
}

func NewRetryClient(next HTTPClient, cfg RetryConfig, logger zerolog.Logger) *RetryClient {
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}
	logger = logger.With().Str("component", "RetryClient").Logger()
	return &RetryClient{next: next, cfg: cfg, logger: logger}
}

func (c *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var (
		resp    *http.Response
		attempt int
	)

	backoff := retry.WithMaxRetries(c.cfg.Retries, retry.NewExponential(c.cfg.Backoff))

	err := retry.Do(req.Context(), backoff, func(ctx context.Context) error {
		attempt++

		r, err := c.next.Do(req.Clone(ctx))
		if err != nil {
			c.logger.Warn().
				Ctx(ctx).
				Int("attempt", attempt).
				Str("url", req.URL.String()).
				Err(err).
				Msg("request failed, will retry")
			return retry.RetryableError(err)
		}

		if retryableStatus(r.StatusCode) {
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
			c.logger.Warn().
				Ctx(ctx).
				Int("attempt", attempt).
				Int("status", r.StatusCode).
				Str("url", req.URL.String()).
				Msg("retryable status, will retry")
			return retry.RetryableError(fmt.Errorf("status %d", r.StatusCode))
		}

		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, err)
	}

	return resp, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
