package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	cacheKeyPrefix = "http-cache:"
	// CacheStatusHeader is set to HIT or MISS on every response passing the cache.
	CacheStatusHeader = "X-Cache"
)

// CachedResponse is the stored form of a successful GET response.
type CachedResponse struct {
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
	StoredAt   time.Time   `json:"stored_at"`
}

type responseStore interface {
	Set(ctx context.Context, key string, value CachedResponse) error
	Get(ctx context.Context, key string) (CachedResponse, error)
}

// CachingClient serves repeated GET requests from the store. Only 200
// responses are stored; freshness is enforced by the store's expiration.
type CachingClient struct {
	next   HTTPClient
	store  responseStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewCachingClient(next HTTPClient, store responseStore, logger zerolog.Logger) *CachingClient {
	logger = logger.With().Str("component", "CachingClient").Logger()
	return &CachingClient{next: next, store: store, logger: logger, now: time.Now}
}

// CacheKey returns the store key used for req.
func CacheKey(req *http.Request) string {
	return cacheKeyPrefix + req.Method + " " + req.URL.String()
}

func (c *CachingClient) Do(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.next.Do(req)
	}

	ctx := req.Context()
	key := CacheKey(req)

	if cached, err := c.store.Get(ctx, key); err == nil {
		c.logger.Debug().
			Ctx(ctx).
			Str("key", key).
			Dur("age", c.now().Sub(cached.StoredAt)).
			Msg("serving response from cache")
		return toResponse(req, cached, "HIT"), nil
	}

	resp, err := c.next.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	cached := CachedResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		StoredAt:   c.now(),
	}
	if err := c.store.Set(ctx, key, cached); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache set failed")
	}

	return toResponse(req, cached, "MISS"), nil
}

func toResponse(req *http.Request, cached CachedResponse, status string) *http.Response {
	header := cached.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set(CacheStatusHeader, status)
	header.Set("Content-Length", strconv.Itoa(len(cached.Body)))

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", cached.StatusCode, http.StatusText(cached.StatusCode)),
		StatusCode:    cached.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(cached.Body)),
		ContentLength: int64(len(cached.Body)),
		Request:       req,
	}
}
