package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/local-forecast/internal/services/cache"
	"github.com/Nazarious-ucu/local-forecast/internal/services/httpclient"
)

const forecastURL = "https://api.open-meteo.com/v1/forecast?latitude=49.84&longitude=24.03"

func newStore() *cache.MemoryClient[httpclient.CachedResponse] {
	return cache.NewMemoryClient[httpclient.CachedResponse](zerolog.Nop(), time.Hour)
}

func doGet(t *testing.T, c httpclient.HTTPClient, url string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := c.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func TestCachingClient_SecondCallServedFromCache(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(newResponse(http.StatusOK, `{"ok":true}`), nil).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })

	c := httpclient.NewCachingClient(m, newStore(), zerolog.Nop())

	resp, body := doGet(t, c, forecastURL)
	assert.Equal(t, "MISS", resp.Header.Get(httpclient.CacheStatusHeader))
	assert.Equal(t, `{"ok":true}`, body)

	resp, body = doGet(t, c, forecastURL)
	assert.Equal(t, "HIT", resp.Header.Get(httpclient.CacheStatusHeader))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, body)

	m.AssertNumberOfCalls(t, "Do", 1)
}

func TestCachingClient_KeyedByURL(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(newResponse(http.StatusOK, `{"n":1}`), nil).Once()
	m.On("Do", mock.Anything).Return(newResponse(http.StatusOK, `{"n":2}`), nil).Once()

	c := httpclient.NewCachingClient(m, newStore(), zerolog.Nop())

	_, first := doGet(t, c, forecastURL)
	_, second := doGet(t, c, forecastURL+"&timezone=auto")

	assert.Equal(t, `{"n":1}`, first)
	assert.Equal(t, `{"n":2}`, second)
	m.AssertNumberOfCalls(t, "Do", 2)
}

func TestCachingClient_DoesNotStoreErrors(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(newResponse(http.StatusBadRequest, `{"error":true}`), nil).Once()
	m.On("Do", mock.Anything).Return(newResponse(http.StatusOK, `{"ok":true}`), nil).Once()

	c := httpclient.NewCachingClient(m, newStore(), zerolog.Nop())

	resp, _ := doGet(t, c, forecastURL)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doGet(t, c, forecastURL)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, body)
	m.AssertNumberOfCalls(t, "Do", 2)
}

func TestCachingClient_BypassesNonGet(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(newResponse(http.StatusOK, `{}`), nil).Twice()

	c := httpclient.NewCachingClient(m, newStore(), zerolog.Nop())

	for range 2 {
		req, err := http.NewRequest(http.MethodPost, forecastURL, nil)
		require.NoError(t, err)
		resp, err := c.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
	m.AssertNumberOfCalls(t, "Do", 2)
}
