package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/local-forecast/internal/services/cache"
)

type entry struct {
	Body string
}

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) ObserveLatency(op string, d time.Duration) {
	m.Called(op, d)
}

func (m *mockCollector) IncrementCounter(metric string, labels ...string) {
	m.Called(metric, labels)
}

func TestMemoryClient_SetGet(t *testing.T) {
	c := cache.NewMemoryClient[entry](zerolog.Nop(), time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{Body: "v"}))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, entry{Body: "v"}, got)
}

func TestMemoryClient_Miss(t *testing.T) {
	c := cache.NewMemoryClient[entry](zerolog.Nop(), time.Minute)

	got, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	assert.Equal(t, entry{}, got)
}

func TestMemoryClient_Expires(t *testing.T) {
	c := cache.NewMemoryClient[entry](zerolog.Nop(), 20*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{Body: "v"}))
	time.Sleep(40 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMetricsDecorator_CountsHitsAndMisses(t *testing.T) {
	collector := &mockCollector{}
	collector.On("ObserveLatency", mock.Anything, mock.Anything).Return()
	collector.On("IncrementCounter", "cache_set", []string{"success"}).Return().Once()
	collector.On("IncrementCounter", "cache_get", []string{"hit"}).Return().Once()
	collector.On("IncrementCounter", "cache_get", []string{"miss"}).Return().Once()

	c := cache.NewMetricsDecorator[entry](cache.NewMemoryClient[entry](zerolog.Nop(), time.Minute), collector)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{Body: "v"}))
	_, err := c.Get(ctx, "k")
	require.NoError(t, err)
	_, err = c.Get(ctx, "other")
	assert.True(t, errors.Is(err, cache.ErrCacheMiss))

	collector.AssertExpectations(t)
	collector.AssertNumberOfCalls(t, "ObserveLatency", 3)
}
