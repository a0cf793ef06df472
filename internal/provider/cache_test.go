package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wayfare/internal/provider"
)

type memCache struct {
	values map[string]string
	getErr error
	sets   int
}

func (m *memCache) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}

	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(v, nil)
}

func (m *memCache) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.sets++
	m.values[key] = string(value.([]byte))

	return redis.NewStatusResult("OK", nil)
}

type countingChecker struct {
	calls  int
	result *provider.CheckResult
	err    error
}

func (c *countingChecker) CheckTransaction(context.Context, string) (*provider.CheckResult, error) {
	c.calls++
	return c.result, c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedClient_CachesApproved(t *testing.T) {
	upstream := &countingChecker{result: &provider.CheckResult{
		Status: provider.Status{Code: provider.CodeSuccess},
		Data:   []provider.Transaction{{TranID: "TX-1", PaymentStatus: provider.PaymentApproved}},
	}}
	cache := &memCache{values: map[string]string{}}
	c := provider.NewCachedClient(upstream, cache, time.Hour, discardLogger())

	for range 3 {
		got, err := c.CheckTransaction(context.Background(), "TX-1")
		require.NoError(t, err)

		_, approved := got.Approved()
		assert.True(t, approved)
	}

	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestCachedClient_DoesNotCachePending(t *testing.T) {
	upstream := &countingChecker{result: &provider.CheckResult{
		Status: provider.Status{Code: "01"},
	}}
	cache := &memCache{values: map[string]string{}}
	c := provider.NewCachedClient(upstream, cache, time.Hour, discardLogger())

	for range 2 {
		_, err := c.CheckTransaction(context.Background(), "TX-404")
		require.NoError(t, err)
	}

	assert.Equal(t, 2, upstream.calls)
	assert.Zero(t, cache.sets)
}

func TestCachedClient_CacheDownFallsThrough(t *testing.T) {
	upstream := &countingChecker{result: &provider.CheckResult{Status: provider.Status{Code: "01"}}}
	cache := &memCache{values: map[string]string{}, getErr: errors.New("connection refused")}
	c := provider.NewCachedClient(upstream, cache, time.Hour, discardLogger())

	got, err := c.CheckTransaction(context.Background(), "TX-2")
	require.NoError(t, err)
	assert.False(t, got.OK())
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedClient_ServesFromCache(t *testing.T) {
	stored, err := json.Marshal(provider.CheckResult{
		Status: provider.Status{Code: provider.CodeSuccess},
		Data:   []provider.Transaction{{TranID: "TX-3", PaymentStatus: provider.PaymentApproved}},
	})
	require.NoError(t, err)

	upstream := &countingChecker{err: provider.ErrUnavailable}
	cache := &memCache{values: map[string]string{"provider:check:TX-3": string(stored)}}
	c := provider.NewCachedClient(upstream, cache, time.Hour, discardLogger())

	got, err := c.CheckTransaction(context.Background(), "TX-3")
	require.NoError(t, err)

	entry, approved := got.Approved()
	require.True(t, approved)
	assert.Equal(t, "TX-3", entry.TranID)
	assert.Zero(t, upstream.calls)
}
