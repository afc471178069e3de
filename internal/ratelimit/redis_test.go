package ratelimit

import (
	"context"
	"testing"

	"friendgraph/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts, err := Options("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, err = Options("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = Options("redis://cache:notaport")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewClient(context.Background(), mr.Addr())
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClient_Unavailable(t *testing.T) {
	assert.Nil(t, NewClient(context.Background(), ""))

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	assert.Nil(t, NewClient(context.Background(), addr))
}

func TestMetricsHookCountsErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(context.Background(), mr.Addr())
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	before := testutil.ToFloat64(observability.RedisErrors.WithLabelValues("incr"))

	require.NoError(t, client.Set(context.Background(), "name", "not-a-number", 0).Err())
	assert.Error(t, client.Incr(context.Background(), "name").Err())

	// A missing key is not an error.
	_ = client.Get(context.Background(), "absent").Err()

	assert.Equal(t, before+1, testutil.ToFloat64(observability.RedisErrors.WithLabelValues("incr")))
}
