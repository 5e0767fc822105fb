package dedup_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netventas/visitbot/internal/dedup"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSeenMarksAndDetects(t *testing.T) {
	mr, client := setupRedis(t)
	d := dedup.NewRedis(client)
	ctx := context.Background()

	seen, err := d.Seen(ctx, "SM123")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.True(t, mr.Exists("visitbot:delivery:SM123"))

	seen, err = d.Seen(ctx, "SM123")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestSeenDistinctKeys(t *testing.T) {
	_, client := setupRedis(t)
	d := dedup.NewRedis(client, dedup.WithPrefix("test:"))
	ctx := context.Background()

	seen, err := d.Seen(ctx, "SM1")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = d.Seen(ctx, "SM2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestSeenExpires(t *testing.T) {
	mr, client := setupRedis(t)
	d := dedup.NewRedis(client, dedup.WithTTL(time.Minute))
	ctx := context.Background()

	_, err := d.Seen(ctx, "SM123")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	seen, err := d.Seen(ctx, "SM123")
	require.NoError(t, err)
	assert.False(t, seen, "expired key should count as new")
}

func TestSeenSurfacesBackendError(t *testing.T) {
	mr, client := setupRedis(t)
	d := dedup.NewRedis(client)

	mr.Close()

	_, err := d.Seen(context.Background(), "SM123")
	assert.Error(t, err)
}

func TestNoopNeverSeen(t *testing.T) {
	d := dedup.Noop{}
	for i := 0; i < 3; i++ {
		seen, err := d.Seen(context.Background(), "SM123")
		require.NoError(t, err)
		assert.False(t, seen)
	}
}
