package health

import (
	"context"
	"errors"
	"testing"

	"estate-backend/internal/infrastructure/memstore"
	"estate-backend/internal/infrastructure/seed"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

func TestCollectHealth_NoSources(t *testing.T) {
	result := CollectHealth(context.Background(), Sources{})
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
	assert.Equal(t, 0, result.Inventory.Properties)
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	result := CollectHealth(ctx, Sources{Redis: rdb, DB: pinger{}})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, "100", result.Traffic.SuccessRate)

	require.NoError(t, rdb.Set(ctx, "health:global:req_total", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:req_errors", "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_time_total", "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_count", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:start_time", "1000000", 0).Err())

	result = CollectHealth(ctx, Sources{Redis: rdb, DB: pinger{err: errors.New("down")}})
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
	assert.Equal(t, "15.05", result.Traffic.AvgResponseTime)
}

func TestCollectHealth_Inventory(t *testing.T) {
	store := memstore.New()
	require.NoError(t, seed.Load(store))

	result := CollectHealth(context.Background(), Sources{Store: store})
	assert.Equal(t, 5, result.Inventory.Properties)
	// Green Valley Villa
	assert.Equal(t, 1, result.Inventory.SoldOut)
	assert.Equal(t, 240+700+0+290, result.Inventory.AvailableShares)
	assert.Equal(t, 1, result.Inventory.Owners)
	assert.Equal(t, 2, result.Inventory.Groups)
}
