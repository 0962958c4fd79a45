package cache

import (
	"context"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/infrastruture/redistest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	_, err := NewRedisCache(nil, -1)
	assert.Error(t, err)

	client := redistest.Client(t)
	cache, err := NewRedisCache(client, 60)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Miss then hit", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "k1")
		require.NoError(t, err)
		assert.False(t, ok)

		outcome := &dmn.Outcome{
			Mode:     dmn.ModeOptimized,
			Routes:   []dmn.RouteRecord{{RangerID: 0, Path: []dmn.Point{{1, 2}}}},
			Coverage: [][]int{{0, 0, 1}},
			Stats:    dmn.StatsRecord{BeforeRisk: 0.8, AfterRisk: 0.16, RiskReduction: 80},
		}
		require.NoError(t, cache.Set(ctx, "k1", outcome))

		got, ok, err := cache.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, outcome, got)
	})

	t.Run("Lock is exclusive", func(t *testing.T) {
		unlock, err := cache.Lock(ctx, "k2")
		require.NoError(t, err)

		short, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()
		_, err = cache.Lock(short, "k2")
		assert.Error(t, err)

		unlock()
		again, err := cache.Lock(ctx, "k2")
		require.NoError(t, err)
		again()
	})
}
