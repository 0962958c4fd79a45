package sqlite

import (
	"context"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMapRepo(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Maps()

	older := &dmn.Map{
		ID:         "m-1",
		Name:       "ridge",
		GridSize:   2,
		RiskMap:    [][]float64{{0.9, 0.1}, {0.25, 0}},
		AnimalMap:  [][]bool{{true, false}, {false, true}},
		TerrainMap: [][]int{{1, 1}, {0, 1}},
		CreatedAt:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	newer := &dmn.Map{
		ID:         "m-2",
		Name:       "delta",
		GridSize:   1,
		RiskMap:    [][]float64{{0.5}},
		AnimalMap:  [][]bool{{false}},
		TerrainMap: [][]int{{1}},
		CreatedAt:  older.CreatedAt.Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	t.Run("Round trip", func(t *testing.T) {
		got, err := repo.ByID(ctx, "m-1")
		require.NoError(t, err)
		assert.Equal(t, older, got)
	})

	t.Run("Listing is newest first without matrices", func(t *testing.T) {
		all, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "m-2", all[0].ID)
		assert.Equal(t, "m-1", all[1].ID)
		assert.Nil(t, all[1].RiskMap)
		assert.Equal(t, older.CreatedAt, all[1].CreatedAt)
	})

	t.Run("Save replaces", func(t *testing.T) {
		renamed := *newer
		renamed.Name = "delta east"
		require.NoError(t, repo.Save(ctx, &renamed))

		got, err := repo.ByID(ctx, "m-2")
		require.NoError(t, err)
		assert.Equal(t, "delta east", got.Name)
	})

	t.Run("Missing map", func(t *testing.T) {
		_, err := repo.ByID(ctx, "ghost")
		assert.ErrorIs(t, err, i.ErrNotFound)
	})
}

func TestResultRepo(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Results()

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for n, reduction := range []float64{30, 80, 55} {
		require.NoError(t, repo.Save(ctx, &dmn.Result{
			ID:          string(rune('a' + n)),
			MapID:       "m-1",
			Mode:        dmn.ModeOptimized,
			RangerCount: 2,
			Routes:      []dmn.RouteRecord{{RangerID: 0, Path: []dmn.Point{{0, 0}, {0, 1}}}},
			Coverage:    [][]int{{1, 1}},
			Stats:       dmn.StatsRecord{RiskReduction: reduction},
			CreatedAt:   base.Add(time.Duration(n) * time.Minute),
		}))
	}
	require.NoError(t, repo.Save(ctx, &dmn.Result{ID: "z", MapID: "m-2", CreatedAt: base}))

	t.Run("Round trip", func(t *testing.T) {
		got, err := repo.ByID(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 80.0, got.Stats.RiskReduction)
		assert.Equal(t, []dmn.Point{{0, 0}, {0, 1}}, got.Routes[0].Path)
		assert.Equal(t, base.Add(time.Minute), got.CreatedAt)
	})

	t.Run("By map is ordered by reduction", func(t *testing.T) {
		results, err := repo.ByMap(ctx, "m-1")
		require.NoError(t, err)
		var ids []string
		for _, r := range results {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{"b", "c", "a"}, ids)
	})

	t.Run("Duplicate IDs are rejected", func(t *testing.T) {
		assert.Error(t, repo.Save(ctx, &dmn.Result{ID: "a", MapID: "m-1"}))
	})

	t.Run("Missing result", func(t *testing.T) {
		_, err := repo.ByID(ctx, "ghost")
		assert.ErrorIs(t, err, i.ErrNotFound)
	})
}
