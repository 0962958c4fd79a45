package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("Same seed same maps", func(t *testing.T) {
		a, err := Generate(Config{Size: 12, Seed: 99})
		require.NoError(t, err)
		b, err := Generate(Config{Size: 12, Seed: 99})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Maps are square and well formed", func(t *testing.T) {
		m, err := Generate(Config{Size: 15, Seed: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(4), m.Seed)
		require.Len(t, m.Risk, 15)
		require.Len(t, m.Animal, 15)
		require.Len(t, m.Terrain, 15)

		for row := 0; row < 15; row++ {
			require.Len(t, m.Risk[row], 15)
			require.Len(t, m.Animal[row], 15)
			require.Len(t, m.Terrain[row], 15)
			for col := 0; col < 15; col++ {
				risk := m.Risk[row][col]
				assert.GreaterOrEqual(t, risk, 0.0)
				assert.LessOrEqual(t, risk, 1.0)
				assert.InDelta(t, risk, float64(int(risk*100+0.5))/100, 1e-9)

				if m.Terrain[row][col] == 0 {
					assert.Zero(t, risk)
					assert.False(t, m.Animal[row][col])
				} else {
					assert.Equal(t, 1, m.Terrain[row][col])
				}
			}
		}
	})

	t.Run("Zero seed picks one and reports it", func(t *testing.T) {
		m, err := Generate(Config{Size: 3})
		require.NoError(t, err)
		again, err := Generate(Config{Size: 3, Seed: m.Seed})
		require.NoError(t, err)
		assert.Equal(t, m, again)
	})

	t.Run("Impassable ratio near one blocks everything", func(t *testing.T) {
		m, err := Generate(Config{Size: 6, Seed: 1, ImpassableRatio: 1})
		require.NoError(t, err)
		for _, row := range m.Terrain {
			for _, v := range row {
				assert.Zero(t, v)
			}
		}
	})

	t.Run("Rejects bad sizes", func(t *testing.T) {
		for _, size := range []int{0, -3, MaxSize + 1} {
			_, err := Generate(Config{Size: size})
			assert.ErrorIs(t, err, ErrInvalidSize)
		}
	})
}

func TestEdgeFactor(t *testing.T) {
	assert.Zero(t, edgeFactor(0, 4, 10))
	assert.Zero(t, edgeFactor(9, 9, 10))
	assert.InDelta(t, 0.8, edgeFactor(4, 5, 10), 1e-9)
}
