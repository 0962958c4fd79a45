// Package terrain generates synthetic reserve maps for demos and tests.
// Risk follows layered simplex noise and fades toward the centre of the
// map, where reserves are hardest to reach from outside.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/shopspring/decimal"
)

const (
	DefaultImpassableRatio = 0.1
	DefaultAnimalBase      = 0.2

	// MaxSize bounds generated maps.
	MaxSize = 200

	edgeRiskDamping   = 0.5
	edgeAnimalDamping = 0.3
	noiseFrequency    = 0.18
	noiseOctaves      = 3
	noisePersistence  = 0.5
	riskPrecision     = 2
)

// ErrInvalidSize is returned for sizes outside [1, MaxSize].
var ErrInvalidSize = errors.New("invalid terrain size")

// Config holds generation parameters. Zero ratios fall back to the defaults.
type Config struct {
	Size            int
	Seed            int64 // 0 = random
	ImpassableRatio float64
	AnimalBase      float64
}

// Maps is a generated reserve in the matrix form the patrol grid consumes.
type Maps struct {
	Size    int         `json:"gridSize"`
	Seed    int64       `json:"seed"`
	Risk    [][]float64 `json:"riskMap"`
	Animal  [][]bool    `json:"animalMap"`
	Terrain [][]int     `json:"terrainMap"`
}

// Generate builds a size x size reserve. The same seed always yields the same maps.
func Generate(cfg Config) (*Maps, error) {
	if cfg.Size < 1 || cfg.Size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, cfg.Size)
	}
	if cfg.ImpassableRatio <= 0 {
		cfg.ImpassableRatio = DefaultImpassableRatio
	}
	if cfg.AnimalBase <= 0 {
		cfg.AnimalBase = DefaultAnimalBase
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	riskNoise := opensimplex.NewNormalized(seed)
	rng := rand.New(rand.NewSource(seed))

	m := &Maps{
		Size:    cfg.Size,
		Seed:    seed,
		Risk:    make([][]float64, cfg.Size),
		Animal:  make([][]bool, cfg.Size),
		Terrain: make([][]int, cfg.Size),
	}

	for row := 0; row < cfg.Size; row++ {
		m.Risk[row] = make([]float64, cfg.Size)
		m.Animal[row] = make([]bool, cfg.Size)
		m.Terrain[row] = make([]int, cfg.Size)

		for col := 0; col < cfg.Size; col++ {
			// Passability and animals draw from rng in a fixed order per cell.
			passable := rng.Float64() >= cfg.ImpassableRatio
			animalRoll := rng.Float64()
			if !passable {
				continue
			}

			edge := edgeFactor(row, col, cfg.Size)
			base := octaveNoise(riskNoise, float64(col), float64(row))
			risk := clamp(base*(1-edge*edgeRiskDamping), 0, 1)

			m.Terrain[row][col] = 1
			m.Risk[row][col] = decimal.NewFromFloat(risk).Round(riskPrecision).InexactFloat64()
			m.Animal[row][col] = animalRoll < cfg.AnimalBase*(1-edge*edgeAnimalDamping)
		}
	}

	return m, nil
}

// edgeFactor is 0 on the border and grows toward the centre.
func edgeFactor(row, col, size int) float64 {
	d := min(row, col, size-1-row, size-1-col)
	return float64(d) / (float64(size) / 2)
}

func octaveNoise(noise opensimplex.Noise, x, y float64) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	frequency := noiseFrequency

	for i := 0; i < noiseOctaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= noisePersistence
		frequency *= 2
	}

	return total / maxVal
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
