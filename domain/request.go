package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/beka-birhanu/patrol-api/patrol"
)

// Mode selects the route strategy of a patrol request.
type Mode string

const (
	ModeOptimized Mode = "optimized"
	ModeRandom    Mode = "random"
)

// MaxSimulationRuns caps the Monte-Carlo trials a single request may ask for.
const MaxSimulationRuns = 100000

var ErrUnknownMode = errors.New("unknown patrol mode")

// ParseMode maps an empty string to ModeOptimized.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeOptimized:
		return ModeOptimized, nil
	case ModeRandom:
		return ModeRandom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// PatrolRequest is everything needed to plan and evaluate one patrol.
type PatrolRequest struct {
	GridSize       int         `json:"gridSize"`
	RangerCount    int         `json:"rangerCount"`
	MaxSteps       int         `json:"maxSteps"`
	RiskMap        [][]float64 `json:"riskMap"`
	AnimalMap      [][]bool    `json:"animalMap"`
	TerrainMap     [][]int     `json:"terrainMap"`
	Mode           Mode        `json:"mode"`
	SimulationRuns int         `json:"simulationRuns"`
	Seed           int64       `json:"seed"`
}

// Validate normalizes the mode and checks the scalar fields. Matrix shapes are
// checked when the grid is built.
func (r *PatrolRequest) Validate() error {
	mode, err := ParseMode(string(r.Mode))
	if err != nil {
		return err
	}
	r.Mode = mode

	if r.GridSize < 1 {
		return fmt.Errorf("%w: grid size must be positive, got %d", patrol.ErrInvalidConfiguration, r.GridSize)
	}
	if r.RangerCount < 0 {
		return fmt.Errorf("%w: ranger count must not be negative, got %d", patrol.ErrInvalidConfiguration, r.RangerCount)
	}
	if r.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must not be negative, got %d", patrol.ErrInvalidConfiguration, r.MaxSteps)
	}
	return CheckSimulationRuns(r.SimulationRuns)
}

// CheckSimulationRuns reports whether runs lies in [0, MaxSimulationRuns].
func CheckSimulationRuns(runs int) error {
	if runs < 0 || runs > MaxSimulationRuns {
		return fmt.Errorf("%w: simulation runs must be in [0, %d], got %d", patrol.ErrInvalidConfiguration, MaxSimulationRuns, runs)
	}
	return nil
}

// Grid builds a fresh grid from the request matrices.
func (r *PatrolRequest) Grid() (*patrol.Grid, error) {
	return patrol.NewGrid(r.GridSize, r.RiskMap, r.AnimalMap, r.TerrainMap)
}

// Fingerprint is a stable hex SHA-256 of the request, used as a cache key.
func (r PatrolRequest) Fingerprint() (string, error) {
	if r.Mode == "" {
		r.Mode = ModeOptimized
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
