package simulation

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/patrol-api/patrol"
)

// ErrInvalidRuns is returned when a simulation is asked for no runs.
var ErrInvalidRuns = errors.New("simulation runs must be positive")

// RandomSource supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// PoachingReport is the outcome of a Monte-Carlo poaching simulation.
type PoachingReport struct {
	Runs                   int
	AnimalsAtRisk          int // passable cells with animals
	ExpectedPoachingBefore float64
	ExpectedPoachingAfter  float64
	AnimalsSaved           float64
}

// SimulatePoaching estimates poaching events per run with and without the
// patrol recorded on g. Every run draws one sample per passable animal cell
// for each scenario.
func SimulatePoaching(g *patrol.Grid, runs int, src RandomSource) (PoachingReport, error) {
	if runs <= 0 {
		return PoachingReport{}, fmt.Errorf("%w: got %d", ErrInvalidRuns, runs)
	}

	var targets []patrol.Cell
	for cell := range g.PassableCells() {
		if cell.HasAnimal() {
			targets = append(targets, cell)
		}
	}

	beforeEvents, afterEvents := 0, 0
	for run := 0; run < runs; run++ {
		for _, cell := range targets {
			if src.Float64() < cell.RiskLevel() {
				beforeEvents++
			}
			if src.Float64() < EffectiveRisk(cell) {
				afterEvents++
			}
		}
	}

	return PoachingReport{
		Runs:                   runs,
		AnimalsAtRisk:          len(targets),
		ExpectedPoachingBefore: float64(beforeEvents) / float64(runs),
		ExpectedPoachingAfter:  float64(afterEvents) / float64(runs),
		AnimalsSaved:           float64(beforeEvents-afterEvents) / float64(runs),
	}, nil
}
