// Package simulation measures how much a finished patrol reduces poaching
// risk, both as deterministic statistics and as a Monte-Carlo estimate.
package simulation

import (
	"github.com/beka-birhanu/patrol-api/patrol"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

const (
	// PatrolReductionFactor scales the risk of a cell once it has been patrolled.
	PatrolReductionFactor = 0.2
	// HighRiskThreshold is the risk from which a cell counts as high risk.
	HighRiskThreshold = 0.7

	riskPrecision = 3
)

// Stats summarizes the effect of a patrol on the passable cells of a grid.
// Percentages are in the 0-100 range.
type Stats struct {
	BeforeRisk           float64 // mean risk without patrols
	AfterRisk            float64 // mean risk with patrols
	RiskReduction        float64
	HighRiskCoverage     float64
	OverallCoverage      float64
	CellsPatrolled       int
	TotalCells           int
	HighRiskCells        int
	CoveredHighRiskCells int
}

// EffectiveRisk returns the risk of cell once patrols are taken into account.
func EffectiveRisk(cell patrol.Cell) float64 {
	if cell.VisitCount() > 0 {
		return cell.RiskLevel() * PatrolReductionFactor
	}
	return cell.RiskLevel()
}

// Statistics computes before and after risk figures from the visit counts of g.
func Statistics(g *patrol.Grid) Stats {
	var (
		before []float64
		after  []float64
		stats  Stats
	)

	for cell := range g.PassableCells() {
		before = append(before, cell.RiskLevel())
		after = append(after, EffectiveRisk(cell))

		visited := cell.VisitCount() > 0
		if visited {
			stats.CellsPatrolled++
		}
		if cell.RiskLevel() >= HighRiskThreshold {
			stats.HighRiskCells++
			if visited {
				stats.CoveredHighRiskCells++
			}
		}
	}
	stats.TotalCells = len(before)

	if stats.TotalCells == 0 {
		stats.HighRiskCoverage = 100
		return stats
	}

	avgBefore := stat.Mean(before, nil)
	avgAfter := stat.Mean(after, nil)
	if avgBefore > 0 {
		stats.RiskReduction = (avgBefore - avgAfter) / avgBefore * 100
	}

	stats.HighRiskCoverage = 100
	if stats.HighRiskCells > 0 {
		stats.HighRiskCoverage = float64(stats.CoveredHighRiskCells) / float64(stats.HighRiskCells) * 100
	}
	stats.OverallCoverage = float64(stats.CellsPatrolled) / float64(stats.TotalCells) * 100

	stats.BeforeRisk = round(avgBefore)
	stats.AfterRisk = round(avgAfter)
	return stats
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(riskPrecision).InexactFloat64()
}
