// Package domain holds the records the service stores and returns.
package domain

import (
	"github.com/beka-birhanu/patrol-api/patrol"
	"github.com/beka-birhanu/patrol-api/simulation"
)

// Point is a [row, col] pair.
type Point [2]int

// RouteRecord is the path one ranger walked.
type RouteRecord struct {
	RangerID int     `json:"rangerId" bson:"rangerId"`
	Path     []Point `json:"path" bson:"path"`
}

// StatsRecord holds risk statistics; percentages are 0-100.
type StatsRecord struct {
	BeforeRisk           float64 `json:"beforeRisk" bson:"beforeRisk"`
	AfterRisk            float64 `json:"afterRisk" bson:"afterRisk"`
	RiskReduction        float64 `json:"riskReduction" bson:"riskReduction"`
	HighRiskCoverage     float64 `json:"highRiskCoverage" bson:"highRiskCoverage"`
	OverallCoverage      float64 `json:"overallCoverage" bson:"overallCoverage"`
	CellsPatrolled       int     `json:"cellsPatrolled" bson:"cellsPatrolled"`
	TotalCells           int     `json:"totalCells" bson:"totalCells"`
	HighRiskCells        int     `json:"highRiskCells" bson:"highRiskCells"`
	CoveredHighRiskCells int     `json:"coveredHighRiskCells" bson:"coveredHighRiskCells"`
}

// PoachingRecord is a stored Monte-Carlo poaching estimate.
type PoachingRecord struct {
	Runs                   int     `json:"runs" bson:"runs"`
	AnimalsAtRisk          int     `json:"animalsAtRisk" bson:"animalsAtRisk"`
	ExpectedPoachingBefore float64 `json:"expectedPoachingBefore" bson:"expectedPoachingBefore"`
	ExpectedPoachingAfter  float64 `json:"expectedPoachingAfter" bson:"expectedPoachingAfter"`
	AnimalsSaved           float64 `json:"animalsSaved" bson:"animalsSaved"`
}

// Outcome is the evaluated result of one patrol request.
type Outcome struct {
	Mode     Mode            `json:"mode"`
	Routes   []RouteRecord   `json:"routes"`
	Coverage [][]int         `json:"coverage"`
	Stats    StatsRecord     `json:"stats"`
	Poaching *PoachingRecord `json:"poaching,omitempty"`
}

// NewOutcome converts core results into records. report may be nil.
func NewOutcome(mode Mode, routes []patrol.Route, coverage [][]int, stats simulation.Stats, report *simulation.PoachingReport) *Outcome {
	outcome := &Outcome{
		Mode:     mode,
		Routes:   make([]RouteRecord, 0, len(routes)),
		Coverage: coverage,
		Stats: StatsRecord{
			BeforeRisk:           stats.BeforeRisk,
			AfterRisk:            stats.AfterRisk,
			RiskReduction:        stats.RiskReduction,
			HighRiskCoverage:     stats.HighRiskCoverage,
			OverallCoverage:      stats.OverallCoverage,
			CellsPatrolled:       stats.CellsPatrolled,
			TotalCells:           stats.TotalCells,
			HighRiskCells:        stats.HighRiskCells,
			CoveredHighRiskCells: stats.CoveredHighRiskCells,
		},
	}

	for _, route := range routes {
		path := make([]Point, len(route.Path))
		for i, pos := range route.Path {
			path[i] = Point{pos.Row, pos.Col}
		}
		outcome.Routes = append(outcome.Routes, RouteRecord{RangerID: route.RangerID, Path: path})
	}

	if report != nil {
		outcome.Poaching = &PoachingRecord{
			Runs:                   report.Runs,
			AnimalsAtRisk:          report.AnimalsAtRisk,
			ExpectedPoachingBefore: report.ExpectedPoachingBefore,
			ExpectedPoachingAfter:  report.ExpectedPoachingAfter,
			AnimalsSaved:           report.AnimalsSaved,
		}
	}
	return outcome
}
