// Package patrolapi exposes route planning and demo terrain over HTTP.
package patrolapi

import (
	"github.com/beka-birhanu/patrol-api/api/render"
	dmn "github.com/beka-birhanu/patrol-api/domain"
)

// OptimizeRequest is the body of POST /optimize.
type OptimizeRequest struct {
	GridSize       int         `json:"gridSize" binding:"required"`
	RangerCount    int         `json:"rangerCount"`
	MaxSteps       int         `json:"maxSteps"`
	RiskMap        [][]float64 `json:"riskMap" binding:"required"`
	AnimalMap      [][]bool    `json:"animalMap" binding:"required"`
	TerrainMap     [][]int     `json:"terrainMap" binding:"required"`
	Mode           string      `json:"mode"`
	SimulationRuns int         `json:"simulationRuns"`
	Seed           int64       `json:"seed"`
}

func (r OptimizeRequest) toDomain() dmn.PatrolRequest {
	return dmn.PatrolRequest{
		GridSize:       r.GridSize,
		RangerCount:    r.RangerCount,
		MaxSteps:       r.MaxSteps,
		RiskMap:        r.RiskMap,
		AnimalMap:      r.AnimalMap,
		TerrainMap:     r.TerrainMap,
		Mode:           dmn.Mode(r.Mode),
		SimulationRuns: r.SimulationRuns,
		Seed:           r.Seed,
	}
}

// OptimizeResponse carries routes, coverage and statistics.
type OptimizeResponse struct {
	Mode     dmn.Mode            `json:"mode"`
	Routes   []dmn.RouteRecord   `json:"routes"`
	Coverage [][]int             `json:"coverage"`
	Stats    render.Stats        `json:"stats"`
	Poaching *dmn.PoachingRecord `json:"poaching,omitempty"`
}

func newOptimizeResponse(o *dmn.Outcome) *OptimizeResponse {
	return &OptimizeResponse{
		Mode:     o.Mode,
		Routes:   o.Routes,
		Coverage: o.Coverage,
		Stats:    render.NewStats(o.Stats),
		Poaching: o.Poaching,
	}
}

// TerrainQuery holds the query of GET /terrain.
type TerrainQuery struct {
	Size int   `form:"size,default=20"`
	Seed int64 `form:"seed"`
}
