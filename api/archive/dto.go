// Package archiveapi exposes saved maps and patrol results over HTTP.
package archiveapi

import (
	"time"

	"github.com/beka-birhanu/patrol-api/api/render"
	dmn "github.com/beka-birhanu/patrol-api/domain"
)

// SaveMapRequest is the body of POST /maps.
type SaveMapRequest struct {
	Name       string      `json:"name"`
	GridSize   int         `json:"gridSize" binding:"required"`
	RiskMap    [][]float64 `json:"riskMap" binding:"required"`
	AnimalMap  [][]bool    `json:"animalMap" binding:"required"`
	TerrainMap [][]int     `json:"terrainMap" binding:"required"`
}

// CreatedResponse acknowledges a stored record.
type CreatedResponse struct {
	MapID     string    `json:"mapId,omitempty"`
	ResultID  string    `json:"resultId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapSummary is one entry of GET /maps.
type MapSummary struct {
	ID        string    `json:"mapId"`
	Name      string    `json:"name"`
	GridSize  int       `json:"gridSize"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveResultRequest is the body of POST /results. Stats may carry
// percentages as returned by /optimize.
type SaveResultRequest struct {
	MapID       string            `json:"mapId"`
	Mode        string            `json:"mode"`
	RangerCount int               `json:"rangerCount"`
	MaxSteps    int               `json:"maxSteps"`
	Routes      []dmn.RouteRecord `json:"routes" binding:"required"`
	Coverage    [][]int           `json:"coverage"`
	Stats       render.Stats      `json:"stats"`
}

// PatrolMapRequest is the body of POST /maps/:id/patrols.
type PatrolMapRequest struct {
	RangerCount int    `json:"rangerCount"`
	MaxSteps    int    `json:"maxSteps"`
	Mode        string `json:"mode"`
}

// ResultResponse is a stored result with rendered statistics.
type ResultResponse struct {
	ID          string              `json:"resultId"`
	MapID       string              `json:"mapId"`
	Mode        dmn.Mode            `json:"mode"`
	RangerCount int                 `json:"rangerCount"`
	MaxSteps    int                 `json:"maxSteps"`
	Routes      []dmn.RouteRecord   `json:"routes"`
	Coverage    [][]int             `json:"coverage"`
	Stats       render.Stats        `json:"stats"`
	Poaching    *dmn.PoachingRecord `json:"poaching,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func newResultResponse(r *dmn.Result) *ResultResponse {
	return &ResultResponse{
		ID:          r.ID,
		MapID:       r.MapID,
		Mode:        r.Mode,
		RangerCount: r.RangerCount,
		MaxSteps:    r.MaxSteps,
		Routes:      r.Routes,
		Coverage:    r.Coverage,
		Stats:       render.NewStats(r.Stats),
		Poaching:    r.Poaching,
		CreatedAt:   r.CreatedAt,
	}
}

// TopQuery holds the query of GET /maps/:id/results/top.
type TopQuery struct {
	Limit int `form:"limit,default=10"`
}
