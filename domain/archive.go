package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	defaultMapName = "Untitled Map"
	UnknownMapID   = "unknown"
)

// Map is a saved reserve layout.
type Map struct {
	ID         string      `json:"mapId" bson:"_id"`
	Name       string      `json:"name" bson:"name"`
	GridSize   int         `json:"gridSize" bson:"gridSize"`
	RiskMap    [][]float64 `json:"riskMap" bson:"riskMap"`
	AnimalMap  [][]bool    `json:"animalMap" bson:"animalMap"`
	TerrainMap [][]int     `json:"terrainMap" bson:"terrainMap"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
}

// MapConfig holds the caller supplied parts of a Map.
type MapConfig struct {
	Name       string
	GridSize   int
	RiskMap    [][]float64
	AnimalMap  [][]bool
	TerrainMap [][]int
}

// NewMap assigns an ID and creation time. The matrices must form a valid grid.
func NewMap(cfg MapConfig) (*Map, error) {
	req := PatrolRequest{
		GridSize:   cfg.GridSize,
		RiskMap:    cfg.RiskMap,
		AnimalMap:  cfg.AnimalMap,
		TerrainMap: cfg.TerrainMap,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := req.Grid(); err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = defaultMapName
	}
	return &Map{
		ID:         uuid.NewString(),
		Name:       name,
		GridSize:   cfg.GridSize,
		RiskMap:    cfg.RiskMap,
		AnimalMap:  cfg.AnimalMap,
		TerrainMap: cfg.TerrainMap,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Request builds a patrol request over the map.
func (m *Map) Request(rangerCount, maxSteps int, mode Mode) PatrolRequest {
	return PatrolRequest{
		GridSize:    m.GridSize,
		RangerCount: rangerCount,
		MaxSteps:    maxSteps,
		RiskMap:     m.RiskMap,
		AnimalMap:   m.AnimalMap,
		TerrainMap:  m.TerrainMap,
		Mode:        mode,
	}
}

// Result is a saved patrol outcome.
type Result struct {
	ID          string          `json:"resultId" bson:"_id"`
	MapID       string          `json:"mapId" bson:"mapId"`
	Mode        Mode            `json:"mode" bson:"mode"`
	RangerCount int             `json:"rangerCount" bson:"rangerCount"`
	MaxSteps    int             `json:"maxSteps" bson:"maxSteps"`
	Routes      []RouteRecord   `json:"routes" bson:"routes"`
	Coverage    [][]int         `json:"coverage" bson:"coverage"`
	Stats       StatsRecord     `json:"stats" bson:"stats"`
	Poaching    *PoachingRecord `json:"poaching,omitempty" bson:"poaching,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
}

// ResultConfig holds the caller supplied parts of a Result.
type ResultConfig struct {
	MapID       string
	RangerCount int
	MaxSteps    int
	Outcome     *Outcome
}

// NewResult assigns an ID and creation time. An empty map ID is stored as UnknownMapID.
func NewResult(cfg ResultConfig) *Result {
	mapID := cfg.MapID
	if mapID == "" {
		mapID = UnknownMapID
	}
	r := &Result{
		ID:          uuid.NewString(),
		MapID:       mapID,
		RangerCount: cfg.RangerCount,
		MaxSteps:    cfg.MaxSteps,
		CreatedAt:   time.Now().UTC(),
	}
	if cfg.Outcome != nil {
		r.Mode = cfg.Outcome.Mode
		r.Routes = cfg.Outcome.Routes
		r.Coverage = cfg.Outcome.Coverage
		r.Stats = cfg.Outcome.Stats
		r.Poaching = cfg.Outcome.Poaching
	}
	return r
}
