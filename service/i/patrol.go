package i

import (
	"context"

	dmn "github.com/beka-birhanu/patrol-api/domain"
)

// PatrolOptimizer plans and evaluates patrols.
type PatrolOptimizer interface {
	Optimize(ctx context.Context, req dmn.PatrolRequest) (*dmn.Outcome, error)
}

// Archiver stores maps and results and ranks results per map.
type Archiver interface {
	SaveMap(ctx context.Context, cfg dmn.MapConfig) (*dmn.Map, error)
	Maps(ctx context.Context) ([]*dmn.Map, error)
	Map(ctx context.Context, id string) (*dmn.Map, error)
	SaveResult(ctx context.Context, cfg dmn.ResultConfig) (*dmn.Result, error)
	Result(ctx context.Context, id string) (*dmn.Result, error)
	TopResults(ctx context.Context, mapID string, n int) ([]*dmn.Result, error)
	PatrolMap(ctx context.Context, mapID string, rangerCount, maxSteps int, mode dmn.Mode) (*dmn.Result, error)
}
