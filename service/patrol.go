package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/patrol"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/beka-birhanu/patrol-api/simulation"
)

// Patrol plans patrols on request and caches deterministic outcomes.
type Patrol struct {
	cache  i.ResultCache
	logger i.Logger
}

// PatrolConfig holds the dependencies of a Patrol service. Cache is optional.
type PatrolConfig struct {
	Cache  i.ResultCache
	Logger i.Logger
}

// NewPatrolService creates a new Patrol service.
func NewPatrolService(cfg PatrolConfig) (*Patrol, error) {
	if cfg.Logger == nil {
		return nil, errors.New("patrol service requires a logger")
	}
	return &Patrol{
		cache:  cfg.Cache,
		logger: cfg.Logger,
	}, nil
}

// Optimize validates req, runs the route strategy and evaluates the result.
// Identical cacheable requests are computed once across instances.
func (p *Patrol) Optimize(ctx context.Context, req dmn.PatrolRequest) (*dmn.Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if p.cache == nil || !cacheable(req) {
		return p.compute(req)
	}

	key, err := req.Fingerprint()
	if err != nil {
		p.logger.Warning(fmt.Sprintf("fingerprinting request: %s", err))
		return p.compute(req)
	}

	if outcome, ok := p.cached(ctx, key); ok {
		return outcome, nil
	}

	unlock, err := p.cache.Lock(ctx, key)
	if err != nil {
		p.logger.Warning(fmt.Sprintf("locking %s: %s", key, err))
	} else {
		defer unlock()
		// Another instance may have finished while we waited.
		if outcome, ok := p.cached(ctx, key); ok {
			return outcome, nil
		}
	}

	outcome, err := p.compute(req)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Set(ctx, key, outcome); err != nil {
		p.logger.Warning(fmt.Sprintf("caching %s: %s", key, err))
	}
	return outcome, nil
}

func (p *Patrol) cached(ctx context.Context, key string) (*dmn.Outcome, bool) {
	outcome, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warning(fmt.Sprintf("reading cache %s: %s", key, err))
		return nil, false
	}
	if ok {
		p.logger.Info(fmt.Sprintf("cache hit %s", key))
	}
	return outcome, ok
}

func (p *Patrol) compute(req dmn.PatrolRequest) (*dmn.Outcome, error) {
	grid, err := req.Grid()
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var strategy patrol.Strategy = patrol.Greedy{}
	if req.Mode == dmn.ModeRandom {
		strategy = patrol.NewRandomWalk(rng)
	}

	optimizer := patrol.NewOptimizer(grid, strategy)
	if err := optimizer.Run(req.RangerCount, req.MaxSteps); err != nil {
		return nil, err
	}

	var report *simulation.PoachingReport
	if req.SimulationRuns > 0 {
		r, err := simulation.SimulatePoaching(grid, req.SimulationRuns, rng)
		if err != nil {
			return nil, err
		}
		report = &r
	}

	p.logger.Info(fmt.Sprintf("planned %d %s routes on a %dx%d grid", req.RangerCount, req.Mode, req.GridSize, req.GridSize))
	return dmn.NewOutcome(req.Mode, optimizer.Routes(), optimizer.Coverage(), simulation.Statistics(grid), report), nil
}

// cacheable reports whether req always yields the same outcome.
func cacheable(req dmn.PatrolRequest) bool {
	if req.Mode != dmn.ModeOptimized {
		return false
	}
	return req.SimulationRuns == 0 || req.Seed != 0
}
