package service

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
)

const (
	// ResultCreatedSubject is published after a result is saved.
	ResultCreatedSubject = "patrol.results.created"

	maxTopResults = 100
)

var (
	ErrMapNotFound    = errors.New("map not found")
	ErrResultNotFound = errors.New("result not found")
)

// Archive stores maps and patrol results.
type Archive struct {
	maps        i.MapRepo
	results     i.ResultRepo
	ranking     i.ResultRanking
	events      i.EventPublisher
	patrol      i.PatrolOptimizer
	logger      i.Logger
	defaultRuns int
}

// ArchiveConfig holds the dependencies of an Archive. Ranking and Events are optional.
type ArchiveConfig struct {
	Maps                  i.MapRepo
	Results               i.ResultRepo
	Ranking               i.ResultRanking
	Events                i.EventPublisher
	Patrol                i.PatrolOptimizer
	Logger                i.Logger
	DefaultSimulationRuns int // used when patrolling a saved map
}

// NewArchiveService creates a new Archive.
func NewArchiveService(cfg ArchiveConfig) (*Archive, error) {
	switch {
	case cfg.Maps == nil:
		return nil, errors.New("archive service requires a map repo")
	case cfg.Results == nil:
		return nil, errors.New("archive service requires a result repo")
	case cfg.Patrol == nil:
		return nil, errors.New("archive service requires a patrol optimizer")
	case cfg.Logger == nil:
		return nil, errors.New("archive service requires a logger")
	}
	if err := dmn.CheckSimulationRuns(cfg.DefaultSimulationRuns); err != nil {
		return nil, fmt.Errorf("default simulation runs: %w", err)
	}

	return &Archive{
		maps:        cfg.Maps,
		results:     cfg.Results,
		ranking:     cfg.Ranking,
		events:      cfg.Events,
		patrol:      cfg.Patrol,
		logger:      cfg.Logger,
		defaultRuns: cfg.DefaultSimulationRuns,
	}, nil
}

// SaveMap validates and stores a new map.
func (a *Archive) SaveMap(ctx context.Context, cfg dmn.MapConfig) (*dmn.Map, error) {
	m, err := dmn.NewMap(cfg)
	if err != nil {
		return nil, err
	}
	if err := a.maps.Save(ctx, m); err != nil {
		a.logger.Error(fmt.Sprintf("saving map %s: %s", m.ID, err))
		return nil, fmt.Errorf("saving map: %w", err)
	}
	a.logger.Info(fmt.Sprintf("saved map %s (%s)", m.ID, m.Name))
	return m, nil
}

// Maps lists every saved map, newest first.
func (a *Archive) Maps(ctx context.Context) ([]*dmn.Map, error) {
	maps, err := a.maps.All(ctx)
	if err != nil {
		a.logger.Error(fmt.Sprintf("listing maps: %s", err))
		return nil, fmt.Errorf("listing maps: %w", err)
	}
	return maps, nil
}

// Map loads a saved map or returns ErrMapNotFound.
func (a *Archive) Map(ctx context.Context, id string) (*dmn.Map, error) {
	m, err := a.maps.ByID(ctx, id)
	if errors.Is(err, i.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrMapNotFound, id)
	}
	if err != nil {
		a.logger.Error(fmt.Sprintf("loading map %s: %s", id, err))
		return nil, fmt.Errorf("loading map: %w", err)
	}
	return m, nil
}

// SaveResult stores a result, ranks it by risk reduction and announces it.
// Ranking and publishing failures are logged, not returned.
func (a *Archive) SaveResult(ctx context.Context, cfg dmn.ResultConfig) (*dmn.Result, error) {
	r := dmn.NewResult(cfg)
	if err := a.results.Save(ctx, r); err != nil {
		a.logger.Error(fmt.Sprintf("saving result %s: %s", r.ID, err))
		return nil, fmt.Errorf("saving result: %w", err)
	}

	if a.ranking != nil {
		if err := a.ranking.Add(ctx, r.MapID, r.Stats.RiskReduction, r.ID); err != nil {
			a.logger.Warning(fmt.Sprintf("ranking result %s: %s", r.ID, err))
		}
	}
	a.publish(ctx, r)

	a.logger.Info(fmt.Sprintf("saved result %s for map %s", r.ID, r.MapID))
	return r, nil
}

// Result loads a saved result or returns ErrResultNotFound.
func (a *Archive) Result(ctx context.Context, id string) (*dmn.Result, error) {
	r, err := a.results.ByID(ctx, id)
	if errors.Is(err, i.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrResultNotFound, id)
	}
	if err != nil {
		a.logger.Error(fmt.Sprintf("loading result %s: %s", id, err))
		return nil, fmt.Errorf("loading result: %w", err)
	}
	return r, nil
}

// TopResults returns up to n results of a map, best risk reduction first.
func (a *Archive) TopResults(ctx context.Context, mapID string, n int) ([]*dmn.Result, error) {
	if n < 1 || n > maxTopResults {
		n = maxTopResults
	}
	if _, err := a.Map(ctx, mapID); err != nil {
		return nil, err
	}

	// A short ranking may have expired or missed writes; the repository is authoritative.
	if a.ranking != nil {
		top, err := a.rankedResults(ctx, mapID, n)
		if err != nil {
			a.logger.Warning(fmt.Sprintf("ranking unavailable for map %s, scanning: %s", mapID, err))
		} else if len(top) == n {
			return top, nil
		}
	}

	results, err := a.results.ByMap(ctx, mapID)
	if err != nil {
		a.logger.Error(fmt.Sprintf("scanning results of map %s: %s", mapID, err))
		return nil, fmt.Errorf("scanning results: %w", err)
	}
	slices.SortStableFunc(results, func(x, y *dmn.Result) int {
		return cmp.Compare(y.Stats.RiskReduction, x.Stats.RiskReduction)
	})
	a.backfillRanking(ctx, mapID, results)

	if len(results) > n {
		results = results[:n]
	}
	return results, nil
}

// backfillRanking re-adds scanned results so later lookups hit the ranking.
func (a *Archive) backfillRanking(ctx context.Context, mapID string, results []*dmn.Result) {
	if a.ranking == nil {
		return
	}
	for _, r := range results {
		if err := a.ranking.Add(ctx, mapID, r.Stats.RiskReduction, r.ID); err != nil {
			a.logger.Warning(fmt.Sprintf("rebuilding ranking of map %s: %s", mapID, err))
			return
		}
	}
}

func (a *Archive) rankedResults(ctx context.Context, mapID string, n int) ([]*dmn.Result, error) {
	ids, err := a.ranking.Top(ctx, mapID, int64(n))
	if err != nil {
		return nil, err
	}

	top := make([]*dmn.Result, 0, len(ids))
	for _, id := range ids {
		r, err := a.results.ByID(ctx, id)
		if errors.Is(err, i.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		top = append(top, r)
	}
	return top, nil
}

// PatrolMap plans a patrol over a saved map and stores the result.
func (a *Archive) PatrolMap(ctx context.Context, mapID string, rangerCount, maxSteps int, mode dmn.Mode) (*dmn.Result, error) {
	m, err := a.Map(ctx, mapID)
	if err != nil {
		return nil, err
	}

	req := m.Request(rangerCount, maxSteps, mode)
	req.SimulationRuns = a.defaultRuns
	outcome, err := a.patrol.Optimize(ctx, req)
	if err != nil {
		return nil, err
	}

	return a.SaveResult(ctx, dmn.ResultConfig{
		MapID:       m.ID,
		RangerCount: rangerCount,
		MaxSteps:    maxSteps,
		Outcome:     outcome,
	})
}

func (a *Archive) publish(ctx context.Context, r *dmn.Result) {
	if a.events == nil {
		return
	}
	payload, err := json.Marshal(r)
	if err != nil {
		a.logger.Warning(fmt.Sprintf("encoding result %s: %s", r.ID, err))
		return
	}
	if err := a.events.Publish(ctx, ResultCreatedSubject, payload); err != nil {
		a.logger.Warning(fmt.Sprintf("publishing result %s: %s", r.ID, err))
	}
}
