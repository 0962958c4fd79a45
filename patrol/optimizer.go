package patrol

import (
	"cmp"
	"fmt"
	"slices"
)

// minCornerRangers is the fleet size from which rangers are spread to the
// four corners before high-risk cells are used.
const minCornerRangers = 4

// Route is the patrol path of one ranger, starting cell included.
type Route struct {
	RangerID int
	Path     []Position
}

// Optimizer places rangers on a grid and walks them one after the other.
type Optimizer struct {
	grid     *Grid
	strategy Strategy
	rangers  []*Ranger
}

// NewOptimizer creates an optimizer over grid. A nil strategy means Greedy.
func NewOptimizer(grid *Grid, strategy Strategy) *Optimizer {
	if strategy == nil {
		strategy = Greedy{}
	}
	return &Optimizer{
		grid:     grid,
		strategy: strategy,
	}
}

// SeedStartingPositions picks up to count distinct starting cells. With four
// or more rangers the passable cells nearest to each corner come first; the
// remaining slots go to the riskiest passable cells.
func (o *Optimizer) SeedStartingPositions(count int) ([]Position, error) {
	passable := slices.Collect(o.grid.PassableCells())
	if len(passable) == 0 {
		return nil, ErrNoPassableTerrain
	}

	// Stable so equal risks keep row-major order.
	slices.SortStableFunc(passable, func(a, b Cell) int {
		return cmp.Compare(b.riskLevel, a.riskLevel)
	})

	positions := make([]Position, 0, count)
	chosen := make(map[Position]struct{})
	add := func(pos Position) {
		if _, seen := chosen[pos]; seen {
			return
		}
		chosen[pos] = struct{}{}
		positions = append(positions, pos)
	}

	if count >= minCornerRangers {
		last := o.grid.size - 1
		corners := []Position{{0, 0}, {0, last}, {last, 0}, {last, last}}
		for _, corner := range corners {
			if pos, ok := o.nearestPassable(corner); ok {
				add(pos)
			}
		}
	}

	for _, cell := range passable {
		if len(positions) >= count {
			break
		}
		add(cell.pos)
	}

	return positions, nil
}

// nearestPassable scans squares of growing radius around origin and returns
// the first passable cell. Each radius rescans the whole square, not just its
// border, which keeps the pick stable on tie-prone maps.
func (o *Optimizer) nearestPassable(origin Position) (Position, bool) {
	for radius := 0; radius < o.grid.size; radius++ {
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				cell, ok := o.grid.Cell(origin.Row+dr, origin.Col+dc)
				if ok && cell.passable {
					return cell.pos, true
				}
			}
		}
	}
	return Position{}, false
}

// Run places rangerCount rangers with a budget of maxSteps each and walks
// them in id order. Rangers share starting cells when there are fewer seed
// positions than rangers. Later rangers see the visits of earlier ones.
func (o *Optimizer) Run(rangerCount, maxSteps int) error {
	if rangerCount < 0 {
		return fmt.Errorf("%w: ranger count must not be negative, got %d", ErrInvalidConfiguration, rangerCount)
	}
	if maxSteps < 0 {
		return fmt.Errorf("%w: max steps must not be negative, got %d", ErrInvalidConfiguration, maxSteps)
	}

	starts, err := o.SeedStartingPositions(rangerCount)
	if err != nil {
		return err
	}

	o.rangers = make([]*Ranger, 0, rangerCount)
	for id := 0; id < rangerCount; id++ {
		o.rangers = append(o.rangers, NewRanger(id, starts[id%len(starts)], maxSteps))
	}

	for _, ranger := range o.rangers {
		Walk(o.strategy, ranger, o.grid)
	}
	return nil
}

// Routes returns the path of every ranger in id order.
func (o *Optimizer) Routes() []Route {
	routes := make([]Route, 0, len(o.rangers))
	for _, ranger := range o.rangers {
		routes = append(routes, Route{RangerID: ranger.ID(), Path: ranger.Path()})
	}
	return routes
}

// Coverage returns the visit counts of the grid.
func (o *Optimizer) Coverage() [][]int {
	return o.grid.CoverageSnapshot()
}

// Rangers returns the rangers of the last run.
func (o *Optimizer) Rangers() []*Ranger {
	return slices.Clone(o.rangers)
}

// Grid returns the grid the optimizer works on.
func (o *Optimizer) Grid() *Grid {
	return o.grid
}
