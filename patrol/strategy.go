package patrol

import (
	"math"
	"math/rand"
)

// Strategy decides the next move of a ranger.
type Strategy interface {
	// Step moves the ranger one cell and records the visit on the grid.
	// It returns false when the ranger cannot move, which ends its route.
	Step(r *Ranger, g *Grid) bool
}

// Walk marks the starting cell of r as visited and then steps until the
// strategy reports that the ranger cannot move. The loop runs at most
// MaxSteps+1 times.
func Walk(s Strategy, r *Ranger, g *Grid) {
	g.visit(r.Position())

	for s.Step(r, g) {
	}
}

// Greedy always moves to the neighbour with the highest score. Ties go to
// the first neighbour in north, south, west, east order.
type Greedy struct{}

// Step implements Strategy.
func (Greedy) Step(r *Ranger, g *Grid) bool {
	if !r.CanMove() {
		return false
	}

	pos := r.Position()
	neighbors := g.Neighbors(pos.Row, pos.Col)
	if len(neighbors) == 0 {
		return false
	}

	best := neighbors[0]
	bestScore := math.Inf(-1)
	for _, neighbor := range neighbors {
		if score := neighbor.Score(); score > bestScore {
			bestScore = score
			best = neighbor
		}
	}

	if !r.moveTo(best.pos) {
		return false
	}
	g.visit(best.pos)
	return true
}

// RandomWalk moves to a uniformly chosen passable neighbour, diagonals
// included. It is the unoptimized baseline patrols are compared against.
type RandomWalk struct {
	rng *rand.Rand
}

// NewRandomWalk returns a random walk driven by rng.
func NewRandomWalk(rng *rand.Rand) *RandomWalk {
	return &RandomWalk{rng: rng}
}

// Step implements Strategy.
func (w *RandomWalk) Step(r *Ranger, g *Grid) bool {
	if !r.CanMove() {
		return false
	}

	pos := r.Position()
	neighbors := g.Neighbors8(pos.Row, pos.Col)
	if len(neighbors) == 0 {
		return false
	}

	next := neighbors[w.rng.Intn(len(neighbors))]
	if !r.moveTo(next.pos) {
		return false
	}
	g.visit(next.pos)
	return true
}
