package patrol

import (
	"fmt"
	"slices"
)

// Ranger is a patrol agent with a step budget and the history of every cell
// it has stood on.
type Ranger struct {
	id         int
	pos        Position
	maxSteps   int
	stepsTaken int
	path       []Position
}

// NewRanger places a ranger on start. The start is the first entry of its path.
func NewRanger(id int, start Position, maxSteps int) *Ranger {
	return &Ranger{
		id:       id,
		pos:      start,
		maxSteps: maxSteps,
		path:     []Position{start},
	}
}

// moveTo moves the ranger onto pos. It fails once the budget is spent.
func (r *Ranger) moveTo(pos Position) bool {
	if !r.CanMove() {
		return false
	}

	r.pos = pos
	r.path = append(r.path, pos)
	r.stepsTaken++
	return true
}

// CanMove reports whether the ranger has steps left.
func (r *Ranger) CanMove() bool {
	return r.stepsTaken < r.maxSteps
}

// RemainingSteps returns the unused part of the step budget.
func (r *Ranger) RemainingSteps() int {
	return r.maxSteps - r.stepsTaken
}

// ID returns the ranger identifier.
func (r *Ranger) ID() int { return r.id }

// Position returns the current cell of the ranger.
func (r *Ranger) Position() Position { return r.pos }

// MaxSteps returns the step budget.
func (r *Ranger) MaxSteps() int { return r.maxSteps }

// StepsTaken returns the number of moves made so far.
func (r *Ranger) StepsTaken() int { return r.stepsTaken }

// Path returns a copy of every position visited, starting cell included.
func (r *Ranger) Path() []Position {
	return slices.Clone(r.path)
}

// String provides a textual representation of the ranger.
func (r *Ranger) String() string {
	return fmt.Sprintf("Ranger[%d] at %s, steps: %d/%d", r.id, r.pos, r.stepsTaken, r.maxSteps)
}
