package patrol

import "fmt"

// Position identifies a cell in the grid.
type Position struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// String returns the position formatted as (row,col).
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// impassableScore is strictly lower than any score a passable cell can reach.
const impassableScore = -1

// Cell is a single grid square. Cells are owned by the Grid that built them;
// lookups hand out copies so visit counters only change through the Grid.
type Cell struct {
	pos        Position
	riskLevel  float64 // probability of poaching, conventionally 0.0 - 1.0
	hasAnimal  bool
	passable   bool
	visitCount int
}

// Position returns the coordinates of the cell.
func (c Cell) Position() Position {
	return c.pos
}

// RiskLevel returns the poaching risk of the cell.
func (c Cell) RiskLevel() float64 {
	return c.riskLevel
}

// HasAnimal reports whether animals are present in the cell.
func (c Cell) HasAnimal() bool {
	return c.hasAnimal
}

// Passable reports whether rangers can walk onto the cell.
func (c Cell) Passable() bool {
	return c.passable
}

// VisitCount returns how many times rangers have visited the cell.
func (c Cell) VisitCount() int {
	return c.visitCount
}

// Score returns the patrol priority of the cell. Higher is more important.
// Every visit dampens the score by 1/(visits+1) so rangers drift toward
// cells nobody has covered yet.
func (c Cell) Score() float64 {
	if !c.passable {
		return impassableScore
	}

	animalBonus := 0.0
	if c.hasAnimal {
		animalBonus = 1.0
	}

	return (c.riskLevel*2 + animalBonus) / float64(c.visitCount+1)
}

// String provides a textual representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("Cell%s(risk=%.2f, animal=%t, passable=%t, visits=%d)",
		c.pos, c.riskLevel, c.hasAnimal, c.passable, c.visitCount)
}
