/*
Package patrol builds ranger patrol routes over a risk-annotated square grid.

A Grid is created from three same-shaped maps (risk, animal presence and
terrain) and owns every Cell. Rangers walk the grid one orthogonal step at a
time following a Strategy; the Optimizer picks starting cells, walks every
ranger in id order and exposes the resulting routes and coverage.
*/
package patrol

import (
	"fmt"
	"iter"
)

// passableTerrain is the terrain value that marks a cell as walkable.
const passableTerrain = 1

var (
	// orthogonal lists the step offsets in north, south, west, east order.
	// Greedy tie-breaking depends on this order.
	orthogonal = []Position{
		{Row: -1, Col: 0},
		{Row: 1, Col: 0},
		{Row: 0, Col: -1},
		{Row: 0, Col: 1},
	}

	// diagonal lists the extra offsets used by the 8-neighbour random walk.
	diagonal = []Position{
		{Row: -1, Col: -1},
		{Row: -1, Col: 1},
		{Row: 1, Col: -1},
		{Row: 1, Col: 1},
	}
)

// Grid is a size x size patrol area stored as a flat row-major array.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid builds a grid from the risk, animal and terrain maps. Every map
// must be exactly size x size; nothing is built otherwise.
func NewGrid(size int, riskMap [][]float64, animalMap [][]bool, terrainMap [][]int) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %d", ErrInvalidConfiguration, size)
	}
	if err := checkShape("riskMap", size, riskMap); err != nil {
		return nil, err
	}
	if err := checkShape("animalMap", size, animalMap); err != nil {
		return nil, err
	}
	if err := checkShape("terrainMap", size, terrainMap); err != nil {
		return nil, err
	}

	cells := make([]Cell, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cells[row*size+col] = Cell{
				pos:       Position{Row: row, Col: col},
				riskLevel: riskMap[row][col],
				hasAnimal: animalMap[row][col],
				passable:  terrainMap[row][col] == passableTerrain,
			}
		}
	}

	return &Grid{size: size, cells: cells}, nil
}

// checkShape verifies that m has exactly size rows of size columns.
func checkShape[T any](name string, size int, m [][]T) error {
	if len(m) != size {
		return fmt.Errorf("%w: %s has %d rows, want %d", ErrDimensionMismatch, name, len(m), size)
	}
	for row, values := range m {
		if len(values) != size {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrDimensionMismatch, name, row, len(values), size)
		}
	}
	return nil
}

// Size returns the number of rows (and columns) of the grid.
func (g *Grid) Size() int {
	return g.size
}

// InBound reports whether (row, col) lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Cell returns a copy of the cell at (row, col). The boolean is false for
// coordinates outside the grid.
func (g *Grid) Cell(row, col int) (Cell, bool) {
	if !g.InBound(row, col) {
		return Cell{}, false
	}
	return g.cells[row*g.size+col], true
}

// Neighbors returns the passable orthogonal neighbours of (row, col) in
// north, south, west, east order.
func (g *Grid) Neighbors(row, col int) []Cell {
	return g.collect(row, col, orthogonal)
}

// Neighbors8 returns the passable neighbours of (row, col) including
// diagonals: north, south, west, east, then north-west, north-east,
// south-west, south-east.
func (g *Grid) Neighbors8(row, col int) []Cell {
	neighbors := g.collect(row, col, orthogonal)
	return append(neighbors, g.collect(row, col, diagonal)...)
}

func (g *Grid) collect(row, col int, offsets []Position) []Cell {
	neighbors := make([]Cell, 0, len(offsets))
	for _, d := range offsets {
		cell, ok := g.Cell(row+d.Row, col+d.Col)
		if ok && cell.passable {
			neighbors = append(neighbors, cell)
		}
	}
	return neighbors
}

// PassableCells yields every passable cell in row-major order. The sequence
// can be ranged over any number of times.
func (g *Grid) PassableCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, cell := range g.cells {
			if !cell.passable {
				continue
			}
			if !yield(cell) {
				return
			}
		}
	}
}

// PassableCount returns the number of passable cells.
func (g *Grid) PassableCount() int {
	count := 0
	for range g.PassableCells() {
		count++
	}
	return count
}

// TotalRisk sums the risk of all passable cells.
func (g *Grid) TotalRisk() float64 {
	total := 0.0
	for cell := range g.PassableCells() {
		total += cell.riskLevel
	}
	return total
}

// CoverageSnapshot returns a copy of the visit counts of every cell.
func (g *Grid) CoverageSnapshot() [][]int {
	coverage := make([][]int, g.size)
	for row := range coverage {
		coverage[row] = make([]int, g.size)
		for col := range coverage[row] {
			coverage[row][col] = g.cells[row*g.size+col].visitCount
		}
	}
	return coverage
}

// visit increments the visit counter of the cell at pos.
func (g *Grid) visit(pos Position) bool {
	if !g.InBound(pos.Row, pos.Col) {
		return false
	}
	g.cells[pos.Row*g.size+pos.Col].visitCount++
	return true
}
