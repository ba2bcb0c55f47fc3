// Package grid provides integer lattice coordinates and direction helpers.
package grid

import "fmt"

// Coord is a cell position on the lattice, addressed as (row, col).
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Add returns the coordinate shifted by the given direction.
func (c Coord) Add(d Direction) Coord {
	return Coord{Row: c.Row + d.DRow, Col: c.Col + d.DCol}
}

// String renders the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Less orders coordinates row-major.
func (c Coord) Less(other Coord) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Manhattan returns the L1 distance between two coordinates.
func Manhattan(a, b Coord) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// Adjacent returns true if a and b differ by exactly one step along one axis.
func Adjacent(a, b Coord) bool {
	return Manhattan(a, b) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Shape is the size of a rectangular lattice.
type Shape struct {
	Rows int
	Cols int
}

// Square returns the shape of an n×n lattice.
func Square(n int) Shape {
	return Shape{Rows: n, Cols: n}
}

// Contains returns true if the coordinate lies within the lattice.
func (s Shape) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < s.Rows && c.Col >= 0 && c.Col < s.Cols
}

// Size is the number of cells.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

// Index maps a coordinate to its row-major index.
func (s Shape) Index(c Coord) int {
	return c.Row*s.Cols + c.Col
}

// Coord converts a row-major index back to a coordinate.
func (s Shape) Coord(idx int) Coord {
	return Coord{Row: idx / s.Cols, Col: idx % s.Cols}
}

// All returns every coordinate of the lattice in row-major order.
func (s Shape) All() []Coord {
	coords := make([]Coord, 0, s.Size())
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			coords = append(coords, Coord{Row: r, Col: c})
		}
	}
	return coords
}
