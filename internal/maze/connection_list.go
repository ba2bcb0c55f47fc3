// Package maze provides the lattice maze graph, its rendering and a shortest-path solver.
package maze

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
)

// Orientation selects one of the two half-edge planes of a ConnectionList.
type Orientation int

const (
	// OrientDown links (r,c) with (r+1,c).
	OrientDown Orientation = iota
	// OrientRight links (r,c) with (r,c+1).
	OrientRight
)

// ConnectionList stores one bit per undirected lattice edge, split into a DOWN
// and a RIGHT plane indexed by the edge's upper-left cell. The last row never
// has DOWN bits and the last column never has RIGHT bits.
type ConnectionList struct {
	shape grid.Shape
	bits  *bitset.BitSet
}

// NewConnectionList creates an empty connection list (all walls) for the given shape.
func NewConnectionList(shape grid.Shape) *ConnectionList {
	return &ConnectionList{
		shape: shape,
		bits:  bitset.New(uint(2 * shape.Size())),
	}
}

// ConnectionListFromPlanes builds a connection list from two [row][col] boolean
// planes, DOWN first. Returns ErrConstruction when the planes are ragged, differ
// in shape, or carry an edge leaving the grid.
func ConnectionListFromPlanes(down, right [][]bool) (*ConnectionList, error) {
	rows := len(down)
	if rows == 0 || len(right) != rows {
		return nil, errors.Wrapf(ErrConstruction, "planes must be non-empty with equal row counts (down=%d, right=%d)", len(down), len(right))
	}
	cols := len(down[0])
	for r := 0; r < rows; r++ {
		if len(down[r]) != cols || len(right[r]) != cols {
			return nil, errors.Wrapf(ErrConstruction, "row %d is ragged", r)
		}
	}

	cl := NewConnectionList(grid.Shape{Rows: rows, Cols: cols})
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if down[r][c] {
				if err := cl.Set(OrientDown, grid.C(r, c), true); err != nil {
					return nil, err
				}
			}
			if right[r][c] {
				if err := cl.Set(OrientRight, grid.C(r, c), true); err != nil {
					return nil, err
				}
			}
		}
	}
	return cl, nil
}

// Shape returns the grid shape this list covers.
func (cl *ConnectionList) Shape() grid.Shape {
	return cl.shape
}

func (cl *ConnectionList) index(o Orientation, c grid.Coord) uint {
	return uint(int(o)*cl.shape.Size() + cl.shape.Index(c))
}

// Get reports whether the half-edge bit is set. Out-of-grid lookups return false.
func (cl *ConnectionList) Get(o Orientation, c grid.Coord) bool {
	if !cl.shape.Contains(c) {
		return false
	}
	return cl.bits.Test(cl.index(o, c))
}

// Set writes a half-edge bit. Setting an edge that would leave the grid is an error.
func (cl *ConnectionList) Set(o Orientation, c grid.Coord, v bool) error {
	if !cl.shape.Contains(c) {
		return errors.Wrapf(ErrConstruction, "cell %v outside %dx%d grid", c, cl.shape.Rows, cl.shape.Cols)
	}
	if v {
		switch o {
		case OrientDown:
			if c.Row == cl.shape.Rows-1 {
				return errors.Wrapf(ErrConstruction, "DOWN edge from bottom row cell %v", c)
			}
		case OrientRight:
			if c.Col == cl.shape.Cols-1 {
				return errors.Wrapf(ErrConstruction, "RIGHT edge from rightmost column cell %v", c)
			}
		default:
			return errors.Wrapf(ErrConstruction, "unknown orientation %d", o)
		}
	}
	cl.bits.SetTo(cl.index(o, c), v)
	return nil
}

// Connect carves the edge between two grid-adjacent cells.
func (cl *ConnectionList) Connect(a, b grid.Coord) error {
	o, origin, ok := halfEdge(a, b)
	if !ok {
		return errors.Wrapf(ErrConstruction, "cells %v and %v are not adjacent", a, b)
	}
	return cl.Set(o, origin, true)
}

// Count returns the number of edges.
func (cl *ConnectionList) Count() int {
	return int(cl.bits.Count())
}

// Clone returns a deep copy.
func (cl *ConnectionList) Clone() *ConnectionList {
	return &ConnectionList{shape: cl.shape, bits: cl.bits.Clone()}
}

// Equal reports whether both lists have the same shape and edges.
func (cl *ConnectionList) Equal(other *ConnectionList) bool {
	return cl.shape == other.shape && cl.bits.Equal(other.bits)
}

// Planes returns the DOWN and RIGHT planes as [row][col] boolean grids.
func (cl *ConnectionList) Planes() (down, right [][]bool) {
	down = make([][]bool, cl.shape.Rows)
	right = make([][]bool, cl.shape.Rows)
	for r := range down {
		down[r] = make([]bool, cl.shape.Cols)
		right[r] = make([]bool, cl.shape.Cols)
		for c := range down[r] {
			down[r][c] = cl.Get(OrientDown, grid.C(r, c))
			right[r][c] = cl.Get(OrientRight, grid.C(r, c))
		}
	}
	return down, right
}

// halfEdge maps an adjacent pair to the plane and origin cell storing their edge.
func halfEdge(a, b grid.Coord) (Orientation, grid.Coord, bool) {
	switch {
	case b == a.Add(grid.Down):
		return OrientDown, a, true
	case a == b.Add(grid.Down):
		return OrientDown, b, true
	case b == a.Add(grid.Right):
		return OrientRight, a, true
	case a == b.Add(grid.Right):
		return OrientRight, b, true
	}
	return 0, grid.Coord{}, false
}
