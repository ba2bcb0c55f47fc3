package maze

import (
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
)

// Edge is an undirected connection between two adjacent cells.
type Edge struct {
	A, B grid.Coord
}

// Normalized returns the edge with its endpoints in row-major order.
func (e Edge) Normalized() Edge {
	if e.B.Less(e.A) {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

// LatticeMaze is an undirected graph over a rectangular lattice. It is
// immutable once built.
type LatticeMaze struct {
	conns *ConnectionList
}

// NewLatticeMaze wraps a copy of the connection list.
func NewLatticeMaze(cl *ConnectionList) *LatticeMaze {
	return &LatticeMaze{conns: cl.Clone()}
}

// FromEdges builds a maze of the given shape from an edge list. Order and
// endpoint orientation of the edges do not matter.
func FromEdges(shape grid.Shape, edges []Edge) (*LatticeMaze, error) {
	if shape.Rows <= 0 || shape.Cols <= 0 {
		return nil, errors.Wrapf(ErrConstruction, "invalid shape %dx%d", shape.Rows, shape.Cols)
	}
	cl := NewConnectionList(shape)
	for _, e := range edges {
		if !shape.Contains(e.A) || !shape.Contains(e.B) {
			return nil, errors.Wrapf(ErrConstruction, "edge %v-%v outside %dx%d grid", e.A, e.B, shape.Rows, shape.Cols)
		}
		if err := cl.Connect(e.A, e.B); err != nil {
			return nil, err
		}
	}
	return &LatticeMaze{conns: cl}, nil
}

// Shape returns the lattice dimensions.
func (m *LatticeMaze) Shape() grid.Shape {
	return m.conns.Shape()
}

// ConnectionList returns a copy of the underlying connection list.
func (m *LatticeMaze) ConnectionList() *ConnectionList {
	return m.conns.Clone()
}

// NumEdges returns the number of carved edges.
func (m *LatticeMaze) NumEdges() int {
	return m.conns.Count()
}

// IsConnected returns true iff a and b are grid-adjacent and linked.
// Non-adjacent pairs are simply not connected.
func (m *LatticeMaze) IsConnected(a, b grid.Coord) bool {
	o, origin, ok := halfEdge(a, b)
	if !ok {
		return false
	}
	return m.conns.Get(o, origin)
}

// Neighbors returns the cells linked to c, in down, up, right, left order.
func (m *LatticeMaze) Neighbors(c grid.Coord) []grid.Coord {
	shape := m.Shape()
	if !shape.Contains(c) {
		return nil
	}
	out := make([]grid.Coord, 0, len(grid.Directions))
	for _, n := range shape.Neighbors(c) {
		if m.IsConnected(c, n) {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns every edge once, normalized, in row-major order of the upper-left cell.
func (m *LatticeMaze) Edges() []Edge {
	return m.EdgeList(nil, false, false)
}

// EdgeList enumerates every edge once. With shuffleOrder the edge order is
// permuted, with shuffleEndpoints each edge's (A,B) orientation is flipped at
// random. Both draw from rng; a nil rng disables shuffling.
func (m *LatticeMaze) EdgeList(rng *rand.Rand, shuffleOrder, shuffleEndpoints bool) []Edge {
	shape := m.Shape()
	edges := make([]Edge, 0, m.NumEdges())
	for _, c := range shape.All() {
		if m.conns.Get(OrientDown, c) {
			edges = append(edges, Edge{A: c, B: c.Add(grid.Down)})
		}
		if m.conns.Get(OrientRight, c) {
			edges = append(edges, Edge{A: c, B: c.Add(grid.Right)})
		}
	}
	if rng == nil {
		return edges
	}

	if shuffleOrder {
		rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
	}
	if shuffleEndpoints {
		for i := range edges {
			if rng.IntN(2) == 1 {
				edges[i] = Edge{A: edges[i].B, B: edges[i].A}
			}
		}
	}
	return edges
}

// Equal reports whether both mazes have the same shape and edge set.
func (m *LatticeMaze) Equal(other *LatticeMaze) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.conns.Equal(other.conns)
}

// SortEdges normalizes and sorts edges in place, for order-insensitive comparison.
func SortEdges(edges []Edge) {
	for i := range edges {
		edges[i] = edges[i].Normalized()
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A.Less(edges[j].A)
		}
		return edges[i].B.Less(edges[j].B)
	})
}
