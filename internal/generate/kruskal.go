package generate

import (
	"context"
	"math/rand/v2"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
	"github.com/samdwyer/mazetokens/internal/telemetry"
)

// GenKruskal carves a spanning tree by visiting every lattice edge in random
// order and keeping those that join two disjoint regions.
func GenKruskal(ctx context.Context, shape grid.Shape, rng *rand.Rand) (*maze.LatticeMaze, error) {
	ctx, span := telemetry.Tracer("generate").Start(ctx, "maze.generate")
	defer span.End()

	if err := checkShape(shape); err != nil {
		return nil, err
	}

	walls := make([]maze.Edge, 0, 2*shape.Size())
	for _, c := range shape.All() {
		for _, d := range []grid.Direction{grid.Down, grid.Right} {
			if n := c.Add(d); shape.Contains(n) {
				walls = append(walls, maze.Edge{A: c, B: n})
			}
		}
	}
	rng.Shuffle(len(walls), func(i, j int) { walls[i], walls[j] = walls[j], walls[i] })

	sets := newDisjointSets(shape.Size())
	cl := maze.NewConnectionList(shape)
	for _, w := range walls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !sets.union(shape.Index(w.A), shape.Index(w.B)) {
			continue
		}
		if err := cl.Connect(w.A, w.B); err != nil {
			return nil, err
		}
		if cl.Count() == shape.Size()-1 {
			break
		}
	}

	span.SetAttributes(
		attribute.String("maze.generator", Kruskal),
		attribute.Int("maze.rows", shape.Rows),
		attribute.Int("maze.cols", shape.Cols),
		attribute.Int("maze.edges", cl.Count()),
	)
	return maze.NewLatticeMaze(cl), nil
}

// disjointSets is a union-find forest over cell indices.
type disjointSets struct {
	parent []int
	rank   []int
}

func newDisjointSets(n int) *disjointSets {
	s := &disjointSets{parent: make([]int, n), rank: make([]int, n)}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

func (s *disjointSets) find(i int) int {
	for s.parent[i] != i {
		s.parent[i] = s.parent[s.parent[i]]
		i = s.parent[i]
	}
	return i
}

// union merges the sets of a and b, returning false if they were already joined.
func (s *disjointSets) union(a, b int) bool {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return false
	}
	switch {
	case s.rank[ra] < s.rank[rb]:
		s.parent[ra] = rb
	case s.rank[ra] > s.rank[rb]:
		s.parent[rb] = ra
	default:
		s.parent[rb] = ra
		s.rank[ra]++
	}
	return true
}
