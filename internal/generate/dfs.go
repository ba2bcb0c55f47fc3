package generate

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
	"github.com/samdwyer/mazetokens/internal/telemetry"
)

// GenDFS carves a spanning tree with a randomized depth-first traversal.
// It starts from a random cell, repeatedly steps to a uniformly chosen
// unvisited neighbour, and backtracks on dead ends. The walk uses an explicit
// stack, so grid size is not bounded by goroutine stack depth.
func GenDFS(ctx context.Context, shape grid.Shape, rng *rand.Rand) (*maze.LatticeMaze, error) {
	ctx, span := telemetry.Tracer("generate").Start(ctx, "maze.generate")
	defer span.End()
	startTime := time.Now()

	if err := checkShape(shape); err != nil {
		return nil, err
	}

	cl := maze.NewConnectionList(shape)
	visited := bitset.New(uint(shape.Size()))

	start := shape.Coord(rng.IntN(shape.Size()))
	visited.Set(uint(shape.Index(start)))
	stack := []grid.Coord{start}
	candidates := make([]grid.Coord, 0, len(grid.Directions))

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := stack[len(stack)-1]
		candidates = candidates[:0]
		for _, n := range shape.Neighbors(current) {
			if !visited.Test(uint(shape.Index(n))) {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.IntN(len(candidates))]
		if err := cl.Connect(current, next); err != nil {
			return nil, err
		}
		visited.Set(uint(shape.Index(next)))
		stack = append(stack, next)
	}

	span.SetAttributes(
		attribute.String("maze.generator", DFS),
		attribute.Int("maze.rows", shape.Rows),
		attribute.Int("maze.cols", shape.Cols),
		attribute.Int("maze.edges", cl.Count()),
		attribute.Int64("maze.generation_us", time.Since(startTime).Microseconds()),
	)
	return maze.NewLatticeMaze(cl), nil
}

func checkShape(shape grid.Shape) error {
	if shape.Rows <= 0 || shape.Cols <= 0 {
		return errors.Errorf("generate: grid shape must be positive, got %dx%d", shape.Rows, shape.Cols)
	}
	return nil
}
