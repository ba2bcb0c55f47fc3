package generate

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
	"github.com/samdwyer/mazetokens/internal/telemetry"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// countSimplePaths counts simple paths from a to b by exhaustive search.
func countSimplePaths(m *maze.LatticeMaze, a, b grid.Coord) int {
	seen := map[grid.Coord]bool{a: true}
	var walk func(cur grid.Coord) int
	walk = func(cur grid.Coord) int {
		if cur == b {
			return 1
		}
		total := 0
		for _, n := range m.Neighbors(cur) {
			if seen[n] {
				continue
			}
			seen[n] = true
			total += walk(n)
			seen[n] = false
		}
		return total
	}
	return walk(a)
}

func TestGeneratorsProduceSpanningTrees(t *testing.T) {
	ctx := context.Background()
	for _, name := range Default.Names() {
		gen, err := Lookup(name)
		require.NoError(t, err)

		for n := 2; n <= 8; n++ {
			m, err := gen(ctx, grid.Square(n), newRand(uint64(n)))
			require.NoError(t, err)
			assert.Equal(t, n*n-1, m.NumEdges(), "%s: edge count for n=%d", name, n)

			origin := grid.C(0, 0)
			for _, c := range grid.Square(n).All() {
				_, err := m.ShortestPath(origin, c)
				assert.NoError(t, err, "%s: %v unreachable for n=%d", name, c, n)
			}
		}
	}
}

func TestDFSThreeByThreeHasUniquePath(t *testing.T) {
	m, err := GenDFS(context.Background(), grid.Square(3), newRand(42))
	require.NoError(t, err)

	assert.Equal(t, 8, m.NumEdges())
	assert.Equal(t, 1, countSimplePaths(m, grid.C(0, 0), grid.C(2, 2)))
}

func TestGeneratorsAreReproducible(t *testing.T) {
	ctx := context.Background()
	for _, name := range Default.Names() {
		gen, err := Lookup(name)
		require.NoError(t, err)

		m1, err := gen(ctx, grid.Square(10), newRand(12345))
		require.NoError(t, err)
		m2, err := gen(ctx, grid.Square(10), newRand(12345))
		require.NoError(t, err)
		m3, err := gen(ctx, grid.Square(10), newRand(54321))
		require.NoError(t, err)

		assert.True(t, m1.Equal(m2), "%s: same seed must give the same maze", name)
		assert.False(t, m1.Equal(m3), "%s: different seeds should give different mazes", name)
	}
}

func TestGeneratorsRejectBadShapeAndCancelledContext(t *testing.T) {
	_, err := GenDFS(context.Background(), grid.Shape{Rows: 0, Cols: 3}, newRand(1))
	assert.Error(t, err)
	_, err = GenKruskal(context.Background(), grid.Shape{Rows: 3, Cols: -1}, newRand(1))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = GenDFS(ctx, grid.Square(4), newRand(1))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = GenKruskal(ctx, grid.Square(4), newRand(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeneratorsOnRectangularAndTinyGrids(t *testing.T) {
	ctx := context.Background()
	shape := grid.Shape{Rows: 3, Cols: 7}
	for _, gen := range []Func{GenDFS, GenKruskal} {
		m, err := gen(ctx, shape, newRand(3))
		require.NoError(t, err)
		assert.Equal(t, shape.Size()-1, m.NumEdges())

		single, err := gen(ctx, grid.Square(1), newRand(3))
		require.NoError(t, err)
		assert.Zero(t, single.NumEdges())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", GenDFS))
	assert.Error(t, r.Register("a", GenKruskal), "duplicate")
	assert.Error(t, r.Register("", GenKruskal), "empty name")
	assert.Error(t, r.Register("b", nil), "nil func")

	assert.True(t, r.Has("a"))
	assert.Equal(t, 1, r.Count())

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownGenerator)

	assert.Equal(t, []string{DFS, Kruskal}, Default.Names())
	assert.Panics(t, func() { Default.MustRegister(DFS, GenDFS) })
}

func TestGenerateRecordsSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	_, err := telemetry.SetupWithExporter(context.Background(), exporter)
	require.NoError(t, err)
	defer telemetry.Disable()

	_, err = GenDFS(context.Background(), grid.Square(4), newRand(9))
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "maze.generate", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, attribute.Int("maze.edges", 15))
	assert.Contains(t, spans[0].Attributes, attribute.String("maze.generator", DFS))
}
