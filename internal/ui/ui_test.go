package ui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
)

type mazes []*maze.SolvedMaze

func (m mazes) Len() int { return len(m) }

func (m mazes) Maze(i int) (*maze.SolvedMaze, error) {
	if i < 0 || i >= len(m) {
		return nil, errors.New("out of range")
	}
	return m[i], nil
}

// hookMaze is a 2x2 maze whose only route from (1,0) to (1,1) goes over the top.
func hookMaze(t *testing.T) *maze.SolvedMaze {
	t.Helper()
	lattice, err := maze.FromEdges(grid.Square(2), []maze.Edge{
		{A: grid.C(0, 0), B: grid.C(0, 1)},
		{A: grid.C(0, 1), B: grid.C(1, 1)},
		{A: grid.C(0, 0), B: grid.C(1, 0)},
	})
	require.NoError(t, err)
	targeted, err := maze.NewTargetedLatticeMaze(lattice, grid.C(1, 0), grid.C(1, 1))
	require.NoError(t, err)
	solved, err := targeted.Solve()
	require.NoError(t, err)
	return solved
}

func simScreen(t *testing.T) (tcell.SimulationScreen, *Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(40, 12)
	return sim, screen
}

func runeAt(sim tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := sim.GetContent(x, y)
	return r
}

func TestRenderDrawsWallsPathAndEndpoints(t *testing.T) {
	sim, screen := simScreen(t)
	defer screen.Close()
	m := hookMaze(t)

	require.NoError(t, NewRenderer(screen).Render(Frame{Maze: m, Index: 0, Total: 1, ShowPath: true}))

	// 5x5 pixel grid: border walls, the wall between (1,0) and (1,1), and corner posts.
	for i := 0; i < 5; i++ {
		assert.Equal(t, WallRune, runeAt(sim, i, 0))
		assert.Equal(t, WallRune, runeAt(sim, i, 4))
		assert.Equal(t, WallRune, runeAt(sim, 0, i))
		assert.Equal(t, WallRune, runeAt(sim, 4, i))
	}
	assert.Equal(t, WallRune, runeAt(sim, 2, 3))
	assert.Equal(t, WallRune, runeAt(sim, 2, 2))

	sx, sy := CellPosition(m.Start)
	ex, ey := CellPosition(m.End)
	assert.Equal(t, StartRune, runeAt(sim, sx, sy))
	assert.Equal(t, EndRune, runeAt(sim, ex, ey))

	// Path (1,0) -> (0,0) -> (0,1) -> (1,1) and the bridges between.
	assert.Equal(t, PathRune, runeAt(sim, 1, 2))
	assert.Equal(t, PathRune, runeAt(sim, 1, 1))
	assert.Equal(t, PathRune, runeAt(sim, 2, 1))
	assert.Equal(t, PathRune, runeAt(sim, 3, 1))
	assert.Equal(t, PathRune, runeAt(sim, 3, 2))

	assert.Equal(t, 'm', runeAt(sim, 0, 6))
}

func TestRenderWithoutPath(t *testing.T) {
	sim, screen := simScreen(t)
	defer screen.Close()

	require.NoError(t, NewRenderer(screen).Render(Frame{Maze: hookMaze(t), Total: 1}))
	assert.NotEqual(t, PathRune, runeAt(sim, 1, 1))
	assert.NotEqual(t, PathRune, runeAt(sim, 2, 1))
}

func TestNewViewerValidatesSource(t *testing.T) {
	_, screen := simScreen(t)
	defer screen.Close()

	_, err := NewViewer(screen, mazes{}, 0)
	assert.Error(t, err)
	_, err = NewViewer(screen, mazes{hookMaze(t)}, 1)
	assert.Error(t, err)
}

func TestViewerKeys(t *testing.T) {
	_, screen := simScreen(t)
	defer screen.Close()
	m := hookMaze(t)

	v, err := NewViewer(screen, mazes{m, m, m}, 0)
	require.NoError(t, err)

	key := func(k tcell.Key, r rune) {
		v.handleKeyEvent(tcell.NewEventKey(k, r, tcell.ModNone))
	}
	key(tcell.KeyRune, 'n')
	assert.Equal(t, 1, v.Index())
	key(tcell.KeyRight, 0)
	key(tcell.KeyRight, 0)
	assert.Equal(t, 0, v.Index(), "wraps forward")
	key(tcell.KeyRune, 'p')
	assert.Equal(t, 2, v.Index(), "wraps backward")
	key(tcell.KeyHome, 0)
	assert.Equal(t, 0, v.Index())
	key(tcell.KeyEnd, 0)
	assert.Equal(t, 2, v.Index())

	key(tcell.KeyRune, 's')
	assert.False(t, v.showPath)
	assert.True(t, v.running)
	key(tcell.KeyRune, 'q')
	assert.False(t, v.running)
}

func TestViewerRunUntilQuit(t *testing.T) {
	sim, screen := simScreen(t)
	m := hookMaze(t)

	v, err := NewViewer(screen, mazes{m, m}, 0)
	require.NoError(t, err)

	sim.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	require.NoError(t, v.Run(context.Background()))
	assert.Equal(t, 1, v.Index())
}

func TestViewerRunStopsOnCancelledContext(t *testing.T) {
	_, screen := simScreen(t)
	v, err := NewViewer(screen, mazes{hookMaze(t)}, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, v.Run(ctx), context.Canceled)
}
