package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
)

// Runes drawn by the renderer.
const (
	WallRune  = '█'
	PathRune  = '·'
	StartRune = 'S'
	EndRune   = 'E'
)

// unit is the pixel pitch of one lattice cell: a cell plus one wall line.
const unit = 2

// Frame is everything shown for one maze.
type Frame struct {
	Maze     *maze.SolvedMaze
	Index    int
	Total    int
	ShowPath bool
}

// Renderer handles drawing mazes to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// CellPosition returns the screen position of a lattice cell.
func CellPosition(c grid.Coord) (x, y int) {
	return c.Col*unit + 1, c.Row*unit + 1
}

// Render draws the maze, its solution and a status line below it.
func (r *Renderer) Render(f Frame) error {
	r.screen.Clear()

	mask, err := f.Maze.OpenMask(unit)
	if err != nil {
		return err
	}
	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for y, row := range mask {
		for x, open := range row {
			if !open {
				r.screen.SetContent(x, y, WallRune, wallStyle)
			}
		}
	}

	if f.ShowPath {
		pathStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		for i, c := range f.Maze.Solution {
			x, y := CellPosition(c)
			r.screen.SetContent(x, y, PathRune, pathStyle)
			if i > 0 {
				px, py := CellPosition(f.Maze.Solution[i-1])
				r.screen.SetContent((x+px)/2, (y+py)/2, PathRune, pathStyle)
			}
		}
	}

	// Start is drawn last so it stays visible when it equals the end.
	endStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	x, y := CellPosition(f.Maze.End)
	r.screen.SetContent(x, y, EndRune, endStyle)
	startStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	x, y = CellPosition(f.Maze.Start)
	r.screen.SetContent(x, y, StartRune, startStyle)

	status := fmt.Sprintf("maze %d/%d  %v -> %v  path %d",
		f.Index+1, f.Total, f.Maze.Start, f.Maze.End, len(f.Maze.Solution))
	r.RenderMessage(status, len(mask)+1)
	r.RenderMessage("[n]ext [p]rev [s]olution [q]uit", len(mask)+2)

	r.screen.Show()
	return nil
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
