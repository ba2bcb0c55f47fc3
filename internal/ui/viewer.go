package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazetokens/internal/maze"
	"github.com/samdwyer/mazetokens/internal/telemetry"
)

// Source is an indexed collection of solved mazes, such as a dataset.
type Source interface {
	Len() int
	Maze(index int) (*maze.SolvedMaze, error)
}

// Viewer is an interactive browser over a Source.
type Viewer struct {
	screen   *Screen
	renderer *Renderer
	source   Source
	index    int
	showPath bool
	running  bool
}

// NewViewer creates a viewer starting at maze index.
func NewViewer(screen *Screen, source Source, index int) (*Viewer, error) {
	if source.Len() == 0 {
		return nil, errors.New("ui: nothing to view")
	}
	if index < 0 || index >= source.Len() {
		return nil, errors.Errorf("ui: index %d out of range [0, %d)", index, source.Len())
	}
	return &Viewer{
		screen:   screen,
		renderer: NewRenderer(screen),
		source:   source,
		index:    index,
		showPath: true,
		running:  true,
	}, nil
}

// Index returns the maze currently shown.
func (v *Viewer) Index() int {
	return v.index
}

// Run draws and handles input until the user quits or ctx is done.
// The screen is closed on return.
func (v *Viewer) Run(ctx context.Context) error {
	_, span := telemetry.Tracer("ui").Start(ctx, "viewer.run")
	defer span.End()
	defer v.screen.Close()

	viewed := 0
	for v.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := v.source.Maze(v.index)
		if err != nil {
			return err
		}
		if err := v.renderer.Render(Frame{Maze: m, Index: v.index, Total: v.source.Len(), ShowPath: v.showPath}); err != nil {
			return err
		}
		viewed++

		// Handle input (blocking)
		v.handleInput()
	}

	span.SetAttributes(
		attribute.Int("viewer.frames", viewed),
		attribute.Int("viewer.last_index", v.index),
	)
	return nil
}

// handleInput processes a single input event.
func (v *Viewer) handleInput() {
	switch ev := v.screen.PollEvent().(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		// Screen finalized.
		v.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyRight:
		v.step(1)
	case tcell.KeyLeft:
		v.step(-1)
	case tcell.KeyHome:
		v.index = 0
	case tcell.KeyEnd:
		v.index = v.source.Len() - 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'n', ' ':
			v.step(1)
		case 'p':
			v.step(-1)
		case 's':
			v.showPath = !v.showPath
		}
	}
}

// step moves by delta, wrapping around both ends.
func (v *Viewer) step(delta int) {
	n := v.source.Len()
	v.index = ((v.index+delta)%n + n) % n
}
