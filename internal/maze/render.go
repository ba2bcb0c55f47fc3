package maze

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
)

// Pixel values used by Image.
const (
	WallValue = -1.0
	NodeValue = 1.0
	// EdgeValue differs from NodeValue so carved edges stay visible between open cells.
	EdgeValue = 0.93
)

// ImageOption configures Image.
type ImageOption func(*imageOptions)

type imageOptions struct {
	nodeValues [][]float64
}

// WithNodeValues overlays per-cell scalars. Edges take the value of their
// upper-left cell.
func WithNodeValues(values [][]float64) ImageOption {
	return func(o *imageOptions) {
		o.nodeValues = values
	}
}

// Image renders the maze as a square pixel grid of side rows*unitLength+1.
// Each cell is a (unitLength-1)² block, each edge a 1-pixel bridge, and
// everything else is wall.
func (m *LatticeMaze) Image(unitLength int, opts ...ImageOption) ([][]float64, error) {
	if unitLength < 2 {
		return nil, errors.Errorf("maze: unit length must be at least 2, got %d", unitLength)
	}
	var o imageOptions
	for _, opt := range opts {
		opt(&o)
	}

	shape := m.Shape()
	if o.nodeValues != nil {
		if len(o.nodeValues) != shape.Rows {
			return nil, errors.Errorf("maze: node values have %d rows, maze has %d", len(o.nodeValues), shape.Rows)
		}
		for r, row := range o.nodeValues {
			if len(row) != shape.Cols {
				return nil, errors.Errorf("maze: node values row %d has %d cols, maze has %d", r, len(row), shape.Cols)
			}
		}
	}

	height := shape.Rows*unitLength + 1
	width := shape.Cols*unitLength + 1
	img := make([][]float64, height)
	for y := range img {
		img[y] = make([]float64, width)
		for x := range img[y] {
			img[y][x] = WallValue
		}
	}

	for _, c := range shape.All() {
		node, edge := NodeValue, EdgeValue
		if o.nodeValues != nil {
			node = o.nodeValues[c.Row][c.Col]
			edge = node
		}
		top, left := c.Row*unitLength, c.Col*unitLength
		for y := top + 1; y < top+unitLength; y++ {
			for x := left + 1; x < left+unitLength; x++ {
				img[y][x] = node
			}
		}
		if m.conns.Get(OrientDown, c) {
			for x := left + 1; x < left+unitLength; x++ {
				img[top+unitLength][x] = edge
			}
		}
		if m.conns.Get(OrientRight, c) {
			for y := top + 1; y < top+unitLength; y++ {
				img[y][left+unitLength] = edge
			}
		}
	}
	return img, nil
}

// OpenMask renders the maze like Image but as booleans: true for cells and
// edges, false for walls.
func (m *LatticeMaze) OpenMask(unitLength int) ([][]bool, error) {
	img, err := m.Image(unitLength)
	if err != nil {
		return nil, err
	}
	mask := make([][]bool, len(img))
	for y, row := range img {
		mask[y] = make([]bool, len(row))
		for x, v := range row {
			mask[y][x] = v != WallValue
		}
	}
	return mask, nil
}

// ASCII draws the maze with '#' walls and ' ' passages. Non-nil start and end
// cells are marked 'S' and 'E'.
func (m *LatticeMaze) ASCII(start, end *grid.Coord) string {
	const unit = 2
	mask, _ := m.OpenMask(unit)

	var sb strings.Builder
	for y, row := range mask {
		for x, open := range row {
			cellHere := y%unit == 1 && x%unit == 1
			here := grid.C(y/unit, x/unit)
			switch {
			case cellHere && start != nil && *start == here:
				sb.WriteByte('S')
			case cellHere && end != nil && *end == here:
				sb.WriteByte('E')
			case open:
				sb.WriteByte(' ')
			default:
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
