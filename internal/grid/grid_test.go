package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManhattanAndAdjacent(t *testing.T) {
	tests := []struct {
		a, b     Coord
		dist     int
		adjacent bool
	}{
		{C(0, 0), C(0, 0), 0, false},
		{C(0, 0), C(0, 1), 1, true},
		{C(1, 1), C(0, 1), 1, true},
		{C(0, 0), C(1, 1), 2, false},
		{C(2, 0), C(0, 2), 4, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.dist, Manhattan(tt.a, tt.b), "Manhattan(%v, %v)", tt.a, tt.b)
		assert.Equal(t, tt.adjacent, Adjacent(tt.a, tt.b), "Adjacent(%v, %v)", tt.a, tt.b)
	}
}

func TestShapeIndexRoundTrip(t *testing.T) {
	s := Square(4)
	for i, c := range s.All() {
		assert.Equal(t, i, s.Index(c))
		assert.Equal(t, c, s.Coord(i))
	}
	assert.False(t, s.Contains(C(4, 0)))
	assert.False(t, s.Contains(C(0, -1)))
}

func TestNeighborsClippedAndOrdered(t *testing.T) {
	s := Square(3)

	assert.Equal(t, []Coord{C(1, 0), C(0, 1)}, s.Neighbors(C(0, 0)))
	assert.Equal(t, []Coord{C(2, 1), C(0, 1), C(1, 2), C(1, 0)}, s.Neighbors(C(1, 1)))
	assert.Equal(t, []Coord{C(1, 2), C(2, 1)}, s.Neighbors(C(2, 2)))
}

func TestCoordString(t *testing.T) {
	assert.Equal(t, "(3,12)", C(3, 12).String())
}
