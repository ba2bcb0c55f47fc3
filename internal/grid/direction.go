package grid

// Direction is a unit step on the lattice.
type Direction struct {
	DRow int
	DCol int
}

var (
	// Down moves to the next row.
	Down = Direction{DRow: 1}
	// Up moves to the previous row.
	Up = Direction{DRow: -1}
	// Right moves to the next column.
	Right = Direction{DCol: 1}
	// Left moves to the previous column.
	Left = Direction{DCol: -1}
)

// Directions lists the four axis-aligned steps in visit order: down, up, right, left.
// Search order depends on this ordering.
var Directions = [4]Direction{Down, Up, Right, Left}

// Neighbors returns the in-bounds grid-adjacent cells of c, in Directions order.
func (s Shape) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, len(Directions))
	for _, d := range Directions {
		n := c.Add(d)
		if s.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}
