package maze

import (
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
)

// TargetedLatticeMaze is a maze with chosen start and end cells. Start and end
// may coincide, and need not be connected unless the maze is a spanning tree.
type TargetedLatticeMaze struct {
	*LatticeMaze
	Start grid.Coord
	End   grid.Coord
}

// NewTargetedLatticeMaze attaches endpoints to a maze.
func NewTargetedLatticeMaze(m *LatticeMaze, start, end grid.Coord) (*TargetedLatticeMaze, error) {
	shape := m.Shape()
	if !shape.Contains(start) {
		return nil, errors.Wrapf(ErrOutOfBounds, "start %v", start)
	}
	if !shape.Contains(end) {
		return nil, errors.Wrapf(ErrOutOfBounds, "end %v", end)
	}
	return &TargetedLatticeMaze{LatticeMaze: m, Start: start, End: end}, nil
}

// Solve finds the shortest path between the endpoints.
func (t *TargetedLatticeMaze) Solve() (*SolvedMaze, error) {
	path, err := t.ShortestPath(t.Start, t.End)
	if err != nil {
		return nil, err
	}
	return &SolvedMaze{TargetedLatticeMaze: *t, Solution: path}, nil
}

// SolvedMaze is a targeted maze together with a path from Start to End.
type SolvedMaze struct {
	TargetedLatticeMaze
	Solution []grid.Coord
}

// NewSolvedMaze validates that solution walks the maze from t.Start to t.End.
func NewSolvedMaze(t *TargetedLatticeMaze, solution []grid.Coord) (*SolvedMaze, error) {
	if len(solution) == 0 {
		return nil, errors.Wrap(ErrInvalidSolution, "empty path")
	}
	if solution[0] != t.Start {
		return nil, errors.Wrapf(ErrInvalidSolution, "path starts at %v, start is %v", solution[0], t.Start)
	}
	if last := solution[len(solution)-1]; last != t.End {
		return nil, errors.Wrapf(ErrInvalidSolution, "path ends at %v, end is %v", last, t.End)
	}
	for i := 1; i < len(solution); i++ {
		if !t.IsConnected(solution[i-1], solution[i]) {
			return nil, errors.Wrapf(ErrInvalidSolution, "step %d: %v and %v are not connected", i, solution[i-1], solution[i])
		}
	}
	path := make([]grid.Coord, len(solution))
	copy(path, solution)
	return &SolvedMaze{TargetedLatticeMaze: *t, Solution: path}, nil
}

// Equal reports whether both solved mazes share edges, endpoints and solution.
func (s *SolvedMaze) Equal(other *SolvedMaze) bool {
	if s.Start != other.Start || s.End != other.End || len(s.Solution) != len(other.Solution) {
		return false
	}
	for i := range s.Solution {
		if s.Solution[i] != other.Solution[i] {
			return false
		}
	}
	return s.LatticeMaze.Equal(other.LatticeMaze)
}

// ShortestPath runs a breadth-first search from start, expanding neighbours
// in down, up, right, left order, and returns the first shortest path found,
// endpoints included.
func (m *LatticeMaze) ShortestPath(start, end grid.Coord) ([]grid.Coord, error) {
	shape := m.Shape()
	if !shape.Contains(start) {
		return nil, errors.Wrapf(ErrOutOfBounds, "start %v", start)
	}
	if !shape.Contains(end) {
		return nil, errors.Wrapf(ErrOutOfBounds, "end %v", end)
	}

	// parent[i] is the row-major index of the cell i was discovered from; -1 if unseen.
	parent := make([]int, shape.Size())
	for i := range parent {
		parent[i] = -1
	}
	startIdx := shape.Index(start)
	parent[startIdx] = startIdx

	queue := make([]grid.Coord, 0, shape.Size())
	queue = append(queue, start)
	found := false
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			found = true
			break
		}
		curIdx := shape.Index(cur)
		for _, nbr := range m.Neighbors(cur) {
			nIdx := shape.Index(nbr)
			if parent[nIdx] != -1 {
				continue
			}
			parent[nIdx] = curIdx
			queue = append(queue, nbr)
		}
	}
	if !found {
		return nil, errors.Wrapf(ErrUnreachableEndpoint, "no path from %v to %v", start, end)
	}

	var reversed []grid.Coord
	for idx := shape.Index(end); ; idx = parent[idx] {
		reversed = append(reversed, shape.Coord(idx))
		if idx == startIdx {
			break
		}
	}
	path := make([]grid.Coord, len(reversed))
	for i, c := range reversed {
		path[len(reversed)-1-i] = c
	}
	return path, nil
}
