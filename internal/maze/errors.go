package maze

import "github.com/pkg/errors"

var (
	// ErrConstruction indicates a connection list that violates the lattice boundary invariants.
	ErrConstruction = errors.New("maze: invalid connection list")
	// ErrOutOfBounds indicates a coordinate outside the maze's grid.
	ErrOutOfBounds = errors.New("maze: coordinate out of bounds")
	// ErrUnreachableEndpoint indicates the solver could not connect start and end.
	// For generator output this is an upstream bug, never a user input problem.
	ErrUnreachableEndpoint = errors.New("maze: end unreachable from start")
	// ErrInvalidSolution indicates a path that does not walk the maze from start to end.
	ErrInvalidSolution = errors.New("maze: invalid solution path")
)
