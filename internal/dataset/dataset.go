// Package dataset aggregates solved mazes sharing one grid size and
// vocabulary, generates them in bulk and persists them.
package dataset

import (
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/maze"
	"github.com/samdwyer/mazetokens/internal/tokenizer"
)

// Dataset is an ordered, read-only collection of solved mazes.
type Dataset struct {
	cfg   Config
	vocab *tokenizer.Vocabulary
	mazes []*maze.SolvedMaze
}

// New wraps already solved mazes. Every maze must match the config's grid.
func New(cfg Config, mazes []*maze.SolvedMaze) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shape := cfg.Shape()
	for i, m := range mazes {
		if m == nil {
			return nil, errors.Errorf("dataset: maze %d is nil", i)
		}
		if m.Shape() != shape {
			return nil, errors.Errorf("dataset: maze %d is %dx%d, config grid is %dx%d",
				i, m.Shape().Rows, m.Shape().Cols, shape.Rows, shape.Cols)
		}
	}
	owned := make([]*maze.SolvedMaze, len(mazes))
	copy(owned, mazes)
	return &Dataset{cfg: cfg, vocab: cfg.Vocabulary(), mazes: owned}, nil
}

// Config returns the dataset config.
func (ds *Dataset) Config() Config {
	return ds.cfg
}

// Vocabulary returns the shared, read-only vocabulary.
func (ds *Dataset) Vocabulary() *tokenizer.Vocabulary {
	return ds.vocab
}

// Len returns the number of mazes.
func (ds *Dataset) Len() int {
	return len(ds.mazes)
}

// Get returns maze index in the requested format: a *maze.SolvedMaze for
// FormatObjects or a []string for FormatTokens. FormatArray fails with
// ErrNotImplemented, anything else with ErrUnknownFormat.
func (ds *Dataset) Get(index int, format Format) (any, error) {
	switch format {
	case FormatObjects:
		m, err := ds.Maze(index)
		if err != nil {
			return nil, err
		}
		return m, nil
	case FormatTokens:
		tokens, err := ds.Tokens(index, tokenizer.EncodeOptions{})
		if err != nil {
			return nil, err
		}
		return tokens, nil
	case FormatArray:
		return nil, errors.Wrap(ErrNotImplemented, "getting a maze as a dense array")
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "format %d", int(format))
	}
}

// Maze returns the solved maze at index.
func (ds *Dataset) Maze(index int) (*maze.SolvedMaze, error) {
	if index < 0 || index >= len(ds.mazes) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, dataset has %d mazes", index, len(ds.mazes))
	}
	return ds.mazes[index], nil
}

// Tokens encodes the maze at index.
func (ds *Dataset) Tokens(index int, opts tokenizer.EncodeOptions) ([]string, error) {
	m, err := ds.Maze(index)
	if err != nil {
		return nil, err
	}
	return ds.vocab.Encode(m, opts)
}

// AllMazes returns every maze in generation order.
func (ds *Dataset) AllMazes() []*maze.SolvedMaze {
	out := make([]*maze.SolvedMaze, len(ds.mazes))
	copy(out, ds.mazes)
	return out
}

// AllTokens encodes every maze without shuffling.
func (ds *Dataset) AllTokens() ([][]string, error) {
	out := make([][]string, len(ds.mazes))
	for i := range ds.mazes {
		tokens, err := ds.Tokens(i, tokenizer.EncodeOptions{})
		if err != nil {
			return nil, errors.Wrapf(err, "maze %d", i)
		}
		out[i] = tokens
	}
	return out, nil
}

// Equal reports whether both datasets have the same config and mazes.
func (ds *Dataset) Equal(other *Dataset) bool {
	if ds.cfg != other.cfg || len(ds.mazes) != len(other.mazes) {
		return false
	}
	for i := range ds.mazes {
		if !ds.mazes[i].Equal(other.mazes[i]) {
			return false
		}
	}
	return true
}
