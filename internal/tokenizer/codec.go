package tokenizer

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
)

// EncodeOptions controls adjacency-list augmentation. Shuffling draws from
// Rand and is skipped when Rand is nil.
type EncodeOptions struct {
	Rand             *rand.Rand
	ShuffleOrder     bool
	ShuffleEndpoints bool
}

// Encode renders a solved maze as
//
//	<ADJLIST_START> (a <--> b ;)* <ADJLIST_END>
//	<ORIGIN_START> start <ORIGIN_END>
//	<TARGET_START> end <TARGET_END>
//	<PATH_START> path... <PATH_END>
func (v *Vocabulary) Encode(m *maze.SolvedMaze, opts EncodeOptions) ([]string, error) {
	if m.Shape() != v.shape {
		return nil, errors.Wrapf(ErrShapeMismatch, "maze %dx%d, vocabulary %dx%d",
			m.Shape().Rows, m.Shape().Cols, v.shape.Rows, v.shape.Cols)
	}

	edges := m.EdgeList(opts.Rand, opts.ShuffleOrder, opts.ShuffleEndpoints)
	tokens := make([]string, 0, 4*len(edges)+len(m.Solution)+8)

	tokens = append(tokens, AdjListStart)
	for _, e := range edges {
		tokens = append(tokens, CoordToken(e.A), Connector, CoordToken(e.B), AdjacencyEndline)
	}
	tokens = append(tokens, AdjListEnd)

	tokens = append(tokens, OriginStart, CoordToken(m.Start), OriginEnd)
	tokens = append(tokens, TargetStart, CoordToken(m.End), TargetEnd)

	tokens = append(tokens, PathStart)
	for _, c := range m.Solution {
		tokens = append(tokens, CoordToken(c))
	}
	tokens = append(tokens, PathEnd)
	return tokens, nil
}

// Decode parses a token sequence produced by Encode back into a solved maze.
// Leading padding is skipped; anything else out of place is a *DecodeError.
// The path must start at the origin, end at the target, and only follow edges
// listed in the adjacency segment.
func (v *Vocabulary) Decode(tokens []string) (*maze.SolvedMaze, error) {
	for i, tok := range tokens {
		if !v.Contains(tok) {
			return nil, &DecodeError{Pos: i, Token: tok, Msg: "unknown token"}
		}
	}

	d := &decoder{v: v, tokens: tokens}
	for d.pos < len(tokens) && tokens[d.pos] == Padding {
		d.pos++
	}

	edges, err := d.adjacency()
	if err != nil {
		return nil, err
	}
	start, err := d.single(OriginStart, OriginEnd)
	if err != nil {
		return nil, err
	}
	end, err := d.single(TargetStart, TargetEnd)
	if err != nil {
		return nil, err
	}
	pathPos := d.pos
	path, err := d.path()
	if err != nil {
		return nil, err
	}
	if d.pos < len(tokens) {
		return nil, &DecodeError{Pos: d.pos, Token: tokens[d.pos], Msg: "trailing tokens after " + PathEnd}
	}

	lattice, err := maze.FromEdges(v.shape, edges)
	if err != nil {
		return nil, &DecodeError{Pos: 0, Token: tokens[0], Msg: "invalid adjacency list", Err: err}
	}
	targeted, err := maze.NewTargetedLatticeMaze(lattice, start, end)
	if err != nil {
		return nil, &DecodeError{Pos: pathPos, Token: tokens[pathPos], Msg: "invalid endpoints", Err: err}
	}
	solved, err := maze.NewSolvedMaze(targeted, path)
	if err != nil {
		return nil, &DecodeError{Pos: pathPos, Token: tokens[pathPos], Msg: "path does not solve the maze", Err: err}
	}
	return solved, nil
}

// decoder walks a token sequence left to right.
type decoder struct {
	v      *Vocabulary
	tokens []string
	pos    int
}

func (d *decoder) errAt(expected, msg string) *DecodeError {
	e := &DecodeError{Pos: d.pos, Expected: expected, Msg: msg}
	if d.pos < len(d.tokens) {
		e.Token = d.tokens[d.pos]
	}
	return e
}

func (d *decoder) peek() (string, bool) {
	if d.pos >= len(d.tokens) {
		return "", false
	}
	return d.tokens[d.pos], true
}

// expect consumes marker or fails.
func (d *decoder) expect(marker, msg string) error {
	tok, ok := d.peek()
	if !ok {
		return d.errAt(marker, "missing "+marker)
	}
	if tok != marker {
		return d.errAt(marker, msg)
	}
	d.pos++
	return nil
}

// coord consumes a coordinate token.
func (d *decoder) coord(where string) (grid.Coord, error) {
	tok, ok := d.peek()
	if !ok {
		return grid.Coord{}, d.errAt("coordinate", "sequence ended inside "+where)
	}
	c, ok := d.v.Coord(tok)
	if !ok {
		return grid.Coord{}, d.errAt("coordinate", "special token inside "+where)
	}
	d.pos++
	return c, nil
}

func (d *decoder) adjacency() ([]maze.Edge, error) {
	if err := d.expect(AdjListStart, "sequence must open with the adjacency list"); err != nil {
		return nil, err
	}
	var edges []maze.Edge
	for {
		tok, ok := d.peek()
		if !ok {
			return nil, d.errAt(AdjListEnd, "missing "+AdjListEnd)
		}
		if tok == AdjListEnd {
			d.pos++
			return edges, nil
		}
		a, err := d.coord("adjacency entry")
		if err != nil {
			return nil, err
		}
		if err := d.expect(Connector, "adjacency entry missing connector"); err != nil {
			return nil, err
		}
		b, err := d.coord("adjacency entry")
		if err != nil {
			return nil, err
		}
		if !grid.Adjacent(a, b) {
			d.pos--
			return nil, d.errAt("", "cells "+a.String()+" and "+b.String()+" are not adjacent")
		}
		if err := d.expect(AdjacencyEndline, "adjacency entry not terminated"); err != nil {
			return nil, err
		}
		edges = append(edges, maze.Edge{A: a, B: b})
	}
}

// single parses "open coord close".
func (d *decoder) single(openMarker, closeMarker string) (grid.Coord, error) {
	if err := d.expect(openMarker, "segment out of order"); err != nil {
		return grid.Coord{}, err
	}
	c, err := d.coord(openMarker + " segment")
	if err != nil {
		return grid.Coord{}, err
	}
	if err := d.expect(closeMarker, "segment holds more than one coordinate"); err != nil {
		return grid.Coord{}, err
	}
	return c, nil
}

func (d *decoder) path() ([]grid.Coord, error) {
	if err := d.expect(PathStart, "segment out of order"); err != nil {
		return nil, err
	}
	var path []grid.Coord
	for {
		tok, ok := d.peek()
		if !ok {
			return nil, d.errAt(PathEnd, "missing "+PathEnd)
		}
		if tok == PathEnd {
			if len(path) == 0 {
				return nil, d.errAt("coordinate", "empty path")
			}
			d.pos++
			return path, nil
		}
		c, err := d.coord("path")
		if err != nil {
			return nil, err
		}
		path = append(path, c)
	}
}
