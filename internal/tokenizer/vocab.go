// Package tokenizer converts solved mazes to and from flat token sequences
// over a fixed special-token set plus one token per grid cell.
package tokenizer

import (
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
)

// Special tokens.
const (
	AdjListStart     = "<ADJLIST_START>"
	AdjListEnd       = "<ADJLIST_END>"
	TargetStart      = "<TARGET_START>"
	TargetEnd        = "<TARGET_END>"
	OriginStart      = "<ORIGIN_START>"
	OriginEnd        = "<ORIGIN_END>"
	PathStart        = "<PATH_START>"
	PathEnd          = "<PATH_END>"
	Connector        = "<-->"
	AdjacencyEndline = ";"
	Padding          = "<PADDING>"
)

// SpecialTokens lists the special tokens in vocabulary order.
var SpecialTokens = []string{
	AdjListStart,
	AdjListEnd,
	TargetStart,
	TargetEnd,
	OriginStart,
	OriginEnd,
	PathStart,
	PathEnd,
	Connector,
	AdjacencyEndline,
	Padding,
}

// ErrUnknownToken indicates a token or token id outside the vocabulary.
var ErrUnknownToken = errors.New("tokenizer: unknown token")

// CoordToken renders the canonical token of a cell, "(row,col)".
func CoordToken(c grid.Coord) string {
	return c.String()
}

// Vocabulary is the token set for one grid shape: the special tokens followed
// by every coordinate token in row-major order. It depends only on the shape
// and is read-only after construction, so it is safe to share across goroutines.
type Vocabulary struct {
	shape     grid.Shape
	tokens    []string
	index     map[string]int
	tokenNode map[string]grid.Coord
}

// NewVocabulary derives the vocabulary for shape.
func NewVocabulary(shape grid.Shape) *Vocabulary {
	v := &Vocabulary{
		shape:     shape,
		tokens:    make([]string, 0, len(SpecialTokens)+shape.Size()),
		index:     make(map[string]int, len(SpecialTokens)+shape.Size()),
		tokenNode: make(map[string]grid.Coord, shape.Size()),
	}
	v.tokens = append(v.tokens, SpecialTokens...)
	for _, c := range shape.All() {
		tok := CoordToken(c)
		v.tokens = append(v.tokens, tok)
		v.tokenNode[tok] = c
	}
	for i, tok := range v.tokens {
		v.index[tok] = i
	}
	return v
}

// Shape returns the grid shape the vocabulary covers.
func (v *Vocabulary) Shape() grid.Shape {
	return v.shape
}

// TokenArr returns a copy of all tokens in id order.
func (v *Vocabulary) TokenArr() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// NTokens is the vocabulary size.
func (v *Vocabulary) NTokens() int {
	return len(v.tokens)
}

// PaddingTokenIndex is the id of the padding token.
func (v *Vocabulary) PaddingTokenIndex() int {
	return v.index[Padding]
}

// NodeToken returns the token for a cell within the vocabulary's grid.
func (v *Vocabulary) NodeToken(c grid.Coord) (string, bool) {
	if !v.shape.Contains(c) {
		return "", false
	}
	return CoordToken(c), true
}

// Coord returns the cell of a coordinate token.
func (v *Vocabulary) Coord(token string) (grid.Coord, bool) {
	c, ok := v.tokenNode[token]
	return c, ok
}

// NodeTokenMap returns the cell -> token map.
func (v *Vocabulary) NodeTokenMap() map[grid.Coord]string {
	out := make(map[grid.Coord]string, len(v.tokenNode))
	for tok, c := range v.tokenNode {
		out[c] = tok
	}
	return out
}

// TokenNodeMap returns the token -> cell map.
func (v *Vocabulary) TokenNodeMap() map[string]grid.Coord {
	out := make(map[string]grid.Coord, len(v.tokenNode))
	for tok, c := range v.tokenNode {
		out[tok] = c
	}
	return out
}

// Contains reports whether token belongs to the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.index[token]
	return ok
}

// Indices maps tokens to ids.
func (v *Vocabulary) Indices(tokens []string) ([]int, error) {
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		id, ok := v.index[tok]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownToken, "%q at position %d", tok, i)
		}
		ids[i] = id
	}
	return ids, nil
}

// Tokens maps ids back to tokens.
func (v *Vocabulary) Tokens(ids []int) ([]string, error) {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(v.tokens) {
			return nil, errors.Wrapf(ErrUnknownToken, "id %d at position %d", id, i)
		}
		tokens[i] = v.tokens[id]
	}
	return tokens, nil
}

// Pad left-pads ids with the padding id up to length. Sequences already at
// least that long are returned unchanged.
func (v *Vocabulary) Pad(ids []int, length int) []int {
	if len(ids) >= length {
		return ids
	}
	out := make([]int, length)
	pad := v.PaddingTokenIndex()
	offset := length - len(ids)
	for i := 0; i < offset; i++ {
		out[i] = pad
	}
	copy(out[offset:], ids)
	return out
}
