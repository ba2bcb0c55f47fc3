package tokenizer

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mazetokens/internal/generate"
	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
)

func twoByTwo(t *testing.T) *maze.SolvedMaze {
	t.Helper()
	m, err := maze.FromEdges(grid.Square(2), []maze.Edge{{A: grid.C(0, 0), B: grid.C(0, 1)}})
	require.NoError(t, err)
	tm, err := maze.NewTargetedLatticeMaze(m, grid.C(0, 0), grid.C(0, 1))
	require.NoError(t, err)
	solved, err := maze.NewSolvedMaze(tm, []grid.Coord{grid.C(0, 0), grid.C(0, 1)})
	require.NoError(t, err)
	return solved
}

var shuffleFlags = []struct {
	order, endpoints bool
}{
	{false, false},
	{true, false},
	{false, true},
	{true, true},
}

func TestVocabulary(t *testing.T) {
	v := NewVocabulary(grid.Square(3))
	assert.Equal(t, len(SpecialTokens)+9, v.NTokens())
	assert.Equal(t, v.TokenArr(), NewVocabulary(grid.Square(3)).TokenArr())
	assert.Equal(t, 10, v.PaddingTokenIndex())

	arr := v.TokenArr()
	assert.Equal(t, SpecialTokens, arr[:len(SpecialTokens)])
	assert.Equal(t, []string{"(0,0)", "(0,1)", "(0,2)", "(1,0)"}, arr[len(SpecialTokens):len(SpecialTokens)+4])

	c, ok := v.Coord("(2,1)")
	assert.True(t, ok)
	assert.Equal(t, grid.C(2, 1), c)
	_, ok = v.Coord("(3,0)")
	assert.False(t, ok)
	_, ok = v.NodeToken(grid.C(3, 0))
	assert.False(t, ok)

	nodeTokens := v.NodeTokenMap()
	assert.Len(t, nodeTokens, 9)
	for tok, c := range v.TokenNodeMap() {
		assert.Equal(t, tok, nodeTokens[c])
	}
}

func TestIndicesTokensAndPad(t *testing.T) {
	v := NewVocabulary(grid.Square(2))
	ids, err := v.Indices([]string{AdjListStart, "(1,1)", PathEnd})
	require.NoError(t, err)
	assert.Equal(t, []int{0, len(SpecialTokens) + 3, 7}, ids)

	back, err := v.Tokens(ids)
	require.NoError(t, err)
	assert.Equal(t, []string{AdjListStart, "(1,1)", PathEnd}, back)

	_, err = v.Indices([]string{"(9,9)"})
	assert.ErrorIs(t, err, ErrUnknownToken)
	_, err = v.Tokens([]int{v.NTokens()})
	assert.ErrorIs(t, err, ErrUnknownToken)

	pad := v.PaddingTokenIndex()
	assert.Equal(t, []int{pad, pad, 0, 7}, v.Pad([]int{0, 7}, 4))
	assert.Equal(t, []int{0, 7}, v.Pad([]int{0, 7}, 1))
}

func TestEncodeTwoByTwo(t *testing.T) {
	v := NewVocabulary(grid.Square(2))
	tokens, err := v.Encode(twoByTwo(t), EncodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		AdjListStart, "(0,0)", Connector, "(0,1)", AdjacencyEndline, AdjListEnd,
		OriginStart, "(0,0)", OriginEnd,
		TargetStart, "(0,1)", TargetEnd,
		PathStart, "(0,0)", "(0,1)", PathEnd,
	}, tokens)

	_, err = NewVocabulary(grid.Square(3)).Encode(twoByTwo(t), EncodeOptions{})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestRoundTripTwoByTwo(t *testing.T) {
	v := NewVocabulary(grid.Square(2))
	original := twoByTwo(t)
	for i, f := range shuffleFlags {
		opts := EncodeOptions{Rand: rand.New(rand.NewPCG(uint64(i), 1)), ShuffleOrder: f.order, ShuffleEndpoints: f.endpoints}
		tokens, err := v.Encode(original, opts)
		require.NoError(t, err)

		decoded, err := v.Decode(tokens)
		require.NoError(t, err)
		assert.True(t, decoded.Equal(original), "flags %+v", f)
		assert.Equal(t, original.Edges(), decoded.Edges())
	}
}

func TestRoundTripGeneratedMazes(t *testing.T) {
	ctx := context.Background()
	for n := 2; n <= 7; n++ {
		v := NewVocabulary(grid.Square(n))
		rng := rand.New(rand.NewPCG(uint64(n), 99))

		lattice, err := generate.GenDFS(ctx, grid.Square(n), rng)
		require.NoError(t, err)
		start := grid.C(rng.IntN(n), rng.IntN(n))
		end := grid.C(rng.IntN(n), rng.IntN(n))
		tm, err := maze.NewTargetedLatticeMaze(lattice, start, end)
		require.NoError(t, err)
		solved, err := tm.Solve()
		require.NoError(t, err)

		for _, f := range shuffleFlags {
			tokens, err := v.Encode(solved, EncodeOptions{Rand: rng, ShuffleOrder: f.order, ShuffleEndpoints: f.endpoints})
			require.NoError(t, err)
			decoded, err := v.Decode(tokens)
			require.NoError(t, err)

			assert.True(t, decoded.Equal(solved), "n=%d flags %+v", n, f)
			for i := 1; i < len(decoded.Solution); i++ {
				assert.True(t, decoded.IsConnected(decoded.Solution[i-1], decoded.Solution[i]))
			}
		}
	}
}

func TestDecodeAcceptsLeadingPadding(t *testing.T) {
	v := NewVocabulary(grid.Square(2))
	tokens, err := v.Encode(twoByTwo(t), EncodeOptions{})
	require.NoError(t, err)

	decoded, err := v.Decode(append([]string{Padding, Padding}, tokens...))
	require.NoError(t, err)
	assert.True(t, decoded.Equal(twoByTwo(t)))
}

func TestDecodeErrors(t *testing.T) {
	v := NewVocabulary(grid.Square(2))
	valid, err := v.Encode(twoByTwo(t), EncodeOptions{})
	require.NoError(t, err)

	replace := func(i int, tok string) []string {
		out := append([]string(nil), valid...)
		out[i] = tok
		return out
	}
	remove := func(i int) []string {
		out := append([]string(nil), valid[:i]...)
		return append(out, valid[i+1:]...)
	}

	tests := []struct {
		name     string
		tokens   []string
		pos      int
		token    string
		contains string
	}{
		{"missing path end", valid[:len(valid)-1], len(valid) - 1, "", PathEnd},
		{"unknown token", replace(7, "(5,5)"), 7, "(5,5)", "unknown token"},
		{"missing connector", replace(2, "(1,1)"), 2, "(1,1)", "missing connector"},
		{"missing terminator", replace(4, OriginStart), 4, OriginStart, "not terminated"},
		{"origin and target swapped", append(append(append([]string(nil), valid[:6]...), valid[9:12]...), valid[6:]...), 6, TargetStart, OriginStart},
		{"no adjacency start", remove(0), 0, "(0,0)", AdjListStart},
		{"two origins", replace(8, "(1,0)"), 8, "(1,0)", OriginEnd},
		{"trailing tokens", append(append([]string(nil), valid...), "(0,0)"), len(valid), "(0,0)", "trailing"},
		{"empty path", append(append([]string(nil), valid[:13]...), PathEnd), 13, PathEnd, "empty path"},
		{"empty sequence", nil, 0, "", AdjListStart},
		{"non adjacent edge", replace(3, "(1,1)"), 3, "(1,1)", "not adjacent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Decode(tt.tokens)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.pos, de.Pos)
			assert.Equal(t, tt.token, de.Token)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestDecodeRejectsInvalidPaths(t *testing.T) {
	v := NewVocabulary(grid.Square(2))
	base := []string{
		AdjListStart, "(0,0)", Connector, "(0,1)", AdjacencyEndline, AdjListEnd,
		OriginStart, "(0,0)", OriginEnd,
		TargetStart, "(0,1)", TargetEnd,
		PathStart,
	}

	tests := map[string][]string{
		"path not connected":    {"(0,0)", "(1,0)", "(1,1)", "(0,1)", PathEnd},
		"path starts elsewhere": {"(0,1)", PathEnd},
		"path ends elsewhere":   {"(0,0)", PathEnd},
	}
	for name, tail := range tests {
		t.Run(name, func(t *testing.T) {
			tokens := append(append([]string(nil), base...), tail...)
			_, err := v.Decode(tokens)
			assert.ErrorIs(t, err, ErrDecode)
			assert.ErrorIs(t, err, maze.ErrInvalidSolution)
		})
	}
}
