package dataset

import (
	"io"
	"slices"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
)

// FormatName is the discriminator stored in every serialized dataset.
const FormatName = "MazeDataset"

// Serialized is the self-describing value tree of a dataset.
type Serialized struct {
	Format string       `json:"__format__"`
	Cfg    ConfigTree   `json:"cfg"`
	Mazes  []MazeRecord `json:"mazes"`
}

// ConfigTree is a serialized Config together with its derived vocabulary,
// kept so a loader can detect vocabulary drift.
type ConfigTree struct {
	Name              string            `json:"name"`
	GridN             int               `json:"grid_n"`
	NMazes            int               `json:"n_mazes"`
	GeneratorName     string            `json:"generator_name"`
	Seed              uint64            `json:"seed"`
	GridShape         [2]int            `json:"grid_shape"`
	TokenArr          []string          `json:"token_arr,omitempty"`
	TokenNodeMap      map[string][2]int `json:"token_node_map,omitempty"`
	NTokens           int               `json:"n_tokens,omitempty"`
	PaddingTokenIndex int               `json:"padding_token_index,omitempty"`
}

// MazeRecord is one serialized solved maze; coordinates are [row, col].
type MazeRecord struct {
	Edges    [][2][2]int `json:"edges"`
	Start    [2]int      `json:"start"`
	End      [2]int      `json:"end"`
	Solution [][2]int    `json:"solution"`
}

func coordPair(c grid.Coord) [2]int {
	return [2]int{c.Row, c.Col}
}

func pairCoord(p [2]int) grid.Coord {
	return grid.C(p[0], p[1])
}

// Serialize returns the config with its full derived vocabulary.
func (c Config) Serialize() ConfigTree {
	vocab := c.Vocabulary()
	nodes := make(map[string][2]int, vocab.Shape().Size())
	for tok, coord := range vocab.TokenNodeMap() {
		nodes[tok] = coordPair(coord)
	}
	return ConfigTree{
		Name:              c.Name,
		GridN:             c.GridN,
		NMazes:            c.NMazes,
		GeneratorName:     c.Generator,
		Seed:              c.Seed,
		GridShape:         [2]int{c.GridN, c.GridN},
		TokenArr:          vocab.TokenArr(),
		TokenNodeMap:      nodes,
		NTokens:           vocab.NTokens(),
		PaddingTokenIndex: vocab.PaddingTokenIndex(),
	}
}

// LoadConfig rebuilds a Config and checks that its generator is registered and
// that any stored vocabulary equals the one derived from grid_n.
func LoadConfig(tree ConfigTree, opts ...Option) (Config, error) {
	o := buildOptions(opts)
	cfg := Config{
		Name:      tree.Name,
		GridN:     tree.GridN,
		NMazes:    tree.NMazes,
		Generator: tree.GeneratorName,
		Seed:      tree.Seed,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if !o.registry.Has(cfg.Generator) {
		return Config{}, errors.Wrapf(ErrConfigMismatch, "generator %q is not registered (have %v)", cfg.Generator, o.registry.Names())
	}

	if tree.GridShape != [2]int{} && tree.GridShape != [2]int{cfg.GridN, cfg.GridN} {
		return Config{}, errors.Wrapf(ErrConfigMismatch, "grid_shape %v does not match grid_n %d", tree.GridShape, cfg.GridN)
	}
	derived := cfg.Serialize()
	if tree.TokenArr != nil && !slices.Equal(tree.TokenArr, derived.TokenArr) {
		return Config{}, errors.Wrap(ErrConfigMismatch, "stored token_arr differs from derived vocabulary")
	}
	if tree.TokenNodeMap != nil && !mapsEqual(tree.TokenNodeMap, derived.TokenNodeMap) {
		return Config{}, errors.Wrap(ErrConfigMismatch, "stored token_node_map differs from derived vocabulary")
	}
	if tree.NTokens != 0 && tree.NTokens != derived.NTokens {
		return Config{}, errors.Wrapf(ErrConfigMismatch, "stored n_tokens %d, derived %d", tree.NTokens, derived.NTokens)
	}
	if tree.PaddingTokenIndex != 0 && tree.PaddingTokenIndex != derived.PaddingTokenIndex {
		return Config{}, errors.Wrapf(ErrConfigMismatch, "stored padding_token_index %d, derived %d", tree.PaddingTokenIndex, derived.PaddingTokenIndex)
	}
	return cfg, nil
}

func mapsEqual(a, b map[string][2]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func serializeMaze(m *maze.SolvedMaze) MazeRecord {
	edges := m.Edges()
	rec := MazeRecord{
		Edges:    make([][2][2]int, len(edges)),
		Start:    coordPair(m.Start),
		End:      coordPair(m.End),
		Solution: make([][2]int, len(m.Solution)),
	}
	for i, e := range edges {
		rec.Edges[i] = [2][2]int{coordPair(e.A), coordPair(e.B)}
	}
	for i, c := range m.Solution {
		rec.Solution[i] = coordPair(c)
	}
	return rec
}

func loadMaze(shape grid.Shape, rec MazeRecord) (*maze.SolvedMaze, error) {
	edges := make([]maze.Edge, len(rec.Edges))
	for i, e := range rec.Edges {
		edges[i] = maze.Edge{A: pairCoord(e[0]), B: pairCoord(e[1])}
	}
	lattice, err := maze.FromEdges(shape, edges)
	if err != nil {
		return nil, err
	}
	targeted, err := maze.NewTargetedLatticeMaze(lattice, pairCoord(rec.Start), pairCoord(rec.End))
	if err != nil {
		return nil, err
	}
	solution := make([]grid.Coord, len(rec.Solution))
	for i, p := range rec.Solution {
		solution[i] = pairCoord(p)
	}
	return maze.NewSolvedMaze(targeted, solution)
}

// Serialize converts the dataset to its value tree.
func (ds *Dataset) Serialize() *Serialized {
	s := &Serialized{
		Format: FormatName,
		Cfg:    ds.cfg.Serialize(),
		Mazes:  make([]MazeRecord, len(ds.mazes)),
	}
	for i, m := range ds.mazes {
		s.Mazes[i] = serializeMaze(m)
	}
	return s
}

// Load rebuilds a dataset from its value tree, validating the discriminator,
// the config and every maze.
func Load(s *Serialized, opts ...Option) (*Dataset, error) {
	if s == nil {
		return nil, errors.New("dataset: nothing to load")
	}
	if s.Format != FormatName {
		return nil, errors.Wrapf(ErrConfigMismatch, "format %q, expected %q", s.Format, FormatName)
	}
	cfg, err := LoadConfig(s.Cfg, opts...)
	if err != nil {
		return nil, err
	}
	if len(s.Mazes) != cfg.NMazes {
		return nil, errors.Wrapf(ErrConfigMismatch, "config declares %d mazes, found %d", cfg.NMazes, len(s.Mazes))
	}

	mazes := make([]*maze.SolvedMaze, len(s.Mazes))
	for i, rec := range s.Mazes {
		m, err := loadMaze(cfg.Shape(), rec)
		if err != nil {
			return nil, errors.Wrapf(err, "loading maze %d", i)
		}
		mazes[i] = m
	}
	return New(cfg, mazes)
}

// Write encodes the dataset's value tree as JSON.
func (ds *Dataset) Write(w io.Writer) error {
	return errors.Wrap(json.NewEncoder(w).Encode(ds.Serialize()), "dataset: encoding JSON")
}

// ReadFrom decodes a JSON value tree and loads it.
func ReadFrom(r io.Reader, opts ...Option) (*Dataset, error) {
	var s Serialized
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "dataset: decoding JSON")
	}
	return Load(&s, opts...)
}
