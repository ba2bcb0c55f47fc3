package dataset

import (
	"fmt"
	"regexp"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/generate"
	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/tokenizer"
)

// Config describes a maze dataset. The vocabulary is derived from GridN alone,
// so two configs with the same GridN share token ids.
type Config struct {
	// Name labels the dataset in file names.
	Name string `yaml:"name"`
	// GridN is the side length of the square lattice.
	GridN int `yaml:"grid_n"`
	// NMazes is the number of mazes to generate.
	NMazes int `yaml:"n_mazes"`
	// Generator is a name registered in the generator registry.
	Generator string `yaml:"generator"`
	// Seed roots every random stream used during generation.
	Seed uint64 `yaml:"seed"`
}

// NewConfig returns a config using the default DFS generator.
func NewConfig(name string, gridN, nMazes int, seed uint64) Config {
	return Config{
		Name:      name,
		GridN:     gridN,
		NMazes:    nMazes,
		Generator: generate.DFS,
		Seed:      seed,
	}
}

// Validate checks the config's own fields. Generator registration is checked
// separately against a registry.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New("dataset: config name must not be empty")
	}
	if c.GridN < 1 {
		return errors.Errorf("dataset: grid_n must be at least 1, got %d", c.GridN)
	}
	if c.NMazes < 0 {
		return errors.Errorf("dataset: n_mazes must not be negative, got %d", c.NMazes)
	}
	if c.Generator == "" {
		return errors.New("dataset: generator name must not be empty")
	}
	return nil
}

// Shape is the square grid shape.
func (c Config) Shape() grid.Shape {
	return grid.Square(c.GridN)
}

// Vocabulary derives the token vocabulary for this config's grid.
func (c Config) Vocabulary() *tokenizer.Vocabulary {
	return tokenizer.NewVocabulary(c.Shape())
}

var unsafeFnameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Fname returns a cache key such as "test-g3-n5-h12345": the readable
// parameters plus a short hash of the full serialized config, so configs
// differing only in generator or seed get different names.
func (c Config) Fname() string {
	data, err := json.Marshal(c.Serialize())
	if err != nil {
		// ConfigTree holds only strings, ints and slices of them.
		panic(errors.Wrap(err, "dataset: marshalling config"))
	}
	h := xxhash.Sum64(data) % 100000
	name := unsafeFnameChars.ReplaceAllString(c.Name, "_")
	return fmt.Sprintf("%s-g%d-n%d-h%d", name, c.GridN, c.NMazes, h)
}
