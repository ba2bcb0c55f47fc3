// Package generate builds random perfect mazes and keeps a registry of named
// generation algorithms, so configs can refer to an algorithm by name.
package generate

import (
	"context"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
)

// Names of the built-in generators.
const (
	DFS     = "gen_dfs"
	Kruskal = "gen_kruskal"
)

// ErrUnknownGenerator indicates a generator name that is not registered.
var ErrUnknownGenerator = errors.New("generate: unknown generator")

// Func builds a maze over shape, drawing all randomness from rng.
type Func func(ctx context.Context, shape grid.Shape, rng *rand.Rand) (*maze.LatticeMaze, error)

// Registry maps generator names to generation functions.
type Registry struct {
	gens map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{gens: make(map[string]Func)}
}

// Register adds a generator. Empty and duplicate names are rejected.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" || fn == nil {
		return errors.New("generate: generator needs a name and a function")
	}
	if _, exists := r.gens[name]; exists {
		return errors.Errorf("generate: generator %q already registered", name)
	}
	r.gens[name] = fn
	return nil
}

// MustRegister adds a generator, panicking on error.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Get returns the generator with the given name, or ErrUnknownGenerator.
func (r *Registry) Get(name string) (Func, error) {
	fn, ok := r.gens[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGenerator, "%q (registered: %v)", name, r.Names())
	}
	return fn, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.gens[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.gens))
	for name := range r.gens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered generators.
func (r *Registry) Count() int {
	return len(r.gens)
}

// Default holds the built-in generators. It is populated at init and only read afterwards.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(DFS, GenDFS)
	r.MustRegister(Kruskal, GenKruskal)
	return r
}

// Lookup returns a generator from the Default registry.
func Lookup(name string) (Func, error) {
	return Default.Get(name)
}
