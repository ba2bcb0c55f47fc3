package dataset

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/mazetokens/internal/grid"
	"github.com/samdwyer/mazetokens/internal/maze"
	"github.com/samdwyer/mazetokens/internal/telemetry"
)

// endpointStream is the PCG stream used for endpoint draws; maze i uses stream i+1.
const endpointStream = 0

// Generate builds cfg.NMazes solved mazes. All (start, end) pairs are drawn
// up front, uniformly and independently, so endpoints may coincide or be
// adjacent. Each maze is then generated and solved in a bounded worker pool
// with its own random stream derived from (cfg.Seed, index), which makes the
// result identical for any parallelism. Any failure aborts the whole batch.
func Generate(ctx context.Context, cfg Config, opts ...Option) (*Dataset, error) {
	ctx, span := telemetry.Tracer("dataset").Start(ctx, "dataset.generate")
	defer span.End()
	startTime := time.Now()

	o := buildOptions(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := o.registry.Get(cfg.Generator)
	if err != nil {
		return nil, errors.Wrapf(ErrConfigMismatch, "config %q: %v", cfg.Name, err)
	}

	shape := cfg.Shape()
	endpoints := drawEndpoints(rand.New(rand.NewPCG(cfg.Seed, endpointStream)), shape, cfg.NMazes)

	mazes := make([]*maze.SolvedMaze, cfg.NMazes)
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for i := range cfg.NMazes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i)+1))
			lattice, err := gen(gctx, shape, rng)
			if err != nil {
				return errors.Wrapf(err, "generating maze %d", i)
			}
			targeted, err := maze.NewTargetedLatticeMaze(lattice, endpoints[i][0], endpoints[i][1])
			if err != nil {
				return errors.Wrapf(err, "maze %d", i)
			}
			solved, err := targeted.Solve()
			if err != nil {
				// Generator output must be a spanning tree; an unsolvable maze is a generator bug.
				return errors.Wrapf(err, "maze %d from generator %q", i, cfg.Generator)
			}
			mazes[i] = solved
			if o.progress != nil {
				o.progress(int(done.Add(1)), cfg.NMazes)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dataset generation failed")
		o.logger.Error().Err(err).Str("dataset", cfg.Name).Msg("maze generation aborted")
		return nil, err
	}

	elapsed := time.Since(startTime)
	span.SetAttributes(
		attribute.String("dataset.name", cfg.Name),
		attribute.String("dataset.generator", cfg.Generator),
		attribute.Int("dataset.grid_n", cfg.GridN),
		attribute.Int("dataset.n_mazes", cfg.NMazes),
		attribute.Int("dataset.parallelism", o.parallelism),
		attribute.Int64("dataset.generation_ms", elapsed.Milliseconds()),
	)
	o.logger.Info().
		Str("dataset", cfg.Name).
		Str("generator", cfg.Generator).
		Int("grid_n", cfg.GridN).
		Int("n_mazes", cfg.NMazes).
		Dur("elapsed", elapsed).
		Msg("generated maze dataset")

	return New(cfg, mazes)
}

// drawEndpoints draws n independent (start, end) pairs uniformly over the grid.
func drawEndpoints(rng *rand.Rand, shape grid.Shape, n int) [][2]grid.Coord {
	out := make([][2]grid.Coord, n)
	for i := range out {
		out[i][0] = grid.C(rng.IntN(shape.Rows), rng.IntN(shape.Cols))
		out[i][1] = grid.C(rng.IntN(shape.Rows), rng.IntN(shape.Cols))
	}
	return out
}
