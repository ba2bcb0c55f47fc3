// Package main is the entry point for mazegen, which generates, caches,
// prints, exports and browses maze datasets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/samdwyer/mazetokens/internal/dataset"
	"github.com/samdwyer/mazetokens/internal/generate"
	"github.com/samdwyer/mazetokens/internal/telemetry"
	"github.com/samdwyer/mazetokens/internal/tokenizer"
	"github.com/samdwyer/mazetokens/internal/ui"
)

type flags struct {
	preset      string
	name        string
	gridN       int
	nMazes      int
	generator   string
	seed        uint64
	cacheDir    string
	load        bool
	save        bool
	generate    bool
	parallelism int
	show        int
	png         string
	pngScale    int
	view        bool
	list        bool
	verbose     bool
}

func parseFlags() (*flags, map[string]bool) {
	f := &flags{}
	flag.StringVar(&f.preset, "preset", "", "named dataset preset (see -list)")
	flag.StringVar(&f.name, "name", "mazes", "dataset name")
	flag.IntVar(&f.gridN, "grid", 5, "grid side length")
	flag.IntVar(&f.nMazes, "n", 10, "number of mazes")
	flag.StringVar(&f.generator, "generator", generate.DFS, "generator name: "+strings.Join(generate.Default.Names(), ", "))
	flag.Uint64Var(&f.seed, "seed", 0, "dataset seed")
	flag.StringVar(&f.cacheDir, "cache", envOr("MAZEGEN_CACHE_DIR", "data"), "dataset cache directory")
	flag.BoolVar(&f.load, "load", true, "load the dataset from the cache if present")
	flag.BoolVar(&f.save, "save", false, "save a generated dataset to the cache")
	flag.BoolVar(&f.generate, "generate", true, "generate the dataset if it is not cached")
	flag.IntVar(&f.parallelism, "parallel", 0, "concurrent maze generation (0 = number of CPUs)")
	flag.IntVar(&f.show, "show", -1, "print maze `index` as ASCII and tokens")
	flag.StringVar(&f.png, "png", "", "write maze -show (or 0) as a PNG `file`")
	flag.IntVar(&f.pngScale, "png-scale", 8, "PNG pixels per maze pixel")
	flag.BoolVar(&f.view, "view", false, "browse the dataset in the terminal")
	flag.BoolVar(&f.list, "list", false, "list presets and exit")
	flag.BoolVar(&f.verbose, "v", false, "debug logging")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		logger.Debug().Err(err).Msg(".env file not loaded")
	}

	f, set := parseFlags()
	if f.verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry setup failed, continuing without tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutting down telemetry")
				}
			}()
		}
	}

	if err := run(ctx, f, set, logger); err != nil {
		logger.Fatal().Err(err).Msg("mazegen failed")
	}
}

func run(ctx context.Context, f *flags, set map[string]bool, logger zerolog.Logger) error {
	if f.list {
		return listPresets()
	}

	cfg, err := buildConfig(f, set)
	if err != nil {
		return err
	}
	logger.Debug().Str("fname", cfg.Fname()).Interface("config", cfg).Msg("resolved config")

	opts := []dataset.Option{dataset.WithLogger(logger)}
	if f.parallelism > 0 {
		opts = append(opts, dataset.WithParallelism(f.parallelism))
	}
	if !f.view && cfg.NMazes > 0 {
		bar := progressbar.Default(int64(cfg.NMazes), "generating "+cfg.Name)
		opts = append(opts, dataset.WithProgress(func(int, int) {
			_ = bar.Add(1)
		}))
	}

	ds, err := dataset.FromConfig(ctx, cfg, dataset.FromConfigOptions{
		LoadLocal:     f.load,
		DoGenerate:    f.generate,
		SaveLocal:     f.save,
		LocalBasePath: f.cacheDir,
	}, opts...)
	if err != nil {
		return err
	}

	if f.save {
		path := dataset.Path(f.cacheDir, cfg)
		if info, err := os.Stat(path); err == nil {
			logger.Info().Str("path", path).Str("size", humanize.Bytes(uint64(info.Size()))).Msg("dataset on disk")
		}
	}

	if f.show >= 0 {
		if err := printMaze(ds, f.show); err != nil {
			return err
		}
	}

	if f.png != "" {
		index := max(f.show, 0)
		m, err := ds.Maze(index)
		if err != nil {
			return err
		}
		if err := writePNG(f.png, m, f.pngScale); err != nil {
			return err
		}
		logger.Info().Str("path", f.png).Int("index", index).Msg("wrote maze image")
	}

	if f.view {
		screen, err := ui.NewScreen()
		if err != nil {
			return err
		}
		viewer, err := ui.NewViewer(screen, ds, max(f.show, 0))
		if err != nil {
			screen.Close()
			return err
		}
		return viewer.Run(ctx)
	}
	return nil
}

// buildConfig starts from the preset, if any, and applies explicitly set flags.
func buildConfig(f *flags, set map[string]bool) (dataset.Config, error) {
	cfg := dataset.NewConfig(f.name, f.gridN, f.nMazes, f.seed)
	cfg.Generator = f.generator
	if f.preset != "" {
		preset, err := dataset.Preset(f.preset)
		if err != nil {
			return dataset.Config{}, err
		}
		overrides := map[string]func(){
			"name":      func() { preset.Name = f.name },
			"grid":      func() { preset.GridN = f.gridN },
			"n":         func() { preset.NMazes = f.nMazes },
			"generator": func() { preset.Generator = f.generator },
			"seed":      func() { preset.Seed = f.seed },
		}
		for flagName, apply := range overrides {
			if set[flagName] {
				apply()
			}
		}
		cfg = preset
	}
	if !generate.Default.Has(cfg.Generator) {
		return dataset.Config{}, errors.Wrapf(generate.ErrUnknownGenerator, "%q", cfg.Generator)
	}
	return cfg, cfg.Validate()
}

func listPresets() error {
	presets, err := dataset.Presets()
	if err != nil {
		return err
	}
	names, err := dataset.PresetNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		cfg := presets[name]
		fmt.Printf("%-20s %-28s grid=%d n=%s generator=%s seed=%d\n",
			name, cfg.Fname(), cfg.GridN, humanize.Comma(int64(cfg.NMazes)), cfg.Generator, cfg.Seed)
	}
	return nil
}

func printMaze(ds *dataset.Dataset, index int) error {
	m, err := ds.Maze(index)
	if err != nil {
		return err
	}
	tokens, err := ds.Tokens(index, tokenizer.EncodeOptions{})
	if err != nil {
		return err
	}
	fmt.Print(m.ASCII(&m.Start, &m.End))
	fmt.Println(strings.Join(tokens, " "))
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars
// and reports whether a trace destination is configured.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_MAZEGEN_API_KEY")
	if apiKey == "" {
		return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
	}
	team := os.Getenv("HONEYCOMB_MAZEGEN_DATASET")
	if team == "" {
		team = "mazegen" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, team))
	return true
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
