package dataset

import (
	"context"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// FileExt is the extension of saved datasets: zstd-compressed JSON.
const FileExt = ".json.zst"

// Save writes the dataset to path, creating or truncating it.
func (ds *Dataset) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "dataset: creating %q", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "dataset: closing %q", path)
		}
	}()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return errors.Wrap(err, "dataset: creating zstd writer")
	}
	if err := ds.Write(zw); err != nil {
		_ = zw.Close()
		return errors.Wrapf(err, "dataset: writing %q", path)
	}
	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, "dataset: flushing %q", path)
	}
	return nil
}

// Read loads a dataset saved with Save.
func Read(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: opening %q", path)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: reading %q", path)
	}
	defer zr.Close()

	ds, err := ReadFrom(zr, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: loading %q", path)
	}
	return ds, nil
}

// FromConfigOptions controls the cache lookup in FromConfig.
type FromConfigOptions struct {
	// LoadLocal reads LocalBasePath/<fname>.json.zst if present.
	LoadLocal bool
	// DoGenerate generates the dataset when nothing was loaded.
	DoGenerate bool
	// SaveLocal writes a freshly generated dataset to LocalBasePath.
	SaveLocal bool
	// LocalBasePath is the cache directory.
	LocalBasePath string
}

// Path returns where a dataset for cfg is cached under dir.
func Path(dir string, cfg Config) string {
	return filepath.Join(dir, cfg.Fname()+FileExt)
}

// FromConfig returns the dataset for cfg, reading it from the local cache when
// allowed and present, and otherwise generating (and optionally saving) it.
func FromConfig(ctx context.Context, cfg Config, fopts FromConfigOptions, opts ...Option) (*Dataset, error) {
	o := buildOptions(opts)
	path := Path(fopts.LocalBasePath, cfg)

	if fopts.LoadLocal {
		switch _, err := os.Stat(path); {
		case err == nil:
			ds, err := Read(path, opts...)
			if err != nil {
				return nil, err
			}
			if ds.Config() != cfg {
				return nil, errors.Wrapf(ErrConfigMismatch, "cached %q holds config %+v, wanted %+v", path, ds.Config(), cfg)
			}
			o.logger.Info().Str("path", path).Int("n_mazes", ds.Len()).Msg("loaded cached maze dataset")
			return ds, nil
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "dataset: checking %q", path)
		}
	}

	if !fopts.DoGenerate {
		return nil, errors.Wrapf(ErrNotCached, "%q (generation disabled)", path)
	}
	ds, err := Generate(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}

	if fopts.SaveLocal {
		if err := os.MkdirAll(fopts.LocalBasePath, 0o755); err != nil {
			return nil, errors.Wrapf(err, "dataset: creating %q", fopts.LocalBasePath)
		}
		if err := ds.Save(path); err != nil {
			return nil, err
		}
		o.logger.Info().Str("path", path).Msg("saved maze dataset")
	}
	return ds, nil
}
