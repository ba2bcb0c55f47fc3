package dataset

import "github.com/pkg/errors"

var (
	// ErrUnknownFormat indicates a maze representation that does not exist.
	ErrUnknownFormat = errors.New("dataset: unknown format")
	// ErrNotImplemented indicates a declared representation with no implementation yet.
	ErrNotImplemented = errors.Wrap(ErrUnknownFormat, "not implemented")
	// ErrConfigMismatch indicates serialized data that cannot be loaded with this build:
	// wrong format discriminator, unregistered generator, or a vocabulary that
	// differs from the derived one.
	ErrConfigMismatch = errors.New("dataset: config mismatch")
	// ErrIndexOutOfRange indicates a maze index outside the dataset.
	ErrIndexOutOfRange = errors.New("dataset: index out of range")
	// ErrNotCached indicates FromConfig found no local file and was told not to generate.
	ErrNotCached = errors.New("dataset: not found locally")
)
