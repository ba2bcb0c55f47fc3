package dataset

import (
	"strings"

	"github.com/pkg/errors"
)

// Format selects how Get returns a maze.
type Format int

const (
	// FormatObjects returns a *maze.SolvedMaze.
	FormatObjects Format = iota
	// FormatTokens returns the []string token sequence.
	FormatTokens
	// FormatArray is a dense integer array; declared but not implemented.
	FormatArray
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatObjects:
		return "objects"
	case FormatTokens:
		return "tokens"
	case FormatArray:
		return "array"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name back to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "objects", "object":
		return FormatObjects, nil
	case "tokens", "token":
		return FormatTokens, nil
	case "array":
		return FormatArray, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q", s)
}
