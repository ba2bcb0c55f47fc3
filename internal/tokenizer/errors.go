package tokenizer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDecode is matched by every *DecodeError.
var ErrDecode = errors.New("tokenizer: decode error")

// ErrShapeMismatch indicates a maze whose grid differs from the vocabulary's.
var ErrShapeMismatch = errors.New("tokenizer: maze shape does not match vocabulary")

// DecodeError reports where a token sequence stopped making sense.
type DecodeError struct {
	// Pos is the offending token's index; len(tokens) when the sequence ended early.
	Pos int
	// Token is the offending token, empty at end of sequence.
	Token string
	// Expected names the token or token kind the decoder wanted, if any.
	Expected string
	Msg      string
	// Err is the underlying cause, if any.
	Err error
}

func (e *DecodeError) Error() string {
	at := fmt.Sprintf("position %d", e.Pos)
	if e.Token != "" {
		at += fmt.Sprintf(" (token %q)", e.Token)
	} else {
		at += " (end of sequence)"
	}
	msg := e.Msg
	if e.Expected != "" {
		msg = fmt.Sprintf("expected %s: %s", e.Expected, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("tokenizer: decode error at %s: %s", at, msg)
}

// Is makes errors.Is(err, ErrDecode) true for any *DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
