package main

import (
	"errors"

	"github.com/mahdiidarabi/ecdsa-nonce-reuse/pkg/noncereuse"
)

// Exit codes. Anything not listed, including usage errors, exits with exitInput.
const (
	exitOK            = 0
	exitInput         = 1
	exitNotApplicable = 2
	exitDegenerate    = 3
	exitKeyMismatch   = 4
	exitInternal      = 70
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, noncereuse.ErrNotApplicable):
		return exitNotApplicable
	case errors.Is(err, noncereuse.ErrDegenerateInput):
		return exitDegenerate
	case errors.Is(err, noncereuse.ErrKeyMismatch):
		return exitKeyMismatch
	case errors.Is(err, noncereuse.ErrInvariantViolation):
		return exitInternal
	default:
		return exitInput
	}
}
