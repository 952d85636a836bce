// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors. Every public method
// returns one of these wrapped with its method context, and tests MUST check
// them via errors.Is. Causes reported by the buffer allocator stay reachable
// through the same chain (errors.Is(err, buffer.ErrOutOfMemory) holds too).

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Public methods wrap as "Matrix.<Method>: <sentinel>: <cause>".

var (
	// ErrAllocation is returned when the allocator cannot satisfy a size
	// request (non-positive shape, overflow, or memory limit).
	ErrAllocation = errors.New("matrix: cannot allocate buffer")

	// ErrCopy is returned when the element-wise copy primitive fails.
	ErrCopy = errors.New("matrix: cannot copy buffer")

	// ErrInvalidMatrix is returned when an operation that needs a buffer is
	// invoked on an empty (zero value, Empty, or released) Matrix.
	ErrInvalidMatrix = errors.New("matrix: invalid matrix, operation not performed")
)

// ---------- error context tags ----------

const (
	ctxNew    = "New"
	ctxNewFr  = "NewFrom"
	ctxAssign = "Assign"
	ctxRows   = "Rows"
	ctxCols   = "Cols"
	ctxShape  = "Shape"
	ctxAt     = "At"
	ctxSet    = "Set"
	ctxRef    = "Ref"
)

// matrixErrorf attaches the method tag to a sentinel, optionally joining the
// allocator cause so both remain matchable with errors.Is.
func matrixErrorf(method string, sentinel, cause error) error {
	if cause == nil {
		return fmt.Errorf("Matrix.%s: %w", method, sentinel)
	}
	return fmt.Errorf("Matrix.%s: %w: %w", method, sentinel, cause)
}

// accessErrorf wraps a collaborator error from an element primitive.
// The collaborator's own sentinel (e.g. buffer.ErrOutOfRange) is kept as is.
func accessErrorf(method string, err error) error {
	return fmt.Errorf("Matrix.%s: %w", method, err)
}
