// SPDX-License-Identifier: MIT
// Package buffer: sentinel error set.
// Every primitive returns one of these (possibly wrapped with call context);
// callers match with errors.Is.

package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when rows or cols is not strictly positive.
	ErrBadShape = errors.New("buffer: rows and cols must be > 0")

	// ErrTooLarge is returned when rows*cols elements cannot be addressed.
	ErrTooLarge = errors.New("buffer: requested size overflows")

	// ErrOutOfMemory is returned when a request would exceed the memory limit.
	ErrOutOfMemory = errors.New("buffer: memory limit exceeded")

	// ErrShapeMismatch is returned by Copy when source and destination differ in shape.
	ErrShapeMismatch = errors.New("buffer: shape mismatch")

	// ErrOutOfRange indicates that a row or column index is outside the buffer.
	ErrOutOfRange = errors.New("buffer: index out of range")

	// ErrNilHandle indicates that a nil *Handle was passed to a primitive.
	ErrNilHandle = errors.New("buffer: nil handle")

	// ErrReleased indicates that the handle has already been freed.
	ErrReleased = errors.New("buffer: handle already released")

	// ErrForeignHandle is returned by Free when the handle was produced by
	// a different allocator.
	ErrForeignHandle = errors.New("buffer: handle belongs to another allocator")
)

// allocErrorf wraps err with the allocation primitive and requested shape.
func allocErrorf(op string, rows, cols int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", op, rows, cols, err)
}

// indexErrorf wraps err with the element primitive and coordinates.
func indexErrorf(op string, row, col int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", op, row, col, err)
}
