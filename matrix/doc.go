// SPDX-License-Identifier: MIT

// Package matrix provides Matrix, a value type that owns exactly one dense
// float64 buffer obtained from a buffer.Allocator.
//
// The package adds no arithmetic of its own. Its job is ownership:
//
//   - New allocates a zero-filled rows×cols buffer; Empty (or the zero value)
//     owns nothing and every accessor on it fails with ErrInvalidMatrix.
//   - NewFrom / Clone deep-copy a Matrix into a fresh buffer.
//   - Assign replaces contents. Equal shapes are copied in place; different
//     shapes get a new buffer that is fully populated before the old one is
//     freed, so a failed Assign leaves the receiver untouched.
//   - Swap exchanges buffers without allocating or copying.
//   - Release frees the buffer; a Matrix that is never released is reclaimed
//     by a finalizer.
//
// Bounds checking of element indices is done by the allocator; its errors
// (buffer.ErrOutOfRange and friends) are returned unchanged, wrapped with
// the method name.
//
// A Matrix is not safe for concurrent mutation. Callers sharing one across
// goroutines must synchronize.
package matrix
