// SPDX-License-Identifier: MIT

// Package buffer is the storage collaborator behind matrix.Matrix.
//
// It hands out opaque *Handle values, each owning one row-major float64
// buffer backed by a gonum *mat.Dense, and exposes the primitive set a
// matrix wrapper needs:
//
//   - Alloc / Calloc: obtain a rows×cols buffer (Calloc guarantees zeros).
//   - Free: return a buffer; a second Free on the same handle is reported.
//   - Get / Set / Ptr: element access with index validation.
//   - Copy: element-wise copy between buffers of equal shape.
//
// The Gonum allocator enforces a byte ceiling (physical memory by default)
// so that oversized requests fail with ErrOutOfMemory instead of crashing
// the process, and logs every lifecycle event at Debug level.
//
// Allocators are safe for concurrent use. Handles are not: a handle must be
// driven by one goroutine at a time.
package buffer
