// SPDX-License-Identifier: MIT

// Package matrix - Matrix value type: construction, ownership & release.
//
// Purpose:
//   - Own exactly one allocator buffer per valid Matrix; never alias it.
//   - Represent the empty state as "no owned handle" (own == nil), which is
//     also the zero value, so a declared-but-unset Matrix is safely empty.
//   - Tie the buffer's lifetime to an internal owned record carrying a
//     finalizer, so forgotten matrices still return their bytes.
//
// Complexity quicksheet:
//   - New: O(r*c) zero-fill; NewFrom/Clone: O(r*c); Release: O(1).
package matrix

import (
	"runtime"

	"github.com/katalvlaran/libmatrix/buffer"
)

// Matrix is a dense rows×cols float64 matrix with value semantics.
// The zero value is an empty Matrix.
type Matrix struct {
	alloc buffer.Allocator // allocator for new buffers; nil means buffer.Default()
	own   *owned           // nil ⇔ empty
}

// owned pairs a handle with the allocator that must free it.
// Exactly one Matrix points at a given owned at any time.
type owned struct {
	alloc buffer.Allocator
	buf   *buffer.Handle
}

// adopt takes ownership of h and arms the finalizer.
func adopt(a buffer.Allocator, h *buffer.Handle) *owned {
	o := &owned{alloc: a, buf: h}
	runtime.SetFinalizer(o, (*owned).finalize)
	return o
}

// release disarms the finalizer and frees the buffer.
func (o *owned) release() error {
	runtime.SetFinalizer(o, nil)
	return o.alloc.Free(o.buf)
}

func (o *owned) finalize() {
	_ = o.alloc.Free(o.buf)
}

// Empty returns a Matrix that owns no buffer.
// The options select the allocator later used by Assign.
// Complexity: O(1).
func Empty(opts ...Option) *Matrix {
	o := gatherOptions(opts...)
	return &Matrix{alloc: o.alloc}
}

// New allocates a rows×cols Matrix filled with zeros.
// MAIN DESCRIPTION:
//   - Sized constructor; the buffer comes from the allocator's Calloc.
//
// Implementation:
//   - Stage 1: resolve options (allocator).
//   - Stage 2: Calloc(rows, cols); any refusal becomes ErrAllocation.
//   - Stage 3: adopt the handle.
//
// Errors:
//   - ErrAllocation, joined with the allocator cause: buffer.ErrBadShape for
//     rows<=0 or cols<=0 (so New(0, 0) always fails), buffer.ErrTooLarge for
//     sizes that overflow, buffer.ErrOutOfMemory above the memory limit.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func New(rows, cols int, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)

	h, err := o.alloc.Calloc(rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxNew, ErrAllocation, err)
	}

	return &Matrix{alloc: o.alloc, own: adopt(o.alloc, h)}, nil
}

// NewFrom returns a deep copy of src in a freshly allocated buffer.
// MAIN DESCRIPTION:
//   - Copy constructor: same shape, same values, independent storage.
//
// Implementation:
//   - Stage 1: require src to be valid.
//   - Stage 2: allocate a buffer of src's shape and copy into it
//     (see duplicate); the fresh buffer is freed again if the copy fails.
//
// Behavior highlights:
//   - Without WithAllocator the copy uses src's allocator.
//
// Errors:
//   - ErrInvalidMatrix when src is empty.
//   - ErrAllocation / ErrCopy joined with the allocator cause.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFrom(src *Matrix, opts ...Option) (*Matrix, error) {
	so, err := src.checked(ctxNewFr)
	if err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(so)

	o := options{alloc: src.allocator()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.alloc == nil {
		o.alloc = src.allocator()
	}

	h, err := duplicate(ctxNewFr, o.alloc, so)
	if err != nil {
		return nil, err
	}

	return &Matrix{alloc: o.alloc, own: adopt(o.alloc, h)}, nil
}

// Clone is NewFrom(m) using m's allocator.
func (m *Matrix) Clone() (*Matrix, error) {
	return NewFrom(m)
}

// duplicate allocates a buffer shaped like src and copies src into it.
// The destination is fresh, so only the copy primitive's own checks apply.
func duplicate(method string, a buffer.Allocator, src *owned) (*buffer.Handle, error) {
	rows, cols := src.buf.Dims()

	h, err := a.Alloc(rows, cols)
	if err != nil {
		return nil, matrixErrorf(method, ErrAllocation, err)
	}
	if err = a.Copy(h, src.buf); err != nil {
		_ = a.Free(h)
		return nil, matrixErrorf(method, ErrCopy, err)
	}

	return h, nil
}

// Release frees the owned buffer and leaves m empty.
// Releasing an empty Matrix is a no-op.
func (m *Matrix) Release() error {
	if m == nil || m.own == nil {
		return nil
	}
	o := m.own
	m.own = nil

	return o.release()
}

// Valid reports whether m currently owns a buffer.
func (m *Matrix) Valid() bool {
	return m != nil && m.own != nil
}

// checked returns the owned buffer or ErrInvalidMatrix tagged with method.
func (m *Matrix) checked(method string) (*owned, error) {
	if !m.Valid() {
		return nil, matrixErrorf(method, ErrInvalidMatrix, nil)
	}
	return m.own, nil
}

func (m *Matrix) allocator() buffer.Allocator {
	if m == nil || m.alloc == nil {
		return buffer.Default()
	}
	return m.alloc
}
