// SPDX-License-Identifier: MIT

package buffer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Handle is an opaque reference to one allocated buffer.
// Only the allocator that produced it may release it; element access and
// Copy sources accept any live handle.
type Handle struct {
	owner    *Gonum     // allocator that produced the handle
	id       uint64     // allocation sequence number, used in logs
	dense    *mat.Dense // backing storage, nil once released
	bytes    uint64     // accounted size in bytes
	released bool
}

// ID returns the allocation sequence number of h.
func (h *Handle) ID() uint64 { return h.id }

// Dims returns the buffer shape. A released handle reports (0, 0).
func (h *Handle) Dims() (rows, cols int) {
	if h == nil || h.dense == nil {
		return 0, 0
	}
	return h.dense.Dims()
}

// Released reports whether h has been freed.
func (h *Handle) Released() bool { return h == nil || h.released }

// Bytes returns the accounted size of the buffer.
func (h *Handle) Bytes() uint64 { return h.bytes }

// Matrix exposes the backing storage as a read-only gonum matrix.
// It returns nil for a released handle.
func (h *Handle) Matrix() mat.Matrix {
	if h == nil || h.dense == nil {
		return nil
	}
	return h.dense
}

// String implements fmt.Stringer for log fields.
func (h *Handle) String() string {
	if h == nil {
		return "buffer#nil"
	}
	r, c := h.Dims()
	return fmt.Sprintf("buffer#%d(%dx%d)", h.id, r, c)
}

// live returns the backing storage or the reason it is unusable.
func (h *Handle) live() (*mat.Dense, error) {
	if h == nil {
		return nil, ErrNilHandle
	}
	if h.released {
		return nil, ErrReleased
	}
	return h.dense, nil
}
