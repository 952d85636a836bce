// SPDX-License-Identifier: MIT

// Package matrix - dimension queries & element access.
//
// Every method checks validity first (ErrInvalidMatrix on an empty Matrix)
// and then delegates to the allocator, which owns bounds checking.
// runtime.KeepAlive pins the owned record across each delegation so the
// finalizer cannot free the buffer mid-call.
package matrix

import "runtime"

// Rows returns the number of rows of the owned buffer.
// Complexity: O(1).
func (m *Matrix) Rows() (int, error) {
	o, err := m.checked(ctxRows)
	if err != nil {
		return 0, err
	}
	r, _ := o.buf.Dims()
	runtime.KeepAlive(o)

	return r, nil
}

// Cols returns the number of columns of the owned buffer.
// Complexity: O(1).
func (m *Matrix) Cols() (int, error) {
	o, err := m.checked(ctxCols)
	if err != nil {
		return 0, err
	}
	_, c := o.buf.Dims()
	runtime.KeepAlive(o)

	return c, nil
}

// Shape packs Rows and Cols into a single call.
// Complexity: O(1).
func (m *Matrix) Shape() (rows, cols int, err error) {
	o, err := m.checked(ctxShape)
	if err != nil {
		return 0, 0, err
	}
	rows, cols = o.buf.Dims()
	runtime.KeepAlive(o)

	return rows, cols, nil
}

// At returns the element at (row, col).
// Out-of-range indices are reported by the allocator (buffer.ErrOutOfRange
// for the gonum allocator).
// Complexity: O(1).
func (m *Matrix) At(row, col int) (float64, error) {
	o, err := m.checked(ctxAt)
	if err != nil {
		return 0, err
	}
	v, err := o.alloc.Get(o.buf, row, col)
	runtime.KeepAlive(o)
	if err != nil {
		return 0, accessErrorf(ctxAt, err)
	}

	return v, nil
}

// Set stores v at (row, col).
// Complexity: O(1).
func (m *Matrix) Set(row, col int, v float64) error {
	o, err := m.checked(ctxSet)
	if err != nil {
		return err
	}
	err = o.alloc.Set(o.buf, row, col, v)
	runtime.KeepAlive(o)
	if err != nil {
		return accessErrorf(ctxSet, err)
	}

	return nil
}

// Ref returns a pointer to the stored element at (row, col) for in-place
// reads and writes.
// MAIN DESCRIPTION:
//   - Reference accessor: *p = v writes through to the buffer.
//
// Behavior highlights:
//   - The pointer stays valid while m keeps the same buffer: Set and an
//     equal-shape Assign keep it, a reshaping Assign, Swap or Release do not.
//   - Read-only access is At; Go has no const pointers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Matrix) Ref(row, col int) (*float64, error) {
	o, err := m.checked(ctxRef)
	if err != nil {
		return nil, err
	}
	p, err := o.alloc.Ptr(o.buf, row, col)
	runtime.KeepAlive(o)
	if err != nil {
		return nil, accessErrorf(ctxRef, err)
	}

	return p, nil
}
