// SPDX-License-Identifier: MIT

package matrix

import "runtime"

// Assign replaces the contents of m with those of other.
// MAIN DESCRIPTION:
//   - Value assignment with the strong guarantee: on error m is unchanged.
//
// Implementation:
//   - Stage 1: self-assignment is a no-op; other must be valid.
//   - Stage 2 (same shape): copy in place, no reallocation, element
//     addresses obtained through Ref stay valid.
//   - Stage 3 (different shape or empty m): allocate and fully populate a new
//     buffer, then install it and free the old one.
//
// Errors:
//   - ErrInvalidMatrix when other (or a nil m) is empty.
//   - ErrAllocation / ErrCopy joined with the allocator cause.
//
// Complexity:
//   - Time O(r*c); Space O(1) for equal shapes, O(r*c) otherwise.
//
// Notes:
//   - An empty receiver is treated as "different shape" and gets a buffer.
//   - Once the new buffer is installed Assign reports success; freeing the
//     old buffer cannot fail the assignment.
func (m *Matrix) Assign(other *Matrix) error {
	if m == other {
		return nil
	}
	if m == nil {
		return matrixErrorf(ctxAssign, ErrInvalidMatrix, nil)
	}
	src, err := other.checked(ctxAssign)
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(src)

	if dst := m.own; dst != nil {
		dr, dc := dst.buf.Dims()
		sr, sc := src.buf.Dims()
		if dr == sr && dc == sc {
			err = dst.alloc.Copy(dst.buf, src.buf)
			runtime.KeepAlive(dst)
			if err != nil {
				return matrixErrorf(ctxAssign, ErrCopy, err)
			}
			return nil
		}
	}

	a := m.allocator()
	h, err := duplicate(ctxAssign, a, src)
	if err != nil {
		return err
	}

	old := m.own
	m.own = adopt(a, h)
	if old != nil {
		// the new contents are installed; a failed free only affects the
		// old allocator's accounting and is not reported to the caller
		_ = old.release()
	}

	return nil
}

// Swap exchanges the buffers of m and other.
// It never allocates, copies element data, or fails.
func (m *Matrix) Swap(other *Matrix) {
	if m == nil || other == nil || m == other {
		return
	}
	m.own, other.own = other.own, m.own
}
