// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"runtime"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
	_fmtEmpty    = "[]\n"
)

var _ fmt.Stringer = (*Matrix)(nil)

// Equal reports whether m and other have the same shape and elements.
// An empty Matrix is equal to nothing, itself included.
func (m *Matrix) Equal(other *Matrix) bool {
	if !m.Valid() || !other.Valid() {
		return false
	}
	ok := mat.Equal(m.own.buf.Matrix(), other.own.buf.Matrix())
	runtime.KeepAlive(m.own)
	runtime.KeepAlive(other.own)

	return ok
}

// EqualApprox is Equal with an absolute or relative tolerance eps per element.
func (m *Matrix) EqualApprox(other *Matrix, eps float64) bool {
	if !m.Valid() || !other.Valid() {
		return false
	}
	ok := mat.EqualApprox(m.own.buf.Matrix(), other.own.buf.Matrix(), eps)
	runtime.KeepAlive(m.own)
	runtime.KeepAlive(other.own)

	return ok
}

// String renders one "[a, b, c]\n" line per row; an empty Matrix renders "[]\n".
// Intended for logs and debugging, not hot paths.
func (m *Matrix) String() string {
	if !m.Valid() {
		return _fmtEmpty
	}
	d := m.own.buf.Matrix()
	r, c := d.Dims()

	var sb strings.Builder
	for i := 0; i < r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", d.At(i, j))
		}
		sb.WriteString(_fmtRowClose)
	}
	runtime.KeepAlive(m.own)

	return sb.String()
}
