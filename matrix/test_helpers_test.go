// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Give each test its own quiet allocator so Stats() assertions are exact.
//   • Provide a fault-injecting allocator to exercise the failure paths of
//     construction and assignment.

package matrix_test

import (
	"io"
	"testing"

	"github.com/katalvlaran/libmatrix/buffer"
	"github.com/katalvlaran/libmatrix/matrix"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// newAllocator returns a private gonum allocator that logs nowhere.
func newAllocator(opts ...buffer.Option) *buffer.Gonum {
	l := log.New()
	l.SetOutput(io.Discard)

	return buffer.NewGonum(append([]buffer.Option{buffer.WithLogger(l)}, opts...)...)
}

// mustNew allocates an r×c matrix from a or fails the test.
func mustNew(tb testing.TB, a buffer.Allocator, r, c int) *matrix.Matrix {
	tb.Helper()
	m, err := matrix.New(r, c, matrix.WithAllocator(a))
	require.NoError(tb, err)

	return m
}

// fill writes base+i*cols+j into every cell so cells are pairwise distinct.
func fill(tb testing.TB, m *matrix.Matrix, base float64) {
	tb.Helper()
	r, c, err := m.Shape()
	require.NoError(tb, err)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(tb, m.Set(i, j, base+float64(i*c+j)))
		}
	}
}

// requireCells asserts that m has shape r×c and holds want in row-major order.
func requireCells(tb testing.TB, m *matrix.Matrix, r, c int, want []float64) {
	tb.Helper()
	gr, gc, err := m.Shape()
	require.NoError(tb, err)
	require.Equal(tb, r, gr)
	require.Equal(tb, c, gc)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			require.NoError(tb, err)
			require.Equal(tb, want[i*c+j], v, "cell (%d,%d)", i, j)
		}
	}
}

// snapshot reads every cell of m in row-major order.
func snapshot(tb testing.TB, m *matrix.Matrix) []float64 {
	tb.Helper()
	r, c, err := m.Shape()
	require.NoError(tb, err)
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			require.NoError(tb, err)
			out = append(out, v)
		}
	}

	return out
}

// faulty wraps a gonum allocator and fails Alloc, Copy or Free on demand.
type faulty struct {
	*buffer.Gonum
	failAlloc bool
	failCopy  bool
	failFree  bool
}

func (f *faulty) Free(h *buffer.Handle) error {
	if f.failFree {
		return buffer.ErrReleased
	}
	return f.Gonum.Free(h)
}

func (f *faulty) Alloc(rows, cols int) (*buffer.Handle, error) {
	if f.failAlloc {
		return nil, buffer.ErrOutOfMemory
	}
	return f.Gonum.Alloc(rows, cols)
}

func (f *faulty) Copy(dst, src *buffer.Handle) error {
	if f.failCopy {
		return buffer.ErrShapeMismatch
	}
	return f.Gonum.Copy(dst, src)
}
