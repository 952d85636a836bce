// SPDX-License-Identifier: MIT

package buffer_test

import (
	"io"
	"math"
	"testing"

	"github.com/katalvlaran/libmatrix/buffer"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// quietLogger discards allocator logs so test output stays readable.
func quietLogger() log.FieldLogger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func newAllocator(opts ...buffer.Option) *buffer.Gonum {
	return buffer.NewGonum(append([]buffer.Option{buffer.WithLogger(quietLogger())}, opts...)...)
}

func TestCallocZeroFilled(t *testing.T) {
	g := newAllocator()
	h, err := g.Calloc(3, 4)
	require.NoError(t, err)

	r, c := h.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 4, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := g.Get(h, i, j)
			require.NoError(t, err)
			require.Equal(t, 0.0, v)
		}
	}
}

func TestAllocRejectsBadShapes(t *testing.T) {
	g := newAllocator()

	for _, tc := range []struct {
		name       string
		rows, cols int
		want       error
	}{
		{"zero", 0, 0, buffer.ErrBadShape},
		{"zero rows", 0, 3, buffer.ErrBadShape},
		{"negative cols", 2, -1, buffer.ErrBadShape},
		{"overflow", math.MaxInt, 2, buffer.ErrTooLarge},
		{"overflow bytes", math.MaxInt / 4, 1, buffer.ErrTooLarge},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Alloc(tc.rows, tc.cols)
			require.ErrorIs(t, err, tc.want)
			_, err = g.Calloc(tc.rows, tc.cols)
			require.ErrorIs(t, err, tc.want)
		})
	}
	require.Zero(t, g.Stats().Live)
}

func TestMemoryLimit(t *testing.T) {
	g := newAllocator(buffer.WithMemoryLimit(10 * 8))

	h, err := g.Calloc(2, 5) // exactly the limit
	require.NoError(t, err)

	_, err = g.Calloc(1, 1)
	require.ErrorIs(t, err, buffer.ErrOutOfMemory)

	require.NoError(t, g.Free(h))
	_, err = g.Calloc(1, 1)
	require.NoError(t, err)
}

func TestFreeAccounting(t *testing.T) {
	g := newAllocator()
	a, err := g.Calloc(2, 2)
	require.NoError(t, err)
	b, err := g.Alloc(3, 1)
	require.NoError(t, err)

	st := g.Stats()
	require.Equal(t, 2, st.Live)
	require.Equal(t, uint64(7*8), st.LiveBytes)
	require.Equal(t, uint64(2), st.Allocs)

	require.NoError(t, g.Free(a))
	require.True(t, a.Released())
	require.ErrorIs(t, g.Free(a), buffer.ErrReleased)
	require.NoError(t, g.Free(b))

	st = g.Stats()
	require.Zero(t, st.Live)
	require.Zero(t, st.LiveBytes)
	require.Equal(t, uint64(2), st.Frees)
}

// TestFreeForeignHandle ensures a handle can only be freed by the allocator
// that produced it, and that a refused Free leaves accounting intact.
func TestFreeForeignHandle(t *testing.T) {
	a := newAllocator()
	b := newAllocator(buffer.WithMemoryLimit(1 << 20))

	h, err := a.Calloc(4, 4)
	require.NoError(t, err)

	require.ErrorIs(t, b.Free(h), buffer.ErrForeignHandle)
	require.False(t, h.Released())

	st := b.Stats()
	require.Zero(t, st.Live)
	require.Zero(t, st.LiveBytes)
	require.Zero(t, st.Frees)
	_, err = b.Calloc(1, 1)
	require.NoError(t, err)

	// foreign handles remain readable and usable as Copy sources
	require.NoError(t, a.Set(h, 3, 3, 2))
	v, err := b.Get(h, 3, 3)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
	dst, err := b.Alloc(4, 4)
	require.NoError(t, err)
	require.NoError(t, b.Copy(dst, h))

	require.NoError(t, a.Free(h))
	require.Zero(t, a.Stats().LiveBytes)
	require.Equal(t, 2, b.Stats().Live)
}

func TestElementAccess(t *testing.T) {
	g := newAllocator()
	h, err := g.Calloc(2, 3)
	require.NoError(t, err)

	require.NoError(t, g.Set(h, 1, 2, 9.5))
	v, err := g.Get(h, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 9.5, v)

	p, err := g.Ptr(h, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 9.5, *p)
	*p = -1
	v, _ = g.Get(h, 1, 2)
	require.Equal(t, -1.0, v)
	require.Equal(t, -1.0, h.Matrix().At(1, 2))
}

func TestElementAccessOutOfRange(t *testing.T) {
	g := newAllocator()
	h, err := g.Calloc(2, 2)
	require.NoError(t, err)

	_, err = g.Get(h, 2, 0)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)
	err = g.Set(h, 0, -1, 1)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)
	_, err = g.Ptr(h, -1, 0)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)
}

func TestAccessReleasedOrNil(t *testing.T) {
	g := newAllocator()
	h, err := g.Calloc(1, 1)
	require.NoError(t, err)
	require.NoError(t, g.Free(h))

	_, err = g.Get(h, 0, 0)
	require.ErrorIs(t, err, buffer.ErrReleased)
	_, err = g.Get(nil, 0, 0)
	require.ErrorIs(t, err, buffer.ErrNilHandle)
	require.ErrorIs(t, g.Free(nil), buffer.ErrNilHandle)
	require.Nil(t, h.Matrix())
}

func TestCopy(t *testing.T) {
	g := newAllocator()
	src, _ := g.Calloc(2, 2)
	dst, _ := g.Alloc(2, 2)
	other, _ := g.Alloc(2, 3)

	require.NoError(t, g.Set(src, 0, 1, 4))
	require.NoError(t, g.Set(src, 1, 0, 7))
	require.NoError(t, g.Copy(dst, src))

	v, _ := g.Get(dst, 0, 1)
	require.Equal(t, 4.0, v)
	v, _ = g.Get(dst, 1, 0)
	require.Equal(t, 7.0, v)

	require.ErrorIs(t, g.Copy(other, src), buffer.ErrShapeMismatch)
	require.ErrorIs(t, g.Copy(nil, src), buffer.ErrNilHandle)
}

func TestDefaultIsShared(t *testing.T) {
	require.Same(t, buffer.Default(), buffer.Default())
	require.NotZero(t, buffer.HostMemory())
}
