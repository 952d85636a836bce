// SPDX-License-Identifier: MIT

// Package buffer - gonum-backed allocator.
//
// Purpose:
//   - Own the accounting of live buffers (count and bytes) under one mutex.
//   - Translate gonum's panicking accessors into returned sentinel errors by
//     validating shape and indices before delegating.
//
// Complexity quicksheet:
//   - Alloc/Calloc: O(r*c) zero-fill by the runtime; Free: O(1);
//     Get/Set/Ptr: O(1); Copy: O(r*c).
package buffer

import (
	"math"
	"sync"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const (
	opAlloc  = "Alloc"
	opCalloc = "Calloc"
	opGet    = "Get"
	opSet    = "Set"
	opPtr    = "Ptr"

	elemSize = 8 // bytes per float64
)

// Allocator is the primitive set a matrix wrapper needs from its storage.
type Allocator interface {
	// Alloc returns a rows×cols buffer whose contents are unspecified.
	Alloc(rows, cols int) (*Handle, error)
	// Calloc returns a rows×cols buffer filled with zeros.
	Calloc(rows, cols int) (*Handle, error)
	// Free releases h. Freeing a handle twice returns ErrReleased; freeing
	// a handle produced by another allocator returns ErrForeignHandle.
	Free(h *Handle) error
	// Get reads the element at (r, c).
	Get(h *Handle, r, c int) (float64, error)
	// Set writes v at (r, c).
	Set(h *Handle, r, c int, v float64) error
	// Ptr returns the address of the element at (r, c). The pointer is valid
	// until h is freed.
	Ptr(h *Handle, r, c int) (*float64, error)
	// Copy copies every element of src into dst. Shapes must match.
	Copy(dst, src *Handle) error
}

// Stats is a snapshot of allocator accounting.
type Stats struct {
	Limit     uint64 // configured ceiling in bytes
	Live      int    // buffers allocated and not yet freed
	LiveBytes uint64 // bytes held by live buffers
	Allocs    uint64 // total successful allocations
	Frees     uint64 // total successful frees
}

// Gonum allocates buffers as gonum *mat.Dense values.
type Gonum struct {
	mu     sync.Mutex
	limit  uint64
	logger log.FieldLogger

	seq       uint64
	live      int
	liveBytes uint64
	allocs    uint64
	frees     uint64
}

// Compile-time assertion.
var _ Allocator = (*Gonum)(nil)

var (
	defaultOnce  sync.Once
	defaultAlloc *Gonum
)

// NewGonum returns an allocator configured by opts.
func NewGonum(opts ...Option) *Gonum {
	o := gatherOptions(opts...)
	return &Gonum{limit: o.limit, logger: o.logger}
}

// Default returns the process-wide allocator used when none is configured.
func Default() *Gonum {
	defaultOnce.Do(func() {
		defaultAlloc = NewGonum()
	})
	return defaultAlloc
}

// Alloc implements Allocator. Go always hands out zeroed memory, so the
// contents are in practice zero; callers must not rely on that.
func (g *Gonum) Alloc(rows, cols int) (*Handle, error) {
	return g.allocate(opAlloc, rows, cols)
}

// Calloc implements Allocator.
func (g *Gonum) Calloc(rows, cols int) (*Handle, error) {
	return g.allocate(opCalloc, rows, cols)
}

// allocate validates the request, reserves its bytes and builds the handle.
// Stage 1: shape and overflow checks.
// Stage 2: reserve bytes against the limit under the lock.
// Stage 3: allocate outside the lock so large zero-fills do not serialize.
func (g *Gonum) allocate(op string, rows, cols int) (*Handle, error) {
	if rows <= 0 || cols <= 0 {
		return nil, allocErrorf(op, rows, cols, ErrBadShape)
	}
	if cols > math.MaxInt/rows || rows*cols > math.MaxInt/elemSize {
		return nil, allocErrorf(op, rows, cols, ErrTooLarge)
	}
	size := uint64(rows*cols) * elemSize

	g.mu.Lock()
	if size > g.limit || g.liveBytes > g.limit-size {
		live := g.liveBytes
		g.mu.Unlock()
		g.logger.WithFields(log.Fields{
			"op":    op,
			"rows":  rows,
			"cols":  cols,
			"bytes": size,
			"live":  live,
			"limit": g.limit,
		}).Warn("allocation refused")
		return nil, allocErrorf(op, rows, cols, ErrOutOfMemory)
	}
	g.liveBytes += size
	g.live++
	g.allocs++
	g.seq++
	id := g.seq
	g.mu.Unlock()

	h := &Handle{
		owner: g,
		id:    id,
		dense: mat.NewDense(rows, cols, nil),
		bytes: size,
	}
	g.logger.WithFields(log.Fields{
		"op":     op,
		"buffer": h.String(),
		"bytes":  size,
	}).Debug("buffer allocated")

	return h, nil
}

// Free implements Allocator.
// Only handles produced by g are accepted; others return ErrForeignHandle
// and leave both allocators' accounting untouched.
func (g *Gonum) Free(h *Handle) error {
	if _, err := h.live(); err != nil {
		return err
	}
	if h.owner != g {
		return ErrForeignHandle
	}
	desc := h.String()
	h.released = true
	h.dense = nil

	g.mu.Lock()
	g.liveBytes -= h.bytes
	g.live--
	g.frees++
	g.mu.Unlock()

	g.logger.WithFields(log.Fields{
		"buffer": desc,
		"bytes":  h.bytes,
	}).Debug("buffer freed")

	return nil
}

// offset validates (r, c) against h and returns the backing slice offset.
func offset(op string, h *Handle, r, c int) (*mat.Dense, int, error) {
	d, err := h.live()
	if err != nil {
		return nil, 0, indexErrorf(op, r, c, err)
	}
	raw := d.RawMatrix()
	if r < 0 || r >= raw.Rows || c < 0 || c >= raw.Cols {
		return nil, 0, indexErrorf(op, r, c, ErrOutOfRange)
	}
	return d, r*raw.Stride + c, nil
}

// Get implements Allocator.
func (g *Gonum) Get(h *Handle, r, c int) (float64, error) {
	d, _, err := offset(opGet, h, r, c)
	if err != nil {
		return 0, err
	}
	return d.At(r, c), nil
}

// Set implements Allocator.
func (g *Gonum) Set(h *Handle, r, c int, v float64) error {
	d, _, err := offset(opSet, h, r, c)
	if err != nil {
		return err
	}
	d.Set(r, c, v)

	return nil
}

// Ptr implements Allocator.
func (g *Gonum) Ptr(h *Handle, r, c int) (*float64, error) {
	d, off, err := offset(opPtr, h, r, c)
	if err != nil {
		return nil, err
	}
	return &d.RawMatrix().Data[off], nil
}

// Copy implements Allocator.
func (g *Gonum) Copy(dst, src *Handle) error {
	dd, err := dst.live()
	if err != nil {
		return err
	}
	sd, err := src.live()
	if err != nil {
		return err
	}
	dr, dc := dd.Dims()
	sr, sc := sd.Dims()
	if dr != sr || dc != sc {
		return ErrShapeMismatch
	}
	dd.Copy(sd)

	return nil
}

// Stats returns a snapshot of the allocator accounting.
func (g *Gonum) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Stats{
		Limit:     g.limit,
		Live:      g.live,
		LiveBytes: g.liveBytes,
		Allocs:    g.allocs,
		Frees:     g.frees,
	}
}
