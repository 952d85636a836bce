// SPDX-License-Identifier: MIT

// Package matrix: functional configuration.
//
// Defaults:
//   - allocator: buffer.Default(), the process-wide gonum allocator.
package matrix

import "github.com/katalvlaran/libmatrix/buffer"

// Option configures the allocator a Matrix draws its buffers from.
// Options apply at construction; the allocator then travels with the value.
type Option func(*options)

type options struct {
	alloc buffer.Allocator
}

// gatherOptions resolves opts over the defaults.
func gatherOptions(opts ...Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.alloc == nil {
		o.alloc = buffer.Default()
	}
	return o
}

// WithAllocator selects the allocator used for every buffer the Matrix owns.
// A nil allocator keeps the default.
func WithAllocator(a buffer.Allocator) Option {
	return func(o *options) { o.alloc = a }
}
