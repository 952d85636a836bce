// SPDX-License-Identifier: MIT

// Package buffer: functional configuration for the Gonum allocator.
//
// Defaults:
//   - memory limit: physical memory reported by the host (unlimited when unknown).
//   - logger: the logrus standard logger.
package buffer

import (
	"math"

	"github.com/pbnjay/memory"
	log "github.com/sirupsen/logrus"
)

// Unlimited disables the memory ceiling when passed to WithMemoryLimit.
const Unlimited uint64 = math.MaxUint64

// Option configures a Gonum allocator.
type Option func(*options)

type options struct {
	limit  uint64
	logger log.FieldLogger
}

// defaultOptions returns the configuration used when no Option is supplied.
func defaultOptions() options {
	return options{
		limit:  HostMemory(),
		logger: log.StandardLogger(),
	}
}

// gatherOptions applies opts over the defaults in order.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithMemoryLimit caps the total bytes of live buffers.
// Zero selects the host default; Unlimited removes the cap.
func WithMemoryLimit(bytes uint64) Option {
	return func(o *options) {
		if bytes == 0 {
			o.limit = HostMemory()
			return
		}
		o.limit = bytes
	}
}

// WithLogger routes lifecycle logs to l. A nil logger keeps the default.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// HostMemory returns the physical memory of the host in bytes,
// or Unlimited when the platform does not report it.
func HostMemory() uint64 {
	if total := memory.TotalMemory(); total > 0 {
		return total
	}
	return Unlimited
}
