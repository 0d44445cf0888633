// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gpu implements the compute-device abstraction used to
// accelerate the conjugate-gradient solve, with an OpenCL backend
// behind the build tag 'opencl' and a software device for tests
package gpu

import (
	"sync"

	"github.com/cpmech/gosl/io"
)

// ForceOff disables device probing process-wide. Tests set this to
// exercise the CPU fallback deterministically on machines that do have
// a device.
var ForceOff bool

// Device is one compute device able to run the conjugate-gradient
// solve on a CSR system. Implementations must be safe for sequential
// reuse; Free releases the device resources.
type Device interface {

	// Name returns the device name for log messages
	Name() string

	// CG solves A·x = b in place, with A given by the CSR arrays
	// ap (row pointers), aj (column indices) and ax (values). x holds
	// the initial guess on entry and the solution on exit. Returns the
	// number of iterations and the final residual norm.
	CG(ap, aj []int32, ax, b, x []float64, tol float64, maxIt int) (it int, resid float64, err error)

	// Free releases the device resources
	Free()
}

// Context owns at most one compute device. A nil or empty context means
// the caller runs on the CPU. Construct once and share; per-solve
// buffers live inside Device.CG calls only.
type Context struct {
	dev Device
}

// New returns a new context, probing for a device only when pref is
// true. Probe failures are warnings: the context comes back empty and
// callers fall back to the CPU path.
func New(pref bool) (ctx *Context) {
	ctx = new(Context)
	if !pref || ForceOff {
		return
	}
	dev, err := probe()
	if err != nil {
		io.Pfyel("gpu: no compute device available: %v\n", err)
		return
	}
	ctx.dev = dev
	return
}

// NewSim returns a context driving the software device. It behaves like
// a real device without requiring an OpenCL runtime; used by tests and
// for CPU/GPU agreement checks.
func NewSim() *Context {
	return &Context{dev: new(SimDevice)}
}

// Available tells whether this context holds a usable device
func (o *Context) Available() bool {
	return o != nil && o.dev != nil
}

// Dev returns the device; nil when unavailable
func (o *Context) Dev() Device {
	if o == nil {
		return nil
	}
	return o.dev
}

// Close releases the device. The context stays valid and reports
// unavailable afterwards.
func (o *Context) Close() {
	if o == nil {
		return
	}
	if o.dev != nil {
		o.dev.Free()
		o.dev = nil
	}
}

// process-wide default context
var (
	defOnce sync.Once
	defCtx  *Context
)

// Default returns the process-wide context, probing on first use.
// Concurrent first calls are guarded so initialisation happens exactly
// once; the caller must not Close the default context.
func Default() *Context {
	defOnce.Do(func() {
		defCtx = New(true)
	})
	return defCtx
}
