// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// SimDevice is a software implementation of Device. It runs the same
// kernel sequence as the OpenCL backend (spmv, axpy, xpay, dot) on the
// host, so the orchestration and fallback logic can be tested on
// machines without a device.
type SimDevice struct{}

// Name returns the device name
func (o *SimDevice) Name() string {
	return "simulated device"
}

// Free releases resources; nothing to do for the software device
func (o *SimDevice) Free() {}

// CG solves A·x = b with the conjugate-gradient method, mirroring the
// device kernels step by step
func (o *SimDevice) CG(ap, aj []int32, ax, b, x []float64, tol float64, maxIt int) (it int, resid float64, err error) {

	// check buffers
	n := len(b)
	if n < 1 {
		return 0, 0, chk.Err("system is empty")
	}
	if len(x) != n || len(ap) != n+1 {
		return 0, 0, chk.Err("buffer sizes are inconsistent: len(ap)=%d len(b)=%d len(x)=%d", len(ap), len(b), len(x))
	}
	if int(ap[n]) != len(aj) || len(aj) != len(ax) {
		return 0, 0, chk.Err("CSR arrays are inconsistent: ap[n]=%d len(aj)=%d len(ax)=%d", ap[n], len(aj), len(ax))
	}
	if tol <= 0 || maxIt < 1 {
		return 0, 0, chk.Err("tol and maxIt must be positive: tol=%g maxIt=%d", tol, maxIt)
	}

	// work vectors
	r := make([]float64, n)
	p := make([]float64, n)
	kp := make([]float64, n)

	// r = b - A·x and p = r
	spmv(kp, ap, aj, ax, x)
	copy(r, b)
	axpy(r, kp, -1.0)
	copy(p, r)

	// check convergence at the initial guess
	rr := dot(r, r)
	resid = math.Sqrt(rr)
	if resid < tol {
		return
	}

	// iterate
	for it = 1; it <= maxIt; it++ {

		// kp = A·p and step length
		spmv(kp, ap, aj, ax, p)
		pkp := dot(p, kp)
		if pkp <= 1e-30*dot(p, p) {
			return it, resid, chk.Err("conjugate-gradient breakdown: pᵀ·A·p = %g at iteration %d", pkp, it)
		}
		α := rr / pkp

		// update solution and residual
		axpy(x, p, α)
		if it%50 == 0 {
			spmv(kp, ap, aj, ax, x)
			copy(r, b)
			axpy(r, kp, -1.0)
		} else {
			axpy(r, kp, -α)
		}

		// convergence
		rrNew := dot(r, r)
		resid = math.Sqrt(rrNew)
		if resid < tol {
			return
		}

		// next direction
		xpay(p, r, rrNew/rr)
		rr = rrNew
	}
	it = maxIt
	return it, resid, chk.Err("conjugate-gradient did not converge after %d iterations: residual = %g", maxIt, resid)
}

// spmv computes y = A·x for a CSR matrix
func spmv(y []float64, ap, aj []int32, ax, x []float64) {
	for i := 0; i < len(y); i++ {
		sum := 0.0
		for k := ap[i]; k < ap[i+1]; k++ {
			sum += ax[k] * x[aj[k]]
		}
		y[i] = sum
	}
}

// axpy computes y += a·x
func axpy(y, x []float64, a float64) {
	for i := 0; i < len(y); i++ {
		y[i] += a * x[i]
	}
}

// xpay computes y = x + a·y
func xpay(y, x []float64, a float64) {
	for i := 0; i < len(y); i++ {
		y[i] = x[i] + a*y[i]
	}
}

// dot computes the inner product of u and v
func dot(u, v []float64) (res float64) {
	for i := 0; i < len(u); i++ {
		res += u[i] * v[i]
	}
	return
}
