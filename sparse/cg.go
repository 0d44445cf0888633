// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Stats holds the outcome of one conjugate-gradient solve
type Stats struct {
	It        int     // iterations taken
	Resid     float64 // final residual norm ‖b − A·x‖
	Converged bool    // residual fell below the tolerance
	Breakdown bool    // pᵀ·A·p vanished before convergence
}

// SolveCG solves K·x = b with the unpreconditioned conjugate-gradient
// method, starting from the initial guess in x and overwriting it with
// the solution. Iterations stop when the residual norm falls below tol
// or after maxIt iterations; nw bounds the goroutines used by the
// matrix-vector products. Non-convergence and breakdown are reported in
// the stats, not as errors: x then holds the last iterate. The true
// residual is recomputed every 50 iterations to flush accumulated
// round-off from the recurrence.
func SolveCG(K *CSR, b, x la.Vector, tol float64, maxIt, nw int) (st Stats, err error) {

	// check
	if K == nil {
		return st, chk.Err("matrix must not be nil")
	}
	n := K.N
	if len(b) != n || len(x) != n {
		return st, chk.Err("vector dimensions (%d, %d) do not match the %d×%d matrix", len(b), len(x), n, n)
	}
	if tol <= 0 || maxIt < 1 {
		return st, chk.Err("tolerance (%v) and iteration cap (%d) must be positive", tol, maxIt)
	}

	// r := b − K·x  and  p := r
	r := la.NewVector(n)
	p := la.NewVector(n)
	kp := la.NewVector(n)
	K.MatVec(r, x, nw)
	for i := 0; i < n; i++ {
		r[i] = b[i] - r[i]
		p[i] = r[i]
	}
	rr := la.VecDot(r, r)
	st.Resid = math.Sqrt(rr)
	if st.Resid < tol {
		st.Converged = true
		return
	}

	for st.It = 1; st.It <= maxIt; st.It++ {

		// α := rᵀr / pᵀKp
		K.MatVec(kp, p, nw)
		pkp := la.VecDot(p, kp)
		if pkp <= 1e-30*la.VecDot(p, p) {
			st.Breakdown = true
			st.Resid = math.Sqrt(rr)
			return
		}
		α := rr / pkp

		// x := x + α·p
		for i := 0; i < n; i++ {
			x[i] += α * p[i]
		}

		// residual: recurrence, with periodic true recompute
		if st.It%50 == 0 {
			K.MatVec(r, x, nw)
			for i := 0; i < n; i++ {
				r[i] = b[i] - r[i]
			}
		} else {
			for i := 0; i < n; i++ {
				r[i] -= α * kp[i]
			}
		}

		// convergence
		rrNew := la.VecDot(r, r)
		st.Resid = math.Sqrt(rrNew)
		if st.Resid < tol {
			st.Converged = true
			return
		}

		// p := r + β·p
		β := rrNew / rr
		rr = rrNew
		for i := 0; i < n; i++ {
			p[i] = r[i] + β*p[i]
		}
	}
	st.It = maxIt
	return
}
