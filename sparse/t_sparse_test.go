// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"
)

// stamp adds the conductance g between nodes i and j
func stamp(m *Matrix, i, j int, g float64) {
	m.Add(i, i, g)
	m.Add(j, j, g)
	m.Add(i, j, -g)
	m.Add(j, i, -g)
}

// toInts widens the CSR index arrays for the checks
func toInts(a []int32) (res []int) {
	res = make([]int, len(a))
	for i, v := range a {
		res[i] = int(v)
	}
	return
}

func Test_sparse01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sparse01. assembly operations")

	m := NewMatrix(3)
	stamp(m, 0, 1, 2.5)
	chk.Float64(tst, "m00", 1e-17, m.Get(0, 0), 2.5)
	chk.Float64(tst, "m01", 1e-17, m.Get(0, 1), -2.5)
	chk.Float64(tst, "m22", 1e-17, m.Get(2, 2), 0)
	if m.Nnz() != 4 {
		tst.Errorf("wrong number of entries: %d\n", m.Nnz())
		return
	}

	// additive stamping
	stamp(m, 0, 1, 0.5)
	chk.Float64(tst, "m00 after add", 1e-17, m.Get(0, 0), 3.0)
	if m.Nnz() != 4 {
		tst.Errorf("adding to existing entries must not grow the matrix: %d\n", m.Nnz())
		return
	}

	// boundary row: clear and pin
	m.ClearRow(0)
	if m.Nnz() != 3 {
		tst.Errorf("wrong number of entries after row clear: %d\n", m.Nnz())
		return
	}
	m.Set(0, 0, 1)
	chk.Float64(tst, "m00 pinned", 1e-17, m.Get(0, 0), 1)
	chk.Float64(tst, "m01 cleared", 1e-17, m.Get(0, 1), 0)
}

func Test_sparse02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sparse02. conversion to CSR and triplet")

	// chain 0-1-2 with unit conductances
	m := NewMatrix(3)
	stamp(m, 0, 1, 1)
	stamp(m, 1, 2, 1)

	c := m.ToCSR()
	io.Pforan("Ap = %v\n", c.Ap)
	io.Pforan("Aj = %v\n", c.Aj)
	io.Pforan("Ax = %v\n", c.Ax)
	chk.Ints(tst, "Ap", toInts(c.Ap), []int{0, 2, 5, 7})
	chk.Ints(tst, "Aj", toInts(c.Aj), []int{0, 1, 0, 1, 2, 1, 2})
	chk.Array(tst, "Ax", 1e-17, c.Ax, []float64{1, -1, -1, 2, -1, -1, 1})
	if c.Nnz() != 7 {
		tst.Errorf("wrong number of entries: %d\n", c.Nnz())
		return
	}

	// conversion is deterministic
	c2 := m.ToCSR()
	chk.Ints(tst, "Aj again", toInts(c2.Aj), toInts(c.Aj))
	chk.Array(tst, "Ax again", 1e-17, c2.Ax, c.Ax)

	// triplet/dense cross-check
	d := m.ToTriplet().ToDense()
	chk.Deep2(tst, "dense", 1e-17, d.GetDeep2(), [][]float64{
		{1, -1, 0},
		{-1, 2, -1},
		{0, -1, 1},
	})
}

func Test_sparse03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sparse03. serial, parallel and la matrix-vector products")

	// banded system above the goroutine fan-out threshold
	n := ParallelMin + 500
	rnd.Init(1234)
	m := NewMatrix(n)
	for i := 0; i < n-1; i++ {
		stamp(m, i, i+1, rnd.Float64(0.5, 2.0))
	}
	c := m.ToCSR()

	x := la.NewVector(n)
	for i := 0; i < n; i++ {
		x[i] = rnd.Float64(-1, 1)
	}

	// parallel product must be bit-identical to the serial one
	ySer := la.NewVector(n)
	yPar := la.NewVector(n)
	c.MatVecSerial(ySer, x)
	c.MatVec(yPar, x, 4)
	chk.Array(tst, "serial vs parallel", 1e-17, yPar, ySer)

	// cross-check against the la triplet kernel
	yTri := la.NewVector(n)
	la.SpTriMatVecMul(yTri, m.ToTriplet(), x)
	chk.Array(tst, "csr vs triplet", 1e-12, ySer, yTri)

	// small systems fall back to the serial path
	small := NewMatrix(4)
	stamp(small, 0, 1, 1)
	stamp(small, 2, 3, 3)
	cs := small.ToCSR()
	y1 := la.NewVector(4)
	y2 := la.NewVector(4)
	xs := la.Vector{1, 2, 3, 4}
	cs.MatVec(y1, xs, 8)
	cs.MatVecSerial(y2, xs)
	chk.Array(tst, "small", 1e-17, y1, y2)
	chk.Array(tst, "small values", 1e-15, y1, []float64{-1, 1, -3, 3})
}
