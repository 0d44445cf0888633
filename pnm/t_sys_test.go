// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pnm

import (
	"testing"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"
	"github.com/mattemangia/GeoscientistToolkit-sub013/mconduct"
	"github.com/mattemangia/GeoscientistToolkit-sub013/mstress"
	"github.com/mattemangia/GeoscientistToolkit-sub013/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// gapNet builds a network with id gaps (1, 3, 4 unused), one conducting
// throat between ids 0 and 2, and the isolated pore id 5
func gapNet(tst *testing.T) *inp.Network {
	net := &inp.Network{
		Name:      "gaps",
		VoxelSize: 1,
		Pores: []*inp.Pore{
			{Id: 0, X: 0, R: 20},
			{Id: 2, X: 100, R: 20},
			{Id: 5, X: 50, Y: 80, R: 20},
		},
		Throats: []*inp.Throat{
			{Id: 0, P1: 0, P2: 2, R: 5},
		},
	}
	if err := net.Derived(); err != nil {
		tst.Errorf("Derived failed: %v\n", err)
		return nil
	}
	return net
}

func Test_sys01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sys01. id gaps and isolated pores")

	net := gapNet(tst)
	if net == nil {
		return
	}
	geo := mstress.Adjust(nil, []float64{20, 20, 20}, []float64{5}, 0)
	bnd := &Boundaries{In: []int{0}, Out: []int{1}, Lvox: 100, L: 100, A: 80}
	mdl, err := mconduct.New(mconduct.Darcy)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	if err = mdl.Init(nil); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	sys, err := buildSystem(net, geo, bnd, mdl, 0.001)
	if err != nil {
		tst.Errorf("buildSystem failed: %v\n", err)
		return
	}

	// a single conducting throat normalizes to ĝ = 1
	io.Pforan("G = %v  Gmean = %v\n", sys.G, sys.Gmean)
	chk.Float64(tst, "ĝ", 1e-15, sys.G[0]/sys.Gmean, 1.0)

	// six rows: two pinned, four identity (gaps 1, 3, 4 and isolated 5)
	if sys.K.N != 6 {
		tst.Errorf("system must span max-id+1 = 6 rows (%d)\n", sys.K.N)
		return
	}
	chk.Array(tst, "b", 1e-15, sys.B, []float64{1, 0.5, 0, 0.5, 0.5, 0.5})
	chk.Array(tst, "x0", 1e-15, sys.X, []float64{1, 0.5, 0, 0.5, 0.5, 0.5})

	// every row keeps a positive diagonal
	dense := sys.K.Nnz()
	if dense != 6 {
		tst.Errorf("pinned and identity rows must leave 6 entries (%d)\n", dense)
		return
	}

	// the initial guess already solves this fully-pinned system
	st, err := sparse.SolveCG(sys.K, sys.B, sys.X, 1e-10, 100, 1)
	if err != nil {
		tst.Errorf("SolveCG failed: %v\n", err)
		return
	}
	if st.It != 0 || !st.Converged {
		tst.Errorf("fully pinned system must converge without iterating (it=%d)\n", st.It)
		return
	}
}

func Test_sys02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sys02. mean-conductance normalization")

	// two throats with radii 10 and 5: conductances scale with r⁴, so
	// ĝ must come out as 2·g/(g+g/16) and 2·(g/16)/(g+g/16)
	net := inp.GenTubeNet(3, 50, 25, 10)
	net.Throats[1].R = 5
	geo := mstress.Adjust(nil, []float64{25, 25, 25}, []float64{10, 5}, 0)
	bnd, err := FindBoundaries(net, 0, true)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	mdl, err := mconduct.New(mconduct.Darcy)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	if err = mdl.Init(nil); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	sys, err := buildSystem(net, geo, bnd, mdl, 0.001)
	if err != nil {
		tst.Errorf("buildSystem failed: %v\n", err)
		return
	}
	chk.Float64(tst, "g1/g0", 1e-15, sys.G[1]/sys.G[0], 1.0/16.0)
	chk.Float64(tst, "ĝ0", 1e-14, sys.G[0]/sys.Gmean, 32.0/17.0)
	chk.Float64(tst, "ĝ1", 1e-14, sys.G[1]/sys.Gmean, 2.0/17.0)

	// interior row of the middle pore: diagonal balances the off-diagonals
	d := sys.K.N
	if d != 3 {
		tst.Errorf("system must have 3 rows (%d)\n", d)
		return
	}
	row1 := []float64{-32.0 / 17.0, 32.0/17.0 + 2.0/17.0, -2.0 / 17.0}
	got := make([]float64, 3)
	for k := sys.K.Ap[1]; k < sys.K.Ap[2]; k++ {
		got[sys.K.Aj[k]] = sys.K.Ax[k]
	}
	chk.Array(tst, "row 1", 1e-14, got, row1)
}

func Test_sys03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sys03. degenerate systems fail cleanly")

	// all throats closed on input
	net := inp.GenTubeNet(4, 50, 25, 10)
	geo := mstress.Adjust(nil, []float64{25, 25, 25, 25}, []float64{0, -1, 0}, 0)
	bnd, err := FindBoundaries(net, 0, true)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	mdl, err := mconduct.New(mconduct.Darcy)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	if err = mdl.Init(nil); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	if _, err = buildSystem(net, geo, bnd, mdl, 0.001); err == nil {
		tst.Errorf("all-closed network must fail to build\n")
		return
	}
	io.Pf("error message: %v\n", err)
}
