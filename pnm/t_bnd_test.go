// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pnm

import (
	"testing"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_bnd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bnd01. straight chain: extreme-pores fallback")

	// 5 pores along x at 0, 50, ..., 200; boundary layers hold too few
	// pores at any ladder tolerance
	net := inp.GenTubeNet(5, 50, 25, 10)
	bnd, err := FindBoundaries(net, 0, !chk.Verbose)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	io.Pforan("In = %v  Out = %v  tol = %v\n", bnd.In, bnd.Out, bnd.Tol)
	chk.Ints(tst, "In", bnd.In, []int{0})
	chk.Ints(tst, "Out", bnd.Out, []int{4})
	chk.Float64(tst, "Lvox", 1e-15, bnd.Lvox, 200)
	chk.Float64(tst, "L", 1e-15, bnd.L, 200)
	chk.Float64(tst, "A", 1e-15, bnd.A, 1)
}

func Test_bnd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bnd02. regular lattice: boundary planes")

	// 6×5×4 lattice with spacing 10: the first tolerance (5 voxels)
	// already captures one full plane per side
	net := inp.GenGridNet(6, 5, 4, 10, 4, 8, 17)
	bnd, err := FindBoundaries(net, 0, !chk.Verbose)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	io.Pforan("nin = %d  nout = %d  tol = %v\n", len(bnd.In), len(bnd.Out), bnd.Tol)
	if len(bnd.In) != 20 || len(bnd.Out) != 20 {
		tst.Errorf("wrong boundary plane sizes: %d, %d (must be 20, 20)\n", len(bnd.In), len(bnd.Out))
		return
	}
	chk.Float64(tst, "tol", 1e-15, bnd.Tol, 5)
	for _, i := range bnd.In {
		if net.Pores[i].X > 5 {
			tst.Errorf("pore %d (x=%v) cannot be an inlet\n", i, net.Pores[i].X)
			return
		}
	}
	for _, i := range bnd.Out {
		if net.Pores[i].X < 45 {
			tst.Errorf("pore %d (x=%v) cannot be an outlet\n", i, net.Pores[i].X)
			return
		}
	}
	chk.Float64(tst, "Lvox", 1e-15, bnd.Lvox, 50)
	chk.Float64(tst, "A", 1e-15, bnd.A, 40*30)

	// along y the planes hold 24 pores
	bnd, err = FindBoundaries(net, 1, !chk.Verbose)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	if len(bnd.In) != 24 || len(bnd.Out) != 24 {
		tst.Errorf("wrong boundary plane sizes: %d, %d (must be 24, 24)\n", len(bnd.In), len(bnd.Out))
		return
	}
}

func Test_bnd03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bnd03. degenerate geometries")

	// bad axis
	net := inp.GenTubeNet(3, 50, 25, 10)
	if _, err := FindBoundaries(net, 3, true); err == nil {
		tst.Errorf("axis 3 must fail\n")
		return
	}

	// a flat lattice has zero extent along z
	flat := inp.GenGridNet(4, 3, 1, 10, 4, 8, 17)
	_, err := FindBoundaries(flat, 2, true)
	if err == nil {
		tst.Errorf("zero extent along the flow axis must fail\n")
		return
	}
	io.Pf("error message: %v\n", err)
}

func Test_bnd04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bnd04. tortuosity")

	// a straight chain has no detours
	net := inp.GenTubeNet(5, 50, 25, 10)
	bnd, err := FindBoundaries(net, 0, true)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	τ := EstimateTortuosity(net, bnd)
	chk.Float64(tst, "τ (chain)", 1e-15, τ, 1.0)
	chk.Float64(tst, "cached", 1e-15, net.Tortuosity, 1.0)

	// a cached estimate wins over the computation
	net.Tortuosity = 2.5
	chk.Float64(tst, "τ (cached)", 1e-15, EstimateTortuosity(net, bnd), 2.5)

	// one detour pore off the axis: paths 130+130 over a length of 100
	detour := &inp.Network{
		Name:      "detour",
		VoxelSize: 1,
		Pores: []*inp.Pore{
			{Id: 0, X: 0, Y: 0, Z: 0, R: 10},
			{Id: 1, X: 50, Y: 120, Z: 0, R: 10},
			{Id: 2, X: 100, Y: 0, Z: 0, R: 10},
		},
		Throats: []*inp.Throat{
			{Id: 0, P1: 0, P2: 1, R: 5},
			{Id: 1, P1: 1, P2: 2, R: 5},
		},
	}
	if err = detour.Derived(); err != nil {
		tst.Errorf("Derived failed: %v\n", err)
		return
	}
	bnd, err = FindBoundaries(detour, 0, true)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	τ = EstimateTortuosity(detour, bnd)
	io.Pforan("τ (detour) = %v\n", τ)
	chk.Float64(tst, "τ (detour)", 1e-14, τ, 2.6)

	// disconnected inlet and outlet fall back to 1
	detour.Tortuosity = 0
	detour.Throats[0].R = 0
	detour.Throats[1].R = 0
	chk.Float64(tst, "τ (disconnected)", 1e-15, EstimateTortuosity(detour, bnd), 1.0)

	// extreme detours clamp at 10
	far := &inp.Network{
		Name:      "far",
		VoxelSize: 1,
		Pores: []*inp.Pore{
			{Id: 0, X: 0, Y: 0, Z: 0, R: 10},
			{Id: 1, X: 50, Y: 1000, Z: 0, R: 10},
			{Id: 2, X: 100, Y: 0, Z: 0, R: 10},
		},
		Throats: []*inp.Throat{
			{Id: 0, P1: 0, P2: 1, R: 5},
			{Id: 1, P1: 1, P2: 2, R: 5},
		},
	}
	if err = far.Derived(); err != nil {
		tst.Errorf("Derived failed: %v\n", err)
		return
	}
	bnd, err = FindBoundaries(far, 0, true)
	if err != nil {
		tst.Errorf("FindBoundaries failed: %v\n", err)
		return
	}
	chk.Float64(tst, "τ (clamped)", 1e-15, EstimateTortuosity(far, bnd), 10.0)
}
