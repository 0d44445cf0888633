// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_net01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("net01. straight tube network from file")

	net, err := ReadNet("data", "tube5.net")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("name = %v\n", net.Name)
	io.Pfcyan("lims = [%g, %g] [voxel]\n", net.Xmin[0], net.Xmax[0])

	if len(net.Pores) != 5 {
		tst.Errorf("wrong number of pores: %d\n", len(net.Pores))
		return
	}
	if len(net.Throats) != 4 {
		tst.Errorf("wrong number of throats: %d\n", len(net.Throats))
		return
	}
	chk.Float64(tst, "xmin", 1e-17, net.Xmin[0], 0)
	chk.Float64(tst, "xmax", 1e-17, net.Xmax[0], 200)
	chk.Float64(tst, "ymin", 1e-17, net.Xmin[1], 0)
	chk.Float64(tst, "ymax", 1e-17, net.Xmax[1], 0)
	if net.MaxId != 4 {
		tst.Errorf("wrong max id: %d\n", net.MaxId)
		return
	}

	chk.Ints(tst, "adj(pore 0)", net.Adj[0], []int{0})
	chk.Ints(tst, "adj(pore 1)", net.Adj[1], []int{0, 1})
	chk.Ints(tst, "adj(pore 4)", net.Adj[4], []int{3})
	chk.Float64(tst, "dist(0,1)", 1e-15, net.Dist(0, 1), 50)
	chk.Float64(tst, "dist(0,4)", 1e-15, net.Dist(0, 4), 200)

	if net.Other(0, 0) != 1 {
		tst.Errorf("wrong neighbour across throat 0\n")
		return
	}

	stats := net.Stats()
	io.Pf("%v", stats)
	chk.Float64(tst, "rpmean", 1e-15, stats.RpMean, 25)
	chk.Float64(tst, "rtmean", 1e-15, stats.RtMean, 10)
	chk.Float64(tst, "coordination", 1e-15, stats.CoordMean, 1.6)
}

func Test_net02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("net02. generated grid network")

	net := GenGridNet(4, 3, 2, 10, 2, 6, 1234)
	io.Pforan("np = %v  nt = %v\n", len(net.Pores), len(net.Throats))

	if len(net.Pores) != 24 {
		tst.Errorf("wrong number of pores: %d\n", len(net.Pores))
		return
	}
	// 3·3·2 + 4·2·2 + 4·3·1 links
	if len(net.Throats) != 46 {
		tst.Errorf("wrong number of throats: %d\n", len(net.Throats))
		return
	}
	chk.Float64(tst, "xmax", 1e-17, net.Xmax[0], 30)
	chk.Float64(tst, "ymax", 1e-17, net.Xmax[1], 20)
	chk.Float64(tst, "zmax", 1e-17, net.Xmax[2], 10)

	stats := net.Stats()
	io.Pf("%v", stats)
	if stats.RpMin < 2 || stats.RpMax > 6 {
		tst.Errorf("pore radii out of range: %g, %g\n", stats.RpMin, stats.RpMax)
		return
	}
	if stats.RtMax >= stats.RpMin {
		tst.Errorf("throats must be narrower than pores: %g ≥ %g\n", stats.RtMax, stats.RpMin)
		return
	}

	if net.CheckGeometry() != 0 {
		tst.Errorf("grid network must have no geometry warnings\n")
		return
	}
}

func Test_net03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("net03. validation and geometry warnings")

	// unknown pore reference
	bad := &Network{
		VoxelSize: 1,
		Pores:     []*Pore{{Id: 0, R: 1}, {Id: 1, X: 10, R: 1}},
		Throats:   []*Throat{{Id: 0, P1: 0, P2: 7, R: 1}},
	}
	err := bad.Derived()
	if err == nil {
		tst.Errorf("error expected for unknown pore reference\n")
		return
	}
	io.Pf("ok, error = %v\n", err)

	// duplicate pore ids
	bad = &Network{
		VoxelSize: 1,
		Pores:     []*Pore{{Id: 3, R: 1}, {Id: 3, X: 10, R: 1}},
	}
	err = bad.Derived()
	if err == nil {
		tst.Errorf("error expected for duplicate pore id\n")
		return
	}
	io.Pf("ok, error = %v\n", err)

	// coincident pores and a self-loop throat
	ugly := &Network{
		VoxelSize: 1,
		Pores: []*Pore{
			{Id: 0, R: 1},
			{Id: 1, X: 10, R: 1},
			{Id: 2, X: 10, Y: 1e-6, R: 1},
		},
		Throats: []*Throat{
			{Id: 0, P1: 0, P2: 1, R: 1},
			{Id: 1, P1: 1, P2: 1, R: 1},
		},
	}
	err = ugly.Derived()
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	nwarn := ugly.CheckGeometry()
	io.Pforan("nwarn = %v\n", nwarn)
	if nwarn != 2 {
		tst.Errorf("2 geometry warnings expected; got %d\n", nwarn)
		return
	}

	// out-of-range voxel size is clamped
	ugly.VoxelSize = -3
	err = ugly.Derived()
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "voxelsize", 1e-17, ugly.VoxelSize, VoxelSizeDefault)
}

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01. materials database")

	mdb1, err := ReadMat("data", "fluids.mat")
	if err != nil {
		tst.Errorf("cannot read fluids.mat:\n%v", err)
		return
	}
	io.Pforan("fluids.mat just read:\n%v\n", mdb1)

	water := mdb1.Get("water")
	if water == nil {
		tst.Errorf("cannot find water material\n")
		return
	}
	chk.Float64(tst, "visc(water)", 1e-17, water.Visc(), 0.001)
	chk.Float64(tst, "visc(brine)", 1e-17, mdb1.Fluids["brine"].Visc(), 0.0012)

	confin := mdb1.Get("confining")
	if confin == nil || confin.Stress == nil {
		tst.Errorf("stress model must be allocated\n")
		return
	}

	// write and read back
	fn := "test_fluids.mat"
	io.WriteFileSD("/tmp/goperm/inp", fn, mdb1.String())
	mdb2, err := ReadMat("/tmp/goperm/inp", fn)
	if err != nil {
		tst.Errorf("cannot read test_fluids.mat:\n%v", err)
		return
	}
	chk.Float64(tst, "visc(water) after round trip", 1e-17, mdb2.Get("water").Visc(), 0.001)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. simulation deck")

	sim := ReadSim("data/tube.sim", true)
	if sim == nil {
		tst.Errorf("test failed\n")
		return
	}
	io.Pfyel("fnkey   = %v\n", sim.FnKey)
	io.Pfyel("engines = %v\n", sim.Flow.Engines)
	io.Pfyel("dirout  = %v\n", sim.Data.DirOut)

	if sim.FnKey != "tube" {
		tst.Errorf("wrong file key: %q\n", sim.FnKey)
		return
	}
	if len(sim.Flow.Engines) != 3 {
		tst.Errorf("wrong number of engines: %d\n", len(sim.Flow.Engines))
		return
	}
	if sim.AxisIndex() != 0 {
		tst.Errorf("wrong axis index: %d\n", sim.AxisIndex())
		return
	}
	chk.Float64(tst, "tol", 1e-17, sim.Solver.Tol, 1e-6)
	if sim.Solver.MaxIt != 5000 {
		tst.Errorf("wrong iteration cap: %d\n", sim.Solver.MaxIt)
		return
	}
	chk.Float64(tst, "pin", 1e-17, sim.Flow.Pin, 202650)

	net, err := sim.ReadNetFile()
	if err != nil {
		tst.Errorf("cannot read network:\n%v", err)
		return
	}
	if len(net.Pores) != 5 {
		tst.Errorf("wrong number of pores: %d\n", len(net.Pores))
		return
	}
	mdb, err := sim.ReadMatFile()
	if err != nil {
		tst.Errorf("cannot read materials:\n%v", err)
		return
	}
	chk.Float64(tst, "visc", 1e-17, mdb.Get(sim.Flow.Fluid).Visc(), 0.001)
}
