// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// TubeFlow computes the exact flow and permeability of a straight chain
// of n pores connected by n-1 identical cylindrical throats between two
// pressure reservoirs:
//
//	 in ▷ o───o───o───o───o ▷ out      n pores, n-1 throats in series
//	      0   1   2   3   4            spacing dx, throat radius rt
//
// The chain is aligned with the flow axis, so the cross extents are
// degenerate and the sample area is one voxel squared. The permeability
// closed form k = shape·π·rt⁴/(8·A) is independent of the chain length
// and the fluid.
type TubeFlow struct {

	// input
	N     int     // number of pores
	Dx    float64 // centre spacing [voxel]
	Vs    float64 // voxel size [µm]
	Rt    float64 // throat radius [µm]
	Visc  float64 // dynamic viscosity [Pa·s]
	Shape float64 // shape factor

	// derived
	G float64 // conductance of one throat [m³/(Pa·s)]
	L float64 // sample length [m]
	A float64 // cross-section area [m²]
}

// Init initialises this structure
func (o *TubeFlow) Init(prms dbf.Params) {

	// default values
	o.N = 5
	o.Dx = 50
	o.Vs = 1
	o.Rt = 10
	o.Visc = 0.001
	o.Shape = 0.6

	// parameters
	for _, p := range prms {
		switch p.N {
		case "n":
			o.N = int(p.V)
		case "dx":
			o.Dx = p.V
		case "vs":
			o.Vs = p.V
		case "rt":
			o.Rt = p.V
		case "visc":
			o.Visc = p.V
		case "shape":
			o.Shape = p.V
		}
	}

	// derived
	l := o.Dx * o.Vs * 1e-6
	rt := o.Rt * 1e-6
	o.G = o.Shape * math.Pi * rt * rt * rt * rt / (8.0 * o.Visc * l)
	o.L = float64(o.N-1) * l
	o.A = o.Vs * o.Vs * 1e-12
}

// CalcQ computes the flow through the chain [m³/s] for a pressure
// difference dp [Pa]
func (o TubeFlow) CalcQ(dp float64) float64 {
	return o.G / float64(o.N-1) * dp
}

// CalcPermMD computes the absolute permeability [mD]
func (o TubeFlow) CalcPermMD() float64 {
	rt := o.Rt * 1e-6
	k := o.Shape * math.Pi * rt * rt * rt * rt / (8.0 * o.A)
	return k * 1.01325e15
}

// CheckFlow checks a computed flow against the exact one
func (o TubeFlow) CheckFlow(tst *testing.T, tol, q, dp float64) {
	chk.Float64(tst, "Q", tol, q, o.CalcQ(dp))
}

// CheckPerm checks a computed permeability [mD] against the exact one
func (o TubeFlow) CheckPerm(tst *testing.T, tol, permMD float64) {
	chk.Float64(tst, "k", tol, permMD, o.CalcPermMD())
}
