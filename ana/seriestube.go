// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SeriesTube computes the exact conductance of one pore-throat-pore
// channel decomposed into resistances in series:
//
//	o=====■-----■=====o       half of pore 1 (length rp1, radius rp1)
//	  R1     Rt    R2         throat (length dist-rp1-rp2, radius rt)
//	                          half of pore 2 (length rp2, radius rp2)
//
// with a junction loss multiplier on the throat resistance at each
// pore-throat interface. All quantities in SI units.
type SeriesTube struct {
	Rp1   float64 // radius of pore 1 [m]
	Rp2   float64 // radius of pore 2 [m]
	Rt    float64 // throat radius [m]
	Dist  float64 // centre-to-centre distance [m]
	Visc  float64 // dynamic viscosity [Pa·s]
	Shape float64 // shape factor
	Cjunc float64 // junction loss coefficient
}

// Init initialises this structure
func (o *SeriesTube) Init(prms dbf.Params) {

	// default values
	o.Rp1 = 25e-6
	o.Rp2 = 25e-6
	o.Rt = 10e-6
	o.Dist = 100e-6
	o.Visc = 0.001
	o.Shape = 0.6
	o.Cjunc = 0.3

	// parameters
	for _, p := range prms {
		switch p.N {
		case "rp1":
			o.Rp1 = p.V
		case "rp2":
			o.Rp2 = p.V
		case "rt":
			o.Rt = p.V
		case "dist":
			o.Dist = p.V
		case "visc":
			o.Visc = p.V
		case "shape":
			o.Shape = p.V
		case "cjunc":
			o.Cjunc = p.V
		}
	}
}

// segment computes the conductance of one cylindrical segment
func (o SeriesTube) segment(r, l float64) float64 {
	return o.Shape * math.Pi * r * r * r * r / (8.0 * o.Visc * l)
}

// junction computes the loss multiplier of one pore-throat interface
func (o SeriesTube) junction(rp float64) float64 {
	if rp <= 0 {
		return 1
	}
	ratio := o.Rt / rp
	if ratio > 1 {
		ratio = 1
	}
	return 1.0 + o.Cjunc*(1.0-ratio)*(1.0-ratio)
}

// CalcG computes the conductance of the channel [m³/(Pa·s)]
func (o SeriesTube) CalcG() float64 {
	lt := o.Dist - o.Rp1 - o.Rp2
	if lt < 0.01*o.Dist {
		lt = 0.01 * o.Dist
	}
	res := o.junction(o.Rp1) * o.junction(o.Rp2) / o.segment(o.Rt, lt)
	if o.Rp1 > 0 {
		res += 1.0 / o.segment(o.Rp1, o.Rp1)
	}
	if o.Rp2 > 0 {
		res += 1.0 / o.segment(o.Rp2, o.Rp2)
	}
	return 1.0 / res
}

// CheckG checks a computed conductance against the exact one
func (o SeriesTube) CheckG(tst *testing.T, tol, g float64) {
	chk.Float64(tst, "G", tol, g, o.CalcG())
}
