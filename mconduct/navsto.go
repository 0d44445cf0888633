// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mconduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// NavSto implements the Navier–Stokes-like engine: the Hagen–Poiseuille law
// with an entrance-length extension approximating inertial development and
// a constriction multiplier approximating contraction losses
type NavSto struct {
	shape float64 // shape factor accounting for non-circular channels
	re    float64 // nominal Reynolds number for the entrance length
	ccon  float64 // constriction loss coefficient
}

// Init initialises model
func (o *NavSto) Init(prms dbf.Params) (err error) {
	o.shape = 0.6
	o.re = 1.0
	o.ccon = 0.3
	for _, p := range prms {
		switch p.N {
		case "shape":
			o.shape = p.V
		case "re":
			o.re = p.V
		case "ccon":
			o.ccon = p.V
		case "cjunc":
			// LatticeBoltzmann parameter; shared parameter sets are fine
		default:
			return chk.Err("navierstokes: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.shape <= 0 {
		return chk.Err("navierstokes: shape factor must be positive (%v is incorrect)\n", o.shape)
	}
	if o.re < 0 || o.ccon < 0 {
		return chk.Err("navierstokes: re and ccon must be non-negative (%v, %v are incorrect)\n", o.re, o.ccon)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o NavSto) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "shape", V: 0.6},
		&dbf.P{N: "re", V: 1.0},
		&dbf.P{N: "ccon", V: 0.3},
	}
}

// G computes the conductance [m³/(Pa·s)]
func (o NavSto) G(rp1, rp2, rt, dist, visc float64) float64 {
	if rt <= 0 || dist <= 0 {
		return 0
	}

	// entrance length, capped at 10% of the segment length
	le := 0.06 * o.re * rt
	if le > 0.1*dist {
		le = 0.1 * dist
	}
	g := HagenPoiseuille(o.shape, rt, dist+le, visc)

	// contraction at the tightest pore-throat interface
	rp := rp1
	if rp2 > rp {
		rp = rp2
	}
	if rp > 0 {
		g /= 1.0 + o.ccon*(rt/rp)*(rt/rp)
	}
	return g
}
