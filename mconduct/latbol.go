// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mconduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// LatBol implements the Lattice-Boltzmann-like engine: the pore bodies act
// as resistances in series with the throat (half of pore 1, throat, half of
// pore 2) and each pore-throat interface adds a junction loss
type LatBol struct {
	shape float64 // shape factor accounting for non-circular channels
	cjunc float64 // junction loss coefficient
}

// Init initialises model
func (o *LatBol) Init(prms dbf.Params) (err error) {
	o.shape = 0.6
	o.cjunc = 0.3
	for _, p := range prms {
		switch p.N {
		case "shape":
			o.shape = p.V
		case "cjunc":
			o.cjunc = p.V
		case "re", "ccon":
			// NavierStokes parameters; shared parameter sets are fine
		default:
			return chk.Err("latticeboltzmann: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.shape <= 0 {
		return chk.Err("latticeboltzmann: shape factor must be positive (%v is incorrect)\n", o.shape)
	}
	if o.cjunc < 0 {
		return chk.Err("latticeboltzmann: cjunc must be non-negative (%v is incorrect)\n", o.cjunc)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o LatBol) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "shape", V: 0.6},
		&dbf.P{N: "cjunc", V: 0.3},
	}
}

// junction returns the loss multiplier of one pore-throat interface.
// A throat wider than its pore adds no contraction loss.
func (o LatBol) junction(rt, rp float64) float64 {
	if rp <= 0 {
		return 1
	}
	ratio := rt / rp
	if ratio > 1 {
		ratio = 1
	}
	return 1.0 + o.cjunc*(1.0-ratio)*(1.0-ratio)
}

// G computes the conductance [m³/(Pa·s)]
func (o LatBol) G(rp1, rp2, rt, dist, visc float64) float64 {
	if rt <= 0 || dist <= 0 {
		return 0
	}

	// throat segment; overlapping pore bodies cannot shrink it below 1% of
	// the centre distance
	lt := dist - rp1 - rp2
	if lt < 0.01*dist {
		lt = 0.01 * dist
	}
	res := o.junction(rt, rp1) * o.junction(rt, rp2) / HagenPoiseuille(o.shape, rt, lt, visc)

	// pore body halves
	if rp1 > 0 {
		res += 1.0 / HagenPoiseuille(o.shape, rp1, rp1, visc)
	}
	if rp2 > 0 {
		res += 1.0 / HagenPoiseuille(o.shape, rp2, rp2, visc)
	}
	return 1.0 / res
}
