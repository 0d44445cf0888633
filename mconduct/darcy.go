// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mconduct

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Poiseuille implements the Darcy engine: the Hagen–Poiseuille law through
// the throat over the full pore centre distance
type Poiseuille struct {
	shape float64 // shape factor accounting for non-circular channels
}

// Init initialises model
func (o *Poiseuille) Init(prms dbf.Params) (err error) {
	o.shape = 0.6
	for _, p := range prms {
		switch p.N {
		case "shape":
			o.shape = p.V
		case "re", "ccon", "cjunc":
			// parameters of the other engines; shared parameter sets are fine
		default:
			return chk.Err("darcy: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.shape <= 0 {
		return chk.Err("darcy: shape factor must be positive (%v is incorrect)\n", o.shape)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Poiseuille) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "shape", V: 0.6},
	}
}

// G computes the conductance [m³/(Pa·s)]
func (o Poiseuille) G(rp1, rp2, rt, dist, visc float64) float64 {
	if rt <= 0 || dist <= 0 {
		return 0
	}
	return HagenPoiseuille(o.shape, rt, dist, visc)
}
