// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mstress

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Exp implements the exponential closure model: radii shrink by
// exp(-c·p), with pores raised to a size-dependent exponent so that
// smaller pores compress relatively more. Throat factors falling below
// the closure threshold shut the throat completely.
type Exp struct {
	cp     float64 // pore compressibility coefficient [1/Pa]
	ct     float64 // throat compressibility coefficient [1/Pa]
	pcrit  float64 // critical pressure scaling the closure threshold [Pa]; 0 means fixed threshold
	tclose float64 // closure threshold at p = pcrit
	facmin float64 // smallest reduction factor of surviving elements
}

// add model to factory
func init() {
	allocators["exp"] = func() Model { return new(Exp) }
}

// Init initialises model
func (o *Exp) Init(prms dbf.Params) (err error) {
	o.cp, o.ct = 1e-8, 2e-8
	o.pcrit = 0
	o.tclose = 0.05
	o.facmin = 0.01
	for _, p := range prms {
		switch p.N {
		case "cp":
			o.cp = p.V
		case "ct":
			o.ct = p.V
		case "pcrit":
			o.pcrit = p.V
		case "tclose":
			o.tclose = p.V
		case "facmin":
			o.facmin = p.V
		default:
			return chk.Err("exp: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.cp < 0 || o.ct < 0 || o.pcrit < 0 {
		return chk.Err("exp: cp, ct and pcrit must be non-negative (%v, %v, %v are incorrect)\n", o.cp, o.ct, o.pcrit)
	}
	if o.tclose < 0 || o.tclose >= 1 {
		return chk.Err("exp: closure threshold must be within [0, 1) (%v is incorrect)\n", o.tclose)
	}
	if o.facmin <= 0 || o.facmin > 1 {
		return chk.Err("exp: factor floor must be within (0, 1] (%v is incorrect)\n", o.facmin)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Exp) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "cp", V: 1e-8},
		&dbf.P{N: "ct", V: 2e-8},
		&dbf.P{N: "pcrit", V: 1e8},
		&dbf.P{N: "tclose", V: 0.05},
		&dbf.P{N: "facmin", V: 0.01},
	}
}

// PoreFactor computes the reduction factor of one pore. The exponent
// grows from 1 at r = rmax to 1.5 at r = 0.
func (o Exp) PoreFactor(p, r, rmax float64) float64 {
	if p <= 0 {
		return 1
	}
	fac := math.Exp(-o.cp * p)
	if rmax > 0 {
		fac = math.Pow(fac, 1.0+(1.0-r/rmax)*0.5)
	}
	if fac < o.facmin {
		fac = o.facmin
	}
	return fac
}

// ThroatFactor computes the reduction factor of one throat
func (o Exp) ThroatFactor(p, r float64) float64 {
	if p <= 0 {
		return 1
	}
	fac := math.Exp(-o.ct * p)
	if fac < o.facmin {
		fac = o.facmin
	}
	return fac
}

// CloseThreshold returns the factor below which a throat is considered
// closed. The threshold scales with p/pcrit so that higher confinement
// closes progressively wider throats; at p = pcrit it equals tclose.
func (o Exp) CloseThreshold(p float64) float64 {
	if o.pcrit > 0 {
		return o.tclose * p / o.pcrit
	}
	return o.tclose
}
