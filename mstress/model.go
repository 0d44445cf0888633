// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mstress implements confining-pressure closure models for the
// pore/throat geometry
package mstress

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines stress-dependent geometry closure models. Factors are
// dimensionless multipliers applied to the unstressed radii; p is the
// confining pressure [Pa]
type Model interface {
	Init(prms dbf.Params) error            // Init initialises this model
	GetPrms(example bool) dbf.Params       // gets (an example) of parameters
	PoreFactor(p, r, rmax float64) float64 // reduction factor of one pore with radius r; rmax is the largest pore radius
	ThroatFactor(p, r float64) float64     // reduction factor of one throat with radius r
	CloseThreshold(p float64) float64      // factors below this threshold close the throat
}

// New allocates a stress-closure model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'mstress' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
