// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mstress

// Geometry holds a per-solve snapshot of the stress-adjusted network
// geometry. Slices are parallel to the pore and throat lists they were
// computed from.
type Geometry struct {
	Rp        []float64 // adjusted pore radii [µm]
	Rt        []float64 // adjusted throat radii [µm]; 0 when closed
	Open      []bool    // throat open flags
	PoreRed   float64   // mean pore radius reduction [%]
	ThroatRed float64   // mean throat radius reduction [%]
	Nclosed   int       // number of throats closed by stress
}

// Adjust computes the stress-adjusted geometry given the unstressed pore
// radii rp and throat radii rt [µm] and the confining pressure p [Pa].
// With a nil model or p ≤ 0 the radii pass through unmodified. Throats
// already closed in the input stay closed and do not enter the reduction
// statistics. Pure function: rp and rt are never modified.
func Adjust(mdl Model, rp, rt []float64, p float64) (geo *Geometry) {
	geo = &Geometry{
		Rp:   make([]float64, len(rp)),
		Rt:   make([]float64, len(rt)),
		Open: make([]bool, len(rt)),
	}

	// confining pressure disabled
	if mdl == nil || p <= 0 {
		copy(geo.Rp, rp)
		for i, r := range rt {
			if r > 0 {
				geo.Rt[i] = r
				geo.Open[i] = true
			}
		}
		return
	}

	// largest pore radius
	rmax := 0.0
	for _, r := range rp {
		if r > rmax {
			rmax = r
		}
	}

	// pores
	for i, r := range rp {
		fac := mdl.PoreFactor(p, r, rmax)
		geo.Rp[i] = fac * r
		geo.PoreRed += 1.0 - fac
	}
	if len(rp) > 0 {
		geo.PoreRed *= 100.0 / float64(len(rp))
	}

	// throats
	thr := mdl.CloseThreshold(p)
	nopen := 0
	for i, r := range rt {
		if r <= 0 {
			continue
		}
		fac := mdl.ThroatFactor(p, r)
		geo.ThroatRed += 1.0 - fac
		nopen++
		if fac < thr {
			geo.Nclosed++
			continue
		}
		geo.Rt[i] = fac * r
		geo.Open[i] = true
	}
	if nopen > 0 {
		geo.ThroatRed *= 100.0 / float64(nopen)
	}
	return
}
