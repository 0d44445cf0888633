// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pnm

import (
	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"
	"github.com/mattemangia/GeoscientistToolkit-sub013/mconduct"
	"github.com/mattemangia/GeoscientistToolkit-sub013/mstress"
	"github.com/mattemangia/GeoscientistToolkit-sub013/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// system holds the assembled linear system of one engine run. The
// matrix works on normalized conductances ĝ = g/ḡ and dimensionless
// pressures p̃ = (p − Pout)/ΔP, so solver tolerances keep their meaning
// regardless of the SI magnitudes.
type system struct {
	K     *sparse.CSR // normalized network Laplacian with Dirichlet rows
	B     la.Vector   // right-hand side: 1 at inlets, 0 at outlets, 0.5 at isolated rows
	X     la.Vector   // initial guess: boundary values exact, 0.5 in the interior
	G     []float64   // conductance per throat index [m³/(Pa·s)]; 0 when closed or invalid
	Gmean float64     // mean conductance over contributing throats [m³/(Pa·s)]
}

// buildSystem computes the throat conductances with the stress-adjusted
// radii and assembles the pressure equations. Rows are indexed by pore
// id; ids without a conductance contribution (isolated pores, id gaps)
// become identity rows so the system stays regular.
func buildSystem(net *inp.Network, geo *mstress.Geometry, bnd *Boundaries, mdl mconduct.Model, visc float64) (sys *system, err error) {

	// throat conductances [SI]
	sys = &system{G: make([]float64, len(net.Throats))}
	sum, cnt := 0.0, 0
	for it, t := range net.Throats {
		if !geo.Open[it] {
			continue
		}
		i, j := net.P2i[t.P1], net.P2i[t.P2]
		rp1 := geo.Rp[i] * 1e-6
		rp2 := geo.Rp[j] * 1e-6
		rt := geo.Rt[it] * 1e-6
		dist := net.Dist(i, j) * net.VoxelSize * 1e-6
		g := mdl.G(rp1, rp2, rt, dist, visc)
		if g <= 0 {
			continue
		}
		sys.G[it] = g
		sum += g
		cnt++
	}
	if cnt == 0 {
		return nil, chk.Err("network %q has no conducting throat left; the system is degenerate", net.Name)
	}
	sys.Gmean = sum / float64(cnt)

	// stamp the normalized Laplacian by pore id
	n := net.MaxId + 1
	m := sparse.NewMatrix(n)
	for it, t := range net.Throats {
		if sys.G[it] == 0 {
			continue
		}
		ĝ := sys.G[it] / sys.Gmean
		m.Add(t.P1, t.P1, ĝ)
		m.Add(t.P2, t.P2, ĝ)
		m.Add(t.P1, t.P2, -ĝ)
		m.Add(t.P2, t.P1, -ĝ)
	}

	// Dirichlet rows with the dimensionless boundary pressures
	sys.B = la.NewVector(n)
	sys.X = la.NewVector(n)
	for i := 0; i < n; i++ {
		sys.X[i] = 0.5
	}
	for _, i := range bnd.In {
		id := net.Pores[i].Id
		m.ClearRow(id)
		m.Set(id, id, 1)
		sys.B[id] = 1
		sys.X[id] = 1
	}
	for _, i := range bnd.Out {
		id := net.Pores[i].Id
		m.ClearRow(id)
		m.Set(id, id, 1)
		sys.B[id] = 0
		sys.X[id] = 0
	}

	// identity rows for isolated pores and id gaps
	for i := 0; i < n; i++ {
		if m.Get(i, i) == 0 {
			m.Set(i, i, 1)
			sys.B[i] = 0.5
		}
	}
	sys.K = m.ToCSR()
	return
}
