// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pnm implements the pore-network permeability solver: boundary
// classification, tortuosity, assembly of the pressure equations per
// conductance engine, the cpu/device solve and the permeability result
package pnm

import (
	"math"
	"runtime"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"
	"github.com/mattemangia/GeoscientistToolkit-sub013/mconduct"
	"github.com/mattemangia/GeoscientistToolkit-sub013/mstress"
	"github.com/mattemangia/GeoscientistToolkit-sub013/sparse"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// MdFromM2 converts permeability from [m²] to [mD]
const MdFromM2 = 1.01325e15

// sanity band for reporting suspicious permeabilities [mD]
const (
	permLoBand = 0.001
	permHiBand = 100000.0
)

// Calculate computes the absolute permeability of one network with the
// requested conductance engines. It never panics and never stops the
// program: bad inputs and degenerate systems come back as failed
// results, solver troubles as per-run warnings. The network is not
// modified except for the cached tortuosity and Darcy permeability.
// Concurrent calls on distinct networks are safe; the device context is
// the only shared resource.
func Calculate(net *inp.Network, opt *Options) (res Results) {

	// validate
	res.Tau = 1
	if opt == nil {
		opt = NewOptions()
	}
	if net == nil || len(net.Pores) == 0 {
		return failure("network is empty")
	}
	if len(opt.Engines) == 0 {
		return failure("no conductance engine requested")
	}
	ΔP := opt.Pin - opt.Pout
	if ΔP <= 0 {
		return failure(io.Sf("inlet pressure (%v) must be greater than outlet pressure (%v)", opt.Pin, opt.Pout))
	}
	if opt.Visc <= 0 {
		return failure(io.Sf("viscosity must be positive (%v)", opt.Visc))
	}
	res.Np = len(net.Pores)
	res.Nt = len(net.Throats)
	if !opt.Silent {
		io.Pf("pnm: network %q: %d pores, %d throats\n", net.Name, res.Np, res.Nt)
	}

	// stress adjustment of the geometry
	var smodel mstress.Model
	pconf := 0.0
	if opt.Stress != nil && opt.Stress.P > 0 {
		pconf = opt.Stress.P
		var err error
		smodel, err = mstress.New(opt.Stress.Model)
		if err != nil {
			return failure(err.Error())
		}
		if err = smodel.Init(opt.Stress.Prms); err != nil {
			return failure(err.Error())
		}
	}
	rp := make([]float64, len(net.Pores))
	for i, p := range net.Pores {
		rp[i] = p.R
	}
	rt := make([]float64, len(net.Throats))
	for i, t := range net.Throats {
		rt[i] = t.R
	}
	geo := mstress.Adjust(smodel, rp, rt, pconf)
	res.PoreRed = geo.PoreRed
	res.ThroatRed = geo.ThroatRed
	res.Nclosed = geo.Nclosed
	if smodel != nil && !opt.Silent {
		io.Pf("pnm: stress at %v [Pa]: pore reduction = %.2f%%  throat reduction = %.2f%%  closed throats = %d\n",
			pconf, geo.PoreRed, geo.ThroatRed, geo.Nclosed)
	}

	// boundaries and sample dimensions
	bnd, err := FindBoundaries(net, opt.Axis, opt.Silent)
	if err != nil {
		return failure(err.Error())
	}
	res.Nin = len(bnd.In)
	res.Nout = len(bnd.Out)
	res.L = bnd.L * 1e-6
	res.A = bnd.A * 1e-12

	// tortuosity
	if opt.UseTortuosity {
		res.Tau = EstimateTortuosity(net, bnd)
		if !opt.Silent {
			io.Pf("pnm: tortuosity = %.4f\n", res.Tau)
		}
	}

	// engine runs
	for _, engine := range opt.Engines {
		run := runEngine(net, geo, bnd, engine, opt, res.Tau, ΔP, res.L, res.A)
		if run.Ok && !opt.Silent {
			io.Pf("pnm: %-16v k = %14.6f [mD]  k/τ² = %14.6f [mD]  Q = %12.6e [m³/s]  it = %d\n",
				engine, run.PermMD, run.PermCorrMD, run.Qtot, run.It)
		}
		if !run.Ok && !opt.Silent {
			io.PfRed("pnm: %-16v failed: %v\n", engine, run.Warn)
		}
		res.Runs = append(res.Runs, run)
	}

	// overall status
	nok := 0
	for i := range res.Runs {
		if res.Runs[i].Ok {
			nok++
		}
	}
	switch {
	case nok == len(res.Runs):
		res.Status = StatusOK
	case nok == 0:
		res.Status = StatusFailed
		res.Message = "all engine runs failed"
	default:
		res.Status = StatusPartial
		res.Message = io.Sf("%d of %d engine runs failed", len(res.Runs)-nok, len(res.Runs))
	}

	// cache the plain Darcy permeability on the network
	if run := res.Run(mconduct.Darcy); run != nil && run.Ok {
		net.DarcyPerm = run.PermMD
	}
	return
}

// failure returns a failed result with a message
func failure(msg string) (res Results) {
	res.Status = StatusFailed
	res.Message = msg
	res.Tau = 1
	return
}

// runEngine builds, solves and integrates one conductance engine
func runEngine(net *inp.Network, geo *mstress.Geometry, bnd *Boundaries, engine mconduct.Engine,
	opt *Options, τ, ΔP, L, A float64) (run EngineRun) {

	// conductance model
	run.Engine = engine
	mdl, err := mconduct.New(engine)
	if err != nil {
		run.Warn = err.Error()
		return
	}
	if err = mdl.Init(opt.EngPrms); err != nil {
		run.Warn = err.Error()
		return
	}

	// assemble
	sys, err := buildSystem(net, geo, bnd, mdl, opt.Visc)
	if err != nil {
		run.Warn = err.Error()
		return
	}

	// solve on the device with cpu fallback
	solved := false
	if opt.UseGPU {
		if opt.Gpu.Available() {
			x0 := make(la.Vector, len(sys.X))
			copy(x0, sys.X)
			it, resid, derr := opt.Gpu.Dev().CG(sys.K.Ap, sys.K.Aj, sys.K.Ax, sys.B, sys.X, opt.Tol, opt.MaxIt)
			run.It, run.Resid = it, resid
			if derr == nil {
				run.Gpu = true
				solved = true
			} else {
				io.Pfyel("pnm: device solve failed (%v); falling back to the cpu\n", derr)
				copy(sys.X, x0)
			}
		} else {
			io.Pfyel("pnm: no compute device available; using the cpu\n")
		}
	}
	if !solved {
		nw := opt.Nw
		if nw < 1 {
			nw = runtime.NumCPU()
		}
		st, serr := sparse.SolveCG(sys.K, sys.B, sys.X, opt.Tol, opt.MaxIt, nw)
		if serr != nil {
			run.Warn = serr.Error()
			return
		}
		run.It, run.Resid = st.It, st.Resid
		run.Gpu = false
		switch {
		case st.Breakdown:
			run.Warn = io.Sf("solver breakdown at iteration %d; permeability uses the last iterate", st.It)
		case !st.Converged:
			run.Warn = io.Sf("solver did not converge after %d iterations (residual = %g); permeability uses the last iterate", st.It, st.Resid)
		}
	}

	// redimensionalize and check the pressures
	flow := &FlowData{
		Pp: make(map[int]float64, len(net.Pores)),
		Qt: make(map[int]float64, len(net.Throats)),
	}
	bad := false
	for _, p := range net.Pores {
		press := opt.Pout + sys.X[p.Id]*ΔP
		if math.IsNaN(press) || math.IsInf(press, 0) {
			bad = true
			break
		}
		flow.Pp[p.Id] = press
	}
	if bad {
		run.Warn = "solver produced non-finite pressures"
		run.PermMD, run.PermCorrMD, run.Qtot = 0, 0, 0
		return
	}

	// throat flows and total inlet flow
	inlet := make(map[int]bool, len(bnd.In))
	for _, i := range bnd.In {
		inlet[net.Pores[i].Id] = true
	}
	Q := 0.0
	for it, t := range net.Throats {
		g := sys.G[it]
		if g == 0 {
			continue
		}
		q := g * (flow.Pp[t.P1] - flow.Pp[t.P2])
		flow.Qt[t.Id] = math.Abs(q)
		if inlet[t.P1] != inlet[t.P2] {
			if inlet[t.P1] {
				Q += q
			} else {
				Q -= q
			}
		}
	}
	run.Qtot = Q
	run.Flow = flow

	// permeability
	k := Q * opt.Visc * L / (A * ΔP)
	run.PermMD = k * MdFromM2
	run.PermCorrMD = run.PermMD / (τ * τ)
	if run.PermMD < permLoBand || run.PermMD > permHiBand {
		warn := io.Sf("permeability %g [mD] is outside the expected band [%g, %g]", run.PermMD, permLoBand, permHiBand)
		io.Pfyel("pnm: %v: %v\n", engine, warn)
		if run.Warn == "" {
			run.Warn = warn
		}
	}
	run.Ok = true
	return
}
