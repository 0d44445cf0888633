// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pnm

import (
	"github.com/mattemangia/GeoscientistToolkit-sub013/gpu"
	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"
	"github.com/mattemangia/GeoscientistToolkit-sub013/mconduct"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// StressOpts selects a confining-pressure closure model
type StressOpts struct {
	Model string     // model name; e.g. "exp"
	P     float64    // confining pressure magnitude [Pa]
	Prms  dbf.Params // model parameters; nil means model defaults
}

// Options holds all input data for Calculate. Build with NewOptions and
// adjust fields as needed; Calculate never modifies the options.
type Options struct {
	Engines       []mconduct.Engine // conductance engines to run
	Axis          int               // flow axis: x=0, y=1, z=2
	Visc          float64           // fluid dynamic viscosity [Pa·s]
	Pin           float64           // inlet pressure [Pa]
	Pout          float64           // outlet pressure [Pa]
	UseTortuosity bool              // apply the tortuosity correction
	UseGPU        bool              // prefer the device solver
	Gpu           *gpu.Context      // device context; empty or nil means cpu only
	Stress        *StressOpts       // confining pressure closure; nil means disabled
	EngPrms       dbf.Params        // engine parameters (shape, re, cjunc); nil means defaults
	Tol           float64           // CG residual tolerance (normalized system)
	MaxIt         int               // CG iteration cap
	Nw            int               // goroutines for matrix-vector products; 0 means one per cpu
	Silent        bool              // suppress progress messages
}

// NewOptions returns options with default values
func NewOptions() (o *Options) {
	o = new(Options)
	o.Engines = []mconduct.Engine{mconduct.Darcy}
	o.Visc = 0.001
	o.Pin = 2 * 101325.0
	o.Pout = 101325.0
	o.UseTortuosity = true
	o.Tol = 1e-6
	o.MaxIt = 5000
	return
}

// OptionsFromSim converts a simulation deck and its material database
// into solver options. Engine and material names are resolved here, at
// the input boundary; the solve path works with enums and numbers only.
func OptionsFromSim(sim *inp.Sim, mdb *inp.MatDb, gctx *gpu.Context) (o *Options, err error) {
	o = NewOptions()

	// engines and flow conditions
	o.Engines = o.Engines[:0]
	for _, name := range sim.Flow.Engines {
		engine, e := mconduct.EngineByName(name)
		if e != nil {
			return nil, e
		}
		o.Engines = append(o.Engines, engine)
	}
	o.Axis = sim.AxisIndex()
	o.Pin = sim.Flow.Pin
	o.Pout = sim.Flow.Pout
	o.UseTortuosity = !sim.Flow.NoTau

	// fluid
	if sim.Flow.Fluid != "" {
		fluid := mdb.Get(sim.Flow.Fluid)
		if fluid == nil {
			return nil, chk.Err("fluid material %q is not in the database", sim.Flow.Fluid)
		}
		o.Visc = fluid.Visc()
	}

	// confining pressure
	if sim.Stress.Mat != "" {
		mat := mdb.Get(sim.Stress.Mat)
		if mat == nil {
			return nil, chk.Err("stress material %q is not in the database", sim.Stress.Mat)
		}
		o.Stress = &StressOpts{Model: mat.Model, P: sim.Stress.P, Prms: mat.Prms}
	}

	// solver
	if sim.Solver.Type == "gpu" {
		o.UseGPU = true
		o.Gpu = gctx
	}
	o.Tol = sim.Solver.Tol
	o.MaxIt = sim.Solver.MaxIt
	o.Nw = sim.Solver.Nw
	return
}
