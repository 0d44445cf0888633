// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pnm

import (
	"github.com/mattemangia/GeoscientistToolkit-sub013/mconduct"
)

// Status classifies the outcome of one calculation
type Status int

// statuses
const (
	StatusOK      Status = iota // all engine runs succeeded
	StatusPartial               // some engine runs failed
	StatusFailed                // nothing usable was produced
)

// String returns the status name
func (o Status) String() string {
	switch o {
	case StatusOK:
		return "ok"
	case StatusPartial:
		return "partial"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// FlowData holds the solved fields of one engine run
type FlowData struct {
	Pp map[int]float64 // pore pressure [Pa] by pore id
	Qt map[int]float64 // throat flow magnitude [m³/s] by throat id
}

// EngineRun holds the outcome of one conductance engine
type EngineRun struct {
	Engine     mconduct.Engine // engine that produced this run
	Ok         bool            // solve succeeded with finite pressures
	Warn       string          // non-fatal warnings; empty when clean
	PermMD     float64         // absolute permeability [mD]
	PermCorrMD float64         // tortuosity-corrected permeability [mD]
	Qtot       float64         // total flow entering through the inlet [m³/s]
	It         int             // solver iterations
	Resid      float64         // final residual norm (normalized system)
	Gpu        bool            // solved on the compute device
	Flow       *FlowData       // solved fields; nil when the run failed
}

// Results holds everything one Calculate call produces. Values only;
// repeated calls never share or overwrite state.
type Results struct {
	Status    Status      // overall outcome
	Message   string      // description of failures; empty when ok
	Tau       float64     // geometric tortuosity
	L         float64     // sample length along the flow axis [m]
	A         float64     // cross-section area [m²]
	Np        int         // number of pores
	Nt        int         // number of throats
	Nin       int         // number of inlet pores
	Nout      int         // number of outlet pores
	PoreRed   float64     // mean pore radius reduction [%]
	ThroatRed float64     // mean throat radius reduction [%]
	Nclosed   int         // throats closed by the confining pressure
	Runs      []EngineRun // one entry per requested engine
}

// Run returns the run of one engine; nil if absent
func (o *Results) Run(engine mconduct.Engine) *EngineRun {
	for i := range o.Runs {
		if o.Runs[i].Engine == engine {
			return &o.Runs[i]
		}
	}
	return nil
}
