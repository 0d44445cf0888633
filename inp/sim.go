// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds the main run control data
type Data struct {
	Sim     string `json:"sim"`     // simulation name
	Matfile string `json:"matfile"` // materials file (.mat), relative to the .sim directory
	Netfile string `json:"netfile"` // network file (.net), relative to the .sim directory
	DirOut  string `json:"dirout"`  // output directory; default is /tmp/goperm/<fnkey>
}

// SolverData holds linear solver control data
type SolverData struct {
	Type  string  `json:"type"`  // solver backend: "cpu" or "gpu"
	Tol   float64 `json:"tol"`   // CG residual tolerance
	MaxIt int     `json:"maxit"` // CG iteration cap
	Nw    int     `json:"nw"`    // goroutines for matrix-vector products; 0 means automatic
}

// FlowCnd holds the flow conditions and conductance engine selection
type FlowCnd struct {
	Engines []string `json:"engines"` // engines to run: "darcy", "navierstokes", "latticeboltzmann"
	Axis    string   `json:"axis"`    // flow axis: "x", "y" or "z"
	Fluid   string   `json:"fluid"`   // fluid material name in the .mat file
	Pin     float64  `json:"pin"`     // inlet pressure [Pa]
	Pout    float64  `json:"pout"`    // outlet pressure [Pa]
	NoTau   bool     `json:"notau"`   // disable the tortuosity correction
}

// StressCnd holds the confining pressure condition
type StressCnd struct {
	Mat string  `json:"mat"` // stress material name in the .mat file; empty means disabled
	P   float64 `json:"p"`   // confining pressure magnitude [Pa]
}

// Sim holds all simulation data read from a .sim file
type Sim struct {

	// input
	Data   Data       `json:"data"`   // main control data
	Solver SolverData `json:"solver"` // solver control data
	Flow   FlowCnd    `json:"flow"`   // flow conditions
	Stress StressCnd  `json:"stress"` // confining pressure condition

	// derived
	FnKey string `json:"-"` // simulation file key
	DirIn string `json:"-"` // directory holding the input files
}

// SetDefault sets default values for missing deck entries
func (o *Sim) SetDefault() {
	if len(o.Flow.Engines) == 0 {
		o.Flow.Engines = []string{"darcy"}
	}
	if o.Flow.Axis == "" {
		o.Flow.Axis = "x"
	}
	if o.Flow.Pin == 0 && o.Flow.Pout == 0 {
		o.Flow.Pin = 2 * 101325.0
		o.Flow.Pout = 101325.0
	}
	if o.Solver.Type == "" {
		o.Solver.Type = "cpu"
	}
	if o.Solver.Tol == 0 {
		o.Solver.Tol = 1e-6
	}
	if o.Solver.MaxIt == 0 {
		o.Solver.MaxIt = 5000
	}
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/goperm/" + o.FnKey
	}
}

// ReadSim reads a simulation deck from a .sim JSON file
//  Note: this function panics on malformed decks
func ReadSim(simfilepath string, erasePrev bool) (sim *Sim) {

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	sim = new(Sim)
	err = json.Unmarshal(b, sim)
	if err != nil {
		chk.Panic("cannot parse simulation file %q:\n%v", simfilepath, err)
	}
	sim.FnKey = io.FnKey(simfilepath)
	sim.DirIn = filepath.Dir(simfilepath)
	if sim.Data.Sim == "" {
		sim.Data.Sim = sim.FnKey
	}

	// defaults and checks
	sim.SetDefault()
	if sim.Data.Netfile == "" {
		chk.Panic("simulation %q misses the network file (data.netfile)", sim.FnKey)
	}
	switch sim.Flow.Axis {
	case "x", "y", "z":
	default:
		chk.Panic("flow axis %q is incorrect; options are \"x\", \"y\" and \"z\"", sim.Flow.Axis)
	}
	if sim.Flow.Pin <= sim.Flow.Pout {
		chk.Panic("inlet pressure (%v) must be greater than outlet pressure (%v)", sim.Flow.Pin, sim.Flow.Pout)
	}

	// output directory
	if erasePrev {
		io.RemoveAll(sim.Data.DirOut)
	}
	return
}

// AxisIndex returns the flow axis as an index: x=0, y=1, z=2
func (o *Sim) AxisIndex() int {
	switch o.Flow.Axis {
	case "y":
		return 1
	case "z":
		return 2
	}
	return 0
}

// ReadNetFile reads the network referenced by this deck
func (o *Sim) ReadNetFile() (*Network, error) {
	return ReadNet(o.DirIn, o.Data.Netfile)
}

// ReadMatFile reads the material database referenced by this deck
//  Note: returns an empty database if no .mat file is given
func (o *Sim) ReadMatFile() (*MatDb, error) {
	if o.Data.Matfile == "" {
		return &MatDb{
			Fluids:   make(map[string]*Material),
			Stresses: make(map[string]*Material),
		}, nil
	}
	return ReadMat(o.DirIn, o.Data.Matfile)
}
