// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mconduct implements hydraulic conductance engines for throats
// connecting two pore bodies
package mconduct

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Engine selects one of the conductance engines
type Engine int

// engines
const (
	Darcy            Engine = iota // plain Hagen–Poiseuille through the throat
	NavierStokes                   // entrance-length and constriction corrections
	LatticeBoltzmann               // series pore-throat-pore resistances with junction losses
)

// String returns the name of an engine
func (o Engine) String() string {
	switch o {
	case Darcy:
		return "Darcy"
	case NavierStokes:
		return "NavierStokes"
	case LatticeBoltzmann:
		return "LatticeBoltzmann"
	}
	return "unknown"
}

// Engines returns the full set of engines
func Engines() []Engine {
	return []Engine{Darcy, NavierStokes, LatticeBoltzmann}
}

// EngineByName converts an engine name, as read from input files, to the
// corresponding Engine value
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(name) {
	case "darcy":
		return Darcy, nil
	case "navierstokes":
		return NavierStokes, nil
	case "latticeboltzmann":
		return LatticeBoltzmann, nil
	}
	return Darcy, chk.Err("engine %q is not available; options are \"darcy\", \"navierstokes\" and \"latticeboltzmann\"", name)
}

// Model defines throat conductance engines
//  G computes the hydraulic conductance [m³/(Pa·s)] of the channel between
//  two pore bodies given, in SI units: the stress-adjusted pore radii rp1
//  and rp2 [m], the throat radius rt [m], the centre-to-centre distance
//  dist [m] and the fluid viscosity visc [Pa·s]
type Model interface {
	Init(prms dbf.Params) error                 // Init initialises this model
	GetPrms(example bool) dbf.Params            // gets (an example) of parameters
	G(rp1, rp2, rt, dist, visc float64) float64 // conductance [m³/(Pa·s)]
}

// New allocates a conductance model for the given engine
func New(engine Engine) (model Model, err error) {
	switch engine {
	case Darcy:
		return new(Poiseuille), nil
	case NavierStokes:
		return new(NavSto), nil
	case LatticeBoltzmann:
		return new(LatBol), nil
	}
	return nil, chk.Err("engine %d is not available in 'mconduct' database", engine)
}

// HagenPoiseuille returns the conductance of one cylindrical segment with
// radius r and length l [m], corrected by the shape factor
func HagenPoiseuille(shape, r, l, visc float64) float64 {
	return shape * math.Pi * r * r * r * r / (8.0 * visc * l)
}
