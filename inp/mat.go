// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/mattemangia/GeoscientistToolkit-sub013/mstress"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// ViscDefault is the fluid viscosity used when a fluid material does not
// provide one [Pa·s]
var ViscDefault = 0.001

// Material holds either fluid data or a stress-closure model definition
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Type  string     `json:"type"`  // type of material: "fluid" or "stress"
	Model string     `json:"model"` // model name for stress materials; e.g. "exp"
	Prms  dbf.Params `json:"prms"`  // model parameters

	// derived
	Stress mstress.Model `json:"-"` // allocated stress model (type == "stress")
}

// Visc returns the dynamic viscosity of a fluid material [Pa·s]
func (o *Material) Visc() float64 {
	for _, p := range o.Prms {
		if p.N == "visc" {
			return p.V
		}
	}
	io.Pfyel("inp: fluid %q has no 'visc' parameter; using %v [Pa·s]\n", o.Name, ViscDefault)
	return ViscDefault
}

// MatDb implements a database of materials
type MatDb struct {

	// input
	Materials []*Material `json:"materials"` // all materials

	// derived
	Fluids   map[string]*Material `json:"-"` // subset with fluid materials
	Stresses map[string]*Material `json:"-"` // subset with stress-closure materials
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// read file
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}

	// decode
	mdb = new(MatDb)
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot parse materials file %q: %v", fn, err)
	}

	// subsets
	mdb.Fluids = make(map[string]*Material)
	mdb.Stresses = make(map[string]*Material)
	for _, m := range mdb.Materials {
		switch m.Type {
		case "fluid":
			mdb.Fluids[m.Name] = m
		case "stress":
			mdb.Stresses[m.Name] = m
		default:
			return nil, chk.Err("material type %q is incorrect; options are \"fluid\" and \"stress\"", m.Type)
		}
	}

	// alloc/init: stress models
	for _, m := range mdb.Stresses {
		m.Stress, err = mstress.New(m.Model)
		if err != nil {
			return nil, err
		}
		err = m.Stress.Init(m.Prms)
		if err != nil {
			return nil, err
		}
	}
	return
}

// Get returns a material by name
//  Note: returns nil if not found
func (o *MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String returns the JSON representation of the database
func (o *MatDb) String() string {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
