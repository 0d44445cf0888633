// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from .sim, .mat and .net JSON files
package inp

import (
	"encoding/json"
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/io"
)

// VoxelSizeDefault is used when a network carries an out-of-range voxel size [µm]
var VoxelSizeDefault = 1.0

// Pore holds one node of the pore network
type Pore struct {
	Id int     `json:"id"` // unique identifier; dense-ish but not necessarily contiguous
	X  float64 `json:"x"`  // position along x [voxel]
	Y  float64 `json:"y"`  // position along y [voxel]
	Z  float64 `json:"z"`  // position along z [voxel]
	R  float64 `json:"r"`  // pore body radius [µm]
}

// C returns the position of the pore along one direction [voxel]
func (o *Pore) C(dim int) float64 {
	switch dim {
	case 0:
		return o.X
	case 1:
		return o.Y
	}
	return o.Z
}

// Throat holds one edge of the pore network connecting two pores
type Throat struct {
	Id int     `json:"id"` // unique identifier
	P1 int     `json:"p1"` // id of first pore
	P2 int     `json:"p2"` // id of second pore
	R  float64 `json:"r"`  // throat radius [µm]; non-positive means closed
}

// Network holds the pore/throat graph of one sample
type Network struct {

	// input
	Name      string    `json:"name"`      // network name
	VoxelSize float64   `json:"voxelsize"` // physical length per voxel unit [µm]
	Pores     []*Pore   `json:"pores"`     // all pores
	Throats   []*Throat `json:"throats"`   // all throats

	// cached results, written back by the solver
	Tortuosity float64 `json:"tortuosity,omitempty"` // geometric tortuosity; values ≤ 1 mean unset
	DarcyPerm  float64 `json:"darcyperm,omitempty"`  // last Darcy permeability [mD]; 0 means unset

	// derived
	MaxId int         `json:"-"` // largest pore id
	P2i   map[int]int `json:"-"` // pore id → index into Pores
	T2i   map[int]int `json:"-"` // throat id → index into Throats
	Adj   [][]int     `json:"-"` // pore index → indices of attached throats
	Xmin  []float64   `json:"-"` // {x,y,z} minima over pores [voxel]
	Xmax  []float64   `json:"-"` // {x,y,z} maxima over pores [voxel]
}

// ReadNet reads a network from a .net JSON file and computes derived data
func ReadNet(dir, fn string) (net *Network, err error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}
	net = new(Network)
	err = json.Unmarshal(b, net)
	if err != nil {
		return nil, chk.Err("cannot parse network file %q: %v", fn, err)
	}
	if net.Name == "" {
		net.Name = io.FnKey(fn)
	}
	err = net.Derived()
	if err != nil {
		return nil, err
	}
	return
}

// Derived computes derived maps and extents, and checks network consistency.
// It must be called after any edit to the pore or throat lists.
func (o *Network) Derived() (err error) {

	// check
	if len(o.Pores) < 1 {
		return chk.Err("network %q has no pores", o.Name)
	}
	if o.VoxelSize <= 0 || o.VoxelSize > 1000 {
		io.Pfyel("inp: network %q: voxel size %v [µm] out of range; using %v [µm]\n", o.Name, o.VoxelSize, VoxelSizeDefault)
		o.VoxelSize = VoxelSizeDefault
	}

	// pore maps and extents
	o.MaxId = 0
	o.P2i = make(map[int]int)
	o.Xmin = []float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	o.Xmax = []float64{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for i, p := range o.Pores {
		if p.Id < 0 {
			return chk.Err("network %q: pore #%d has negative id (%d)", o.Name, i, p.Id)
		}
		if _, ok := o.P2i[p.Id]; ok {
			return chk.Err("network %q: duplicate pore id (%d)", o.Name, p.Id)
		}
		o.P2i[p.Id] = i
		if p.Id > o.MaxId {
			o.MaxId = p.Id
		}
		for dim := 0; dim < 3; dim++ {
			c := p.C(dim)
			if c < o.Xmin[dim] {
				o.Xmin[dim] = c
			}
			if c > o.Xmax[dim] {
				o.Xmax[dim] = c
			}
		}
	}

	// throat map and adjacency
	o.T2i = make(map[int]int)
	o.Adj = make([][]int, len(o.Pores))
	for it, t := range o.Throats {
		if _, ok := o.T2i[t.Id]; ok {
			return chk.Err("network %q: duplicate throat id (%d)", o.Name, t.Id)
		}
		o.T2i[t.Id] = it
		i, ok := o.P2i[t.P1]
		if !ok {
			return chk.Err("network %q: throat %d references unknown pore (%d)", o.Name, t.Id, t.P1)
		}
		j, ok := o.P2i[t.P2]
		if !ok {
			return chk.Err("network %q: throat %d references unknown pore (%d)", o.Name, t.Id, t.P2)
		}
		o.Adj[i] = append(o.Adj[i], it)
		if j != i {
			o.Adj[j] = append(o.Adj[j], it)
		}
	}
	return
}

// Pore returns a pore by id; nil if not found
func (o *Network) Pore(id int) *Pore {
	if i, ok := o.P2i[id]; ok {
		return o.Pores[i]
	}
	return nil
}

// Other returns the pore index on the far side of throat it with respect to pore index i
func (o *Network) Other(it, i int) int {
	t := o.Throats[it]
	if o.P2i[t.P1] == i {
		return o.P2i[t.P2]
	}
	return o.P2i[t.P1]
}

// Dist returns the centre-to-centre distance between two pores given their indices [voxel]
func (o *Network) Dist(i, j int) float64 {
	a, b := o.Pores[i], o.Pores[j]
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// CheckGeometry scans the network for suspicious geometry: near-coincident
// pore centres and throats connecting a pore to itself. Problems are
// reported with warnings; the scan never fails.
func (o *Network) CheckGeometry() (nwarn int) {

	// bins over the bounding box
	δ := 1e-3
	xmin := make([]float64, 3)
	xmax := make([]float64, 3)
	for dim := 0; dim < 3; dim++ {
		xmin[dim] = o.Xmin[dim] - δ
		xmax[dim] = o.Xmax[dim] + δ
		if xmax[dim]-xmin[dim] < 1 {
			xmax[dim] = xmin[dim] + 1
		}
	}
	nd := int(math.Cbrt(float64(len(o.Pores)))) + 1
	if nd > 40 {
		nd = 40
	}
	var bins gm.Bins
	err := bins.Init(xmin, xmax, []int{nd, nd, nd})
	if err != nil {
		io.Pfyel("inp: cannot initialise bins for geometry check: %v\n", err)
		return
	}

	// near-coincident pores
	for i, p := range o.Pores {
		x := []float64{p.X, p.Y, p.Z}
		if i > 0 {
			id, sq := bins.FindClosest(x)
			if id >= 0 && sq < δ*δ {
				io.Pfyel("inp: pores %d and %d are nearly coincident (d=%v [voxel])\n", o.Pores[id].Id, p.Id, math.Sqrt(sq))
				nwarn++
			}
		}
		err = bins.Append(x, i, nil)
		if err != nil {
			io.Pfyel("inp: cannot append pore to bins: %v\n", err)
			return
		}
	}

	// degenerate throats
	for _, t := range o.Throats {
		if t.P1 == t.P2 {
			io.Pfyel("inp: throat %d connects pore %d to itself\n", t.Id, t.P1)
			nwarn++
		}
	}
	return
}

// NetStats holds summary statistics of a network
type NetStats struct {
	Np, Nt    int     // number of pores and throats
	Nclosed   int     // number of closed throats (r ≤ 0)
	RpMin     float64 // smallest pore radius [µm]
	RpMean    float64 // mean pore radius [µm]
	RpMax     float64 // largest pore radius [µm]
	RtMin     float64 // smallest open throat radius [µm]
	RtMean    float64 // mean open throat radius [µm]
	RtMax     float64 // largest open throat radius [µm]
	CoordMean float64 // mean coordination number
}

// Stats computes summary statistics
func (o *Network) Stats() (s NetStats) {
	s.Np = len(o.Pores)
	s.Nt = len(o.Throats)
	s.RpMin = math.MaxFloat64
	for _, p := range o.Pores {
		if p.R < s.RpMin {
			s.RpMin = p.R
		}
		if p.R > s.RpMax {
			s.RpMax = p.R
		}
		s.RpMean += p.R
	}
	s.RpMean /= float64(s.Np)
	s.RtMin = math.MaxFloat64
	nopen := 0
	for _, t := range o.Throats {
		if t.R <= 0 {
			s.Nclosed++
			continue
		}
		if t.R < s.RtMin {
			s.RtMin = t.R
		}
		if t.R > s.RtMax {
			s.RtMax = t.R
		}
		s.RtMean += t.R
		nopen++
	}
	if nopen > 0 {
		s.RtMean /= float64(nopen)
	} else {
		s.RtMin = 0
	}
	for i := range o.Pores {
		s.CoordMean += float64(len(o.Adj[i]))
	}
	s.CoordMean /= float64(s.Np)
	return
}

// String returns a table with the summary statistics
func (o NetStats) String() string {
	l := io.Sf("  pores      = %d\n", o.Np)
	l += io.Sf("  throats    = %d (%d closed)\n", o.Nt, o.Nclosed)
	l += io.Sf("  rpore      = %g / %g / %g [µm] (min/mean/max)\n", o.RpMin, o.RpMean, o.RpMax)
	l += io.Sf("  rthroat    = %g / %g / %g [µm] (min/mean/max)\n", o.RtMin, o.RtMean, o.RtMax)
	l += io.Sf("  coordination = %.3f\n", o.CoordMean)
	return l
}
