// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pnm

import (
	"math"
	"sort"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Boundaries holds the inlet/outlet pore sets and the sample dimensions
// along the flow axis. Lengths are in voxel units except L and A.
type Boundaries struct {
	In   []int   // inlet pore indices (low coordinate side)
	Out  []int   // outlet pore indices (high coordinate side)
	Lvox float64 // sample extent along the flow axis [voxel]
	L    float64 // sample length along the flow axis [µm]
	A    float64 // cross-section area [µm²]
	Tol  float64 // boundary layer tolerance actually used [voxel]; 0 after the extreme-pores fallback
}

// FindBoundaries classifies the pores into inlet and outlet sets with
// respect to the flow axis (x=0, y=1, z=2). The boundary layer starts
// at max(5, 10% of the extent) voxels and widens by 1.5 up to 30% until
// both sides hold enough pores; as a last resort each side takes the
// extreme 10% of pores by sorted coordinate, so irregular samples with
// sparse boundary layers remain solvable.
func FindBoundaries(net *inp.Network, axis int, silent bool) (bnd *Boundaries, err error) {

	// extents
	if axis < 0 || axis > 2 {
		return nil, chk.Err("flow axis %d is incorrect; options are 0 (x), 1 (y) and 2 (z)", axis)
	}
	np := len(net.Pores)
	cmin, cmax := net.Xmin[axis], net.Xmax[axis]
	extent := cmax - cmin
	if extent <= 0 {
		return nil, chk.Err("network %q has zero extent along axis %d; inlet and outlet cannot be told apart", net.Name, axis)
	}
	c1, c2 := (axis+1)%3, (axis+2)%3
	ext1 := net.Xmax[c1] - net.Xmin[c1]
	ext2 := net.Xmax[c2] - net.Xmin[c2]
	if ext1 <= 0 {
		ext1 = 1
	}
	if ext2 <= 0 {
		ext2 = 1
	}
	bnd = &Boundaries{
		Lvox: extent,
		L:    extent * net.VoxelSize,
		A:    ext1 * ext2 * net.VoxelSize * net.VoxelSize,
	}

	// widen the boundary layer until both sides are populated
	minSide := 5
	if n := np / 50; n > minSide {
		minSide = n
	}
	tol := math.Max(5, 0.10*extent)
	tolMax := 0.30 * extent
	for {
		bnd.In = bnd.In[:0]
		bnd.Out = bnd.Out[:0]
		for i, p := range net.Pores {
			c := p.C(axis)
			if c <= cmin+tol {
				bnd.In = append(bnd.In, i)
			} else if c >= cmax-tol {
				bnd.Out = append(bnd.Out, i)
			}
		}
		if len(bnd.In) >= minSide && len(bnd.Out) >= minSide {
			bnd.Tol = tol
			if !silent {
				io.Pf("pnm: boundaries: tol = %g [voxel]  inlet = %d  outlet = %d\n", tol, len(bnd.In), len(bnd.Out))
			}
			return
		}
		if tol >= tolMax {
			break
		}
		tol = math.Min(tol*1.5, tolMax)
	}

	// fallback: extreme 10% of pores by sorted coordinate
	idx := make([]int, np)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ca, cb := net.Pores[idx[a]].C(axis), net.Pores[idx[b]].C(axis)
		if ca != cb {
			return ca < cb
		}
		return idx[a] < idx[b]
	})
	nside := np / 10
	if nside < 1 {
		nside = 1
	}
	if nside > np/2 {
		nside = np / 2
	}
	if nside < 1 {
		return nil, chk.Err("network %q is too small to classify boundaries along axis %d", net.Name, axis)
	}
	bnd.In = append([]int{}, idx[:nside]...)
	bnd.Out = append([]int{}, idx[np-nside:]...)
	sort.Ints(bnd.In)
	sort.Ints(bnd.Out)
	if !silent {
		io.Pfyel("pnm: boundaries: sparse boundary layers; taking the extreme %d pores per side\n", nside)
	}
	return
}
