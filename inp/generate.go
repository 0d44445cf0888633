// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
)

// GenTubeNet generates a straight chain of n pores along x, connected by
// n-1 identical throats. dx is the centre spacing [voxel], rp and rt are
// the pore and throat radii [µm]. Voxel size is 1 µm.
func GenTubeNet(n int, dx, rp, rt float64) *Network {
	if n < 2 {
		chk.Panic("tube network needs at least 2 pores (%d requested)", n)
	}
	net := &Network{Name: io.Sf("tube%d", n), VoxelSize: 1}
	for i := 0; i < n; i++ {
		net.Pores = append(net.Pores, &Pore{Id: i, X: float64(i) * dx, R: rp})
	}
	for i := 0; i < n-1; i++ {
		net.Throats = append(net.Throats, &Throat{Id: i, P1: i, P2: i + 1, R: rt})
	}
	err := net.Derived()
	if err != nil {
		chk.Panic("cannot generate tube network: %v", err)
	}
	return net
}

// GenGridNet generates a regular nx×ny×nz lattice with spacing dx [voxel]
// and uniformly random pore radii within [rmin, rmax] [µm]. Throat radii
// are drawn within [0.3·rmin, 0.9·rmin] so that throats are always
// narrower than the pores they connect. Voxel size is 1 µm.
func GenGridNet(nx, ny, nz int, dx, rmin, rmax float64, seed int) *Network {
	if nx < 2 || ny < 1 || nz < 1 {
		chk.Panic("grid network needs nx ≥ 2, ny ≥ 1 and nz ≥ 1 (%d×%d×%d requested)", nx, ny, nz)
	}
	rnd.Init(seed)
	net := &Network{Name: io.Sf("grid%dx%dx%d", nx, ny, nz), VoxelSize: 1}
	id := func(i, j, k int) int { return i + j*nx + k*nx*ny }
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				net.Pores = append(net.Pores, &Pore{
					Id: id(i, j, k),
					X:  float64(i) * dx,
					Y:  float64(j) * dx,
					Z:  float64(k) * dx,
					R:  rnd.Float64(rmin, rmax),
				})
			}
		}
	}
	tid := 0
	link := func(a, b int) {
		net.Throats = append(net.Throats, &Throat{Id: tid, P1: a, P2: b, R: rnd.Float64(0.3*rmin, 0.9*rmin)})
		tid++
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if i+1 < nx {
					link(id(i, j, k), id(i+1, j, k))
				}
				if j+1 < ny {
					link(id(i, j, k), id(i, j+1, k))
				}
				if k+1 < nz {
					link(id(i, j, k), id(i, j, k+1))
				}
			}
		}
	}
	err := net.Derived()
	if err != nil {
		chk.Panic("cannot generate grid network: %v", err)
	}
	return net
}
