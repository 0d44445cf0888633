// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"encoding/json"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"

	"github.com/cpmech/gosl/io"
)

// GenNet generates synthetic .net decks for quick experiments:
//
//	go run GenNet.go tube  n dx rp rt
//	go run GenNet.go grid  nx ny nz dx rmin rmax seed
//
// The deck is written to /tmp/goperm/<name>.net
func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	kind := io.ArgToString(0, "grid")
	var net *inp.Network
	switch kind {

	case "tube":
		n := io.ArgToInt(1, 5)
		dx := io.ArgToFloat(2, 50)
		rp := io.ArgToFloat(3, 25)
		rt := io.ArgToFloat(4, 10)
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"network kind", "kind", kind,
			"number of pores", "n", n,
			"centre spacing [voxel]", "dx", dx,
			"pore radius [µm]", "rp", rp,
			"throat radius [µm]", "rt", rt,
		))
		net = inp.GenTubeNet(n, dx, rp, rt)

	case "grid":
		nx := io.ArgToInt(1, 6)
		ny := io.ArgToInt(2, 5)
		nz := io.ArgToInt(3, 4)
		dx := io.ArgToFloat(4, 30)
		rmin := io.ArgToFloat(5, 4)
		rmax := io.ArgToFloat(6, 8)
		seed := io.ArgToInt(7, 17)
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"network kind", "kind", kind,
			"lattice size", "nx ny nz", io.Sf("%d %d %d", nx, ny, nz),
			"centre spacing [voxel]", "dx", dx,
			"smallest pore radius [µm]", "rmin", rmin,
			"largest pore radius [µm]", "rmax", rmax,
			"random seed", "seed", seed,
		))
		net = inp.GenGridNet(nx, ny, nz, dx, rmin, rmax, seed)

	default:
		io.PfRed("network kind %q is incorrect; options are \"tube\" and \"grid\"\n", kind)
		return
	}

	// write deck
	b, err := json.MarshalIndent(net, "", "  ")
	if err != nil {
		io.PfRed("cannot encode network: %v\n", err)
		return
	}
	fn := net.Name + ".net"
	io.WriteFileSD("/tmp/goperm", fn, string(b))
	io.Pf("\n%v", net.Stats().String())
}
