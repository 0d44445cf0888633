// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"math"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosl/utl"
)

// NetReport prints the statistics, the geometry warnings and the radii
// histograms of one .net deck:
//
//	go run NetReport.go examples/grid/grid.net
func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	fn, _ := io.ArgToFilename(0, "examples/grid/grid", ".net", true)
	nbins := io.ArgToInt(1, 10)
	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"network filename", "fn", fn,
		"histogram bins", "nbins", nbins,
	))

	// read network
	net, err := inp.ReadNet("", fn)
	if err != nil {
		io.PfRed("cannot read network: %v\n", err)
		return
	}

	// statistics and geometry warnings
	io.Pf("network %q\n%v\n", net.Name, net.Stats().String())
	if nwarn := net.CheckGeometry(); nwarn > 0 {
		io.Pfyel("geometry warnings: %d\n", nwarn)
	}

	// radii histograms
	rp := make([]float64, len(net.Pores))
	for i, p := range net.Pores {
		rp[i] = p.R
	}
	io.Pf("pore radii [µm]\n%v\n", textHist(rp, nbins))
	rt := []float64{}
	for _, t := range net.Throats {
		if t.R > 0 {
			rt = append(rt, t.R)
		}
	}
	if len(rt) > 0 {
		io.Pf("open throat radii [µm]\n%v\n", textHist(rt, nbins))
	}
}

// textHist builds a text histogram over the range of the values
func textHist(vals []float64, nbins int) string {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi <= lo {
		hi = lo + 1
	}
	hist := rnd.Histogram{Stations: utl.LinSpace(lo, hi+(hi-lo)*1e-9, nbins+1)}
	hist.Count(vals, true)
	return rnd.TextHist(hist.GenLabels("%.2f"), hist.Counts, 50)
}
