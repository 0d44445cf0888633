// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"path/filepath"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"
	"github.com/mattemangia/GeoscientistToolkit-sub013/pnm"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosl/utl"
)

// Profile holds the mean pore pressure binned along the flow axis. A
// healthy profile decreases monotonically from the inlet towards the
// outlet; plateaus and jumps point at poorly connected regions.
type Profile struct {
	Axis int       // flow axis: 0, 1 or 2
	X    []float64 // bin centres [voxel]; empty bins are removed
	P    []float64 // mean pressure per bin [Pa]
	N    []int     // number of pores per bin
}

// NewProfile bins the solved pore pressures of one run along the flow axis
func NewProfile(net *inp.Network, flow *pnm.FlowData, axis, nbins int) (o *Profile, err error) {
	if net == nil || flow == nil || len(flow.Pp) == 0 {
		return nil, chk.Err("a network and solved pressures are needed to build a profile")
	}
	if axis < 0 || axis > 2 {
		return nil, chk.Err("axis must be 0, 1 or 2 (%d is incorrect)", axis)
	}
	if nbins < 1 {
		return nil, chk.Err("at least one bin is needed (%d requested)", nbins)
	}
	cmin, cmax := net.Xmin[axis], net.Xmax[axis]
	if cmax <= cmin {
		return nil, chk.Err("network %q is degenerate along axis %d", net.Name, axis)
	}

	// accumulate per bin
	edges := utl.LinSpace(cmin, cmax, nbins+1)
	dc := (cmax - cmin) / float64(nbins)
	sum := make([]float64, nbins)
	cnt := make([]int, nbins)
	for _, p := range net.Pores {
		press, ok := flow.Pp[p.Id]
		if !ok {
			continue
		}
		ib := int((p.C(axis) - cmin) / dc)
		if ib > nbins-1 {
			ib = nbins - 1
		}
		sum[ib] += press
		cnt[ib]++
	}

	// means, dropping empty bins
	o = &Profile{Axis: axis}
	for ib := 0; ib < nbins; ib++ {
		if cnt[ib] == 0 {
			continue
		}
		o.X = append(o.X, (edges[ib]+edges[ib+1])/2.0)
		o.P = append(o.P, sum[ib]/float64(cnt[ib]))
		o.N = append(o.N, cnt[ib])
	}
	return
}

// String returns the profile as two-column text
func (o *Profile) String() (l string) {
	l = io.Sf("# mean pore pressure along axis %d\n", o.Axis)
	l += io.Sf("# %12s %18s\n", "x[voxel]", "p[Pa]")
	for i := range o.X {
		l += io.Sf("%14.6f %18.8e\n", o.X[i], o.P[i])
	}
	return
}

// Save writes the profile to dirout/<fnkey>-profile.dat, creating the
// directory if needed, and returns the full path
func (o *Profile) Save(dirout, fnkey string) string {
	fn := fnkey + "-profile.dat"
	io.WriteFileSD(dirout, fn, o.String())
	return filepath.Join(dirout, fn)
}

// Plot draws the profile and saves the figure to dirout/<fnkey>-profile.png
func (o *Profile) Plot(dirout, fnkey string) {
	plt.Reset(false, nil)
	plt.Plot(o.X, o.P, &plt.A{C: "b", Ls: "-", M: "."})
	plt.Gll(io.Sf("$x_{%d}$ [voxel]", o.Axis), "$p$ [Pa]", nil)
	plt.Save(dirout, fnkey+"-profile")
}

// FlowHistogram returns a text histogram of the throat flow magnitudes
// of one run. nbins sets the number of bins and barlen the width of the
// longest bar.
func FlowHistogram(flow *pnm.FlowData, nbins, barlen int) (string, error) {
	if flow == nil || len(flow.Qt) == 0 {
		return "", chk.Err("solved throat flows are needed to build a histogram")
	}
	if nbins < 1 || barlen < 1 {
		return "", chk.Err("number of bins (%d) and bar length (%d) must be positive", nbins, barlen)
	}
	vals := make([]float64, 0, len(flow.Qt))
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for _, q := range flow.Qt {
		vals = append(vals, q)
		if q < lo {
			lo = q
		}
		if q > hi {
			hi = q
		}
	}

	// pad the upper station so the largest flow falls inside the last bin
	pad := (hi - lo) * 1e-9
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*1e-9, math.SmallestNonzeroFloat64)
	}
	hist := rnd.Histogram{Stations: utl.LinSpace(lo, hi+pad, nbins+1)}
	hist.Count(vals, true)
	return rnd.TextHist(hist.GenLabels("%.3e"), hist.Counts, barlen), nil
}
