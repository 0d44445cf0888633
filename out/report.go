// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements post-processing of permeability results: the
// report table, the pressure profile along the flow axis and the throat
// flow histogram
package out

import (
	"path/filepath"

	"github.com/mattemangia/GeoscientistToolkit-sub013/pnm"

	"github.com/cpmech/gosl/io"
)

// Report returns the result table of one calculation. name labels the
// table; typically the simulation or network name.
func Report(name string, res *pnm.Results) (l string) {
	nfield := 92
	thick := io.StrThickLine(nfield)
	thin := io.StrThinLine(nfield)
	l = thick
	l += io.Sf(" permeability results: %q\n", name)
	l += thin
	l += io.Sf(" status           = %v\n", res.Status)
	if res.Message != "" {
		l += io.Sf(" message          = %v\n", res.Message)
	}
	l += io.Sf(" pores            = %d (inlet: %d, outlet: %d)\n", res.Np, res.Nin, res.Nout)
	l += io.Sf(" throats          = %d (closed by stress: %d)\n", res.Nt, res.Nclosed)
	l += io.Sf(" tortuosity       = %.4f\n", res.Tau)
	l += io.Sf(" sample length    = %g [m]\n", res.L)
	l += io.Sf(" sample area      = %g [m²]\n", res.A)
	if res.PoreRed > 0 || res.ThroatRed > 0 {
		l += io.Sf(" pore reduction   = %.2f %%\n", res.PoreRed)
		l += io.Sf(" throat reduction = %.2f %%\n", res.ThroatRed)
	}
	if len(res.Runs) > 0 {
		l += thin
		l += io.Sf(" %-17s %14s %14s %13s %6s %7s\n", "engine", "k [mD]", "k/τ² [mD]", "Q [m³/s]", "it", "solver")
		l += thin
		for i := range res.Runs {
			run := &res.Runs[i]
			solver := "cpu"
			if run.Gpu {
				solver = "gpu"
			}
			l += io.Sf(" %-17v %14.6f %14.6f %13.6e %6d %7s\n", run.Engine, run.PermMD, run.PermCorrMD, run.Qtot, run.It, solver)
			switch {
			case !run.Ok:
				l += io.Sf("   FAILED: %v\n", run.Warn)
			case run.Warn != "":
				l += io.Sf("   note: %v\n", run.Warn)
			}
		}
	}
	l += thick
	return
}

// SaveReport writes the report table to dirout/<fnkey>.res, creating the
// directory if needed, and returns the full path
func SaveReport(dirout, fnkey, table string) string {
	fn := fnkey + ".res"
	io.WriteFileSD(dirout, fn, table)
	return filepath.Join(dirout, fn)
}
