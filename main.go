// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/mattemangia/GeoscientistToolkit-sub013/gpu"
	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"
	"github.com/mattemangia/GeoscientistToolkit-sub013/out"
	"github.com/mattemangia/GeoscientistToolkit-sub013/pnm"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
			os.Exit(1)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "examples/tube/tube", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	savePlot := io.ArgToBool(3, false)
	doprof := io.ArgToInt(4, 0)

	// message
	if verbose {
		io.PfWhite("\nGoperm Version 1.0 -- Pore-Network Absolute Permeability\n")
		io.Pf("Copyright 2026 The Goperm Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"save pressure profile figure", "savePlot", savePlot,
			"profiling: 0=none 1=CPU 2=MEM", "doprof", doprof,
		))
	}

	// profiling?
	if doprof > 0 {
		defer utl.DoProf(false, doprof)()
	}

	// simulation deck, materials and network
	sim := inp.ReadSim(fnamepath, erasePrev)
	mdb, err := sim.ReadMatFile()
	if err != nil {
		chk.Panic("cannot read materials:\n%v", err)
	}
	net, err := sim.ReadNetFile()
	if err != nil {
		chk.Panic("cannot read network:\n%v", err)
	}
	if verbose {
		io.Pf("\nnetwork %q\n%v", net.Name, net.Stats().String())
		net.CheckGeometry()
	}

	// device context
	var gctx *gpu.Context
	if sim.Solver.Type == "gpu" {
		gctx = gpu.Default()
	}

	// options
	opt, err := pnm.OptionsFromSim(sim, mdb, gctx)
	if err != nil {
		chk.Panic("cannot assemble solver options:\n%v", err)
	}
	opt.Silent = !verbose

	// calculate
	res := pnm.Calculate(net, opt)

	// report
	table := out.Report(sim.Data.Sim, &res)
	if verbose {
		io.Pf("\n%v", table)
	}
	fres := out.SaveReport(sim.Data.DirOut, sim.FnKey, table)
	if verbose {
		io.Pf("results written to %v\n", fres)
	}

	// pressure profile and flow histogram of the first healthy run
	for i := range res.Runs {
		run := &res.Runs[i]
		if !run.Ok {
			continue
		}
		prof, perr := out.NewProfile(net, run.Flow, opt.Axis, 20)
		if perr != nil {
			io.Pfyel("cannot build pressure profile: %v\n", perr)
			break
		}
		fprof := prof.Save(sim.Data.DirOut, sim.FnKey)
		if verbose {
			io.Pf("profile written to %v\n", fprof)
			if hist, herr := out.FlowHistogram(run.Flow, 10, 50); herr == nil {
				io.Pf("\nflow histogram (%v) [m³/s]\n%v\n", run.Engine, hist)
			}
		}
		if savePlot {
			prof.Plot(sim.Data.DirOut, sim.FnKey)
		}
		break
	}

	// degraded runs keep a clean exit status; the report carries the warnings
	if res.Status != pnm.StatusOK && verbose {
		io.Pfyel("status: %v\n", res.Status)
	}
}
