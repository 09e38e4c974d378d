// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "github.com/cpmech/gosl/io"

// IterationRecord is one row of the outer driver's iteration log
// (spec.md §6 "Outputs"): gradient norm, step norm, step size, λ norm,
// objective value, number of active constraints, number of constraints
// that changed activity, the last changed block index, and whether the
// Hessian was regularized this iteration.
type IterationRecord struct {
	Iter               int
	GradNorm           float64
	StepNorm           float64
	StepSize           float64
	LambdaNorm         float64
	Objective          float64
	NumActive          int
	NumChanged         int
	LastActSetChangeIdx int
	Regularized        bool
}

// printLogHeader writes the fixed-width header row, in the style of
// fem/s_implicit.go's `io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "largFb", "Lδu")`.
func printLogHeader() {
	io.Pf("\n%6s%16s%16s%10s%16s%16s%6s%6s\n",
		"it", "gradNorm", "stepNorm", "alpha", "lamNorm", "objective", "nAct", "nChg")
}

// printLogRow writes one colored iteration row: green on optimality,
// red when the Hessian was regularized, plain otherwise.
func printLogRow(r IterationRecord, optimal bool) {
	line := io.Sf("%6d%16.8e%16.8e%10.4f%16.8e%16.8e%6d%6d",
		r.Iter, r.GradNorm, r.StepNorm, r.StepSize, r.LambdaNorm, r.Objective, r.NumActive, r.NumChanged)
	switch {
	case optimal:
		io.PfGreen("%s\n", line)
	case r.Regularized:
		io.PfRed("%s\n", line)
	default:
		io.Pf("%s\n", line)
	}
}

// logErrCond logs msg and records it as the driver's last error when cond
// holds, mirroring the call-site contract seen throughout
// fem/s_implicit.go: `if LogErr(d.LinSol.Fact(), "factorisation") { return }`.
func (d *Driver) logErrCond(cond bool, msg string, args ...interface{}) bool {
	if !cond {
		return false
	}
	d.lastErrMsg = io.Sf(msg, args...)
	if d.Options.Verbose {
		io.PfRed("%s\n", d.lastErrMsg)
	}
	return true
}
