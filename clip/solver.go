// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clip implements the clipping stage solver: a closed-form
// box-constrained QP solver that exploits diagonal (or identity) stage
// Hessians. It is the sole concrete implementation of the StageSolver
// capability; alternative solvers (e.g. a dense active-set fallback) are
// pluggable behind the same capability without the core ever depending
// on their concrete types.
package clip

import "github.com/cpmech/gosl/chk"

// StageSolver is the capability the dual Newton core consumes from a
// per-stage QP solver: solve the unconstrained problem for a given
// linear-term increment, execute a step of a given length along a given
// direction, and report the smallest positive step length along a
// direction that would flip any component's active-set status.
type StageSolver interface {
	// SolveUnconstrained computes zUnconstrained = -H⁻¹(g + qStep) and
	// caches g + qStep as the new effective linear term.
	SolveUnconstrained(qStep []float64) (zUnconstrained []float64, err error)

	// DoStep clips zUnconstrained+α·dz to the bounds, writes the result
	// into z, and updates the bound multipliers y and the effective
	// constant term p (q is left as SolveUnconstrained cached it).
	DoStep(alpha float64, dz []float64)

	// MinStepsize returns the smallest positive α along dz at which the
	// unconstrained trajectory zUnconstrained+α·dz crosses a bound, or
	// +Inf if no crossing exists.
	MinStepsize(dz []float64) float64

	// Z returns the current (feasible) primal solution.
	Z() []float64

	// Y returns the current bound-multiplier pairs, length 2n.
	Y() []float64

	// ActiveSet returns the ternary active-set vector, one entry per
	// variable: -1 lower-active, 0 inactive, +1 upper-active.
	ActiveSet() []int8

	// Q returns the effective stage linear term g+qStep cached by the
	// last SolveUnconstrained call.
	Q() []float64

	// P returns the effective stage constant term cached by the last
	// DoStep call.
	P() float64

	// ZUncons returns the unconstrained primal cached by the last
	// SolveUnconstrained call.
	ZUncons() []float64
}

// allocators holds factories for named stage-solver capabilities,
// registered by init() the way msolid registers constitutive models.
var allocators = make(map[string]func(n int, Hdiag, g, zLow, zUpp []float64) StageSolver)

// Register adds a stage-solver allocator under a name.
func Register(name string, alloc func(n int, Hdiag, g, zLow, zUpp []float64) StageSolver) {
	allocators[name] = alloc
}

// New allocates a registered stage solver by name.
func New(name string, n int, Hdiag, g, zLow, zUpp []float64) StageSolver {
	alloc, ok := allocators[name]
	if !ok {
		chk.Panic("clip: no stage solver registered under name %q", name)
	}
	return alloc(n, Hdiag, g, zLow, zUpp)
}

func init() {
	Register("clipping", func(n int, Hdiag, g, zLow, zUpp []float64) StageSolver {
		return NewClipping(n, Hdiag, g, zLow, zUpp)
	})
}
