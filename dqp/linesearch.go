// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

// Evaluator is implemented by the outer driver. It evaluates the dual
// objective φ(α) = Φ(λ + α·Δλ) along the current Newton direction Δλ by
// running each stage's DoStep at α, and returns both the value and the
// directional derivative ⟨∇φ(α), Δλ⟩ at that step (spec.md §4.4, §9
// aliasing note). DoStep writes the trial point into each stage's live
// z, y and active set; no scratch copy is kept, and the driver runs
// DoStep again at the accepted α after the search returns.
type Evaluator interface {
	Eval(alpha float64) (phi, slope float64)
}

// lsParams bundles the quantities every strategy needs beyond Options:
// the value and slope at α=0, the smallest positive active-set-change
// step αMin (spec.md §4.4's kink locator, +Inf if none), the norm of
// Δλ, and whether this iteration's Hessian was regularized (which
// suppresses the full-step shortcut).
type lsParams struct {
	phi0, slope0 float64
	alphaMin     float64
	dzNorm       float64
	regularized  bool
}

// minProgress is the combined absolute/relative ascent threshold a trial
// step must clear (spec.md §6: lineSearch{MinAbsProgress,MinRelProgress}).
func (p *lsParams) minProgress(opt *Options) float64 {
	rel := opt.LineSearchMinRelProgress * absf(p.phi0)
	if opt.LineSearchMinAbsProgress > rel {
		return opt.LineSearchMinAbsProgress
	}
	return rel
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// accelerateBracket is the backtracking pass shared by the two
// accelerated strategies (spec.md §4.4): "A backtracking pass first
// narrows αMax to the last non-ascending step divided by
// reductionFactor." Starting at α=1, it shrinks while φ(α) stays at or
// below φ(0) and stops at the first ascending trial.
func accelerateBracket(eval Evaluator, p lsParams, opt *Options) float64 {
	alpha := 1.0
	lastNonAscending := -1.0
	for iter := 0; iter < opt.MaxNumLineSearchIterations; iter++ {
		phi, _ := eval.Eval(alpha)
		if phi <= p.phi0 {
			lastNonAscending = alpha
			alpha *= opt.LineSearchReductionFactor
			continue
		}
		break
	}
	if lastNonAscending > 0 {
		return lastNonAscending / opt.LineSearchReductionFactor
	}
	return 1
}

// runLineSearch dispatches to the strategy named by opt.LSType, applying
// the full-step shortcut first (spec.md §4.4: "If αMin > 1−equalityTolerance
// and the Hessian was not regularized, accept α=1 without search").
func runLineSearch(eval Evaluator, p lsParams, opt *Options) (alpha, phi float64, status Status) {
	if p.alphaMin > 1-opt.EqualityTolerance && !p.regularized {
		phi, _ = eval.Eval(1)
		return 1, phi, OK
	}
	switch opt.LSType {
	case LSBacktracking:
		return backtrackingSearch(eval, p, opt, false)
	case LSBacktrackingWithASChange:
		return backtrackingSearch(eval, p, opt, true)
	case LSGoldenSection, LSGradientBisection:
		return bisectionSearch(eval, p, opt, false)
	case LSAcceleratedGradientBisection:
		return bisectionSearch(eval, p, opt, true)
	case LSGrid:
		return gridSearch(eval, p, opt, false)
	case LSAcceleratedGrid:
		return gridSearch(eval, p, opt, true)
	default:
		return backtrackingSearch(eval, p, opt, false)
	}
}
