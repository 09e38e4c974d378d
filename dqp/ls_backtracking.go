// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "math"

// backtrackingSearch implements BACKTRACKING and, when withASChange is
// set, BACKTRACKING_WITH_AS_CHANGE (spec.md §4.4): starting at αMax=1,
// shrink α by reductionFactor until φ(α) clears minProgress over φ(0).
// Fails with LSMinStep once |Δλ|·|α−αMin| underflows equalityTolerance,
// or LSMaxIter once the iteration cap is hit. A trial below αMin is not a
// failure by itself.
func backtrackingSearch(eval Evaluator, p lsParams, opt *Options, withASChange bool) (alpha, phi float64, status Status) {
	progress := p.minProgress(opt)
	alpha = 1
	for iter := 0; iter < opt.MaxNumLineSearchIterations; iter++ {
		phi, _ = eval.Eval(alpha)
		if phi > p.phi0+progress {
			if withASChange && p.alphaMin < 1 && alpha < p.alphaMin {
				alpha = p.alphaMin
				phi, _ = eval.Eval(alpha)
			}
			return alpha, phi, OK
		}
		alpha *= opt.LineSearchReductionFactor
		if !math.IsInf(p.alphaMin, 1) && p.dzNorm*absf(alpha-p.alphaMin) < opt.EqualityTolerance {
			return alpha, phi, LSMinStep
		}
	}
	return alpha, phi, LSMaxIter
}
