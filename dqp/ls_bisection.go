// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "math"

// bisectionSearch implements GOLDEN_SECTION/GRADIENT_BISECTION and, when
// accelerated is set, ACCELERATED_GRADIENT_BISECTION (spec.md §4.4):
//
// Phase 1 (skipped when accelerated; replaced by accelerateBracket):
// while the slope at αMax exceeds the stationarity tolerance, grow αMax
// by increaseFactor until descent or lineSearchMaxStepSize.
//
// Phase 2: bisect on [αMin, αMax], evaluating the slope at the midpoint
// and discarding the half with the wrong sign, until |slope|/max(1,‖Δλ‖)
// clears stationarityTolerance.
func bisectionSearch(eval Evaluator, p lsParams, opt *Options, accelerated bool) (alpha, phi float64, status Status) {
	alphaMax := 1.0
	if accelerated {
		alphaMax = accelerateBracket(eval, p, opt)
	} else {
		for iter := 0; iter < opt.MaxNumLineSearchIterations; iter++ {
			_, slope := eval.Eval(alphaMax)
			if slope/maxf(1, p.dzNorm) <= opt.LineSearchStationarityTol {
				break
			}
			if alphaMax >= opt.LineSearchMaxStepSize {
				phi, _ = eval.Eval(alphaMax)
				return alphaMax, phi, LSMaxStep
			}
			alphaMax *= opt.LineSearchIncreaseFactor
			if alphaMax > opt.LineSearchMaxStepSize {
				alphaMax = opt.LineSearchMaxStepSize
			}
		}
	}

	alphaLo := p.alphaMin
	if math.IsInf(alphaLo, 1) {
		alphaLo = 0
	}
	alphaHi := alphaMax
	alpha = 0.5 * (alphaLo + alphaHi)
	for iter := 0; iter < opt.MaxNumLineSearchRefinementIterations; iter++ {
		alpha = 0.5 * (alphaLo + alphaHi)
		var slope float64
		phi, slope = eval.Eval(alpha)
		if absf(slope)/maxf(1, p.dzNorm) <= opt.LineSearchStationarityTol {
			return alpha, phi, OK
		}
		if slope > 0 {
			alphaLo = alpha
		} else {
			alphaHi = alpha
		}
	}
	return alpha, phi, LSMaxIter
}
