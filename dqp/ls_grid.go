// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// gridSearch implements GRID and, when accelerated is set,
// ACCELERATED_GRID (spec.md §4.4): evaluate φ at nGrid equidistant
// points in [αMin, αMax] and keep the maximizer. The accelerated variant
// narrows αMax with the same backtracking pass the bisection family
// uses before laying out the grid.
func gridSearch(eval Evaluator, p lsParams, opt *Options, accelerated bool) (alpha, phi float64, status Status) {
	alphaMax := opt.LineSearchMaxStepSize
	if accelerated {
		alphaMax = accelerateBracket(eval, p, opt)
	}
	alphaMin := p.alphaMin
	if math.IsInf(alphaMin, 1) {
		alphaMin = 0
	}

	grid := utl.LinSpace(alphaMin, alphaMax, opt.LineSearchNbrGridPoints)
	bestAlpha := alphaMin
	bestPhi := math.Inf(-1)
	for _, a := range grid {
		v, _ := eval.Eval(a)
		if v > bestPhi {
			bestPhi = v
			bestAlpha = a
		}
	}
	return bestAlpha, bestPhi, OK
}
