// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clip

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Clipping is the closed-form box-constrained solver for one stage QP
// with a diagonal (or identity) Hessian:
//
//	minimize   1/2 zᵀHz + gᵀz
//	subject to zLow <= z <= zUpp
//
// H is stored as its diagonal only; callers must have already checked
// Sparsity.SupportsClipping on the original Hessian.
type Clipping struct {
	n     int
	Hdiag []float64
	G     []float64
	ZLow  []float64
	ZUpp  []float64

	zUnconstrained []float64
	z              []float64
	y              []float64 // pairs (lower, upper), length 2n
	q              []float64 // effective linear term g+qStep
	p              float64   // effective constant term
	activeSet      []int8
}

// NewClipping allocates a clipping solver over n variables. Hdiag, g,
// zLow, zUpp are not copied; they are the stage's own storage and are
// assumed stable for the solver's lifetime except where the stage's
// data-update contract explicitly replaces them.
func NewClipping(n int, Hdiag, g, zLow, zUpp []float64) *Clipping {
	return &Clipping{
		n:              n,
		Hdiag:          Hdiag,
		G:              g,
		ZLow:           zLow,
		ZUpp:           zUpp,
		zUnconstrained: make([]float64, n),
		z:              make([]float64, n),
		y:              make([]float64, 2*n),
		q:              la.VecClone(g),
		activeSet:      make([]int8, n),
	}
}

// SolveUnconstrained computes zUnconstrained = -H⁻¹(g+qStep).
func (o *Clipping) SolveUnconstrained(qStep []float64) ([]float64, error) {
	for i := 0; i < o.n; i++ {
		o.q[i] = o.G[i] + qStep[i]
		o.zUnconstrained[i] = -o.q[i] / o.Hdiag[i]
	}
	return o.zUnconstrained, nil
}

// DoStep clips zUnconstrained+α·dz to [zLow, zUpp], writes the feasible
// point into z, and updates the bound multipliers:
//
//	y_lower_i = max(0, H_ii·(zLow_i - zUnconstrained_i - α·dz_i))   if clipped low
//	y_upper_i = max(0, H_ii·(zUnconstrained_i + α·dz_i - zUpp_i))   if clipped high
//	0 otherwise
func (o *Clipping) DoStep(alpha float64, dz []float64) {
	o.p = 0
	for i := 0; i < o.n; i++ {
		trial := o.zUnconstrained[i] + alpha*dz[i]
		o.y[2*i] = 0
		o.y[2*i+1] = 0
		switch {
		case !math.IsInf(o.ZLow[i], -1) && trial < o.ZLow[i]:
			o.z[i] = o.ZLow[i]
			o.y[2*i] = o.Hdiag[i] * (o.ZLow[i] - trial)
			if o.y[2*i] < 0 {
				o.y[2*i] = 0
			}
			o.activeSet[i] = -1
		case !math.IsInf(o.ZUpp[i], 1) && trial > o.ZUpp[i]:
			o.z[i] = o.ZUpp[i]
			o.y[2*i+1] = o.Hdiag[i] * (trial - o.ZUpp[i])
			if o.y[2*i+1] < 0 {
				o.y[2*i+1] = 0
			}
			o.activeSet[i] = 1
		default:
			o.z[i] = trial
			o.activeSet[i] = 0
		}
		o.p += 0.5*o.Hdiag[i]*o.z[i]*o.z[i] + o.q[i]*o.z[i]
	}
}

// MinStepsize returns the smallest positive α at which the unconstrained
// trajectory zUnconstrained+α·dz crosses a bound, or +Inf if none.
func (o *Clipping) MinStepsize(dz []float64) float64 {
	alphaMin := math.Inf(1)
	for i := 0; i < o.n; i++ {
		if dz[i] == 0 {
			continue
		}
		if !math.IsInf(o.ZLow[i], -1) {
			if a := (o.ZLow[i] - o.zUnconstrained[i]) / dz[i]; a > 0 && a < alphaMin {
				alphaMin = a
			}
		}
		if !math.IsInf(o.ZUpp[i], 1) {
			if a := (o.ZUpp[i] - o.zUnconstrained[i]) / dz[i]; a > 0 && a < alphaMin {
				alphaMin = a
			}
		}
	}
	return alphaMin
}

func (o *Clipping) Z() []float64       { return o.z }
func (o *Clipping) Y() []float64       { return o.y }
func (o *Clipping) ActiveSet() []int8  { return o.activeSet }
func (o *Clipping) Q() []float64       { return o.q }
func (o *Clipping) P() float64         { return o.p }
func (o *Clipping) ZUncons() []float64 { return o.zUnconstrained }
