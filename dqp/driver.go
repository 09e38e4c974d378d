// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Driver is the outer dual Newton iteration over stages[0..N]. It owns
// the stacked costate multiplier λ (one n_X block per inter-stage
// coupling), the reduced Hessian and its Cholesky factor, and every
// scratch buffer the hot path touches; once Setup (via NewDriver)
// returns, the only per-iteration allocation is the grid line-search
// strategies' sample points (ls_grid.go) (spec.md §5).
type Driver struct {
	Options Options

	Stages []*Stage
	NX     int // state dimension shared by every coupling
	N      int // number of couplings, i.e. len(Stages)-1

	Lambda  []float64 // flat, N*NX
	DLambda []float64 // flat, N*NX — current Newton direction
	Grad    []float64 // flat, N*NX — reduced gradient at current λ

	M *BlockTriDiag // reduced Hessian
	L *BlockTriDiag // its Cholesky factor

	bs *backSolveScratch // backSolve's own buffers, allocated once here

	lastActSetChangeIdx int
	iter                int
	lastErrMsg          string
}

// NewDriver assembles a driver over stages 0..N (stages[N] is the final,
// uncoupled stage: its C/Cc/Lambda/NX fields are zero-valued). All
// non-final stages must share the same NX.
func NewDriver(stages []*Stage, opt Options) *Driver {
	n := len(stages) - 1
	nx := stages[0].NX
	d := &Driver{
		Options: opt,
		Stages:  stages,
		NX:      nx,
		N:       n,
		Lambda:  make([]float64, n*nx),
		DLambda: make([]float64, n*nx),
		Grad:    make([]float64, n*nx),
		M:       NewBlockTriDiag(n, nx),
		L:       NewBlockTriDiag(n, nx),
		bs:      newBackSolveScratch(n, nx),
	}
	d.bootstrap()
	return d
}

// bootstrap computes the stages' initial feasible point at λ=0, so the
// first AssembleGradient call reads a valid Z().
func (d *Driver) bootstrap() {
	d.computeQSteps(d.Lambda)
	for _, s := range d.Stages {
		s.Resolve()
	}
}

// Iter returns the number of outer iterations completed by the last
// Solve call.
func (d *Driver) Iter() int { return d.iter }

// Rebootstrap recomputes every stage's effective linear term and initial
// feasible point at the driver's current λ. Callers that mutate Stages
// or Lambda directly (problem.ShiftHorizon) must invoke this before the
// next Solve.
func (d *Driver) Rebootstrap() {
	d.bootstrap()
}

// computeQSteps fills every stage's effective linear-term increment from
// a (possibly trial) stacked λ: qStep_k = C_k^T λ_k − λ_{k-1} restricted
// to the leading n_X rows, λ_{-1} ≡ 0 and stage N has no C_N (spec.md
// §4.1/§4.2 coupling definition).
func (d *Driver) computeQSteps(lambda []float64) {
	for k, s := range d.Stages {
		qStep := s.qStep
		for i := range qStep {
			qStep[i] = 0
		}
		if k < d.N {
			la.MatTrVecMulAdd(qStep, 1, s.C, lambda[k*d.NX:(k+1)*d.NX])
		}
		if k > 0 {
			prev := lambda[(k-1)*d.NX : k*d.NX]
			for i := 0; i < d.NX; i++ {
				qStep[i] -= prev[i]
			}
		}
		s.SetQStep(qStep)
	}
}

// computeDeltaQSteps derives each stage's Dz directly from Δλ, exploiting
// the linearity of the unconstrained stage solve in λ: z_uncons(λ+Δλ) −
// z_uncons(λ) = −H⁻¹(qStep(Δλ)), so Dz never requires a second
// SolveUnconstrained call (and never disturbs the zUnconstrained cached
// at the current λ, which DoStep's trial formula depends on for the
// remainder of the iteration).
func (d *Driver) computeDeltaQSteps() {
	for k, s := range d.Stages {
		dq := s.dqStep
		for i := range dq {
			dq[i] = 0
		}
		if k < d.N {
			la.MatTrVecMulAdd(dq, 1, s.C, d.DLambda[k*d.NX:(k+1)*d.NX])
		}
		if k > 0 {
			prev := d.DLambda[(k-1)*d.NX : k*d.NX]
			for i := 0; i < d.NX; i++ {
				dq[i] -= prev[i]
			}
		}
		for i := range s.Dz {
			s.Dz[i] = -dq[i] / s.Hdiag[i]
		}
	}
}

// objectiveValue returns Φ(λ) = Σ_k p_k(λ) + Σ_k λ_k·c_k, the stages'
// minimized values plus the coupling constant the stage solves do not
// see (spec.md §4.4's φ).
func (d *Driver) objectiveValue() float64 {
	obj := 0.0
	for _, s := range d.Stages {
		obj += s.Solver.P()
	}
	for k := 0; k < d.N; k++ {
		s := d.Stages[k]
		lam := d.Lambda[k*d.NX : (k+1)*d.NX]
		for i := range s.Cc {
			obj += lam[i] * s.Cc[i]
		}
	}
	return obj
}

// Eval implements Evaluator for the line search: step every stage by α
// along the already-computed Dz, then recompute the reduced gradient at
// that trial point and dot it with Δλ for the slope. The stages' p still
// carry the linear term at the current λ, so objectiveValue alone is the
// Lagrangian at λ; adding α·slope moves it to λ+α·Δλ.
func (d *Driver) Eval(alpha float64) (phi, slope float64) {
	for _, s := range d.Stages {
		s.DoStep(alpha)
	}
	AssembleGradient(d.Stages, d.Grad)
	slope = la.VecDot(d.Grad, d.DLambda)
	phi = d.objectiveValue() + alpha*slope
	return phi, slope
}

// alphaMin returns the smallest positive step along Dz at which any
// stage's active set would change, the kink locator of spec.md §4.4.
func (d *Driver) alphaMin() float64 {
	min := math.Inf(1)
	for _, s := range d.Stages {
		if a := s.Solver.MinStepsize(s.Dz); a < min {
			min = a
		}
	}
	return min
}

// Solve runs the outer Newton iteration to convergence or failure
// (spec.md §4.5). It returns the terminal status; Lambda/Stages hold the
// solution on OptimalFound.
func (d *Driver) Solve() Status {
	opt := &d.Options
	for d.iter = 0; d.iter < opt.MaxIter; d.iter++ {
		AssembleGradient(d.Stages, d.Grad)
		gn := la.VecNorm(d.Grad)
		if gn < opt.StationarityTolerance {
			d.log(gn, 0, 0, true, 0, 0, false)
			return OptimalFound
		}

		regularized, status := d.computeDirection(gn)
		if status.Terminal() {
			d.logErrCond(true, "dqp: direction computation failed: %v", status)
			return status
		}

		d.computeDeltaQSteps()
		aMin := d.alphaMin()
		dzNorm := la.VecNorm(d.DLambda)

		params := lsParams{
			phi0:        d.objectiveValue(),
			slope0:      la.VecDot(d.Grad, d.DLambda),
			alphaMin:    aMin,
			dzNorm:      dzNorm,
			regularized: regularized,
		}
		alpha, _, lsStatus := runLineSearch(d, params, opt)
		if lsStatus.Terminal() {
			d.logErrCond(true, "dqp: line search failed: %v", lsStatus)
			return lsStatus
		}

		for i := range d.Lambda {
			d.Lambda[i] += alpha * d.DLambda[i]
		}
		for _, s := range d.Stages {
			s.DoStep(alpha)
		}
		d.computeQSteps(d.Lambda)
		for _, s := range d.Stages {
			s.SolveUnconstrained()
			s.DoStep(0) // same z; refreshes p with the linear term at the new λ
		}

		d.lastActSetChangeIdx = -1
		nChanged := 0
		nActive := 0
		for k, s := range d.Stages {
			s.UpdateActiveSet()
			if s.ActSetHasChanged {
				nChanged++
				if k > d.lastActSetChangeIdx {
					d.lastActSetChangeIdx = k
				}
			}
			for _, tag := range s.Solver.ActiveSet() {
				if tag != 0 {
					nActive++
				}
			}
		}

		d.log(gn, dzNorm, alpha, false, nActive, nChanged, regularized)
	}
	return IterationLimit
}

// computeDirection implements spec.md §4.5 step 1: within the configured
// prefix of initial gradient steps, Δλ is the gradient itself; otherwise
// it assembles/factors/back-solves the reduced Hessian, applying the
// outer regularization policy on failure.
func (d *Driver) computeDirection(gn float64) (regularized bool, status Status) {
	opt := &d.Options
	if d.iter < opt.NbrInitialGradientSteps {
		copy(d.DLambda, d.Grad)
		return false, OK
	}

	force := d.iter == 0
	AssembleHessian(d.Stages, d.M, force)

	for attempt := 0; attempt < 2; attempt++ {
		var st Status
		var reg bool
		if opt.NwtnHssnFacAlg == FacBandForward {
			reg, st = factorForward(d.M, d.L, opt)
		} else {
			startIdx := d.lastActSetChangeIdx
			if force || startIdx < 0 {
				startIdx = d.N - 1
			}
			reg, st = factorReverse(d.M, d.L, startIdx, opt)
		}
		regularized = regularized || reg
		if st == OK {
			backSolve(d.L, opt.NwtnHssnFacAlg, d.Grad, d.DLambda, d.bs, opt)
			return regularized, OK
		}

		retry, gradStep, regSt := regularizeAndRefactor(d.M, opt, st)
		if gradStep {
			copy(d.DLambda, d.Grad)
			return regularized, OK
		}
		if !retry {
			return regularized, regSt
		}
		regularized = true
	}
	return regularized, DivisionByZero
}

// log emits one IterationRecord row via printLogRow when verbose.
func (d *Driver) log(gn, stepNorm, alpha float64, optimal bool, nActive, nChanged int, regularized bool) {
	if !d.Options.Verbose {
		return
	}
	if d.iter == 0 {
		printLogHeader()
	}
	r := IterationRecord{
		Iter:                d.iter,
		GradNorm:            gn,
		StepNorm:            stepNorm,
		StepSize:            alpha,
		LambdaNorm:          la.VecNorm(d.Lambda),
		Objective:           d.objectiveValue(),
		NumActive:           nActive,
		NumChanged:          nChanged,
		LastActSetChangeIdx: d.lastActSetChangeIdx,
		Regularized:         regularized,
	}
	printLogRow(r, optimal)
}
