// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dqp implements the dual Newton strategy core: the outer
// Newton iteration over stacked costate multipliers, the block-tridiagonal
// Cholesky factorization of the reduced Hessian, the reduced gradient and
// Hessian assembly, and the line-search family that globalizes each
// Newton step. Problem assembly from raw MPC matrices lives in the
// sibling package problem; the per-stage box-constrained solve lives in
// clip.
package dqp

import (
	"github.com/cpmech/dualqp/clip"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Stage holds one time point k ∈ {0..N}'s primal data, bounds, coupling
// to stage k+1, and the clipping solver operating on it. All sizes are
// fixed at setup; a Stage is mutated in place across solves and never
// reallocated on the hot path.
type Stage struct {
	Index int // k
	NV    int // n_V(k): primal dimension

	Sparsity clip.Sparsity
	Hdiag    []float64 // diagonal of H_k, length NV
	G        []float64 // linear cost, length NV
	ZLow     []float64
	ZUpp     []float64

	// coupling to stage k+1; nil for the final stage k == N
	C  [][]float64 // n_X × NV, dense
	NX int         // rows of C (state dimension)
	Cc []float64   // affine offset c_k, length NX

	// λ_k slot for the coupling x_{k+1} = C_k z_k + c_k; nil for k == N.
	// Allocated zeroed at setup and not written by the driver, whose
	// Driver.Lambda holds the current multipliers.
	Lambda []float64

	Solver clip.StageSolver

	// activeSet is the solver's own ternary active-set vector as of the
	// last DoStep; prevActiveSet is the snapshot from the previous outer
	// iteration, compared to derive ActSetHasChanged.
	prevActiveSet    []int8
	ActSetHasChanged bool

	// dz is the primal direction induced by the Δλ-step in the stage's
	// effective linear term; scratch owned by the stage, loaned to the
	// driver during a single outer iteration.
	Dz []float64

	// qStep is the scratch linear-term increment passed to the stage
	// solver's SolveUnconstrained; owned by the stage.
	qStep []float64

	// dqStep is scratch for the linear term induced by Δλ alone, used by
	// the driver to derive Dz without a second SolveUnconstrained call
	// (dqp/driver.go: computeDeltaQSteps).
	dqStep []float64

	// invDiag and colScratch are gradhess.go's assembly scratch: the
	// projected H⁻¹ diagonal (length NV) and one column of C (length NX).
	// Both are owned by the stage so AssembleHessian never allocates.
	invDiag    []float64
	colScratch []float64
}

// NewStage allocates a stage of primal dimension nv. H must be dense and
// resolve to Diagonal or Identity sparsity (spec.md §4.1 precondition);
// otherwise setup panics, per spec.md §6 "stage is rejected".
func NewStage(index, nv int, H [][]float64, g, zLow, zUpp []float64, C [][]float64, c []float64, tol float64) *Stage {
	if len(g) != nv || len(zLow) != nv || len(zUpp) != nv {
		chk.Panic("dqp: stage %d: g/zLow/zUpp must have length %d", index, nv)
	}
	sp := clip.DetectSparsity(H, tol)
	if !sp.SupportsClipping() {
		chk.Panic("dqp: stage %d: Hessian sparsity %q unsupported by clipping solver", index, sp)
	}
	s := &Stage{
		Index:         index,
		NV:            nv,
		Sparsity:      sp,
		Hdiag:         clip.DiagOf(H),
		G:             la.VecClone(g),
		ZLow:          la.VecClone(zLow),
		ZUpp:          la.VecClone(zUpp),
		prevActiveSet: make([]int8, nv),
		Dz:            make([]float64, nv),
		qStep:         make([]float64, nv),
		dqStep:        make([]float64, nv),
		invDiag:       make([]float64, nv),
	}
	if C != nil {
		s.NX = len(C)
		s.C = la.MatAlloc(s.NX, nv)
		la.MatCopy(s.C, 1, C)
		s.Cc = la.VecClone(c)
		s.Lambda = make([]float64, s.NX)
		s.colScratch = make([]float64, s.NX)
	}
	s.Solver = clip.New("clipping", nv, s.Hdiag, s.G, s.ZLow, s.ZUpp)
	return s
}

// SolveUnconstrained runs the stage's capability solver with the current
// qStep (see Stage.SetQStep) and returns zUnconstrained.
func (s *Stage) SolveUnconstrained() []float64 {
	z, err := s.Solver.SolveUnconstrained(s.qStep)
	if err != nil {
		chk.Panic("dqp: stage %d: %v", s.Index, err)
	}
	return z
}

// SetQStep overwrites the stage's linear-term increment buffer; the
// caller (Driver.computeQSteps) fills qStep from the neighboring λ blocks
// before calling SolveUnconstrained.
func (s *Stage) SetQStep(qStep []float64) {
	copy(s.qStep, qStep)
}

// DoStep delegates to the stage's capability solver and refreshes the
// ternary active set.
func (s *Stage) DoStep(alpha float64) {
	s.Solver.DoStep(alpha, s.Dz)
}

// UpdateActiveSet compares the solver's current active set against the
// previous iteration's snapshot, records ActSetHasChanged, and rolls the
// snapshot forward.
func (s *Stage) UpdateActiveSet() {
	cur := s.Solver.ActiveSet()
	changed := false
	for i := range cur {
		if cur[i] != s.prevActiveSet[i] {
			changed = true
			break
		}
	}
	s.ActSetHasChanged = changed
	copy(s.prevActiveSet, cur)
}

// InvalidateActiveSet forces ActSetHasChanged on the next UpdateActiveSet
// comparison by poisoning the snapshot; used by the data-update contract
// (problem.UpdateStage) per spec.md §6: "if matrices change, all stored
// previous active sets are invalidated so the next factorization is
// full".
func (s *Stage) InvalidateActiveSet() {
	for i := range s.prevActiveSet {
		s.prevActiveSet[i] = 2 // not a valid tag in {-1,0,1}
	}
	s.ActSetHasChanged = true
}

// Resolve recomputes zUnconstrained from the stage's current qStep and
// steps with zero direction, producing a fresh feasible point. Called
// during driver bootstrap and after an external data update invalidates
// the previous point (problem.UpdateStage, problem.ShiftHorizon).
func (s *Stage) Resolve() {
	s.SolveUnconstrained()
	for i := range s.Dz {
		s.Dz[i] = 0
	}
	s.DoStep(1)
	s.UpdateActiveSet()
}

// Z returns the stage's current feasible primal solution.
func (s *Stage) Z() []float64 { return s.Solver.Z() }

// Y returns the stage's current bound-multiplier pairs.
func (s *Stage) Y() []float64 { return s.Solver.Y() }

