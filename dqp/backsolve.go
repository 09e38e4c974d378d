// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "github.com/cpmech/gosl/la"

// backSolveScratch holds every buffer backSolve touches: the forward
// elimination intermediates w, the backward substitution results x, and
// a pair of single-block scratch vectors reused across block-columns.
// Owned by Driver and allocated once in NewDriver (spec.md §5: no
// allocation on the hot path).
type backSolveScratch struct {
	w, x          [][]float64 // n blocks of nx
	rhs, coupling []float64   // nx, reused per block-column
}

func newBackSolveScratch(n, nx int) *backSolveScratch {
	s := &backSolveScratch{
		w:        make([][]float64, n),
		x:        make([][]float64, n),
		rhs:      make([]float64, nx),
		coupling: make([]float64, nx),
	}
	for k := 0; k < n; k++ {
		s.w[k] = make([]float64, nx)
		s.x[k] = make([]float64, nx)
	}
	return s
}

// backSolve solves M x = b given M's Cholesky factor L, writing the
// result into out (caller-owned, e.g. Driver.DLambda), and dispatching
// on which variant produced L: forward factorization's diagonal blocks
// are lower triangular and pair with a lower-then-upper solve; reverse
// factorization's are upper triangular and pair with an upper-then-lower
// solve (spec.md §4.3). Both reduce, block by block, to the same pair of
// per-block triangular solves; only the triangular direction differs.
// sc supplies every scratch buffer; no allocation occurs here.
func backSolve(L *BlockTriDiag, alg FacAlg, b, out []float64, sc *backSolveScratch, opt *Options) {
	n, nx := L.N, L.NX

	for k := 0; k < n; k++ {
		rhs := sc.rhs
		copy(rhs, b[k*nx:(k+1)*nx])
		if k > 0 {
			la.MatVecMul(sc.coupling, -1, L.Sub[k], sc.w[k-1])
			for i := 0; i < nx; i++ {
				rhs[i] += sc.coupling[i]
			}
		}
		if alg == FacBandForward {
			solveLower(L.Diag[k], rhs, sc.w[k], opt)
		} else {
			solveUpper(L.Diag[k], rhs, sc.w[k], opt)
		}
	}

	for k := n - 1; k >= 0; k-- {
		rhs := sc.rhs
		copy(rhs, sc.w[k])
		if k < n-1 {
			addTransposeMulSub(rhs, L.Sub[k+1], sc.x[k+1])
		}
		if alg == FacBandForward {
			solveLowerTranspose(L.Diag[k], rhs, sc.x[k], opt)
		} else {
			solveUpperTranspose(L.Diag[k], rhs, sc.x[k], opt)
		}
	}

	for k := 0; k < n; k++ {
		copy(out[k*nx:(k+1)*nx], sc.x[k])
	}
}

// addTransposeMulSub computes rhs -= A^T v, in place.
func addTransposeMulSub(rhs []float64, A [][]float64, v []float64) {
	nr := len(A)
	nc := len(rhs)
	for i := 0; i < nr; i++ {
		if v[i] == 0 {
			continue
		}
		for j := 0; j < nc; j++ {
			rhs[j] -= A[i][j] * v[i]
		}
	}
}

// zeroCurvatureSkip reports whether a pivot exceeds the QPDUNES_INFTY
// sentinel, in which case spec.md §4.3 says the corresponding coordinate
// of the solution is set to zero instead of divided by it.
func zeroCurvatureSkip(pivot float64, opt *Options) bool {
	return pivot > opt.QPDUNESInfty
}

// solveLower solves a lower-triangular (row >= col) block system L x = rhs
// by forward substitution, writing into out.
func solveLower(L [][]float64, rhs, out []float64, opt *Options) {
	n := len(rhs)
	for i := 0; i < n; i++ {
		if zeroCurvatureSkip(L[i][i], opt) {
			out[i] = 0
			continue
		}
		s := rhs[i]
		for l := 0; l < i; l++ {
			s -= L[i][l] * out[l]
		}
		out[i] = s / L[i][i]
	}
}

// solveLowerTranspose solves Lᵀ x = rhs (L lower triangular) by backward
// substitution, writing into out.
func solveLowerTranspose(L [][]float64, rhs, out []float64, opt *Options) {
	n := len(rhs)
	for i := n - 1; i >= 0; i-- {
		if zeroCurvatureSkip(L[i][i], opt) {
			out[i] = 0
			continue
		}
		s := rhs[i]
		for l := i + 1; l < n; l++ {
			s -= L[l][i] * out[l]
		}
		out[i] = s / L[i][i]
	}
}

// solveUpper solves an upper-triangular (row <= col) block system U x = rhs
// by backward substitution, writing into out.
func solveUpper(U [][]float64, rhs, out []float64, opt *Options) {
	n := len(rhs)
	for i := n - 1; i >= 0; i-- {
		if zeroCurvatureSkip(U[i][i], opt) {
			out[i] = 0
			continue
		}
		s := rhs[i]
		for l := i + 1; l < n; l++ {
			s -= U[i][l] * out[l]
		}
		out[i] = s / U[i][i]
	}
}

// solveUpperTranspose solves Uᵀ x = rhs (U upper triangular) by forward
// substitution, writing into out.
func solveUpperTranspose(U [][]float64, rhs, out []float64, opt *Options) {
	n := len(rhs)
	for i := 0; i < n; i++ {
		if zeroCurvatureSkip(U[i][i], opt) {
			out[i] = 0
			continue
		}
		s := rhs[i]
		for l := 0; l < i; l++ {
			s -= U[l][i] * out[l]
		}
		out[i] = s / U[i][i]
	}
}
