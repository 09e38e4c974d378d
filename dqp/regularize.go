// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "github.com/cpmech/gosl/chk"

// regularizePivot implements the inner-loop regularization check shared
// by both Cholesky variants (spec.md §4.3 step 2). Under
// RegSingularDirections a too-small pivot is bumped by RegParam and the
// block is flagged regularized; any other regType fails with
// DivisionByZero so the driver can apply its own outer-loop strategy
// (Levenberg-Marquardt, gradient-step fallback).
//
// This resolves spec.md §9's open question on the inconsistent
// QPDUNES_INFTY sentinel: both variants use the same additive RegParam
// bump here. The back-solve (backsolve.go) divides by a bumped pivot like
// any other; it zeros a coordinate only for a pivot above QPDUNESInfty,
// which a RegParam bump does not produce, so a regularized coordinate is
// not zeroed.
func regularizePivot(s float64, opt *Options, regularized *bool) (float64, Status) {
	if s >= opt.NewtonHessDiagRegTolerance {
		return s, OK
	}
	if opt.RegType == RegSingularDirections {
		*regularized = true
		return s + opt.RegParam, OK
	}
	return s, DivisionByZero
}

// applyLevenbergMarquardt adds RegParam to every diagonal entry of every
// diagonal block of M, in place, per spec.md §4.3's outer regularization:
// "Levenberg–Marquardt (add regParam to every diagonal of M, refactor)".
func applyLevenbergMarquardt(M *BlockTriDiag, regParam float64) {
	for k := 0; k < M.N; k++ {
		for i := 0; i < M.NX; i++ {
			M.Diag[k][i][i] += regParam
		}
	}
}

// regularizeAndRefactor runs the outer regularization policy named by
// opt.RegType after a plain factorization attempt failed or produced a
// too-small minimum diagonal. It returns retry=true with OK when
// the caller should retry the same factorization, NewtonNoAscent-adjacent
// RegGradientStep is signaled by gradientStep=true (the driver substitutes
// the gradient direction for this iteration instead of refactoring), and
// any other case propagates the original failing status.
func regularizeAndRefactor(M *BlockTriDiag, opt *Options, failing Status) (retry, gradientStep bool, status Status) {
	switch opt.RegType {
	case RegLevenbergMarquardt, RegNormalizedLM:
		applyLevenbergMarquardt(M, opt.RegParam)
		return true, false, OK
	case RegGradientStep:
		return false, true, OK
	case RegSingularDirections:
		// handled inline during factorization; reaching here means the
		// factorization still failed after in-loop regularization, which
		// is unrecoverable.
		return false, false, failing
	case RegUnconstrainedHessian:
		return false, false, failing
	default:
		chk.Panic("dqp: unknown regType %v", opt.RegType)
		return false, false, failing
	}
}
