// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "math"

// factorReverse implements FAC_BAND_REVERSE (spec.md §4.3): a bottom-up
// block-tridiagonal Cholesky processing block-columns k = startIdx..0 and,
// within each, columns j = nx-1..0. Unlike the forward variant, L's
// diagonal blocks here are genuinely upper triangular (row <= col) —
// the mirror image of the forward sweep — which is why the matching
// back-solve (backsolve.go) runs upper-then-lower instead of
// lower-then-upper.
//
// startIdx lets the driver restart the sweep only from the last block
// whose active set changed (spec.md: "partial refactorization from the
// tail down to the first affected block"); blocks with index > startIdx
// keep the factor computed on a previous outer iteration.
//
// Grounded on original_source/ccs-c66x/qpDUNES/dual_qp.c's
// qpDUNES_factorizeNewtonHessianBottomUp. That source stores the mirrored
// triangle via a "transposed access" trick into the same flat lower-
// triangular slots as the forward variant; this rewrite instead stores L's
// diagonal blocks directly as upper triangular dense matrices, which needs
// no such trick since blocks here are plain [][]float64.
func factorReverse(M, L *BlockTriDiag, startIdx int, opt *Options) (regularized bool, status Status) {
	nx := M.NX
	if startIdx < 0 {
		return false, OK
	}
	if startIdx > M.N-1 {
		startIdx = M.N - 1
	}
	for k := startIdx; k >= 0; k-- {
		for j := nx - 1; j >= 0; j-- {
			s := M.Diag[k][j][j]
			for l := j + 1; l < nx; l++ {
				s -= L.Diag[k][j][l] * L.Diag[k][j][l]
			}
			if k < M.N-1 {
				for l := 0; l < nx; l++ {
					s -= L.Sub[k+1][l][j] * L.Sub[k+1][l][j]
				}
			}
			var st Status
			s, st = regularizePivot(s, opt, &regularized)
			if st != OK {
				return regularized, st
			}
			L.Diag[k][j][j] = math.Sqrt(s)

			for i := j - 1; i >= 0; i-- {
				sum := M.Diag[k][i][j]
				for l := j + 1; l < nx; l++ {
					sum -= L.Diag[k][i][l] * L.Diag[k][j][l]
				}
				if k < M.N-1 {
					for l := 0; l < nx; l++ {
						sum -= L.Sub[k+1][l][i] * L.Sub[k+1][l][j]
					}
				}
				L.Diag[k][i][j] = sum / L.Diag[k][j][j]
			}

			if k > 0 {
				for c := 0; c < nx; c++ {
					sum := M.Sub[k][j][c]
					for l := j + 1; l < nx; l++ {
						sum -= L.Diag[k][j][l] * L.Sub[k][l][c]
					}
					L.Sub[k][j][c] = sum / L.Diag[k][j][j]
				}
			}
		}
	}
	return regularized, OK
}
