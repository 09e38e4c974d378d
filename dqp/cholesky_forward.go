// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "math"

// factorForward implements FAC_BAND_FORWARD (spec.md §4.3): a full
// top-down block-tridiagonal Cholesky, one block-column k = 0..N-1 at a
// time, columns j = 0..nx-1 within each block processed top-down. L's
// diagonal blocks are genuinely lower triangular (row >= col).
//
// Grounded on original_source/ccs-c66x/qpDUNES/dual_qp.c's
// qpDUNES_factorizeNewtonHessian, restructured around dense [][]float64
// blocks instead of the original's flat striped array with macro-computed
// offsets.
func factorForward(M, L *BlockTriDiag, opt *Options) (regularized bool, status Status) {
	nx := M.NX
	for k := 0; k < M.N; k++ {
		for j := 0; j < nx; j++ {
			s := M.Diag[k][j][j]
			for l := 0; l < j; l++ {
				s -= L.Diag[k][j][l] * L.Diag[k][j][l]
			}
			if k > 0 {
				for l := 0; l < nx; l++ {
					s -= L.Sub[k][j][l] * L.Sub[k][j][l]
				}
			}
			var st Status
			s, st = regularizePivot(s, opt, &regularized)
			if st != OK {
				return regularized, st
			}
			L.Diag[k][j][j] = math.Sqrt(s)

			for i := j + 1; i < nx; i++ {
				sum := M.Diag[k][i][j]
				for l := 0; l < j; l++ {
					sum -= L.Diag[k][i][l] * L.Diag[k][j][l]
				}
				if k > 0 {
					for l := 0; l < nx; l++ {
						sum -= L.Sub[k][i][l] * L.Sub[k][j][l]
					}
				}
				L.Diag[k][i][j] = sum / L.Diag[k][j][j]
			}

			if k < M.N-1 {
				for i := 0; i < nx; i++ {
					sum := M.Sub[k+1][i][j]
					for l := 0; l < j; l++ {
						sum -= L.Sub[k+1][i][l] * L.Diag[k][j][l]
					}
					L.Sub[k+1][i][j] = sum / L.Diag[k][j][j]
				}
			}
		}
	}
	return regularized, OK
}
