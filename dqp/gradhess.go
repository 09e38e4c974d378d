// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "github.com/cpmech/gosl/la"

// BlockTriDiag stores the reduced Hessian (or its Cholesky factor) as a
// sequence of n_X×n_X dense blocks, one diagonal block and one
// sub-diagonal block per block-column, matching spec.md §4.2/4.3's
// storage layout. Upper blocks are implicit by symmetry and never
// materialized.
type BlockTriDiag struct {
	NX   int
	N    int // number of block-columns, k = 0..N-1
	Diag [][][]float64 // Diag[k], NX×NX, k = 0..N-1
	Sub  [][][]float64 // Sub[k], NX×NX, valid for k = 1..N-1; Sub[0] is nil
}

// NewBlockTriDiag allocates zeroed storage for n block-columns of size
// nx×nx.
func NewBlockTriDiag(n, nx int) *BlockTriDiag {
	b := &BlockTriDiag{NX: nx, N: n, Diag: make([][][]float64, n), Sub: make([][][]float64, n)}
	for k := 0; k < n; k++ {
		b.Diag[k] = la.MatAlloc(nx, nx)
		if k > 0 {
			b.Sub[k] = la.MatAlloc(nx, nx)
		}
	}
	return b
}

// projectedInvDiag fills s.invDiag with P_k = H_k⁻¹ restricted to inactive
// variables: 1/Hdiag_i where variable i is inactive, zero where a bound
// is active. Because stage Hessians are diagonal, the projection leaves
// P_k itself diagonal, which is what lets M[k,0]/M[k,-1] below reduce to
// closed-form dense products instead of a general triple matrix product.
// The result is s's own scratch buffer; callers must not retain it past
// their own use.
func projectedInvDiag(s *Stage) []float64 {
	as := s.Solver.ActiveSet()
	for i, tag := range as {
		if tag == 0 {
			s.invDiag[i] = 1 / s.Hdiag[i]
		} else {
			s.invDiag[i] = 0
		}
	}
	return s.invDiag
}

// AssembleGradient computes the reduced gradient blocks
// g_k^red = C_k z_k + c_k - z_{k+1}[0:NX], k = 0..N-1, into grad (a flat
// buffer of length N·NX, block k at grad[k*NX:(k+1)*NX]).
func AssembleGradient(stages []*Stage, grad []float64) {
	n := len(stages) - 1
	nx := stages[0].NX
	for k := 0; k < n; k++ {
		block := grad[k*nx : (k+1)*nx]
		la.MatVecMul(block, 1, stages[k].C, stages[k].Z())
		for i := 0; i < nx; i++ {
			block[i] += stages[k].Cc[i]
		}
		znext := stages[k+1].Z()
		for i := 0; i < nx; i++ {
			block[i] -= znext[i]
		}
	}
}

// AssembleHessian (re)builds the block-tridiagonal reduced Hessian,
// honoring the warm-start recomputation policy of spec.md §4.2: block
// M[k,0] is recomputed iff stage k or stage k+1 reports actSetHasChanged;
// M[k,-1] is recomputed iff stage k reports actSetHasChanged. On the
// first call (force=true) every block is computed regardless.
func AssembleHessian(stages []*Stage, M *BlockTriDiag, force bool) {
	n := len(stages) - 1
	for k := 0; k < n; k++ {
		changedHere := stages[k].ActSetHasChanged
		changedNext := stages[k+1].ActSetHasChanged
		if force || changedHere || changedNext {
			assembleDiagBlock(stages[k], stages[k+1], M.Diag[k])
		}
		if k > 0 && (force || changedHere) {
			assembleSubBlock(stages[k], M.Sub[k])
		}
	}
}

// assembleDiagBlock computes M[k,0] = E_{k+1} P_{k+1} E_{k+1}^T + C_k P_k C_k^T.
// E_{k+1} selects the leading NX (state) components of z_{k+1}, so the
// first term is simply diag(Pnext[0:NX]).
func assembleDiagBlock(cur, next *Stage, out [][]float64) {
	nx := cur.NX
	la.MatFill(out, 0)
	Pcur := projectedInvDiag(cur)
	Pnext := projectedInvDiag(next)
	for i := 0; i < nx; i++ {
		out[i][i] += Pnext[i]
	}
	col := cur.colScratch
	for j := 0; j < cur.NV; j++ {
		if Pcur[j] == 0 {
			continue
		}
		for r := 0; r < nx; r++ {
			col[r] = cur.C[r][j]
		}
		for r := 0; r < nx; r++ {
			if col[r] == 0 {
				continue
			}
			for c := 0; c < nx; c++ {
				out[r][c] += Pcur[j] * col[r] * col[c]
			}
		}
	}
}

// assembleSubBlock computes M[k,-1] = -C_k P_k E_k, which picks out the
// first NX columns of C_k scaled by the corresponding entries of P_k.
func assembleSubBlock(cur *Stage, out [][]float64) {
	nx := cur.NX
	Pcur := projectedInvDiag(cur)
	for r := 0; r < nx; r++ {
		for c := 0; c < nx; c++ {
			out[r][c] = -cur.C[r][c] * Pcur[c]
		}
	}
}
