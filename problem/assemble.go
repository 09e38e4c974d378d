// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package problem is the external collaborator that assembles dqp
// stages from raw MPC matrices (Q, R, S, A, B, c), applies data updates,
// and shifts the horizon. None of it is on the core's hot path
// (spec.md §1: "problem assembly ... treated as external collaborators;
// only the contracts the core consumes from them ... are specified").
package problem

import (
	"github.com/cpmech/dualqp/dqp"
	"github.com/cpmech/gosl/la"
)

// AssembleRegularStage builds stage k<N (spec.md §6 "Stage setup
// (regular)") from the quadratic cost blocks Q_k (n_X×n_X), R_k
// (n_U×n_U), and the optional state-input cross term S_k (n_X×n_U, nil
// for a block-diagonal stage cost), the linear cost g_k, the dynamics
// A_k (n_X×n_X), B_k (n_X×n_U), the affine offset c_k, and bounds.
func AssembleRegularStage(index int, Q, R, S [][]float64, g []float64, A, B [][]float64, c, zLow, zUpp []float64, tol float64) *dqp.Stage {
	nx := len(Q)
	nu := len(R)
	nv := nx + nu

	H := la.MatAlloc(nv, nv)
	for i := 0; i < nx; i++ {
		copy(H[i][:nx], Q[i])
	}
	for i := 0; i < nu; i++ {
		copy(H[nx+i][nx:], R[i])
	}
	if S != nil {
		for i := 0; i < nx; i++ {
			for j := 0; j < nu; j++ {
				H[i][nx+j] = S[i][j]
				H[nx+j][i] = S[i][j]
			}
		}
	}

	C := la.MatAlloc(nx, nv)
	for i := 0; i < nx; i++ {
		copy(C[i][:nx], A[i])
		copy(C[i][nx:], B[i])
	}

	return dqp.NewStage(index, nv, H, g, zLow, zUpp, C, c, tol)
}

// AssembleFinalStage builds the uncoupled final stage N (spec.md §6
// "Stage setup (final)"). A nil H defaults to regParam·I.
func AssembleFinalStage(index int, H [][]float64, g, zLow, zUpp []float64, regParam, tol float64) *dqp.Stage {
	nx := len(g)
	if H == nil {
		H = la.MatAlloc(nx, nx)
		for i := 0; i < nx; i++ {
			H[i][i] = regParam
		}
	}
	return dqp.NewStage(index, nx, H, g, zLow, zUpp, nil, nil, tol)
}
