// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dualqpdemo builds and solves the scalar multiple-shooting
// chain of spec.md §8 scenario 1: N=3, n_X=n_U=1, H_k = diag(1,1),
// C_k = [1 1], c_k = 0, initial state x_0 = 2 enforced as a tight bound
// on stage 0, no other bounds. No bound other than x_0 becomes active, so
// the optimum (later states shrink toward zero without reaching it) is
// reached in a single Newton iteration.
package main

import (
	"math"

	"github.com/cpmech/dualqp/dqp"
	"github.com/cpmech/dualqp/problem"
	"github.com/cpmech/gosl/io"
)

func main() {
	const N = 3
	const tol = 1e-10
	inf := math.Inf(1)

	stages := make([]*dqp.Stage, 0, N+1)
	for k := 0; k < N; k++ {
		Q := [][]float64{{1}}
		R := [][]float64{{1}}
		A := [][]float64{{1}}
		B := [][]float64{{1}}
		g := []float64{0, 0}
		c := []float64{0}
		zLow := []float64{-inf, -inf}
		zUpp := []float64{inf, inf}
		if k == 0 {
			zLow[0], zUpp[0] = 2, 2 // x_init
		}
		stages = append(stages, problem.AssembleRegularStage(k, Q, R, nil, g, A, B, c, zLow, zUpp, tol))
	}
	stages = append(stages, problem.AssembleFinalStage(N, nil, []float64{0}, []float64{-inf}, []float64{inf}, 1e-6, tol))

	opt := dqp.Options{}
	opt.SetDefaults()
	opt.Verbose = true

	driver := dqp.NewDriver(stages, opt)
	status := driver.Solve()

	io.Pf("\nstatus: %v\n", status)
	for _, s := range stages {
		io.Pf("stage %d: z = %v\n", s.Index, s.Z())
	}
}
