// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestAssembleRegularStage(t *testing.T) {
	chk.PrintTitle("TestAssembleRegularStage")
	inf := math.Inf(1)

	Q := [][]float64{{1}}
	R := [][]float64{{1}}
	A := [][]float64{{1}}
	B := [][]float64{{1}}
	g := []float64{0, 0}
	c := []float64{0}
	zLow := []float64{-inf, -inf}
	zUpp := []float64{inf, inf}

	s := AssembleRegularStage(0, Q, R, nil, g, A, B, c, zLow, zUpp, 1e-10)
	if s.NV != 2 {
		t.Fatalf("expected NV=2, got %d", s.NV)
	}
	if s.NX != 1 {
		t.Fatalf("expected NX=1, got %d", s.NX)
	}
	chk.Vector(t, "Hdiag", 1e-15, s.Hdiag, []float64{1, 1})
	chk.Vector(t, "C row", 1e-15, s.C[0], []float64{1, 1})
}

func TestAssembleRegularStageWithCrossTerm(t *testing.T) {
	chk.PrintTitle("TestAssembleRegularStageWithCrossTerm")
	inf := math.Inf(1)

	Q := [][]float64{{2}}
	R := [][]float64{{3}}
	S := [][]float64{{0.5}}
	A := [][]float64{{1}}
	B := [][]float64{{1}}
	g := []float64{0, 0}
	c := []float64{0}
	zLow := []float64{-inf, -inf}
	zUpp := []float64{inf, inf}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic: a cross term makes the stage Hessian non-diagonal")
		}
	}()
	AssembleRegularStage(0, Q, R, S, g, A, B, c, zLow, zUpp, 1e-10)
}

func TestAssembleFinalStageDefaultsHessian(t *testing.T) {
	chk.PrintTitle("TestAssembleFinalStageDefaultsHessian")
	inf := math.Inf(1)

	s := AssembleFinalStage(3, nil, []float64{0}, []float64{-inf}, []float64{inf}, 1e-3, 1e-10)
	chk.Vector(t, "Hdiag", 1e-15, s.Hdiag, []float64{1e-3})
}
