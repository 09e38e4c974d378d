// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestLevenbergMarquardtRecovers mirrors spec.md §8 scenario 3: a singular
// leading pivot fails a first factorization attempt; adding regParam to
// every diagonal and refactoring succeeds.
func TestLevenbergMarquardtRecovers(t *testing.T) {
	chk.PrintTitle("TestLevenbergMarquardtRecovers")

	M := NewBlockTriDiag(1, 2)
	M.Diag[0][0][0] = 0
	M.Diag[0][0][1] = 0
	M.Diag[0][1][0] = 0
	M.Diag[0][1][1] = 1

	opt := &Options{}
	opt.SetDefaults()
	opt.RegType = RegLevenbergMarquardt
	opt.RegParam = 1e-3

	L := NewBlockTriDiag(1, 2)
	_, status := factorForward(M, L, opt)
	if status != DivisionByZero {
		t.Fatalf("expected first factorization to fail with DivisionByZero, got %v", status)
	}

	retry, gradStep, regStatus := regularizeAndRefactor(M, opt, status)
	if !retry || gradStep || regStatus != OK {
		t.Fatalf("expected LM to request a retry, got retry=%v gradStep=%v status=%v", retry, gradStep, regStatus)
	}
	if M.Diag[0][0][0] != opt.RegParam {
		t.Fatalf("expected regParam added to diagonal, got %v", M.Diag[0][0][0])
	}

	regularized, status := factorForward(M, L, opt)
	if status != OK {
		t.Fatalf("expected second factorization to succeed, got %v", status)
	}
	_ = regularized
}

// TestSingularDirectionsRegularizesInline checks the in-loop bump path
// used by RegSingularDirections, which never needs an outer refactor.
func TestSingularDirectionsRegularizesInline(t *testing.T) {
	chk.PrintTitle("TestSingularDirectionsRegularizesInline")

	M := NewBlockTriDiag(1, 1)
	M.Diag[0][0][0] = 0

	opt := &Options{}
	opt.SetDefaults()
	opt.RegType = RegSingularDirections
	opt.RegParam = 1e-2

	L := NewBlockTriDiag(1, 1)
	regularized, status := factorForward(M, L, opt)
	if status != OK {
		t.Fatalf("expected inline regularization to succeed, got %v", status)
	}
	if !regularized {
		t.Fatal("expected regularized=true")
	}
}
