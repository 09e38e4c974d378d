// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// fakeEvaluator lets line-search tests script φ(α) without a real
// driver/stage set.
type fakeEvaluator struct {
	eval func(alpha float64) (phi, slope float64)
}

func (f fakeEvaluator) Eval(alpha float64) (float64, float64) { return f.eval(alpha) }

// TestBacktrackingWithASChangeClampsToAlphaMin mirrors spec.md §8
// scenario 4: the first trial (α=1) is rejected, the next trial
// (α=0.1) is accepted but falls below αMin=0.25, so the accepted step
// must be forced to exactly αMin.
func TestBacktrackingWithASChangeClampsToAlphaMin(t *testing.T) {
	chk.PrintTitle("TestBacktrackingWithASChangeClampsToAlphaMin")

	ev := fakeEvaluator{eval: func(alpha float64) (float64, float64) {
		if alpha >= 1 {
			return -1, 0
		}
		return 1, 0
	}}
	opt := &Options{}
	opt.SetDefaults()
	p := lsParams{phi0: 0, alphaMin: 0.25, dzNorm: 1}

	alpha, _, status := backtrackingSearch(ev, p, opt, true)
	if status != OK {
		t.Fatalf("expected OK, got %v", status)
	}
	chk.Scalar(t, "alpha", 1e-15, alpha, 0.25)
}

// TestBacktrackingWithoutASChangeDoesNotClamp checks the plain
// BACKTRACKING strategy accepts the first improving trial unmodified.
func TestBacktrackingWithoutASChangeDoesNotClamp(t *testing.T) {
	chk.PrintTitle("TestBacktrackingWithoutASChangeDoesNotClamp")

	ev := fakeEvaluator{eval: func(alpha float64) (float64, float64) {
		if alpha >= 1 {
			return -1, 0
		}
		return 1, 0
	}}
	opt := &Options{}
	opt.SetDefaults()
	p := lsParams{phi0: 0, alphaMin: 0.25, dzNorm: 1}

	alpha, _, status := backtrackingSearch(ev, p, opt, false)
	if status != OK {
		t.Fatalf("expected OK, got %v", status)
	}
	chk.Scalar(t, "alpha", 1e-15, alpha, 0.1)
}

func TestFullStepShortcut(t *testing.T) {
	chk.PrintTitle("TestFullStepShortcut")

	called := 0
	ev := fakeEvaluator{eval: func(alpha float64) (float64, float64) {
		called++
		return 42, 0
	}}
	opt := &Options{}
	opt.SetDefaults()
	p := lsParams{phi0: 0, alphaMin: 1.5, dzNorm: 1, regularized: false}

	alpha, phi, status := runLineSearch(ev, p, opt)
	if status != OK || alpha != 1 || phi != 42 {
		t.Fatalf("expected shortcut to accept alpha=1, got alpha=%v phi=%v status=%v", alpha, phi, status)
	}
	if called != 1 {
		t.Fatalf("expected exactly one evaluation, got %d", called)
	}
}

func TestNoShortcutWhenRegularized(t *testing.T) {
	chk.PrintTitle("TestNoShortcutWhenRegularized")

	ev := fakeEvaluator{eval: func(alpha float64) (float64, float64) {
		if alpha >= 1 {
			return -1, 0
		}
		return 1, 0
	}}
	opt := &Options{}
	opt.SetDefaults()
	opt.LSType = LSBacktracking
	p := lsParams{phi0: 0, alphaMin: 1.5, dzNorm: 1, regularized: true}

	alpha, _, status := runLineSearch(ev, p, opt)
	if status != OK {
		t.Fatalf("expected OK, got %v", status)
	}
	chk.Scalar(t, "alpha", 1e-15, alpha, 0.1)
}

// TestBacktrackingNoKinkDoesNotUnderflow guards against a regularized
// step with no active-set kink anywhere (alphaMin=+Inf): the min-step
// underflow check must not fire on a -Inf comparison before the second
// trial has a chance to be accepted.
func TestBacktrackingNoKinkDoesNotUnderflow(t *testing.T) {
	chk.PrintTitle("TestBacktrackingNoKinkDoesNotUnderflow")

	ev := fakeEvaluator{eval: func(alpha float64) (float64, float64) {
		if alpha >= 1 {
			return -1, 0
		}
		return 1, 0
	}}
	opt := &Options{}
	opt.SetDefaults()
	p := lsParams{phi0: 0, alphaMin: math.Inf(1), dzNorm: 1, regularized: true}

	alpha, _, status := backtrackingSearch(ev, p, opt, false)
	if status != OK {
		t.Fatalf("expected OK, got %v", status)
	}
	chk.Scalar(t, "alpha", 1e-15, alpha, 0.1)
}
