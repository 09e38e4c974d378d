// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clip

import "testing"

func TestNewRegisteredSolver(t *testing.T) {
	s := New("clipping", 2, []float64{1, 1}, []float64{0, 0}, []float64{0, 0}, []float64{1, 1})
	if _, ok := s.(*Clipping); !ok {
		t.Fatalf("expected *Clipping, got %T", s)
	}
}

func TestNewUnknownSolverPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered solver name")
		}
	}()
	New("nope", 1, []float64{1}, []float64{0}, []float64{0}, []float64{1})
}
