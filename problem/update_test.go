// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestUpdateStageReplacesDataAndInvalidatesActiveSet(t *testing.T) {
	chk.PrintTitle("TestUpdateStageReplacesDataAndInvalidatesActiveSet")
	inf := math.Inf(1)

	s := AssembleFinalStage(1, nil, []float64{0}, []float64{-inf}, []float64{inf}, 1, 1e-10)
	s.Resolve()
	chk.Scalar(t, "z before update", 1e-15, s.Z()[0], 0)

	UpdateStage(s, StageUpdate{G: []float64{-4}}, 1e-10)

	if !s.ActSetHasChanged {
		t.Fatal("expected ActSetHasChanged after a data update")
	}
	chk.Vector(t, "G after update", 1e-15, s.G, []float64{-4})
	chk.Scalar(t, "z after update", 1e-12, s.Z()[0], 4) // z = -g/H = 4/1
}
