// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import "github.com/cpmech/dualqp/dqp"

// ShiftHorizon rotates d's stage pointers left by one (spec.md §6
// "Shift horizon": "rotate stage pointers by one; the vacated slot
// becomes the new N−1 and must be re-populated; λ blocks shift left by
// n_X"). newFinal replaces the vacated slot and becomes the new stage
// N; every remaining stage's active-set history is invalidated since
// its position in the coupling chain changed, and the driver is
// rebootstrapped at the shifted λ.
func ShiftHorizon(d *dqp.Driver, newFinal *dqp.Stage) {
	stages := d.Stages
	n := len(stages)
	for i := 0; i < n-1; i++ {
		stages[i] = stages[i+1]
		stages[i].Index = i
	}
	newFinal.Index = n - 1
	stages[n-1] = newFinal

	nx := d.NX
	copy(d.Lambda, d.Lambda[nx:])
	for i := len(d.Lambda) - nx; i < len(d.Lambda); i++ {
		d.Lambda[i] = 0
	}

	for _, s := range stages {
		s.InvalidateActiveSet()
	}
	d.Rebootstrap()
}
