// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"github.com/cpmech/dualqp/clip"
	"github.com/cpmech/dualqp/dqp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// StageUpdate carries the optional replacement data for one stage's
// data update (spec.md §6 "Data update"): a nil field leaves the
// corresponding stage data untouched.
type StageUpdate struct {
	H          [][]float64
	G          []float64
	C          [][]float64
	Cc         []float64
	ZLow, ZUpp []float64
}

// UpdateStage applies u to s in place and invalidates the stage's
// active-set history, forcing the next factorization to be full
// (spec.md §6: "if matrices change, all stored previous active sets are
// invalidated"). Buffers are overwritten in place rather than replaced
// so the stage's clipping solver — which holds direct references to
// Hdiag/G/ZLow/ZUpp, not copies — stays in sync.
func UpdateStage(s *dqp.Stage, u StageUpdate, tol float64) {
	if u.H != nil {
		sp := clip.DetectSparsity(u.H, tol)
		if !sp.SupportsClipping() {
			chk.Panic("problem: updated stage %d Hessian sparsity %q unsupported by clipping solver", s.Index, sp)
		}
		s.Sparsity = sp
		copy(s.Hdiag, clip.DiagOf(u.H))
	}
	if u.G != nil {
		copy(s.G, u.G)
	}
	if u.C != nil {
		la.MatCopy(s.C, 1, u.C)
	}
	if u.Cc != nil {
		copy(s.Cc, u.Cc)
	}
	if u.ZLow != nil {
		copy(s.ZLow, u.ZLow)
	}
	if u.ZUpp != nil {
		copy(s.ZUpp, u.ZUpp)
	}
	s.InvalidateActiveSet()
	s.Resolve()
}
