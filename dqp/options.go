// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

import "github.com/cpmech/gosl/fun"

// RegType selects the strategy used to recover from a singular or
// near-singular reduced-Hessian diagonal block (spec.md §4.3).
type RegType int

const (
	RegLevenbergMarquardt RegType = iota
	RegNormalizedLM                // reserved: currently behaves as RegLevenbergMarquardt
	RegSingularDirections
	RegGradientStep
	RegUnconstrainedHessian
)

// FacAlg selects the block-tridiagonal Cholesky variant (spec.md §4.3).
type FacAlg int

const (
	FacBandForward FacAlg = iota
	FacBandReverse
)

// LSType selects the line-search family member (spec.md §4.4).
type LSType int

const (
	LSBacktracking LSType = iota
	LSBacktrackingWithASChange
	LSGoldenSection
	LSGradientBisection
	LSAcceleratedGradientBisection
	LSGrid
	LSAcceleratedGrid
)

// Options carries every numerical tolerance, iteration cap, and strategy
// selector the core consumes (spec.md §6). It is a plain struct: parsing
// options from a file format is an external collaborator's concern.
type Options struct {
	MaxIter                               int
	MaxNumLineSearchIterations            int
	MaxNumLineSearchRefinementIterations  int

	StationarityTolerance      float64
	EqualityTolerance          float64
	NewtonHessDiagRegTolerance float64
	ActivenessTolerance        float64
	AscentCurvatureTolerance   float64

	QPDUNESZero   float64
	QPDUNESInfty  float64

	RegType  RegType
	RegParam float64

	NwtnHssnFacAlg FacAlg

	LSType                        LSType
	LineSearchReductionFactor     float64
	LineSearchIncreaseFactor      float64
	LineSearchMinAbsProgress      float64
	LineSearchMinRelProgress      float64
	LineSearchStationarityTol     float64
	LineSearchMaxStepSize         float64
	LineSearchNbrGridPoints       int

	NbrInitialGradientSteps int

	Verbose bool
}

// SetDefaults assigns the constants from the original qpDUNES default
// option table (original_source/ccs-c66x/qpDUNES/setup_qp.c,
// qpDUNES_setupDefaultOptions).
func (o *Options) SetDefaults() {
	o.MaxIter = 100
	o.MaxNumLineSearchIterations = 19
	o.MaxNumLineSearchRefinementIterations = 40

	o.StationarityTolerance = 1.0e-6
	o.EqualityTolerance = 2.221e-16
	o.NewtonHessDiagRegTolerance = 1.0e-10
	o.ActivenessTolerance = 1.0e4 * o.EqualityTolerance
	o.AscentCurvatureTolerance = 1.0e-6

	o.QPDUNESZero = 1.0e-20
	o.QPDUNESInfty = 1.0e12

	o.RegType = RegLevenbergMarquardt
	o.RegParam = 1.0e-6

	o.NwtnHssnFacAlg = FacBandReverse

	o.LSType = LSAcceleratedGradientBisection
	o.LineSearchReductionFactor = 0.1
	o.LineSearchIncreaseFactor = 1.5
	o.LineSearchMinAbsProgress = o.EqualityTolerance
	o.LineSearchMinRelProgress = 1.0e-14
	o.LineSearchStationarityTol = 1.0e-3
	o.LineSearchMaxStepSize = 1.0
	o.LineSearchNbrGridPoints = 5

	o.NbrInitialGradientSteps = 0
}

// ApplyOverrides replaces named fields from a gosl/fun.Prms list, the
// way msolid model Init methods read named parameters (e.g.
// msolid/dp.go: `for _, p := range prms { switch p.N { case "M": ... } }`).
// Unrecognized names are ignored; this is an override list, not a schema.
func (o *Options) ApplyOverrides(prms fun.Prms) {
	for _, p := range prms {
		switch p.N {
		case "maxIter":
			o.MaxIter = int(p.V)
		case "stationarityTolerance":
			o.StationarityTolerance = p.V
		case "equalityTolerance":
			o.EqualityTolerance = p.V
		case "newtonHessDiagRegTolerance":
			o.NewtonHessDiagRegTolerance = p.V
		case "regParam":
			o.RegParam = p.V
		case "lineSearchReductionFactor":
			o.LineSearchReductionFactor = p.V
		case "lineSearchIncreaseFactor":
			o.LineSearchIncreaseFactor = p.V
		case "lineSearchMaxStepSize":
			o.LineSearchMaxStepSize = p.V
		case "nbrInitialGradientSteps":
			o.NbrInitialGradientSteps = int(p.V)
		}
	}
}
