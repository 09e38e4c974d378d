// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dqp

// Status is the terminal outcome of a solve, or of an operation within
// it. Failure propagation is strict (spec.md §7): a stage QP failure,
// an unrecoverable Cholesky failure, or a descent failure always
// terminates the solve with one of these, never silently converted into
// OptimalFound.
type Status int

const (
	OK Status = iota
	OptimalFound
	IterationLimit
	StageInfeasible
	NewtonNoAscent
	LSMaxIter
	LSMaxStep
	LSMinStep
	DivisionByZero
	InvalidArgument
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case OptimalFound:
		return "OPTIMAL_FOUND"
	case IterationLimit:
		return "ITERATION_LIMIT"
	case StageInfeasible:
		return "STAGE_INFEASIBLE"
	case NewtonNoAscent:
		return "NEWTON_NO_ASCENT"
	case LSMaxIter:
		return "LS_MAX_ITER"
	case LSMaxStep:
		return "LS_MAX_STEP"
	case LSMinStep:
		return "LS_MIN_STEP"
	case DivisionByZero:
		return "DIVISION_BY_ZERO"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether a status ends the solve (everything except OK,
// which only marks a sub-operation's success).
func (s Status) Terminal() bool {
	return s != OK
}
