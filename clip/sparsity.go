// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clip

// Sparsity tags the structure of a stage Hessian. Clipping requires
// Diagonal or Identity; Dense, AllZero and Undefined are runtime-invalid
// for clipping and must be rejected at setup.
type Sparsity int

const (
	Undefined Sparsity = iota
	Dense
	Diagonal
	Identity
	AllZero
)

func (s Sparsity) String() string {
	switch s {
	case Dense:
		return "dense"
	case Diagonal:
		return "diagonal"
	case Identity:
		return "identity"
	case AllZero:
		return "all-zeros"
	default:
		return "undefined"
	}
}

// SupportsClipping reports whether the clipping solver can operate on a
// stage Hessian carrying this tag.
func (s Sparsity) SupportsClipping() bool {
	return s == Diagonal || s == Identity
}

// DetectSparsity scans a dense n×n Hessian and resolves it to a tag.
// off-diagonal entries with magnitude above tol disqualify Diagonal;
// a diagonal of all ones qualifies as Identity; a diagonal of all zeros
// qualifies as AllZero.
func DetectSparsity(H [][]float64, tol float64) Sparsity {
	n := len(H)
	if n == 0 {
		return Undefined
	}
	diag := true
	identity := true
	allZero := true
	for i := 0; i < n; i++ {
		if len(H[i]) != n {
			return Undefined
		}
		for j := 0; j < n; j++ {
			v := H[i][j]
			if i == j {
				if v < -tol || v > tol {
					allZero = false
				}
				if v < 1-tol || v > 1+tol {
					identity = false
				}
				continue
			}
			if v < -tol || v > tol {
				diag = false
				identity = false
			}
		}
	}
	switch {
	case allZero:
		return AllZero
	case !diag:
		return Dense
	case identity:
		return Identity
	default:
		return Diagonal
	}
}

// DiagOf extracts the diagonal of a dense Hessian known to be Diagonal or
// Identity. Callers must check SupportsClipping first.
func DiagOf(H [][]float64) []float64 {
	n := len(H)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = H[i][i]
	}
	return d
}
