package tensor

import "math"

// Dim is the frame dimension. Every array in this package is Dim-sized in
// each slot; the geometry layer never produces anything else.
const Dim = 4

// Rank2 is a dense 4x4 array (metric, Ricci).
type Rank2 [Dim][Dim]float64

// Rank3 is a dense 4x4x4 array (structure constants, connection, torsion,
// contortion).
type Rank3 [Dim][Dim][Dim]float64

// Rank4 is a dense 4x4x4x4 array (Riemann, Weyl, Hodge duals).
type Rank4 [Dim][Dim][Dim][Dim]float64

// Identity returns the Euclidean frame metric δ_{ab}.
func Identity() Rank2 {
	var m Rank2
	for a := 0; a < Dim; a++ {
		m[a][a] = 1
	}

	return m
}

// MaxAbs returns the largest absolute entry of m.
func (m Rank2) MaxAbs() float64 {
	var peak float64
	for a := 0; a < Dim; a++ {
		for b := 0; b < Dim; b++ {
			peak = max(peak, math.Abs(m[a][b]))
		}
	}

	return peak
}

// MaxAbs returns the largest absolute entry of t.
func (t Rank3) MaxAbs() float64 {
	var peak float64
	for a := 0; a < Dim; a++ {
		for b := 0; b < Dim; b++ {
			for c := 0; c < Dim; c++ {
				peak = max(peak, math.Abs(t[a][b][c]))
			}
		}
	}

	return peak
}

// MaxAbs returns the largest absolute entry of r.
func (r Rank4) MaxAbs() float64 {
	var peak float64
	for a := 0; a < Dim; a++ {
		for b := 0; b < Dim; b++ {
			for c := 0; c < Dim; c++ {
				for d := 0; d < Dim; d++ {
					peak = max(peak, math.Abs(r[a][b][c][d]))
				}
			}
		}
	}

	return peak
}

// Add returns t + u entrywise.
func (t Rank3) Add(u Rank3) Rank3 {
	var out Rank3
	for a := 0; a < Dim; a++ {
		for b := 0; b < Dim; b++ {
			for c := 0; c < Dim; c++ {
				out[a][b][c] = t[a][b][c] + u[a][b][c]
			}
		}
	}

	return out
}

// Scale returns s·t entrywise.
func (t Rank3) Scale(s float64) Rank3 {
	var out Rank3
	for a := 0; a < Dim; a++ {
		for b := 0; b < Dim; b++ {
			for c := 0; c < Dim; c++ {
				out[a][b][c] = s * t[a][b][c]
			}
		}
	}

	return out
}

// SumSquares returns Σ r[a][b][c][d]² over all entries.
func (r Rank4) SumSquares() float64 {
	var total float64
	for a := 0; a < Dim; a++ {
		for b := 0; b < Dim; b++ {
			for c := 0; c < Dim; c++ {
				for d := 0; d < Dim; d++ {
					total += r[a][b][c][d] * r[a][b][c][d]
				}
			}
		}
	}

	return total
}

// RelTol converts a relative tolerance into an absolute one, scaled by the
// magnitude of the tensor under test: tol·max(1, peak). Small frames near
// r → 0 produce entries of order 1/r², so a bare absolute tolerance would
// misfire there.
func RelTol(tol, peak float64) float64 {
	return tol * max(1, peak)
}
