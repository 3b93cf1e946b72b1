package connection

import "github.com/katalvlaran/torsionwell/tensor"

// TorsionFree returns the Koszul (Levi-Civita) connection of a
// left-invariant frame with structure constants c:
//
//	Γ^a_{bc} = ½(C^a_{bc} + C^c_{ba} − C^b_{ac})
//
// The result is metric compatible, Γ_{abc} + Γ_{bac} = 0, which follows
// from the antisymmetry of c in its lower pair.
func TorsionFree(c tensor.Rank3) tensor.Rank3 {
	var gamma tensor.Rank3
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for k := 0; k < tensor.Dim; k++ {
				gamma[a][b][k] = 0.5 * (c[a][b][k] + c[k][b][a] - c[b][a][k])
			}
		}
	}

	return gamma
}

// Contortion returns the contortion tensor of a torsion tensor t:
//
//	K_{abc} = ½(T_{abc} + T_{bca} − T_{cab})
//
// K is antisymmetric in (a,b) whenever t is antisymmetric in its last
// pair, so adding it to a metric-compatible connection preserves metric
// compatibility.
func Contortion(t tensor.Rank3) tensor.Rank3 {
	var k tensor.Rank3
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				k[a][b][c] = 0.5 * (t[a][b][c] + t[b][c][a] - t[c][a][b])
			}
		}
	}

	return k
}

// Full returns the torsionful connection ω = Γ + K.
func Full(gamma, k tensor.Rank3) tensor.Rank3 {
	return gamma.Add(k)
}
