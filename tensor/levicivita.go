package tensor

// Eps3 returns the totally antisymmetric 3D Levi-Civita symbol ε_{ijk}
// over the spatial frame indices 0,1,2 with ε_{012} = +1. Any index equal
// to 3 (the circle direction) yields 0.
func Eps3(i, j, k int) float64 {
	if i > 2 || j > 2 || k > 2 {
		return 0
	}

	return permSign(i, j, k)
}

// Eps4 returns the 4D Euclidean Levi-Civita symbol ε_{abcd} with
// ε_{0123} = +1.
func Eps4(a, b, c, d int) float64 {
	return permSign(a, b, c, d)
}

// permSign computes the sign of the permutation idx, or 0 when any two
// entries coincide. Inversion counting; the argument lists here are length
// 3 or 4, so the quadratic loop is the whole cost.
func permSign(idx ...int) float64 {
	inversions := 0
	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			if idx[i] == idx[j] {
				return 0
			}
			if idx[i] > idx[j] {
				inversions++
			}
		}
	}
	if inversions%2 == 0 {
		return 1
	}

	return -1
}
