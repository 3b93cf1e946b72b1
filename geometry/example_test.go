// Package geometry_test provides runnable examples for building frames.
// Each example is runnable via “go test -run Example”, showing both code
// and expected output.
package geometry_test

import (
	"fmt"

	"github.com/katalvlaran/torsionwell/geometry"
)

// ExampleNewFrame builds the unsquashed round frame at unit scale. The
// volume factor is the closed form 2π²·L·r³ ≈ 19.739 for L = r = 1.
func ExampleNewFrame() {
	// 1) Validate and build the S³×S¹ frame at r = 1, eps = 0, L = 1.
	fr, err := geometry.NewFrame(geometry.Round, 1, 0, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) The structure constants carry the SU(2) bracket scaled by 4/r.
	fmt.Printf("family=%s volume=%.3f C^0_12=%.1f\n", fr.Family, fr.Volume, fr.C[0][1][2])
	// Output: family=round volume=19.739 C^0_12=4.0
}
