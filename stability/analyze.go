package stability

import (
	"math"

	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/potential"
)

// Analyze runs the global search on a configured potential and labels
// the outcome. The Flat family can never diverge through the Weyl block
// (its C² vanishes identically); for the other families the wall flag is
// read off the Weyl block at the minimizer.
//
// A search pinned at the box boundary triggers a second pass over the
// coarse grid for an interior local well: the potential drops toward the
// collapse edge faster than into the well for wide coupling ranges, and
// the physical question is the well behind the barrier, not the box
// infimum. The ghost regime (positive Weyl coupling on a divergent
// family) skips the recovery, since there the pinned minimizer itself is
// the signal Classify reads.
func Analyze(p *potential.Potential, b Bounds, opts ...Option) (Result, Class, error) {
	obj := p.Func()
	res, err := Search(obj, b, opts...)
	if err != nil {
		return Result{}, 0, err
	}
	o := NewOptions(opts...)

	divergent := p.Family() != geometry.Flat
	ghost := p.Alpha() > o.alphaTol && divergent
	if !res.Converged && !ghost {
		if well, ok := recoverWell(obj, b, o); ok {
			well.Iterations += res.Iterations
			res = well
		}
	}

	wallActive := false
	if res.R > 0 {
		if block, berr := p.WeylBlock(res.R, res.Eps); berr == nil {
			wallActive = math.Abs(p.Alpha()*block) > o.alphaTol*(1+math.Abs(res.Value))
		}
	}

	return res, Classify(obj, b, res, p.Alpha(), divergent, wallActive, o), nil
}
