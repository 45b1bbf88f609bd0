package artifact

import "github.com/fontdiff/fontdiff"

// pathOp is one drawing command in image space. Targets and controls are
// laid out as the op consumes them: L uses pts[0], Q uses pts[0] (control)
// and pts[1] (target), C uses pts[0], pts[1] (controls) and pts[2] (target).
type pathOp struct {
	op  byte // 'M', 'L', 'Q', 'C'
	pts [3][2]float64
}

// contourOps flattens a tagged point sequence back into drawing commands,
// closing the contour onto its starting point.
func contourOps(c fontdiff.Contour, t transform) []pathOp {
	if len(c) == 0 {
		return nil
	}

	ops := make([]pathOp, 0, len(c))
	startX, startY := t.apply(c[0])
	ops = append(ops, pathOp{op: 'M', pts: [3][2]float64{{startX, startY}}})

	var pending []fontdiff.Point
	emit := func(target [2]float64) {
		switch len(pending) {
		case 0:
			ops = append(ops, pathOp{op: 'L', pts: [3][2]float64{target}})
		case 1:
			cx, cy := t.apply(pending[0])
			ops = append(ops, pathOp{op: 'Q', pts: [3][2]float64{{cx, cy}, target}})
		default:
			c1x, c1y := t.apply(pending[0])
			c2x, c2y := t.apply(pending[1])
			ops = append(ops, pathOp{op: 'C', pts: [3][2]float64{{c1x, c1y}, {c2x, c2y}, target}})
		}
		pending = pending[:0]
	}

	for _, p := range c[1:] {
		if p.Kind == fontdiff.OnCurve {
			x, y := t.apply(p)
			emit([2]float64{x, y})
		} else {
			pending = append(pending, p)
		}
	}

	// The contour is implicitly closed; the trailing segment targets the
	// starting point, carrying any leftover control points.
	if len(pending) > 0 || len(c) > 1 {
		emit([2]float64{startX, startY})
	}
	return ops
}
