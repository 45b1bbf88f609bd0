package font

import (
	tsfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/fontdiff/fontdiff"
)

// outlineFromSegments converts typesetting's segment form (move/line/quad/
// cubic ops) into contours of tagged points. Each MoveTo starts a new
// contour; control points keep their position between the surrounding
// on-curve points, so the point sequence fully describes the closed curve.
func outlineFromSegments(segs []tsfont.Segment) *fontdiff.Outline {
	out := &fontdiff.Outline{}
	var cur fontdiff.Contour

	flush := func() {
		if len(cur) == 0 {
			return
		}
		out.Contours = append(out.Contours, closeContour(cur))
		cur = nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			flush()
			cur = append(cur, onCurve(seg.Args[0]))
		case ot.SegmentOpLineTo:
			cur = append(cur, onCurve(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			cur = append(cur,
				control(seg.Args[0], fontdiff.QuadControl),
				onCurve(seg.Args[1]))
		case ot.SegmentOpCubeTo:
			cur = append(cur,
				control(seg.Args[0], fontdiff.CubicControl),
				control(seg.Args[1], fontdiff.CubicControl),
				onCurve(seg.Args[2]))
		}
	}
	flush()
	return out
}

// closeContour drops a trailing on-curve point that exactly repeats the
// start: the contour is implicitly closed, and a duplicated endpoint would
// make point counts depend on how the source font encoded the closure.
func closeContour(c fontdiff.Contour) fontdiff.Contour {
	if len(c) > 1 {
		first, last := c[0], c[len(c)-1]
		if last.Kind == fontdiff.OnCurve && last.X == first.X && last.Y == first.Y {
			c = c[:len(c)-1]
		}
	}
	return c
}

func onCurve(p tsfont.SegmentPoint) fontdiff.Point {
	return fontdiff.Point{X: float64(p.X), Y: float64(p.Y), Kind: fontdiff.OnCurve}
}

func control(p tsfont.SegmentPoint, kind fontdiff.PointKind) fontdiff.Point {
	return fontdiff.Point{X: float64(p.X), Y: float64(p.Y), Kind: kind}
}
