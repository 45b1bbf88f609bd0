package fontdiff

import "math"

// PointKind tags an outline point as on-curve or as a Bézier control point.
type PointKind uint8

const (
	// OnCurve marks a point the contour passes through.
	OnCurve PointKind = iota

	// QuadControl marks the control point of a quadratic segment.
	QuadControl

	// CubicControl marks a control point of a cubic segment.
	CubicControl
)

// String returns a short label for the point kind.
func (k PointKind) String() string {
	switch k {
	case OnCurve:
		return "on"
	case QuadControl:
		return "quad"
	case CubicControl:
		return "cubic"
	default:
		return "unknown"
	}
}

// Point is one point of a contour, in font units with Y up.
type Point struct {
	X, Y float64
	Kind PointKind
}

// Distance returns the Euclidean distance to another point, ignoring kinds.
func (p Point) Distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Contour is an ordered, implicitly closed sequence of tagged points.
// The first point is always on-curve.
type Contour []Point

// Outline is the full vector geometry of a glyph at one variation-space
// location: an ordered sequence of closed contours. Outlines are produced
// fresh per extraction, owned by the caller, and never mutated afterwards;
// methods that change geometry return a new outline.
type Outline struct {
	Contours []Contour
}

// IsEmpty reports whether the outline has no contours (e.g. a space glyph).
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Contours) == 0
}

// PointCount returns the total number of points across all contours.
func (o *Outline) PointCount() int {
	if o == nil {
		return 0
	}
	n := 0
	for _, c := range o.Contours {
		n += len(c)
	}
	return n
}

// Bounds returns the bounding box of all points, including control points.
// The second return value is false for an empty outline.
func (o *Outline) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if o.IsEmpty() {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range o.Contours {
		for _, p := range c {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return minX, minY, maxX, maxY, true
}

// Clone returns a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	clone := &Outline{Contours: make([]Contour, len(o.Contours))}
	for i, c := range o.Contours {
		clone.Contours[i] = append(Contour(nil), c...)
	}
	return clone
}

// Canonical returns a copy with every contour rotated to a canonical
// starting point and winding direction: among all rotations of both
// traversal directions, the lexicographically smallest point sequence
// (ordered by X, then Y, then kind) wins.
//
// Canonicalization makes the pointwise comparison invariant to starting
// point and winding, a deliberate deviation from the legacy order-sensitive
// behavior. It is opt-in via CompareOptions.Canonicalize.
func (o *Outline) Canonical() *Outline {
	if o == nil {
		return nil
	}
	c := &Outline{Contours: make([]Contour, len(o.Contours))}
	for i, contour := range o.Contours {
		c.Contours[i] = canonicalContour(contour)
	}
	return c
}

func canonicalContour(c Contour) Contour {
	if len(c) < 2 {
		return append(Contour(nil), c...)
	}

	best := append(Contour(nil), c...)
	reversed := reverseContour(c)

	for _, base := range []Contour{c, reversed} {
		for shift := range base {
			// Contours start on-curve; only such rotations are valid
			// traversals of the same closed curve.
			if base[shift].Kind != OnCurve {
				continue
			}
			cand := rotateContour(base, shift)
			if lessContour(cand, best) {
				best = cand
			}
		}
	}
	return best
}

// reverseContour reverses the traversal direction. Control points stay
// between the same on-curve neighbors, so the reversed sequence describes
// the same closed curve with opposite winding.
func reverseContour(c Contour) Contour {
	r := make(Contour, len(c))
	for i, p := range c {
		r[len(c)-1-i] = p
	}
	return r
}

func rotateContour(c Contour, shift int) Contour {
	r := make(Contour, 0, len(c))
	r = append(r, c[shift:]...)
	r = append(r, c[:shift]...)
	return r
}

func lessContour(a, b Contour) bool {
	for i := range a {
		pa, pb := a[i], b[i]
		switch {
		case pa.X != pb.X:
			return pa.X < pb.X
		case pa.Y != pb.Y:
			return pa.Y < pb.Y
		case pa.Kind != pb.Kind:
			return pa.Kind < pb.Kind
		}
	}
	return false
}
