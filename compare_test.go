package fontdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// square returns a simple closed contour: a unit square scaled by s,
// traversed counterclockwise from the origin.
func square(s float64) Contour {
	return Contour{
		{X: 0, Y: 0, Kind: OnCurve},
		{X: s, Y: 0, Kind: OnCurve},
		{X: s, Y: s, Kind: OnCurve},
		{X: 0, Y: s, Kind: OnCurve},
	}
}

// blob returns a contour mixing line and quadratic segments.
func blob() Contour {
	return Contour{
		{X: 0, Y: 0, Kind: OnCurve},
		{X: 100, Y: 0, Kind: OnCurve},
		{X: 120, Y: 50, Kind: QuadControl},
		{X: 100, Y: 100, Kind: OnCurve},
		{X: 0, Y: 100, Kind: OnCurve},
	}
}

func TestCompareOutlines_Identical(t *testing.T) {
	left := &Outline{Contours: []Contour{square(100), blob()}}
	right := &Outline{Contours: []Contour{square(100), blob()}}

	if diff := CompareOutlines(left, right, CompareOptions{}); diff != nil {
		t.Errorf("identical outlines: diff = %v, want nil", diff)
	}
}

func TestCompareOutlines_WithinEpsilon(t *testing.T) {
	left := &Outline{Contours: []Contour{square(100)}}
	right := left.Clone()
	right.Contours[0][2].X += 0.0005 // below DefaultEpsilon

	if diff := CompareOutlines(left, right, CompareOptions{}); diff != nil {
		t.Errorf("sub-epsilon deviation: diff = %v, want nil", diff)
	}
}

func TestCompareOutlines_BeyondEpsilon(t *testing.T) {
	left := &Outline{Contours: []Contour{square(100)}}
	right := left.Clone()
	right.Contours[0][2].X += 0.5

	diff := CompareOutlines(left, right, CompareOptions{})
	if diff == nil {
		t.Fatal("deviation beyond epsilon: diff = nil, want DiffDistance")
	}
	want := &Diff{Kind: DiffDistance, Contour: 0, Point: 2, Delta: 0.5}
	if d := cmp.Diff(want, diff); d != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", d)
	}
}

func TestCompareOutlines_EpsilonTunable(t *testing.T) {
	left := &Outline{Contours: []Contour{square(100)}}
	right := left.Clone()
	right.Contours[0][1].Y += 0.5

	if diff := CompareOutlines(left, right, CompareOptions{Epsilon: 1.0}); diff != nil {
		t.Errorf("deviation below custom epsilon: diff = %v, want nil", diff)
	}
}

func TestCompareOutlines_ContourCount(t *testing.T) {
	left := &Outline{Contours: []Contour{square(100), square(50)}}
	right := &Outline{Contours: []Contour{square(100)}}

	diff := CompareOutlines(left, right, CompareOptions{})
	if diff == nil || diff.Kind != DiffContourCount {
		t.Fatalf("diff = %v, want DiffContourCount", diff)
	}
	if diff.LeftCount != 2 || diff.RightCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", diff.LeftCount, diff.RightCount)
	}
}

func TestCompareOutlines_PointCount(t *testing.T) {
	left := &Outline{Contours: []Contour{square(100)}}
	right := &Outline{Contours: []Contour{square(100)[:3]}}

	diff := CompareOutlines(left, right, CompareOptions{})
	if diff == nil || diff.Kind != DiffPointCount {
		t.Fatalf("diff = %v, want DiffPointCount", diff)
	}
	if diff.Contour != 0 {
		t.Errorf("Contour = %d, want 0", diff.Contour)
	}
}

func TestCompareOutlines_PointKind(t *testing.T) {
	left := &Outline{Contours: []Contour{blob()}}
	right := left.Clone()
	right.Contours[0][2].Kind = CubicControl

	diff := CompareOutlines(left, right, CompareOptions{})
	if diff == nil || diff.Kind != DiffPointKind {
		t.Fatalf("diff = %v, want DiffPointKind", diff)
	}
	if diff.Point != 2 {
		t.Errorf("Point = %d, want 2", diff.Point)
	}
}

// Reversed winding renders identically but the legacy comparison is
// order-sensitive: it must report a mismatch unless canonicalization is
// requested.
func TestCompareOutlines_ReversedWinding(t *testing.T) {
	left := &Outline{Contours: []Contour{blob()}}
	right := &Outline{Contours: []Contour{reverseContour(blob())}}
	// Shift the starting point too; the traversal still describes the
	// same closed curve.
	right.Contours[0] = rotateContour(right.Contours[0], 1)

	if diff := CompareOutlines(left, right, CompareOptions{}); diff == nil {
		t.Error("reversed winding: diff = nil, want mismatch (order-sensitive default)")
	}
	if diff := CompareOutlines(left, right, CompareOptions{Canonicalize: true}); diff != nil {
		t.Errorf("reversed winding, canonicalized: diff = %v, want nil", diff)
	}
}

func TestCompareOutlines_RotatedStart(t *testing.T) {
	left := &Outline{Contours: []Contour{square(100)}}
	right := &Outline{Contours: []Contour{rotateContour(square(100), 2)}}

	if diff := CompareOutlines(left, right, CompareOptions{}); diff == nil {
		t.Error("rotated start: diff = nil, want mismatch (order-sensitive default)")
	}
	if diff := CompareOutlines(left, right, CompareOptions{Canonicalize: true}); diff != nil {
		t.Errorf("rotated start, canonicalized: diff = %v, want nil", diff)
	}
}

func TestCompareOutlines_Empty(t *testing.T) {
	if diff := CompareOutlines(&Outline{}, &Outline{}, CompareOptions{}); diff != nil {
		t.Errorf("empty outlines: diff = %v, want nil", diff)
	}
	if diff := CompareOutlines(nil, nil, CompareOptions{}); diff != nil {
		t.Errorf("nil outlines: diff = %v, want nil", diff)
	}
	diff := CompareOutlines(&Outline{Contours: []Contour{square(1)}}, &Outline{}, CompareOptions{})
	if diff == nil || diff.Kind != DiffContourCount {
		t.Errorf("one empty: diff = %v, want DiffContourCount", diff)
	}
}
