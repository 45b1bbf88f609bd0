// Package fontdiff compares the glyph geometry of two variable fonts across
// their shared variation space.
//
// # Overview
//
// Two builds of the same variable font are supposed to render identical
// outlines at every point of the variation space, not just at the default
// instance. fontdiff samples a deterministic constellation of axis
// coordinates, extracts every glyph's outline from both fonts at every
// coordinate, and compares the outlines under a tolerance-bounded pointwise
// relation. Mismatches produce rendered image evidence for visual review.
//
// # Quick Start
//
//	left, _ := font.Load("build-a.ttf")
//	right, _ := font.Load("build-b.ttf")
//
//	runner := fontdiff.NewRunner(left, right, store, fontdiff.DefaultOptions())
//	report, err := runner.Run()
//	if err != nil {
//		// fatal: unreadable font, missing axes, mismatched axis sets
//	}
//	if report.Failures() > 0 {
//		// evidence images are in the artifact store
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Axis, Location, Outline, CompareOutlines, Runner, Report
//   - font: typesetting-backed font loading and outline extraction
//   - artifact: PNG/SVG evidence rendering with deterministic filenames
//   - internal/parallel: worker pool executing comparison units
//
// # Comparison semantics
//
// Outlines are equal when they have the same number of contours and, per
// contour, the same point count, the same on/off-curve tagging sequence, and
// pointwise coordinates within a configurable epsilon. The relation is
// order-sensitive: a contour traversed from a different starting point, or in
// the reverse winding direction, compares unequal even though it renders
// identically. Options.Canonicalize rotates each contour to a canonical form
// before comparing; see CompareOptions.
package fontdiff
