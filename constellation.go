package fontdiff

// Constellation produces the ordered coordinate sequence to test, derived
// from the axis models of both fonts.
//
// For an axis set of size n it emits exactly 2n+3 locations:
//
//  1. the all-default location,
//  2. per axis, in the left font's declaration order, that axis pinned to
//     its min and then to its max with all other axes at default,
//  3. the all-min corner and the all-max corner.
//
// The order is deterministic and derived solely from the left font's axis
// declaration order; it becomes the numeric index suffix in artifact
// filenames. A linear constellation exercises every axis extreme
// individually and jointly without the exponential blowup of a full grid.
//
// The two fonts must declare the same set of axis tags; otherwise
// Constellation fails with *AxisMismatchError. When the fonts disagree on an
// axis range, the sampled range is the intersection of the two, so every
// emitted location is realizable by both fonts.
func Constellation(left, right []Axis) ([]Location, error) {
	axes, err := mergeAxes(left, right)
	if err != nil {
		return nil, err
	}

	n := len(axes)
	locs := make([]Location, 0, 2*n+3)

	defaults := make(Location, n)
	for i, a := range axes {
		defaults[i] = AxisValue{Tag: a.Tag, Value: a.Default}
	}
	locs = append(locs, defaults)

	for i, a := range axes {
		lo := defaults.clone()
		lo[i].Value = a.Min
		hi := defaults.clone()
		hi[i].Value = a.Max
		locs = append(locs, lo, hi)
	}

	allMin := make(Location, n)
	allMax := make(Location, n)
	for i, a := range axes {
		allMin[i] = AxisValue{Tag: a.Tag, Value: a.Min}
		allMax[i] = AxisValue{Tag: a.Tag, Value: a.Max}
	}
	locs = append(locs, allMin, allMax)

	return locs, nil
}

// mergeAxes pairs the two axis models by tag and intersects their ranges.
// The result keeps the left font's declaration order. A tag present in only
// one font, or a pair of disjoint ranges, is a fatal mismatch.
func mergeAxes(left, right []Axis) ([]Axis, error) {
	rightByTag := make(map[Tag]Axis, len(right))
	for _, a := range right {
		rightByTag[a.Tag] = a
	}
	leftByTag := make(map[Tag]Axis, len(left))
	for _, a := range left {
		leftByTag[a.Tag] = a
	}

	var mismatch AxisMismatchError
	for _, a := range left {
		if _, ok := rightByTag[a.Tag]; !ok {
			mismatch.OnlyLeft = append(mismatch.OnlyLeft, a.Tag)
		}
	}
	for _, a := range right {
		if _, ok := leftByTag[a.Tag]; !ok {
			mismatch.OnlyRight = append(mismatch.OnlyRight, a.Tag)
		}
	}
	if len(mismatch.OnlyLeft) > 0 || len(mismatch.OnlyRight) > 0 {
		return nil, &mismatch
	}

	merged := make([]Axis, len(left))
	for i, l := range left {
		r := rightByTag[l.Tag]
		m := Axis{
			Tag:     l.Tag,
			Min:     maxf(l.Min, r.Min),
			Max:     minf(l.Max, r.Max),
			Default: l.Default,
		}
		if m.Min > m.Max {
			mismatch.Disjoint = append(mismatch.Disjoint, l.Tag)
			continue
		}
		// Keep the invariant Min <= Default <= Max after intersecting.
		if m.Default < m.Min {
			m.Default = m.Min
		}
		if m.Default > m.Max {
			m.Default = m.Max
		}
		merged[i] = m
	}
	if len(mismatch.Disjoint) > 0 {
		return nil, &mismatch
	}
	return merged, nil
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
