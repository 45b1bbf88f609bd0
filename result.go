package fontdiff

// Side names one of the two fonts under comparison.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Status is the verdict of one (location, glyph) comparison unit.
type Status uint8

const (
	// StatusPass means the two outlines compared equivalent.
	StatusPass Status = iota

	// StatusFail means the outlines differ geometrically. This is ordinary
	// output, not an error.
	StatusFail

	// StatusMissingLeft means the glyph exists only in the right font.
	StatusMissingLeft

	// StatusMissingRight means the glyph exists only in the left font.
	StatusMissingRight

	// StatusInconclusive means outline extraction failed for this unit;
	// see Comparison.Err.
	StatusInconclusive
)

// String returns a short label for the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusMissingLeft:
		return "only_right"
	case StatusMissingRight:
		return "only_left"
	case StatusInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// Passed reports whether the unit counts toward the run's successes.
// Everything except StatusPass is a failure in the aggregate.
func (s Status) Passed() bool {
	return s == StatusPass
}

// Comparison is the result of one (location, glyph) unit. It is created by
// the comparator, consumed immediately for artifact routing, and then
// retained only in aggregate counts.
type Comparison struct {
	Glyph    GlyphID
	Scenario string
	Coord    int // index of the location within the constellation
	Location Location
	Status   Status

	// Diff describes the first geometric divergence for StatusFail.
	Diff *Diff

	// Err holds the extraction error for StatusInconclusive.
	Err error

	// RenderErr records an artifact write failure. It never changes the
	// verdict and never aborts the run.
	RenderErr error
}
