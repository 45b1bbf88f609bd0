package fontdiff

// Tag is a 4-character OpenType axis tag, e.g. "wght" or "opsz".
type Tag string

// GlyphID identifies a glyph within a font.
type GlyphID uint32

// Axis describes one variation axis of a font: the tag naming the dimension
// and the design-space range the font covers along it.
type Axis struct {
	Tag     Tag
	Min     float64
	Default float64
	Max     float64
}

// Valid reports whether the axis bounds are ordered Min <= Default <= Max.
func (a Axis) Valid() bool {
	return a.Min <= a.Default && a.Default <= a.Max
}

// ValidateAxes checks an axis model for use in variation-space sampling.
// The name identifies the font in error messages. It fails when the font
// declares no axes (a non-variable font is out of scope for this comparator)
// or when any axis has inverted bounds.
func ValidateAxes(name string, axes []Axis) error {
	if len(axes) == 0 {
		return &AxisParseError{Font: name, Reason: "font declares no variation axes"}
	}
	seen := make(map[Tag]bool, len(axes))
	for _, a := range axes {
		if a.Min > a.Max {
			return &AxisParseError{Font: name, Axis: a.Tag, Reason: "inverted bounds (min > max)"}
		}
		if !a.Valid() {
			return &AxisParseError{Font: name, Axis: a.Tag, Reason: "default outside [min, max]"}
		}
		if seen[a.Tag] {
			return &AxisParseError{Font: name, Axis: a.Tag, Reason: "duplicate axis tag"}
		}
		seen[a.Tag] = true
	}
	return nil
}
