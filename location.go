package fontdiff

import (
	"fmt"
	"strings"
)

// AxisValue pins one axis to a design-space value.
type AxisValue struct {
	Tag   Tag
	Value float64
}

// Location is a coordinate in variation space: one value per declared axis,
// in axis-declaration order. The ordering makes locations comparable and
// keeps output deterministic across runs.
type Location []AxisValue

// Get returns the value for the given axis tag.
func (l Location) Get(tag Tag) (float64, bool) {
	for _, av := range l {
		if av.Tag == tag {
			return av.Value, true
		}
	}
	return 0, false
}

// Equal reports whether two locations pin the same axes to the same values
// in the same order.
func (l Location) Equal(other Location) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the location as "wght=400,opsz=14".
func (l Location) String() string {
	parts := make([]string, len(l))
	for i, av := range l {
		parts[i] = fmt.Sprintf("%s=%g", av.Tag, av.Value)
	}
	return strings.Join(parts, ",")
}

// clone returns a copy that callers may extend without aliasing.
func (l Location) clone() Location {
	c := make(Location, len(l))
	copy(c, l)
	return c
}
