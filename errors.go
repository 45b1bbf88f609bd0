package fontdiff

import (
	"fmt"
	"sort"
	"strings"
)

// AxisParseError reports a font whose variation axes are unusable: the font
// declares no axes at all, or an axis has inverted bounds.
type AxisParseError struct {
	// Font identifies the offending font (path or display name).
	Font string

	// Axis is the offending axis tag, empty when the font has no axes.
	Axis Tag

	Reason string
}

func (e *AxisParseError) Error() string {
	if e.Axis == "" {
		return fmt.Sprintf("fontdiff: %s: %s", e.Font, e.Reason)
	}
	return fmt.Sprintf("fontdiff: %s: axis %q: %s", e.Font, e.Axis, e.Reason)
}

// AxisMismatchError reports that the two fonts do not declare the same set of
// variation axes. Coordinates are only meaningful when both fonts agree on
// the space being sampled, so this aborts the run before any comparison.
type AxisMismatchError struct {
	// OnlyLeft and OnlyRight hold the tags present in just one font,
	// sorted for stable messages.
	OnlyLeft  []Tag
	OnlyRight []Tag

	// Disjoint holds tags declared by both fonts whose ranges do not
	// overlap, leaving no coordinate both fonts can realize.
	Disjoint []Tag
}

func (e *AxisMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("fontdiff: axis sets differ")
	if len(e.OnlyLeft) > 0 {
		fmt.Fprintf(&b, "; only left: %s", joinTags(e.OnlyLeft))
	}
	if len(e.OnlyRight) > 0 {
		fmt.Fprintf(&b, "; only right: %s", joinTags(e.OnlyRight))
	}
	if len(e.Disjoint) > 0 {
		fmt.Fprintf(&b, "; disjoint ranges: %s", joinTags(e.Disjoint))
	}
	return b.String()
}

// GlyphNotFoundError reports a glyph id that one font does not contain.
// It is a per-unit condition, never fatal to the run.
type GlyphNotFoundError struct {
	Glyph GlyphID
}

func (e *GlyphNotFoundError) Error() string {
	return fmt.Sprintf("fontdiff: glyph %d not in font", e.Glyph)
}

func joinTags(tags []Tag) string {
	s := make([]string, len(tags))
	for i, t := range tags {
		s[i] = string(t)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}
