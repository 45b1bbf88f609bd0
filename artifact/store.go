// Package artifact renders comparison evidence images and writes them to a
// staging directory under deterministic filenames.
//
// Failing units produce one image per side (plus a plain-text segment dump)
// so a human can visually diff the two renderings; passing units produce a
// single combined overlay, left in blue over right in red. Filenames encode
// outcome, scenario, side, and the unit's constellation index:
//
//	fail.{scenario}.{left|right}.{index}.{png|svg}
//	fail.{scenario}.{left|right}.{index}.segments
//	pass.{scenario}.{index}.{png|svg}
//
// The index is the unit's position in the logical enumeration, so reruns of
// the same inputs produce identical names regardless of worker scheduling.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fontdiff/fontdiff"
)

// Format selects the image encoding for evidence files.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// DefaultSize is the side length of evidence images, in pixels.
const DefaultSize = 512

// Store writes evidence images to a staging directory. It implements
// fontdiff.ArtifactWriter and is safe for concurrent use: every write goes
// to a distinct file.
type Store struct {
	// Dir is the staging directory. Empty means the system temp dir.
	Dir string

	// Format selects PNG (raster) or SVG (vector) output.
	Format Format

	// Size is the image side length in pixels; 0 means DefaultSize.
	Size int
}

// NewStore returns a store writing format-encoded images into dir.
func NewStore(dir string, format Format) *Store {
	return &Store{Dir: dir, Format: format}
}

func (s *Store) dir() string {
	if s.Dir != "" {
		return s.Dir
	}
	return os.TempDir()
}

func (s *Store) size() int {
	if s.Size > 0 {
		return s.Size
	}
	return DefaultSize
}

func (s *Store) format() Format {
	if s.Format == FormatSVG {
		return FormatSVG
	}
	return FormatPNG
}

// WriteFailure renders one side of a mismatched unit and writes the image
// plus a segment dump of the outline.
func (s *Store) WriteFailure(scenario string, side fontdiff.Side, index int, o *fontdiff.Outline, upem float64) error {
	base := s.filename("fail", scenario, string(side), index)

	var err error
	switch s.format() {
	case FormatSVG:
		err = s.writeSVG(base+".svg", upem, layer{outline: o, style: styleSolid})
	default:
		err = s.writePNG(base+".png", upem, layer{outline: o, style: styleSolid})
	}
	if err != nil {
		return err
	}
	return s.writeSegments(base+".segments", o)
}

// WritePass renders the combined confirmation overlay for a matching unit:
// left translucent blue over right translucent red.
func (s *Store) WritePass(scenario string, index int, left, right *fontdiff.Outline, upem float64) error {
	base := s.filename("pass", scenario, "", index)
	layers := []layer{
		{outline: right, style: styleRight},
		{outline: left, style: styleLeft},
	}
	if s.format() == FormatSVG {
		return s.writeSVG(base+".svg", upem, layers...)
	}
	return s.writePNG(base+".png", upem, layers...)
}

// filename assembles the deterministic path, without extension.
func (s *Store) filename(outcome, scenario, side string, index int) string {
	parts := []string{outcome, sanitize(scenario)}
	if side != "" {
		parts = append(parts, side)
	}
	parts = append(parts, fmt.Sprintf("%d", index))
	return filepath.Join(s.dir(), strings.Join(parts, "."))
}

// sanitize keeps scenario names filesystem-safe without losing readability.
func sanitize(name string) string {
	if name == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// writeSegments dumps the outline's contours and tagged points as text, one
// point per line, for inspection beyond what the image shows.
func (s *Store) writeSegments(path string, o *fontdiff.Outline) error {
	var b strings.Builder
	for i, c := range o.Contours {
		fmt.Fprintf(&b, "contour %d (%d points)\n", i, len(c))
		for _, p := range c {
			fmt.Fprintf(&b, "  %-5s %g %g\n", p.Kind, p.X, p.Y)
		}
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// layer pairs an outline with its fill style for rendering.
type layer struct {
	outline *fontdiff.Outline
	style   fillStyle
}

type fillStyle uint8

const (
	styleSolid fillStyle = iota // opaque black
	styleLeft                   // translucent blue
	styleRight                  // translucent red
)

// transform maps font units (Y up, em grid) into the image square (Y down)
// with a fixed margin.
type transform struct {
	scale  float64
	margin float64
	height float64
}

func newTransform(size int, upem float64) transform {
	margin := float64(size) / 16
	return transform{
		scale:  (float64(size) - 2*margin) / upem,
		margin: margin,
		height: float64(size),
	}
}

func (t transform) apply(p fontdiff.Point) (x, y float64) {
	return t.margin + p.X*t.scale, t.height - t.margin - p.Y*t.scale
}
