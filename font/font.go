// Package font implements the font capability consumed by fontdiff: loading
// a variable-font binary, reporting its variation axes, and realizing glyph
// outlines at arbitrary variation-space locations.
//
// Parsing and variation interpolation are delegated to
// github.com/go-text/typesetting; the axis model, glyph count, and glyph
// names are decoded from the raw fvar, maxp, head, and post tables.
package font

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	tsfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/fontdiff/fontdiff"
)

// Font is a parsed, immutable variable font. It implements fontdiff.Source
// and is safe for concurrent use: the underlying typesetting Font is
// read-only, and the mutable per-use Face instances are pooled.
type Font struct {
	name      string
	upem      float64
	numGlyphs int
	axes      []fontdiff.Axis
	names     map[fontdiff.GlyphID]string

	src *tsfont.Font

	// faces pools tsfont.Face values: a Face carries mutable variation
	// coordinates and is not safe for concurrent use, while the Font it
	// wraps is.
	faces sync.Pool
}

// Load reads and parses a font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses a font binary. The name identifies the font in errors and
// reports, usually its file path.
func Parse(data []byte, name string) (*Font, error) {
	face, err := tsfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: parse %s: %w", name, err)
	}

	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: parse %s: %w", name, err)
	}

	f := &Font{
		name: name,
		src:  face.Font,
	}
	f.faces.New = func() any { return tsfont.NewFace(f.src) }

	if err := f.readTables(ld); err != nil {
		return nil, fmt.Errorf("font: %s: %w", name, err)
	}
	return f, nil
}

// readTables decodes the raw tables the comparator needs.
func (f *Font) readTables(ld *ot.Loader) error {
	head, err := ld.RawTable(ot.MustNewTag("head"))
	if err != nil {
		return fmt.Errorf("head table: %w", err)
	}
	upem, err := parseHead(head)
	if err != nil {
		return err
	}
	f.upem = upem

	maxp, err := ld.RawTable(ot.MustNewTag("maxp"))
	if err != nil {
		return fmt.Errorf("maxp table: %w", err)
	}
	f.numGlyphs, err = parseMaxp(maxp)
	if err != nil {
		return err
	}

	// A missing fvar table is not a parse failure here; the axis model
	// validation rejects axis-less fonts with the proper error kind.
	if fvar, err := ld.RawTable(ot.MustNewTag("fvar")); err == nil {
		f.axes, err = parseFvar(fvar)
		if err != nil {
			return err
		}
	}

	if post, err := ld.RawTable(ot.MustNewTag("post")); err == nil {
		f.names, _ = parsePost(post, f.numGlyphs)
	}
	return nil
}

// Name returns the identifier given at load time.
func (f *Font) Name() string { return f.name }

// Axes returns the fvar axes in declaration order. Fonts without a fvar
// table return an empty set; fontdiff.ValidateAxes turns that into the
// fatal axis-model error.
func (f *Font) Axes() ([]fontdiff.Axis, error) {
	axes := make([]fontdiff.Axis, len(f.axes))
	copy(axes, f.axes)
	return axes, nil
}

// NumGlyphs returns the glyph count from the maxp table.
func (f *Font) NumGlyphs() int { return f.numGlyphs }

// UnitsPerEm returns the design grid size from the head table.
func (f *Font) UnitsPerEm() float64 { return f.upem }

// GlyphName returns the post-table name for the glyph, or a stable "gid%d"
// label when the font carries no usable name.
func (f *Font) GlyphName(gid fontdiff.GlyphID) string {
	if name, ok := f.names[gid]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("gid%d", gid)
}

// Outline realizes the glyph's contour geometry at the given location by
// interpolating the font's variation data. It is a pure function of its
// inputs.
func (f *Font) Outline(loc fontdiff.Location, gid fontdiff.GlyphID) (*fontdiff.Outline, error) {
	if int(gid) >= f.numGlyphs {
		return nil, &fontdiff.GlyphNotFoundError{Glyph: gid}
	}

	face := f.faces.Get().(*tsfont.Face)
	defer f.faces.Put(face)

	vars := make([]tsfont.Variation, len(loc))
	for i, av := range loc {
		if len(av.Tag) != 4 {
			return nil, fmt.Errorf("font: invalid axis tag %q", av.Tag)
		}
		vars[i] = tsfont.Variation{
			Tag:   ot.MustNewTag(string(av.Tag)),
			Value: float32(av.Value),
		}
	}
	face.SetVariations(vars)

	data := face.GlyphData(tsfont.GID(gid))
	switch g := data.(type) {
	case tsfont.GlyphOutline:
		return outlineFromSegments(g.Segments), nil
	case nil:
		// No glyph data at all: treat as an empty outline (space-like
		// glyphs), matching what both sides will see.
		return &fontdiff.Outline{}, nil
	default:
		return nil, fmt.Errorf("font: glyph %d has no vector outline", gid)
	}
}
