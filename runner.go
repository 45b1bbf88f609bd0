package fontdiff

import (
	"fmt"
	"regexp"

	"github.com/fontdiff/fontdiff/internal/parallel"
)

// Source is the font capability the orchestrator consumes: a parsed,
// immutable font that can report its axes and realize glyph outlines at
// variation-space locations. Implementations must be safe for concurrent
// Outline calls; see package font for the typesetting-backed implementation.
type Source interface {
	// Name identifies the font in errors and logs (usually the file path).
	Name() string

	// Axes returns the variation axes in declaration order.
	Axes() ([]Axis, error)

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// GlyphName returns a stable display name for the glyph, used as the
	// scenario label in artifact filenames.
	GlyphName(GlyphID) string

	// UnitsPerEm returns the font's design grid size.
	UnitsPerEm() float64

	// Outline realizes the glyph's contour geometry at the location.
	// It returns *GlyphNotFoundError when the font lacks the glyph.
	Outline(Location, GlyphID) (*Outline, error)
}

// ArtifactWriter is the rendering capability the orchestrator consumes.
// Write errors are reported through the Comparison, never escalated.
type ArtifactWriter interface {
	// WriteFailure renders one side of a mismatched unit.
	WriteFailure(scenario string, side Side, index int, o *Outline, upem float64) error

	// WritePass renders a combined confirmation image for a matching unit.
	WritePass(scenario string, index int, left, right *Outline, upem float64) error
}

// Options configures a run.
type Options struct {
	Compare CompareOptions

	// Filter limits the run to glyphs whose scenario name matches.
	// Nil means all glyphs.
	Filter *regexp.Regexp

	// Workers is the worker pool size; 0 means GOMAXPROCS.
	Workers int

	// RenderPasses controls whether passing units emit a combined
	// confirmation image. Failure artifacts are always written.
	RenderPasses bool
}

// DefaultOptions returns the options used by the CLI defaults.
func DefaultOptions() Options {
	return Options{RenderPasses: true}
}

// Runner drives the full constellation × glyph cross product: extract both
// outlines, compare, route artifacts, aggregate.
type Runner struct {
	left, right Source
	artifacts   ArtifactWriter
	opts        Options
}

// NewRunner creates a runner over the two fonts. artifacts may be nil to
// skip evidence rendering entirely.
func NewRunner(left, right Source, artifacts ArtifactWriter, opts Options) *Runner {
	return &Runner{left: left, right: right, artifacts: artifacts, opts: opts}
}

// Run executes the comparison. It returns an error only for fatal, pre-loop
// conditions: unusable axis models or mismatched axis sets. Per-unit
// failures (geometric mismatches, one-sided glyphs, extraction errors) are
// recorded in the report and never abort the remaining units.
func (r *Runner) Run() (*Report, error) {
	leftAxes, err := r.left.Axes()
	if err != nil {
		return nil, fmt.Errorf("left font axes: %w", err)
	}
	if err := ValidateAxes(r.left.Name(), leftAxes); err != nil {
		return nil, err
	}
	rightAxes, err := r.right.Axes()
	if err != nil {
		return nil, fmt.Errorf("right font axes: %w", err)
	}
	if err := ValidateAxes(r.right.Name(), rightAxes); err != nil {
		return nil, err
	}

	locs, err := Constellation(leftAxes, rightAxes)
	if err != nil {
		return nil, err
	}

	glyphs := r.glyphUniverse()
	upem := maxf(r.left.UnitsPerEm(), r.right.UnitsPerEm())

	Logger().Info("run start",
		"left", r.left.Name(),
		"right", r.right.Name(),
		"locations", len(locs),
		"glyphs", len(glyphs))

	// One slot per unit, addressed by logical position so that results and
	// artifact indices are deterministic regardless of completion order.
	results := make([]Comparison, len(locs)*len(glyphs))
	work := make([]func(), 0, len(results))
	for ci := range locs {
		for gi := range glyphs {
			ci, gi := ci, gi
			slot := ci*len(glyphs) + gi
			work = append(work, func() {
				results[slot] = r.runUnit(locs[ci], ci, glyphs[gi], upem)
			})
		}
	}

	pool := parallel.NewWorkerPool(r.opts.Workers)
	pool.ExecuteAll(work)
	pool.Close()

	report := newReport(len(locs), len(glyphs))
	for _, c := range results {
		report.add(c)
	}
	Logger().Info("run done",
		"failures", report.Failures(),
		"passes", report.Passes(),
		"render_errors", report.RenderErrors())
	return report, nil
}

// glyphUniverse returns the union of both fonts' glyph id ranges, filtered
// by the scenario-name filter. Iterating the union, not one font's set,
// makes glyph additions and removals themselves show up as mismatches.
func (r *Runner) glyphUniverse() []GlyphID {
	n := r.left.NumGlyphs()
	if rn := r.right.NumGlyphs(); rn > n {
		n = rn
	}
	glyphs := make([]GlyphID, 0, n)
	for gid := GlyphID(0); gid < GlyphID(n); gid++ {
		if r.opts.Filter != nil && !r.opts.Filter.MatchString(r.scenarioName(gid)) {
			continue
		}
		glyphs = append(glyphs, gid)
	}
	return glyphs
}

// scenarioName picks a display name for the glyph, preferring the left font.
func (r *Runner) scenarioName(gid GlyphID) string {
	if int(gid) < r.left.NumGlyphs() {
		return r.left.GlyphName(gid)
	}
	return r.right.GlyphName(gid)
}

func (r *Runner) runUnit(loc Location, coord int, gid GlyphID, upem float64) Comparison {
	c := Comparison{
		Glyph:    gid,
		Scenario: r.scenarioName(gid),
		Coord:    coord,
		Location: loc,
	}

	inLeft := int(gid) < r.left.NumGlyphs()
	inRight := int(gid) < r.right.NumGlyphs()
	switch {
	case !inLeft && !inRight:
		c.Status = StatusInconclusive
		c.Err = &GlyphNotFoundError{Glyph: gid}
		return c
	case !inLeft:
		c.Status = StatusMissingLeft
		c.Err = &GlyphNotFoundError{Glyph: gid}
		return c
	case !inRight:
		c.Status = StatusMissingRight
		c.Err = &GlyphNotFoundError{Glyph: gid}
		return c
	}

	leftOutline, err := r.left.Outline(loc, gid)
	if err != nil {
		c.Status = StatusInconclusive
		c.Err = fmt.Errorf("left outline at %s: %w", loc, err)
		Logger().Warn("extraction failed", "glyph", c.Scenario, "err", c.Err)
		return c
	}
	rightOutline, err := r.right.Outline(loc, gid)
	if err != nil {
		c.Status = StatusInconclusive
		c.Err = fmt.Errorf("right outline at %s: %w", loc, err)
		Logger().Warn("extraction failed", "glyph", c.Scenario, "err", c.Err)
		return c
	}

	if diff := CompareOutlines(leftOutline, rightOutline, r.opts.Compare); diff != nil {
		c.Status = StatusFail
		c.Diff = diff
		Logger().Debug("mismatch", "glyph", c.Scenario, "location", loc.String(), "diff", diff.String())
		c.RenderErr = r.renderFailure(c, leftOutline, rightOutline, upem)
		if c.RenderErr != nil {
			Logger().Warn("render failed", "glyph", c.Scenario, "err", c.RenderErr)
		}
		return c
	}

	c.Status = StatusPass
	if r.opts.RenderPasses {
		c.RenderErr = r.renderPass(c, leftOutline, rightOutline, upem)
	}
	return c
}

func (r *Runner) renderFailure(c Comparison, left, right *Outline, upem float64) error {
	if r.artifacts == nil {
		return nil
	}
	if err := r.artifacts.WriteFailure(c.Scenario, SideLeft, c.Coord, left, upem); err != nil {
		return err
	}
	return r.artifacts.WriteFailure(c.Scenario, SideRight, c.Coord, right, upem)
}

func (r *Runner) renderPass(c Comparison, left, right *Outline, upem float64) error {
	if r.artifacts == nil {
		return nil
	}
	return r.artifacts.WritePass(c.Scenario, c.Coord, left, right, upem)
}
