package fontdiff

import (
	"fmt"
	"io"
	"sort"
)

// GlyphSummary tallies one glyph's results across the whole constellation.
type GlyphSummary struct {
	Glyph    GlyphID
	Scenario string
	Fails    int
	Total    int

	// Missing is the side the glyph is absent from, or "" when present in
	// both fonts.
	Missing Side
}

// Report aggregates a full run: one entry of counts per glyph, plus run-wide
// totals. Individual Comparison values are not retained.
type Report struct {
	Locations int
	Glyphs    int

	passes       int
	failures     int
	inconclusive int
	renderErrors int

	glyphs map[GlyphID]*GlyphSummary
}

func newReport(locations, glyphs int) *Report {
	return &Report{
		Locations: locations,
		Glyphs:    glyphs,
		glyphs:    make(map[GlyphID]*GlyphSummary, glyphs),
	}
}

func (r *Report) add(c Comparison) {
	g := r.glyphs[c.Glyph]
	if g == nil {
		g = &GlyphSummary{Glyph: c.Glyph, Scenario: c.Scenario}
		r.glyphs[c.Glyph] = g
	}
	g.Total++

	switch c.Status {
	case StatusPass:
		r.passes++
	case StatusMissingLeft:
		g.Missing = SideLeft
		g.Fails++
		r.failures++
	case StatusMissingRight:
		g.Missing = SideRight
		g.Fails++
		r.failures++
	case StatusInconclusive:
		g.Fails++
		r.failures++
		r.inconclusive++
	default:
		g.Fails++
		r.failures++
	}
	if c.RenderErr != nil {
		r.renderErrors++
	}
}

// Passes returns the number of units that compared equivalent.
func (r *Report) Passes() int { return r.passes }

// Failures returns the number of units that did not pass, including missing
// glyphs and inconclusive extractions.
func (r *Report) Failures() int { return r.failures }

// Inconclusive returns the number of units whose extraction failed.
func (r *Report) Inconclusive() int { return r.inconclusive }

// RenderErrors returns the number of artifact write failures. These do not
// affect verdicts.
func (r *Report) RenderErrors() int { return r.renderErrors }

// Ok reports whether every unit passed.
func (r *Report) Ok() bool { return r.failures == 0 }

// Summaries returns the per-glyph tallies sorted by scenario name.
func (r *Report) Summaries() []GlyphSummary {
	out := make([]GlyphSummary, 0, len(r.glyphs))
	for _, g := range r.glyphs {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scenario != out[j].Scenario {
			return out[i].Scenario < out[j].Scenario
		}
		return out[i].Glyph < out[j].Glyph
	})
	return out
}

// WriteSummary writes the human-readable run summary: one line per glyph
// that exists on one side only, one line per compared glyph, and the final
// totals.
func (r *Report) WriteSummary(w io.Writer) {
	sums := r.Summaries()

	for _, g := range sums {
		if g.Missing == SideLeft {
			fmt.Fprintf(w, "only_right %s\n", g.Scenario)
		} else if g.Missing == SideRight {
			fmt.Fprintf(w, "only_left %s\n", g.Scenario)
		}
	}
	for _, g := range sums {
		if g.Missing != "" {
			continue
		}
		if g.Fails > 0 {
			fmt.Fprintf(w, "%s fails at %d/%d locations\n", g.Scenario, g.Fails, g.Total)
		} else {
			fmt.Fprintf(w, "%s passes\n", g.Scenario)
		}
	}

	if r.renderErrors > 0 {
		fmt.Fprintf(w, "%d artifact write errors\n", r.renderErrors)
	}
	if r.failures == 0 {
		fmt.Fprintf(w, "all %d comparisons passed\n", r.passes)
	} else {
		fmt.Fprintf(w, "%d failures out of %d comparisons\n", r.failures, r.passes+r.failures)
	}
}
