// Command fontdiff compares the glyph geometry of two variable-font builds
// across their variation space.
//
// Usage:
//
//	fontdiff [flags] left.ttf right.ttf
//
// The exit status is zero iff every (location, glyph) comparison passed.
// Evidence images are written to the staging directory; failures produce one
// image per side plus a segment dump, passes a combined overlay.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"regexp"

	"github.com/fontdiff/fontdiff"
	"github.com/fontdiff/fontdiff/artifact"
	"github.com/fontdiff/fontdiff/font"
)

func main() {
	var (
		filter       = flag.String("filter", "", "regex filter for glyph names")
		epsilon      = flag.Float64("epsilon", fontdiff.DefaultEpsilon, "pointwise tolerance in font units")
		canonical    = flag.Bool("canonical", false, "canonicalize contour start point and winding before comparing")
		workers      = flag.Int("workers", 0, "comparison workers (0 = GOMAXPROCS)")
		outDir       = flag.String("out", os.TempDir(), "staging directory for evidence images")
		format       = flag.String("format", "svg", "evidence image format: png or svg")
		size         = flag.Int("size", artifact.DefaultSize, "evidence image side length in pixels")
		renderPasses = flag.Bool("render-pass", true, "write combined overlay images for passing units")
		verbose      = flag.Bool("v", false, "log per-unit outcomes to stderr")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: fontdiff [flags] left.ttf right.ttf")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *verbose {
		fontdiff.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := fontdiff.DefaultOptions()
	opts.Compare.Epsilon = *epsilon
	opts.Compare.Canonicalize = *canonical
	opts.Workers = *workers
	opts.RenderPasses = *renderPasses
	if *filter != "" {
		re, err := regexp.Compile(*filter)
		if err != nil {
			log.Fatalf("Invalid filter: %v", err)
		}
		opts.Filter = re
	}

	left, err := font.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load left font: %v", err)
	}
	right, err := font.Load(flag.Arg(1))
	if err != nil {
		log.Fatalf("Failed to load right font: %v", err)
	}

	store := artifact.NewStore(*outDir, artifact.Format(*format))
	store.Size = *size

	runner := fontdiff.NewRunner(left, right, store, opts)
	report, err := runner.Run()
	if err != nil {
		log.Fatalf("Comparison aborted: %v", err)
	}

	fmt.Printf("Tested %d glyphs at %d locations\n", report.Glyphs, report.Locations)
	report.WriteSummary(os.Stdout)

	if !report.Ok() {
		os.Exit(1)
	}
}
