package fontdiff

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeSource is an in-memory Source whose glyph geometry scales with the
// first axis value, mimicking variation interpolation.
type fakeSource struct {
	name    string
	axes    []Axis
	upem    float64
	glyphs  []Contour // glyph gid has contour glyphs[gid]
	names   map[GlyphID]string
	errGIDs map[GlyphID]error

	// warp offsets every point, simulating a miscompiled font.
	warp float64
}

func (f *fakeSource) Name() string          { return f.name }
func (f *fakeSource) Axes() ([]Axis, error) { return f.axes, nil }
func (f *fakeSource) NumGlyphs() int        { return len(f.glyphs) }
func (f *fakeSource) UnitsPerEm() float64   { return f.upem }

func (f *fakeSource) GlyphName(gid GlyphID) string {
	if n, ok := f.names[gid]; ok {
		return n
	}
	return fmt.Sprintf("gid%d", gid)
}

func (f *fakeSource) Outline(loc Location, gid GlyphID) (*Outline, error) {
	if int(gid) >= len(f.glyphs) {
		return nil, &GlyphNotFoundError{Glyph: gid}
	}
	if err, ok := f.errGIDs[gid]; ok {
		return nil, err
	}
	scale := 1.0
	if len(loc) > 0 {
		scale = loc[0].Value / 100
	}
	base := f.glyphs[gid]
	c := make(Contour, len(base))
	for i, p := range base {
		c[i] = Point{X: p.X*scale + f.warp, Y: p.Y*scale + f.warp, Kind: p.Kind}
	}
	return &Outline{Contours: []Contour{c}}, nil
}

// recordingWriter captures artifact calls in a deterministic format.
type recordingWriter struct {
	mu       sync.Mutex
	failures []string
	passes   []string
	err      error
}

func (w *recordingWriter) WriteFailure(scenario string, side Side, index int, o *Outline, upem float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failures = append(w.failures, fmt.Sprintf("fail.%s.%s.%d", scenario, side, index))
	return w.err
}

func (w *recordingWriter) WritePass(scenario string, index int, left, right *Outline, upem float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.passes = append(w.passes, fmt.Sprintf("pass.%s.%d", scenario, index))
	return w.err
}

func (w *recordingWriter) sortedFailures() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := append([]string(nil), w.failures...)
	sort.Strings(out)
	return out
}

func (w *recordingWriter) sortedPasses() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := append([]string(nil), w.passes...)
	sort.Strings(out)
	return out
}

func newFakeSource(name string) *fakeSource {
	return &fakeSource{
		name: name,
		axes: []Axis{{Tag: "wght", Min: 100, Default: 400, Max: 900}},
		upem: 1000,
		glyphs: []Contour{
			square(100),
			blob(),
		},
		names: map[GlyphID]string{0: "circle", 1: "blob"},
	}
}

func TestRunner_SelfCompareAllPass(t *testing.T) {
	left := newFakeSource("a.ttf")
	right := newFakeSource("b.ttf")
	w := &recordingWriter{}

	report, err := NewRunner(left, right, w, DefaultOptions()).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 1 axis -> 5 locations, 2 glyphs -> 10 units.
	if report.Passes() != 10 || report.Failures() != 0 {
		t.Errorf("passes/failures = %d/%d, want 10/0", report.Passes(), report.Failures())
	}
	if !report.Ok() {
		t.Error("Ok = false, want true")
	}
	if len(w.sortedFailures()) != 0 {
		t.Errorf("failure artifacts = %v, want none", w.sortedFailures())
	}
	if len(w.sortedPasses()) != 10 {
		t.Errorf("pass artifacts = %d, want 10", len(w.sortedPasses()))
	}
}

func TestRunner_Determinism(t *testing.T) {
	run := func() ([]string, []string) {
		left := newFakeSource("a.ttf")
		right := newFakeSource("b.ttf")
		right.warp = 5 // every unit fails
		w := &recordingWriter{}
		opts := DefaultOptions()
		opts.Workers = 4
		if _, err := NewRunner(left, right, w, opts).Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return w.sortedFailures(), w.sortedPasses()
	}

	f1, p1 := run()
	f2, p2 := run()
	if diff := cmp.Diff(f1, f2); diff != "" {
		t.Errorf("failure artifact names differ between runs:\n%s", diff)
	}
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("pass artifact names differ between runs:\n%s", diff)
	}
	if len(f1) != 2*10 { // left+right per failing unit
		t.Errorf("failure artifacts = %d, want 20", len(f1))
	}
}

func TestRunner_MismatchDetail(t *testing.T) {
	left := newFakeSource("a.ttf")
	right := newFakeSource("b.ttf")
	right.warp = 5

	report, err := NewRunner(left, right, nil, DefaultOptions()).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Failures() != 10 {
		t.Errorf("Failures = %d, want 10", report.Failures())
	}
	if report.Ok() {
		t.Error("Ok = true, want false")
	}
}

func TestRunner_AxisMismatchIsFatal(t *testing.T) {
	left := newFakeSource("a.ttf")
	right := newFakeSource("b.ttf")
	right.axes = []Axis{{Tag: "opsz", Min: 8, Default: 14, Max: 144}}
	w := &recordingWriter{}

	_, err := NewRunner(left, right, w, DefaultOptions()).Run()
	var mismatch *AxisMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *AxisMismatchError", err)
	}
	// Fatal before the loop: no artifact of any kind.
	if len(w.sortedFailures())+len(w.sortedPasses()) != 0 {
		t.Error("artifacts written despite fatal pre-loop error")
	}
}

func TestRunner_InvalidAxesFatal(t *testing.T) {
	left := newFakeSource("a.ttf")
	left.axes = nil
	right := newFakeSource("b.ttf")

	_, err := NewRunner(left, right, nil, DefaultOptions()).Run()
	var parseErr *AxisParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *AxisParseError", err)
	}
}

func TestRunner_MissingGlyphReportedPerCoordinate(t *testing.T) {
	left := newFakeSource("a.ttf")
	left.glyphs = append(left.glyphs, square(42)) // gid 2 only in left
	left.names[2] = "extra"
	right := newFakeSource("b.ttf")
	w := &recordingWriter{}

	report, err := NewRunner(left, right, w, DefaultOptions()).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// gid 2 fails at all 5 locations, the shared glyphs pass.
	if report.Failures() != 5 {
		t.Errorf("Failures = %d, want 5", report.Failures())
	}

	var missing *GlyphSummary
	for _, g := range report.Summaries() {
		g := g
		if g.Scenario == "extra" {
			missing = &g
		}
	}
	if missing == nil {
		t.Fatal("no summary for the one-sided glyph")
	}
	if missing.Missing != SideRight {
		t.Errorf("Missing = %q, want %q", missing.Missing, SideRight)
	}
	if missing.Fails != 5 {
		t.Errorf("Fails = %d, want 5", missing.Fails)
	}
}

func TestRunner_Filter(t *testing.T) {
	left := newFakeSource("a.ttf")
	right := newFakeSource("b.ttf")
	w := &recordingWriter{}
	opts := DefaultOptions()
	opts.Filter = regexp.MustCompile(`^blob$`)

	report, err := NewRunner(left, right, w, opts).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Passes() != 5 {
		t.Errorf("Passes = %d, want 5 (one glyph, five locations)", report.Passes())
	}
	for _, name := range w.sortedPasses() {
		if !strings.HasPrefix(name, "pass.blob.") {
			t.Errorf("unexpected artifact %q", name)
		}
	}
}

func TestRunner_ExtractionErrorInconclusive(t *testing.T) {
	left := newFakeSource("a.ttf")
	left.errGIDs = map[GlyphID]error{1: errors.New("gvar: bad delta")}
	right := newFakeSource("b.ttf")

	report, err := NewRunner(left, right, nil, DefaultOptions()).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Inconclusive() != 5 {
		t.Errorf("Inconclusive = %d, want 5", report.Inconclusive())
	}
	if report.Failures() != 5 {
		t.Errorf("Failures = %d, want 5 (inconclusive counts as failure)", report.Failures())
	}
}

func TestRunner_RenderErrorDoesNotChangeVerdict(t *testing.T) {
	left := newFakeSource("a.ttf")
	right := newFakeSource("b.ttf")
	w := &recordingWriter{err: errors.New("disk full")}

	report, err := NewRunner(left, right, w, DefaultOptions()).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Ok() {
		t.Error("render errors flipped the verdict")
	}
	if report.RenderErrors() != 10 {
		t.Errorf("RenderErrors = %d, want 10", report.RenderErrors())
	}
}

func TestRunner_NoPassArtifactsWhenDisabled(t *testing.T) {
	left := newFakeSource("a.ttf")
	right := newFakeSource("b.ttf")
	w := &recordingWriter{}
	opts := DefaultOptions()
	opts.RenderPasses = false

	if _, err := NewRunner(left, right, w, opts).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := len(w.sortedPasses()); n != 0 {
		t.Errorf("pass artifacts = %d, want 0", n)
	}
}
