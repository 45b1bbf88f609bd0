package artifact

import (
	"fmt"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/fontdiff/fontdiff"
)

var fillStyles = map[fillStyle]string{
	styleSolid: "fill:black",
	styleLeft:  "fill:blue;fill-opacity:0.5",
	styleRight: "fill:red;fill-opacity:0.5",
}

// writeSVG emits the layers as filled paths on a white canvas.
func (s *Store) writeSVG(path string, upem float64, layers ...layer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	size := s.size()
	t := newTransform(size, upem)

	canvas := svg.New(f)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:white")
	for _, l := range layers {
		if l.outline.IsEmpty() {
			continue
		}
		canvas.Path(pathData(l.outline, t), fillStyles[l.style]+";fill-rule:nonzero")
	}
	canvas.End()
	return nil
}

// pathData builds the SVG path string, one command per segment, every
// contour explicitly closed with Z.
func pathData(o *fontdiff.Outline, t transform) string {
	var b strings.Builder
	for _, contour := range o.Contours {
		for _, op := range contourOps(contour, t) {
			b.WriteByte(op.op)
			n := 1
			if op.op == 'Q' {
				n = 2
			} else if op.op == 'C' {
				n = 3
			}
			for i := 0; i < n; i++ {
				fmt.Fprintf(&b, " %.2f %.2f", op.pts[i][0], op.pts[i][1])
			}
			b.WriteByte(' ')
		}
		b.WriteString("Z ")
	}
	return strings.TrimSpace(b.String())
}
