package artifact

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/vector"

	"github.com/fontdiff/fontdiff"
)

// Fill colors per layer style. Pass overlays use translucent primaries so
// the overlap reads as agreement and any fringe as divergence.
var fillColors = map[fillStyle]color.RGBA{
	styleSolid: {A: 0xff},
	styleLeft:  {B: 0xff, A: 0x80},
	styleRight: {R: 0xff, A: 0x80},
}

// writePNG rasterizes the layers onto a white square and encodes it.
func (s *Store) writePNG(path string, upem float64, layers ...layer) error {
	size := s.size()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	t := newTransform(size, upem)
	for _, l := range layers {
		rasterize(img, l.outline, t, fillColors[l.style])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}

// rasterize fills the outline into dst using the scanline vector rasterizer.
// All contours go into one rasterizer pass so that counter-directed inner
// contours cut holes, as in glyph rendering.
func rasterize(dst draw.Image, o *fontdiff.Outline, t transform, fill color.RGBA) {
	if o.IsEmpty() {
		return
	}

	size := dst.Bounds().Dx()
	z := vector.NewRasterizer(size, size)
	z.DrawOp = draw.Over

	for _, contour := range o.Contours {
		for _, op := range contourOps(contour, t) {
			switch op.op {
			case 'M':
				z.MoveTo(float32(op.pts[0][0]), float32(op.pts[0][1]))
			case 'L':
				z.LineTo(float32(op.pts[0][0]), float32(op.pts[0][1]))
			case 'Q':
				z.QuadTo(
					float32(op.pts[0][0]), float32(op.pts[0][1]),
					float32(op.pts[1][0]), float32(op.pts[1][1]))
			case 'C':
				z.CubeTo(
					float32(op.pts[0][0]), float32(op.pts[0][1]),
					float32(op.pts[1][0]), float32(op.pts[1][1]),
					float32(op.pts[2][0]), float32(op.pts[2][1]))
			}
		}
		z.ClosePath()
	}

	z.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{})
}
