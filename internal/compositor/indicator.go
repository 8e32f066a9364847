package compositor

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/merchkit/internal/overlay"
)

// Selection indicator geometry in target pixels.
const (
	indicatorPad   = 5
	indicatorWidth = 2
	indicatorDash  = 5
	indicatorGap   = 5
)

// drawIndicator strokes a dashed rectangle around the overlay's bounds,
// turned with the overlay.
func drawIndicator(t *Target, o overlay.Overlay, b Bounds, col color.NRGBA) {
	hw := b.W/2 + indicatorPad
	hh := b.H/2 + indicatorPad
	corners := [5][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}, {-hw, -hh}}

	px, py := t.Frame.ToPixel(o.Position)
	sin, cos := math.Sincos(o.Rotation * math.Pi / 180)
	toTarget := func(x, y float64) (float32, float32) {
		return float32(px + cos*x - sin*y), float32(py + sin*x + cos*y)
	}

	size := t.Image.Rect.Size()
	r := vector.NewRasterizer(size.X, size.Y)

	// The dash pattern carries over corners like a canvas strokeRect.
	period := float64(indicatorDash + indicatorGap)
	walked := 0.0
	for i := 0; i < 4; i++ {
		x0, y0 := corners[i][0], corners[i][1]
		x1, y1 := corners[i+1][0], corners[i+1][1]
		length := math.Hypot(x1-x0, y1-y0)
		if length == 0 {
			continue
		}
		ux, uy := (x1-x0)/length, (y1-y0)/length
		nx, ny := -uy*indicatorWidth/2, ux*indicatorWidth/2

		for s := 0.0; s < length; {
			phase := math.Mod(walked+s, period)
			if phase >= indicatorDash {
				s += period - phase
				continue
			}
			e := math.Min(length, s+indicatorDash-phase)
			ax, ay := x0+ux*s, y0+uy*s
			bx, by := x0+ux*e, y0+uy*e

			r.MoveTo(toTarget(ax+nx, ay+ny))
			r.LineTo(toTarget(bx+nx, by+ny))
			r.LineTo(toTarget(bx-nx, by-ny))
			r.LineTo(toTarget(ax-nx, ay-ny))
			r.ClosePath()
			s = e
		}
		walked += length
	}

	r.Draw(t.Image, t.Image.Rect, image.NewUniform(col), image.Point{})
}
