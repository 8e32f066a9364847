package editor

import (
	"math"

	"github.com/Faultbox/merchkit/internal/compositor"
	"github.com/Faultbox/merchkit/internal/overlay"
)

// HitTester finds the overlay under a UV point. It returns the topmost
// matching index, or -1.
type HitTester interface {
	HitTest(snap overlay.Snapshot, p overlay.UV) int
}

// DefaultUVTolerance is the per-axis hit window on the mesh surface.
const DefaultUVTolerance UVTolerance = 0.08

// UVTolerance hits any overlay whose position lies within the tolerance on
// both axes. Overlay extents are ignored.
type UVTolerance float64

// HitTest implements HitTester.
func (tol UVTolerance) HitTest(snap overlay.Snapshot, p overlay.UV) int {
	t := float64(tol)
	for i := snap.Len() - 1; i >= 0; i-- {
		o, _ := snap.At(i)
		if math.Abs(o.Position.U-p.U) <= t && math.Abs(o.Position.V-p.V) <= t {
			return i
		}
	}
	return -1
}

// Measurer reports overlay extents. *compositor.Compositor satisfies it.
type Measurer interface {
	Measure(o overlay.Overlay, resolution int) (compositor.Bounds, error)
}

// BoundsHitTester hits overlays by their measured, rotated rectangle in
// the pixel space of Frame.
type BoundsHitTester struct {
	Measurer Measurer
	Frame    overlay.Frame
}

// NewBoundsHitTester tests in the canonical flat frame.
func NewBoundsHitTester(m Measurer) BoundsHitTester {
	return BoundsHitTester{Measurer: m, Frame: overlay.Flat}
}

// HitTest implements HitTester.
func (h BoundsHitTester) HitTest(snap overlay.Snapshot, p overlay.UV) int {
	px, py := h.Frame.ToPixel(p)
	for i := snap.Len() - 1; i >= 0; i-- {
		o, _ := snap.At(i)
		b, err := h.Measurer.Measure(o, int(h.Frame.Size))
		if err != nil {
			continue
		}
		ox, oy := h.Frame.ToPixel(o.Position)
		if insideRotated(px-ox, py-oy, o.Rotation, b) {
			return i
		}
	}
	return -1
}

// insideRotated reports whether the offset (dx, dy) from an overlay center
// falls inside bounds rotated clockwise by deg in Y-down space.
func insideRotated(dx, dy, deg float64, b compositor.Bounds) bool {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	lx := dx*cos + dy*sin
	ly := -dx*sin + dy*cos
	return math.Abs(lx) <= b.W/2 && math.Abs(ly) <= b.H/2
}
