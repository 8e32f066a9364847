package overlay

// CanonicalSize is the edge length, in pixels, that overlay sizes refer to.
const CanonicalSize = 1024

// Frame maps canonical UV onto a square pixel grid whose Y axis points down.
// FlipV is set when V grows upward, which is the case for mesh textures.
type Frame struct {
	Size  float64
	FlipV bool
}

// Flat is the frame of the flat editor's 1024 pixel canvas.
var Flat = Frame{Size: CanonicalSize, FlipV: true}

// TextureFrame returns the frame of a square texture of the given edge.
func TextureFrame(resolution int, flipV bool) Frame {
	return Frame{Size: float64(resolution), FlipV: flipV}
}

// ToPixel converts a UV position into frame pixels.
func (f Frame) ToPixel(p UV) (x, y float64) {
	x = p.U * f.Size
	if f.FlipV {
		return x, (1 - p.V) * f.Size
	}
	return x, p.V * f.Size
}

// ToUV converts frame pixels into a UV position. The result is not clamped.
func (f Frame) ToUV(x, y float64) UV {
	if f.Size == 0 {
		return UV{}
	}
	u := x / f.Size
	v := y / f.Size
	if f.FlipV {
		v = 1 - v
	}
	return UV{U: u, V: v}
}

// PixelScale is the ratio of this frame to the canonical size.
func (f Frame) PixelScale() float64 {
	return f.Size / CanonicalSize
}
