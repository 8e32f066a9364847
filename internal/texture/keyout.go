package texture

import (
	"image"

	"github.com/disintegration/imaging"
)

// IsNavyKey reports whether a color matches the navy backdrop some artwork
// uploads ship with.
func IsNavyKey(r, g, b uint8) bool {
	return r < 50 && g < 50 && b > 60 && b < 150
}

// KeyOutNavy returns a copy of img with navy backdrop pixels made
// transparent. Keyed pixels are also zeroed to black to prevent color
// bleeding during filtering.
func KeyOutNavy(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		if IsNavyKey(out.Pix[i], out.Pix[i+1], out.Pix[i+2]) {
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = 0, 0, 0, 0
		}
	}
	return out
}
