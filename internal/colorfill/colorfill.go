// Package colorfill recolors garment UV templates.
//
// A template pixel is recolored when it is near-white or near-black on every
// channel. Anti-aliased mid-tones between the two thresholds keep their
// original color, so template edges can show a faint halo after a recolor.
package colorfill

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Classification thresholds on non-premultiplied 8-bit channels.
const (
	whiteThreshold = 200
	blackThreshold = 55
)

// ErrTemplateUnavailable is reported when the template could not be decoded.
var ErrTemplateUnavailable = errors.New("colorfill: template unavailable")

// IsTarget reports whether a pixel with the given channels gets recolored.
func IsTarget(r, g, b uint8) bool {
	if r > whiteThreshold && g > whiteThreshold && b > whiteThreshold {
		return true
	}
	return r < blackThreshold && g < blackThreshold && b < blackThreshold
}

// Apply returns a recolored copy of template. Target pixels take the RGB of
// target and keep their alpha; all other pixels are copied unchanged.
func Apply(template image.Image, target color.NRGBA) *image.NRGBA {
	dst := imaging.Clone(template)
	pix := dst.Pix
	for y := 0; y < dst.Rect.Dy(); y++ {
		row := pix[y*dst.Stride : y*dst.Stride+dst.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			if IsTarget(row[i], row[i+1], row[i+2]) {
				row[i] = target.R
				row[i+1] = target.G
				row[i+2] = target.B
			}
		}
	}
	return dst
}

// Engine recolors one template and remembers the last result.
type Engine struct {
	template image.Image
	err      error

	cached    *image.NRGBA
	cachedFor color.NRGBA
}

// NewEngine creates an engine for template. A nil template means no base
// fill step applies and Fill returns a nil image.
func NewEngine(template image.Image) *Engine {
	return &Engine{template: template}
}

// Unavailable creates an engine for a template that failed to load.
func Unavailable(cause error) *Engine {
	return &Engine{err: fmt.Errorf("%w: %v", ErrTemplateUnavailable, cause)}
}

// HasTemplate reports whether a decoded template is attached.
func (e *Engine) HasTemplate() bool {
	return e.template != nil
}

// Bounds returns the template bounds, or an empty rectangle.
func (e *Engine) Bounds() image.Rectangle {
	if e.template == nil {
		return image.Rectangle{}
	}
	return e.template.Bounds()
}

// Fill recolors the template to target. The returned image is shared with
// the cache and must not be modified.
func (e *Engine) Fill(target color.NRGBA) (*image.NRGBA, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.template == nil {
		return nil, nil
	}
	if e.cached != nil && e.cachedFor == target {
		return e.cached, nil
	}
	e.cached = Apply(e.template, target)
	e.cachedFor = target
	return e.cached, nil
}
