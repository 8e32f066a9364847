// Package compositor rasterizes the base fill and overlays into one texture.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/Faultbox/merchkit/internal/fonts"
	"github.com/Faultbox/merchkit/internal/logger"
	"github.com/Faultbox/merchkit/internal/overlay"
)

// Indicator defaults.
var (
	DefaultSelectionColor = color.NRGBA{R: 0x7d, G: 0xd3, B: 0xfc, A: 0xff}
	DefaultBackground     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ImageSource resolves image overlay sources to decoded images.
type ImageSource interface {
	Image(source string) (image.Image, bool)
}

// Target is an explicit render target: a square bitmap and the frame that
// maps canonical UV onto it.
type Target struct {
	Image *image.RGBA
	Frame overlay.Frame
}

// NewTarget allocates a square target of the given edge length.
func NewTarget(resolution int, flipV bool) *Target {
	return &Target{
		Image: image.NewRGBA(image.Rect(0, 0, resolution, resolution)),
		Frame: overlay.TextureFrame(resolution, flipV),
	}
}

// Resolution returns the target edge length in pixels.
func (t *Target) Resolution() int {
	return t.Image.Rect.Dx()
}

// Snapshot returns a copy of the current pixels.
func (t *Target) Snapshot() *image.RGBA {
	out := image.NewRGBA(t.Image.Rect)
	copy(out.Pix, t.Image.Pix)
	return out
}

// Options controls a single Compose call.
type Options struct {
	// Background fills the target when there is no base image. The zero
	// value means DefaultBackground.
	Background color.NRGBA

	// Selection draws the dashed indicator around the selected overlay.
	// The zero value draws nothing.
	Selection overlay.Selection

	// SelectionColor defaults to DefaultSelectionColor.
	SelectionColor color.NRGBA
}

// Compositor renders overlay snapshots. It keeps caches of rendered text
// and must be used from one goroutine at a time.
type Compositor struct {
	fonts   *fonts.Library
	images  ImageSource
	sprites *spriteCache
}

// New creates a compositor. A nil library uses fonts.Shared; a nil image
// source skips every image overlay.
func New(lib *fonts.Library, images ImageSource) *Compositor {
	if lib == nil {
		lib = fonts.Shared()
	}
	return &Compositor{
		fonts:   lib,
		images:  images,
		sprites: newSpriteCache(),
	}
}

// SetImages replaces the image source.
func (c *Compositor) SetImages(images ImageSource) {
	c.images = images
}

// Compose redraws t from scratch: base (or background), then every overlay
// in paint order, then the optional selection indicator. The output only
// depends on its inputs.
func (c *Compositor) Compose(t *Target, base image.Image, snap overlay.Snapshot, opts Options) error {
	if t == nil || t.Image == nil || t.Resolution() == 0 {
		return fmt.Errorf("compositor: empty target")
	}

	c.fillBase(t, base, opts.Background)

	for i, o := range snap.Items() {
		var err error
		switch o.Kind {
		case overlay.KindText:
			err = c.drawText(t, o)
		case overlay.KindImage:
			err = c.drawImage(t, o)
		}
		if err != nil {
			logger.Warn("skipping overlay layer",
				zap.Int("index", i),
				zap.String("id", o.ID),
				zap.Error(err))
		}
	}

	if sel := opts.Selection.Revalidate(snap); sel.Valid() {
		o, _ := snap.At(sel.Index)
		b, err := c.Measure(o, t.Resolution())
		if err != nil {
			return fmt.Errorf("measuring selected overlay: %w", err)
		}
		col := opts.SelectionColor
		if col.A == 0 {
			col = DefaultSelectionColor
		}
		drawIndicator(t, o, b, col)
	}
	return nil
}

func (c *Compositor) fillBase(t *Target, base image.Image, bg color.NRGBA) {
	dst := t.Image
	if base == nil || base.Bounds().Empty() {
		if bg.A == 0 {
			bg = DefaultBackground
		}
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		return
	}
	if base.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), base, base.Bounds().Min, draw.Src)
		return
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), base, base.Bounds(), draw.Src, nil)
}

// Bounds is an overlay's unrotated extent in target pixels, centered on its
// position.
type Bounds struct {
	W, H float64
}

// Measure returns the unrotated bounds of o rendered at resolution.
func (c *Compositor) Measure(o overlay.Overlay, resolution int) (Bounds, error) {
	k := float64(resolution) / overlay.CanonicalSize
	switch o.Kind {
	case overlay.KindText:
		m, err := c.fonts.Measure(o.FontFamily, float64(o.FontSize)*o.Scale*k, o.Content)
		if err != nil {
			return Bounds{}, err
		}
		return Bounds{W: m.Advance, H: m.Height()}, nil
	case overlay.KindImage:
		return Bounds{
			W: float64(o.Width) * o.Scale * k,
			H: float64(o.Height) * o.Scale * k,
		}, nil
	default:
		return Bounds{}, fmt.Errorf("unknown overlay kind %v", o.Kind)
	}
}

// StrokeWidth is the outline width, in canonical pixels, for a font size.
func StrokeWidth(fontSize int) float64 {
	return math.Max(2, float64(fontSize)/24)
}

// placement builds the source-to-destination transform
// translate(p) * rotate(deg) * scale(sx, sy) * translate(-c).
// Positive angles turn clockwise in Y-down pixel space.
func placement(px, py, deg, sx, sy, cx, cy float64) f64.Aff3 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	a, b := cos*sx, -sin*sy
	d, e := sin*sx, cos*sy
	return f64.Aff3{
		a, b, px - (a*cx + b*cy),
		d, e, py - (d*cx + e*cy),
	}
}
