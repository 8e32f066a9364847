package design

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/compositor"
	"github.com/Faultbox/merchkit/internal/fonts"
	"github.com/Faultbox/merchkit/internal/texture"
)

// RenderConfig controls design replay.
type RenderConfig struct {
	Resolution int
	FlipV      bool

	// Template is recolored to the design color. Nil renders the
	// overlays over Background.
	Template   image.Image
	Background color.NRGBA

	Images compositor.ImageSource
	Fonts  *fonts.Library
}

// Render replays d into a new texture. The same design and configuration
// always produce the same pixels.
func Render(d Design, cfg RenderConfig) (*image.RGBA, DecodeReport, error) {
	if cfg.Resolution <= 0 {
		cfg.Resolution = 2048
	}
	snap, report := d.Snapshot()

	var base image.Image
	if cfg.Template != nil {
		base = colorfill.Apply(cfg.Template, colorfill.MustHexOrWhite(d.Color))
	}

	t := compositor.NewTarget(cfg.Resolution, cfg.FlipV)
	comp := compositor.New(cfg.Fonts, cfg.Images)
	if err := comp.Compose(t, base, snap, compositor.Options{Background: cfg.Background}); err != nil {
		return nil, report, fmt.Errorf("rendering design %q: %w", d.Name, err)
	}
	return t.Image, report, nil
}

// DefaultThumbnailSize is the edge of stored thumbnails.
const DefaultThumbnailSize = 256

// Thumbnail downsamples img to size and returns it as a PNG data URL.
func Thumbnail(img image.Image, size int) (string, error) {
	if size <= 0 {
		size = DefaultThumbnailSize
	}
	small := imaging.Resize(img, size, size, imaging.Lanczos)
	url, err := texture.PNGDataURL(small)
	if err != nil {
		return "", fmt.Errorf("encoding thumbnail: %w", err)
	}
	return url, nil
}

// WithThumbnail returns d with a thumbnail of img attached.
func (d Design) WithThumbnail(img image.Image, size int) (Design, error) {
	url, err := Thumbnail(img, size)
	if err != nil {
		return d, err
	}
	d.Thumbnail = url
	return d, nil
}
