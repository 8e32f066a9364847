package main

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/merchkit/internal/assets"
	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/design"
	"github.com/Faultbox/merchkit/internal/logger"
	"github.com/Faultbox/merchkit/internal/overlay"
	"github.com/Faultbox/merchkit/internal/texture"
)

// resolveSource makes relative image paths relative to the design file.
func resolveSource(dir, source string) string {
	if source == "" || strings.HasPrefix(source, "data:") || filepath.IsAbs(source) {
		return source
	}
	return filepath.Join(dir, source)
}

// imageSources lists the distinct image sources in snap, in stacking order.
func imageSources(snap overlay.Snapshot) []string {
	var out []string
	seen := make(map[string]bool)
	for _, o := range snap.Items() {
		if o.Kind != overlay.KindImage || seen[o.Source] {
			continue
		}
		seen[o.Source] = true
		out = append(out, o.Source)
	}
	return out
}

// outputPath derives "<name><suffix>.png" next to the input file.
func outputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ".png"
}

// newLibrary returns an image library that resolves design-relative paths.
func newLibrary(designPath string) *assets.Library {
	dir := filepath.Dir(designPath)
	return assets.NewLibrary(assets.Options{
		Loader: func(ctx context.Context, source string) (image.Image, error) {
			return texture.Load(ctx, resolveSource(dir, source))
		},
		KeyOutNavy: cfg.Editor.KeyOutNavy,
	})
}

// loaded is a design with its images and template decoded.
type loaded struct {
	design   design.Design
	snap     overlay.Snapshot
	report   design.DecodeReport
	lib      *assets.Library
	template image.Image
}

// base recolors the template to the design color. Nil without a template.
func (l *loaded) base() image.Image {
	if l.template == nil {
		return nil
	}
	return colorfill.Apply(l.template, colorfill.MustHexOrWhite(l.design.BaseColor()))
}

// loadDesign reads path and prepares everything needed to composite it.
// Images that fail to load are logged and left out of the render.
func loadDesign(ctx context.Context, path, template string) (*loaded, error) {
	d, err := design.Load(path)
	if err != nil {
		return nil, err
	}
	snap, report := d.Snapshot()
	for _, dr := range report.Dropped {
		logger.Warn("overlay record dropped", zap.Int("index", dr.Index), zap.String("reason", dr.Reason))
	}

	lib := newLibrary(path)
	if err := lib.Preload(ctx, imageSources(snap)); err != nil {
		logger.Warn("some images could not be loaded", zap.Error(err))
	}

	l := &loaded{design: d, snap: snap, report: report, lib: lib}
	if template != "" {
		if l.template, err = texture.Load(ctx, template); err != nil {
			return nil, fmt.Errorf("%w: %w", colorfill.ErrTemplateUnavailable, err)
		}
	}
	return l, nil
}
