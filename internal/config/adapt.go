package config

import (
	"image/color"

	"github.com/Faultbox/merchkit/internal/camera"
	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/editor"
	"github.com/Faultbox/merchkit/pkg/math"
)

// ControllerConfig returns editor defaults for a surface. The flat surface
// uses the preview text color and image size.
func (c *Config) ControllerConfig(surface editor.Surface) editor.ControllerConfig {
	cc := editor.ControllerConfig{
		Surface:         surface,
		HitTester:       editor.UVTolerance(c.Editor.UVTolerance),
		DefaultText:     c.Editor.DefaultText,
		DefaultFontSize: c.Editor.DefaultFontSize,
		DefaultColor:    c.Editor.DefaultTextColor,
		DefaultFamily:   c.Editor.DefaultFont,
		DefaultImage:    c.Editor.DefaultImageSize,
		MinFontSize:     c.Editor.MinFontSize,
		MaxFontSize:     c.Editor.MaxFontSize,
	}
	if surface == editor.SurfaceFlat {
		cc.DefaultColor = c.Preview.DefaultTextColor
		cc.DefaultImage = c.Preview.DefaultImageSize
	}
	return cc
}

// Camera builds the orbit camera described by the camera section.
func (c CameraConfig) Camera() *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.FOV = c.FOV
	cam.Near = c.Near
	cam.Far = c.Far
	cam.MinPolar = math.Radians(c.MinPolar)
	cam.MaxPolar = math.Radians(c.MaxPolar)
	cam.LookFrom(math.Vec3{X: 0, Y: c.Height, Z: c.Distance})
	return cam
}

// SelectionRGBA parses the indicator color, falling back to white when
// malformed.
func (c PreviewConfig) SelectionRGBA() color.NRGBA {
	return colorfill.MustHexOrWhite(c.SelectionColor)
}
