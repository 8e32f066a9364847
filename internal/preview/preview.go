// Package preview implements the flat 2D editing canvas. It shares the
// compositor with the mesh texture and hit-tests against measured overlay
// bounds instead of raycasting.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/compositor"
	"github.com/Faultbox/merchkit/internal/editor"
	"github.com/Faultbox/merchkit/internal/overlay"
)

// DefaultSize is the canvas edge in pixels.
const DefaultSize = 512

// Config configures a Surface.
type Config struct {
	Size           int
	SelectionColor color.NRGBA
}

// Surface is a square flat canvas of Size pixels.
type Surface struct {
	cfg    Config
	comp   *compositor.Compositor
	target *compositor.Target
	hit    editor.BoundsHitTester
}

// New creates a surface that renders with comp.
func New(cfg Config, comp *compositor.Compositor) *Surface {
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if comp == nil {
		comp = compositor.New(nil, nil)
	}
	return &Surface{
		cfg:    cfg,
		comp:   comp,
		target: compositor.NewTarget(cfg.Size, true),
		hit:    editor.NewBoundsHitTester(comp),
	}
}

// Size returns the canvas edge in pixels.
func (s *Surface) Size() int {
	return s.cfg.Size
}

// Scale is the ratio of canvas pixels to canonical pixels.
func (s *Surface) Scale() float64 {
	return s.target.Frame.PixelScale()
}

// Frame returns the canvas frame.
func (s *Surface) Frame() overlay.Frame {
	return s.target.Frame
}

// Point converts canvas pixels to a pointer location. Positions outside
// the canvas are reported as a miss.
func (s *Surface) Point(x, y float64) editor.Point {
	size := float64(s.cfg.Size)
	if x < 0 || y < 0 || x >= size || y >= size {
		return editor.Missed
	}
	return editor.Point{UV: s.target.Frame.ToUV(x, y)}
}

// DragPoint converts canvas pixels to a pointer location for a drag in
// progress. Positions outside the canvas clamp to its edge instead of
// missing, so an overlay follows the pointer out to the border.
func (s *Surface) DragPoint(x, y float64) editor.Point {
	size := float64(s.cfg.Size)
	x = math.Min(math.Max(x, 0), size)
	y = math.Min(math.Max(y, 0), size)
	return editor.Point{UV: s.target.Frame.ToUV(x, y).Clamp()}
}

// HitTest implements editor.HitTester in the canonical flat frame.
func (s *Surface) HitTest(snap overlay.Snapshot, p overlay.UV) int {
	return s.hit.HitTest(snap, p)
}

// NewController returns a flat-surface controller that hit-tests on this
// canvas.
func (s *Surface) NewController(cfg editor.ControllerConfig) *editor.Controller {
	cfg.Surface = editor.SurfaceFlat
	cfg.HitTester = s
	return editor.NewController(cfg)
}

// Render draws the state onto the canvas with the selection indicator.
// Without a base image the canvas is filled with the base color. The
// returned image is reused by the next call.
func (s *Surface) Render(st editor.State, base image.Image) (*image.RGBA, error) {
	opts := compositor.Options{
		Background:     colorfill.MustHexOrWhite(st.BaseColor),
		Selection:      st.Selection,
		SelectionColor: s.cfg.SelectionColor,
	}
	if err := s.comp.Compose(s.target, base, st.Overlays, opts); err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return s.target.Image, nil
}
