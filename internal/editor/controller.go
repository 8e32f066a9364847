package editor

import (
	"strings"

	"github.com/Faultbox/merchkit/internal/overlay"
)

// ControllerConfig contains the defaults new overlays are created with.
type ControllerConfig struct {
	Surface Surface

	// HitTester defaults to DefaultUVTolerance.
	HitTester HitTester

	DefaultText     string
	DefaultFontSize int
	DefaultColor    string
	DefaultFamily   string
	DefaultImage    int

	// MinFontSize and MaxFontSize clamp text sizes on the flat surface.
	MinFontSize int
	MaxFontSize int
}

// Controller reduces events into state. It holds configuration only and
// is safe to share.
type Controller struct {
	cfg ControllerConfig
}

// NewController creates a controller, filling unset defaults.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.HitTester == nil {
		cfg.HitTester = DefaultUVTolerance
	}
	if cfg.DefaultText == "" {
		cfg.DefaultText = "Your Text"
	}
	if cfg.DefaultFontSize <= 0 {
		cfg.DefaultFontSize = 48
	}
	if cfg.DefaultColor == "" {
		cfg.DefaultColor = "#000000"
		if cfg.Surface == SurfaceFlat {
			cfg.DefaultColor = "#FFFFFF"
		}
	}
	if cfg.DefaultFamily == "" {
		cfg.DefaultFamily = "Arial"
	}
	if cfg.DefaultImage <= 0 {
		cfg.DefaultImage = 200
		if cfg.Surface == SurfaceFlat {
			cfg.DefaultImage = 100
		}
	}
	if cfg.MinFontSize <= 0 {
		cfg.MinFontSize = 24
	}
	if cfg.MaxFontSize < cfg.MinFontSize {
		cfg.MaxFontSize = 120
	}
	return &Controller{cfg: cfg}
}

// Config returns the effective configuration.
func (c *Controller) Config() ControllerConfig {
	return c.cfg
}

// HitTest returns the index under p, or -1 for a miss.
func (c *Controller) HitTest(s State, p Point) int {
	if p.Miss {
		return -1
	}
	return c.cfg.HitTester.HitTest(s.Overlays, p.UV)
}

// Reduce applies ev to s. Unknown events and invalid edits return s with
// its selection revalidated.
func (c *Controller) Reduce(s State, ev Event) State {
	s.Selection = s.Selection.Revalidate(s.Overlays)

	switch e := ev.(type) {
	case PointerDown:
		s = c.pointerDown(s, e.Point)
	case PointerMove:
		s = c.pointerMove(s, e.Point)
	case PointerUp:
		s.Pressed = false
		if s.Mode == ModeDragging {
			s.Mode = ModeSelected
		}
	case AddText:
		s = c.addText(s, e)
	case AddImage:
		s = c.addImage(s, e)
	case Delete:
		if s.Selection.Valid() {
			s.Overlays = s.Overlays.Remove(s.Selection.Index)
			s.Selection = overlay.NoSelection
			s.Revision++
		}
	case Clear:
		if s.Overlays.Len() > 0 {
			s.Overlays = s.Overlays.Clear()
			s.Revision++
		}
		s.Selection = overlay.NoSelection
	case SetField:
		s = c.setField(s, e)
	case Select:
		s.Selection = overlay.Select(s.Overlays, e.Index)
		if s.Selection.Valid() {
			s.Mode = ModeSelected
		}
	case QueueText:
		s.PendingText = strings.TrimSpace(e.Content)
	case SetBaseColor:
		if e.Color != s.BaseColor {
			s.BaseColor = e.Color
			s.Revision++
		}
	case AssetReady:
		if e.Err == nil && usesSource(s.Overlays, e.Source) {
			s.Revision++
		}
	}

	s.Selection = s.Selection.Revalidate(s.Overlays)
	if !s.Selection.Valid() {
		s.Mode = ModeIdle
	}
	return s
}

func (c *Controller) pointerDown(s State, p Point) State {
	if p.Miss {
		return s
	}

	if i := c.cfg.HitTester.HitTest(s.Overlays, p.UV); i >= 0 {
		if s.Selection.Valid() && s.Selection.Index == i {
			s.Mode = ModeDragging
		} else {
			s.Selection = overlay.Select(s.Overlays, i)
			s.Mode = ModeSelected
		}
		s.Pressed = true
		return s
	}

	if c.cfg.Surface == SurfaceFlat && s.PendingText != "" {
		o := overlay.NewText(s.PendingText, p.UV, c.clampFont(c.cfg.DefaultFontSize), c.cfg.DefaultColor, c.cfg.DefaultFamily)
		var i int
		s.Overlays, i = s.Overlays.Add(o)
		s.Selection = overlay.Select(s.Overlays, i)
		s.Mode = ModeSelected
		s.PendingText = ""
		s.Pressed = true
		s.Revision++
		return s
	}

	s.Selection = overlay.NoSelection
	s.Mode = ModeIdle
	s.Pressed = false
	return s
}

func (c *Controller) pointerMove(s State, p Point) State {
	if !s.Pressed || p.Miss || !s.Selection.Valid() {
		return s
	}
	s.Mode = ModeDragging
	return c.edit(s, overlay.FieldPosition, p.UV.Clamp())
}

func (c *Controller) addText(s State, e AddText) State {
	content := strings.TrimSpace(e.Content)
	if content == "" {
		content = c.cfg.DefaultText
	}
	size := e.FontSize
	if size <= 0 {
		size = c.cfg.DefaultFontSize
	}
	if c.cfg.Surface == SurfaceFlat {
		size = c.clampFont(size)
	}
	col := e.Color
	if col == "" {
		col = c.cfg.DefaultColor
	}
	family := e.Family
	if family == "" {
		family = c.cfg.DefaultFamily
	}
	return c.add(s, overlay.NewText(content, center, size, col, family))
}

func (c *Controller) addImage(s State, e AddImage) State {
	if e.Source == "" {
		return s
	}
	w, h := e.Width, e.Height
	if w <= 0 {
		w = c.cfg.DefaultImage
	}
	if h <= 0 {
		h = c.cfg.DefaultImage
	}
	return c.add(s, overlay.NewImage(e.Source, center, w, h))
}

func (c *Controller) add(s State, o overlay.Overlay) State {
	if o.Validate() != nil {
		return s
	}
	var i int
	s.Overlays, i = s.Overlays.Add(o)
	s.Selection = overlay.Select(s.Overlays, i)
	s.Mode = ModeSelected
	s.Revision++
	return s
}

func (c *Controller) setField(s State, e SetField) State {
	if !s.Selection.Valid() {
		return s
	}
	v := e.Value
	if e.Field == overlay.FieldFontSize && c.cfg.Surface == SurfaceFlat {
		if n, ok := v.(int); ok {
			v = c.clampFont(n)
		}
	}
	return c.edit(s, e.Field, v)
}

// edit sets a field on the selected overlay and bumps the revision only
// when the overlay actually changed.
func (c *Controller) edit(s State, f overlay.Field, v any) State {
	i := s.Selection.Index
	before, _ := s.Overlays.At(i)
	next := s.Overlays.SetField(i, f, v)
	if after, _ := next.At(i); after != before {
		s.Overlays = next
		s.Revision++
	}
	return s
}

func (c *Controller) clampFont(n int) int {
	return max(c.cfg.MinFontSize, min(n, c.cfg.MaxFontSize))
}

var center = overlay.UV{U: 0.5, V: 0.5}

func usesSource(snap overlay.Snapshot, source string) bool {
	for _, o := range snap.Items() {
		if o.Kind == overlay.KindImage && o.Source == source {
			return true
		}
	}
	return false
}
