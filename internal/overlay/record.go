package overlay

import (
	"fmt"
	"math"
)

// Space names the coordinate system persisted positions are written in.
type Space string

const (
	SpaceUV    Space = "uv" // canonical, V up
	SpacePixel Space = "px" // flat editor pixels, 0..1024 with Y down
)

// ParseSpace parses a persisted space name. Empty means SpaceUV.
func ParseSpace(s string) (Space, error) {
	switch Space(s) {
	case "", SpaceUV:
		return SpaceUV, nil
	case SpacePixel:
		return SpacePixel, nil
	default:
		return "", fmt.Errorf("unknown coordinate space %q", s)
	}
}

// Record is the serializable form of an Overlay.
type Record struct {
	ID         string    `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Kind       string    `json:"kind" yaml:"kind" toml:"kind"`
	Position   []float64 `json:"position" yaml:"position,flow" toml:"position"`
	Rotation   float64   `json:"rotation" yaml:"rotation" toml:"rotation"`
	Scale      float64   `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	Content    string    `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	FontSize   int       `json:"fontSize,omitempty" yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	Color      string    `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	FontFamily string    `json:"fontFamily,omitempty" yaml:"font_family,omitempty" toml:"font_family,omitempty"`
	Source     string    `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Width      int       `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height     int       `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
}

// ToRecord converts o into a record with its position written in sp.
func ToRecord(o Overlay, sp Space) Record {
	pos := []float64{o.Position.U, o.Position.V}
	if sp == SpacePixel {
		x, y := Flat.ToPixel(o.Position)
		pos = []float64{x, y}
	}
	r := Record{
		ID:       o.ID,
		Kind:     o.Kind.String(),
		Position: pos,
		Rotation: o.Rotation,
		Scale:    o.Scale,
	}
	switch o.Kind {
	case KindText:
		r.Content = o.Content
		r.FontSize = o.FontSize
		r.Color = o.Color
		r.FontFamily = o.FontFamily
	case KindImage:
		r.Source = o.Source
		r.Width = o.Width
		r.Height = o.Height
	}
	return r
}

// Overlay converts r back into an Overlay, reading its position in sp.
// A missing scale defaults to 1. The result is validated.
func (r Record) Overlay(sp Space) (Overlay, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return Overlay{}, err
	}
	if len(r.Position) != 2 {
		return Overlay{}, fmt.Errorf("position needs 2 coordinates, got %d", len(r.Position))
	}
	for _, c := range r.Position {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Overlay{}, fmt.Errorf("position %v is not finite", r.Position)
		}
	}

	pos := UV{U: r.Position[0], V: r.Position[1]}
	if sp == SpacePixel {
		pos = Flat.ToUV(r.Position[0], r.Position[1])
	}

	scale := r.Scale
	if scale == 0 {
		scale = 1
	}

	o := Overlay{
		ID:       r.ID,
		Kind:     kind,
		Position: pos.Clamp(),
		Rotation: NormalizeDegrees(r.Rotation),
		Scale:    scale,
	}
	switch kind {
	case KindText:
		o.Content = r.Content
		o.FontSize = r.FontSize
		o.Color = r.Color
		o.FontFamily = r.FontFamily
	case KindImage:
		o.Source = r.Source
		o.Width = r.Width
		o.Height = r.Height
	}

	if err := o.Validate(); err != nil {
		return Overlay{}, err
	}
	return o, nil
}

// Records converts every overlay in s.
func (s Snapshot) Records(sp Space) []Record {
	out := make([]Record, 0, len(s.items))
	for _, o := range s.items {
		out = append(out, ToRecord(o, sp))
	}
	return out
}
