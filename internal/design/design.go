// Package design persists finished garment designs and replays them into
// textures.
package design

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/overlay"
)

// ErrEmptyDesign is returned when decoding input with no content.
var ErrEmptyDesign = errors.New("design: empty input")

// Garment is the product a design is applied to.
type Garment string

const (
	GarmentShirt Garment = "shirt"
	GarmentPants Garment = "pants"
)

// ParseGarment parses a garment name. Empty means GarmentShirt.
func ParseGarment(s string) (Garment, error) {
	switch Garment(strings.ToLower(s)) {
	case "", GarmentShirt:
		return GarmentShirt, nil
	case GarmentPants:
		return GarmentPants, nil
	default:
		return "", fmt.Errorf("unknown garment %q", s)
	}
}

// Design is a saved customization: base color, overlays and an optional
// preview thumbnail.
type Design struct {
	Name      string           `json:"name" yaml:"name" toml:"name"`
	Garment   Garment          `json:"garment" yaml:"garment" toml:"garment"`
	Color     string           `json:"color" yaml:"color" toml:"color"`
	Space     overlay.Space    `json:"space,omitempty" yaml:"space,omitempty" toml:"space,omitempty"`
	Thumbnail string           `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" toml:"thumbnail,omitempty"`
	Overlays  []overlay.Record `json:"overlays" yaml:"overlays" toml:"overlays"`
}

// New captures a snapshot as a design with positions in canonical UV.
func New(name string, garment Garment, color string, snap overlay.Snapshot) Design {
	return Design{
		Name:     name,
		Garment:  garment,
		Color:    color,
		Space:    overlay.SpaceUV,
		Overlays: snap.Records(overlay.SpaceUV),
	}
}

// Dropped describes one overlay record that could not be restored.
type Dropped struct {
	Index  int
	Reason string
}

// DecodeReport summarizes a restore.
type DecodeReport struct {
	Kept    int
	Dropped []Dropped
}

// Clean reports whether every record was restored.
func (r DecodeReport) Clean() bool {
	return len(r.Dropped) == 0
}

func (r DecodeReport) String() string {
	if r.Clean() {
		return fmt.Sprintf("%d overlays", r.Kept)
	}
	return fmt.Sprintf("%d overlays, %d dropped", r.Kept, len(r.Dropped))
}

// Snapshot restores the overlay list. Malformed records are dropped
// individually and listed in the report.
func (d Design) Snapshot() (overlay.Snapshot, DecodeReport) {
	var report DecodeReport
	sp, err := overlay.ParseSpace(string(d.Space))
	if err != nil {
		for i := range d.Overlays {
			report.Dropped = append(report.Dropped, Dropped{Index: i, Reason: err.Error()})
		}
		return overlay.NewSnapshot(), report
	}

	snap := overlay.NewSnapshot()
	for i, r := range d.Overlays {
		o, err := r.Overlay(sp)
		if err != nil {
			report.Dropped = append(report.Dropped, Dropped{Index: i, Reason: err.Error()})
			continue
		}
		snap, _ = snap.Add(o)
		report.Kept++
	}
	return snap, report
}

// BaseColor returns the fill color, falling back to white when the stored
// value is malformed.
func (d Design) BaseColor() string {
	if _, err := colorfill.ParseHex(d.Color); err != nil {
		return colorfill.FormatHex(colorfill.White)
	}
	return d.Color
}
