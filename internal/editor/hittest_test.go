package editor

import (
	"errors"
	"testing"

	"github.com/Faultbox/merchkit/internal/compositor"
	"github.com/Faultbox/merchkit/internal/overlay"
)

type fixedMeasurer struct {
	b   compositor.Bounds
	err error
}

func (m fixedMeasurer) Measure(overlay.Overlay, int) (compositor.Bounds, error) {
	return m.b, m.err
}

func TestUVTolerance(t *testing.T) {
	snap := overlay.NewSnapshot(text("a", 0.5, 0.5))

	tests := []struct {
		name string
		p    overlay.UV
		want int
	}{
		{"exact", overlay.UV{U: 0.5, V: 0.5}, 0},
		{"inside window", overlay.UV{U: 0.57, V: 0.43}, 0},
		{"outside on u", overlay.UV{U: 0.59, V: 0.5}, -1},
		{"outside on v", overlay.UV{U: 0.5, V: 0.6}, -1},
	}
	for _, tt := range tests {
		if got := DefaultUVTolerance.HitTest(snap, tt.p); got != tt.want {
			t.Errorf("%s: HitTest = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestBoundsHitTester(t *testing.T) {
	h := NewBoundsHitTester(fixedMeasurer{b: compositor.Bounds{W: 100, H: 20}})

	flat := text("wide", 0.5, 0.5)
	turned := flat
	turned.Rotation = 90

	tests := []struct {
		name   string
		o      overlay.Overlay
		px, py float64
		want   int
	}{
		{"center", flat, 512, 512, 0},
		{"along width", flat, 552, 512, 0},
		{"beyond height", flat, 512, 530, -1},
		{"rotated along width misses", turned, 552, 512, -1},
		{"rotated along height hits", turned, 512, 552, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := overlay.NewSnapshot(tt.o)
			p := overlay.Flat.ToUV(tt.px, tt.py)
			if got := h.HitTest(snap, p); got != tt.want {
				t.Errorf("HitTest(%v,%v) = %d, want %d", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestBoundsHitTesterSkipsUnmeasurable(t *testing.T) {
	h := NewBoundsHitTester(fixedMeasurer{err: errors.New("no face")})
	snap := overlay.NewSnapshot(text("a", 0.5, 0.5))
	if got := h.HitTest(snap, overlay.UV{U: 0.5, V: 0.5}); got != -1 {
		t.Errorf("HitTest = %d, want -1", got)
	}
}

func TestBoundsHitTesterWithCompositor(t *testing.T) {
	c := NewController(ControllerConfig{
		Surface:   SurfaceFlat,
		HitTester: NewBoundsHitTester(compositor.New(nil, nil)),
	})
	s := stateWith(text("HELLO", 0.5, 0.5), text("X", 0.9, 0.9))

	if got := c.HitTest(s, Point{UV: overlay.Flat.ToUV(530, 512)}); got != 0 {
		t.Errorf("hit inside text = %d, want 0", got)
	}
	if got := c.HitTest(s, Point{UV: overlay.Flat.ToUV(100, 100)}); got != -1 {
		t.Errorf("hit on empty canvas = %d, want -1", got)
	}
	if got := c.HitTest(s, Missed); got != -1 {
		t.Errorf("hit on miss = %d, want -1", got)
	}
}
