package editor

import (
	"reflect"
	"testing"

	"github.com/Faultbox/merchkit/internal/overlay"
)

func text(content string, u, v float64) overlay.Overlay {
	return overlay.NewText(content, overlay.UV{U: u, V: v}, 48, "#000000", "Arial")
}

func stateWith(items ...overlay.Overlay) State {
	s := NewState("#000000")
	for _, o := range items {
		s.Overlays, _ = s.Overlays.Add(o)
	}
	return s
}

func reduceAll(c *Controller, s State, events ...Event) State {
	for _, ev := range events {
		s = c.Reduce(s, ev)
	}
	return s
}

func TestTopmostIndexWinsTie(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := stateWith(
		text("a", 0.1, 0.1),
		text("b", 0.1, 0.9),
		text("c", 0.50, 0.50),
		text("d", 0.9, 0.1),
		text("e", 0.9, 0.9),
		text("f", 0.52, 0.49),
	)

	s = c.Reduce(s, PointerDown{PointAt(0.51, 0.5)})
	if s.Selection.Index != 5 {
		t.Errorf("selected index = %d, want 5", s.Selection.Index)
	}
	if s.Mode != ModeSelected || !s.Pressed {
		t.Errorf("mode = %v pressed = %v, want selected and pressed", s.Mode, s.Pressed)
	}
}

func TestDragClampsToUnitSquare(t *testing.T) {
	c := NewController(ControllerConfig{})

	tests := []struct {
		name string
		to   overlay.UV
		want overlay.UV
	}{
		{"past top right", overlay.UV{U: 1.3, V: 1.7}, overlay.UV{U: 1, V: 1}},
		{"past bottom left", overlay.UV{U: -0.4, V: -2}, overlay.UV{U: 0, V: 0}},
		{"inside", overlay.UV{U: 0.25, V: 0.75}, overlay.UV{U: 0.25, V: 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateWith(text("HI", 0.5, 0.5))
			s = reduceAll(c, s,
				PointerDown{PointAt(0.5, 0.5)},
				PointerMove{Point{UV: tt.to}},
			)
			o, _ := s.Overlays.At(0)
			if o.Position != tt.want {
				t.Errorf("position = %+v, want %+v", o.Position, tt.want)
			}
			if s.Mode != ModeDragging {
				t.Errorf("mode = %v, want dragging", s.Mode)
			}

			s = c.Reduce(s, PointerUp{})
			if s.Mode != ModeSelected || s.Pressed {
				t.Errorf("after up: mode = %v pressed = %v", s.Mode, s.Pressed)
			}
		})
	}
}

func TestMissIsNoop(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := stateWith(text("HI", 0.5, 0.5))
	s = c.Reduce(s, PointerDown{PointAt(0.5, 0.5)})
	s = c.Reduce(s, PointerUp{})

	for _, ev := range []Event{PointerDown{Missed}, PointerMove{Missed}} {
		got := c.Reduce(s, ev)
		if !reflect.DeepEqual(got, s) {
			t.Errorf("%T with miss changed state: %+v", ev, got)
		}
	}
}

func TestSecondPressStartsDrag(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := stateWith(text("HI", 0.5, 0.5))

	s = reduceAll(c, s, PointerDown{PointAt(0.5, 0.5)}, PointerUp{})
	if s.Mode != ModeSelected {
		t.Fatalf("mode = %v, want selected", s.Mode)
	}
	s = c.Reduce(s, PointerDown{PointAt(0.5, 0.5)})
	if s.Mode != ModeDragging {
		t.Errorf("mode = %v, want dragging", s.Mode)
	}
}

func TestEmptyClickClearsSelection(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := stateWith(text("HI", 0.5, 0.5))
	s = reduceAll(c, s, PointerDown{PointAt(0.5, 0.5)}, PointerUp{})
	rev := s.Revision

	s = reduceAll(c, s, QueueText{"ignored on mesh"}, PointerDown{PointAt(0.1, 0.1)})
	if s.Selection.Valid() || s.Mode != ModeIdle || s.Pressed {
		t.Errorf("state after empty click = %+v", s)
	}
	if s.Overlays.Len() != 1 || s.Revision != rev {
		t.Error("mesh surface placed pending text")
	}

	s = c.Reduce(s, PointerMove{PointAt(0.3, 0.3)})
	if o, _ := s.Overlays.At(0); o.Position != (overlay.UV{U: 0.5, V: 0.5}) {
		t.Error("unpressed move dragged an overlay")
	}
}

func TestPendingTextPlacement(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ControllerConfig
		wantSize int
	}{
		{"default size", ControllerConfig{Surface: SurfaceFlat}, 48},
		{"clamped high", ControllerConfig{Surface: SurfaceFlat, DefaultFontSize: 200}, 120},
		{"clamped low", ControllerConfig{Surface: SurfaceFlat, DefaultFontSize: 8}, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(tt.cfg)
			s := reduceAll(c, NewState("#000000"),
				QueueText{"  Hello  "},
				PointerDown{PointAt(0.25, 0.75)},
			)
			if s.Overlays.Len() != 1 {
				t.Fatalf("overlay count = %d, want 1", s.Overlays.Len())
			}
			o, _ := s.Overlays.At(0)
			if o.Content != "Hello" || o.FontSize != tt.wantSize || o.Color != "#FFFFFF" {
				t.Errorf("placed overlay = %+v", o)
			}
			if o.Position != (overlay.UV{U: 0.25, V: 0.75}) {
				t.Errorf("position = %+v", o.Position)
			}
			if s.PendingText != "" || s.Selection.Index != 0 || s.Mode != ModeSelected {
				t.Errorf("state = %+v", s)
			}
		})
	}
}

func TestAddAndDelete(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := reduceAll(c, NewState("#000000"),
		AddText{},
		AddImage{Source: "logo.png"},
		AddText{Content: "Third", Color: "#FF0000"},
	)
	if s.Overlays.Len() != 3 {
		t.Fatalf("overlay count = %d, want 3", s.Overlays.Len())
	}
	first, _ := s.Overlays.At(0)
	if first.Content != "Your Text" || first.FontSize != 48 || first.FontFamily != "Arial" {
		t.Errorf("default text = %+v", first)
	}
	img, _ := s.Overlays.At(1)
	if img.Width != 200 || img.Height != 200 {
		t.Errorf("default image size = %dx%d", img.Width, img.Height)
	}
	if s.Selection.Index != 2 {
		t.Errorf("selection = %d, want newest overlay", s.Selection.Index)
	}

	rev := s.Revision
	s = reduceAll(c, s, Select{1}, Delete{})
	if s.Overlays.Len() != 2 {
		t.Fatalf("overlay count after delete = %d", s.Overlays.Len())
	}
	if s.Selection.Valid() || s.Mode != ModeIdle {
		t.Errorf("selection survived delete: %+v", s.Selection)
	}
	if s.Revision == rev {
		t.Error("delete did not bump revision")
	}

	s = c.Reduce(s, Delete{})
	if s.Overlays.Len() != 2 {
		t.Error("delete without selection removed something")
	}

	s = reduceAll(c, s, Select{0}, Clear{})
	if s.Overlays.Len() != 0 || s.Selection.Valid() {
		t.Errorf("clear left %d overlays, selection %+v", s.Overlays.Len(), s.Selection)
	}
}

func TestInvalidAddsAreIgnored(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := reduceAll(c, NewState("#000000"),
		AddImage{},
		AddText{Color: "not a color"},
	)
	if s.Overlays.Len() != 0 || s.Revision != 0 {
		t.Errorf("invalid adds changed state: %+v", s)
	}
}

func TestSetField(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
		field   overlay.Field
		value   any
		check   func(overlay.Overlay) bool
		changed bool
	}{
		{"rotation", SurfaceMesh, overlay.FieldRotation, 450.0,
			func(o overlay.Overlay) bool { return o.Rotation == 90 }, true},
		{"mesh font unclamped", SurfaceMesh, overlay.FieldFontSize, 300,
			func(o overlay.Overlay) bool { return o.FontSize == 300 }, true},
		{"flat font clamped", SurfaceFlat, overlay.FieldFontSize, 300,
			func(o overlay.Overlay) bool { return o.FontSize == 120 }, true},
		{"wrong type", SurfaceMesh, overlay.FieldScale, "big",
			func(o overlay.Overlay) bool { return o.Scale == 1 }, false},
		{"same value", SurfaceMesh, overlay.FieldContent, "HI",
			func(o overlay.Overlay) bool { return o.Content == "HI" }, false},
		{"image field on text", SurfaceMesh, overlay.FieldWidth, 50,
			func(o overlay.Overlay) bool { return o.Width == 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(ControllerConfig{Surface: tt.surface})
			s := c.Reduce(stateWith(text("HI", 0.5, 0.5)), Select{0})
			rev := s.Revision

			s = c.Reduce(s, SetField{Field: tt.field, Value: tt.value})
			o, _ := s.Overlays.At(0)
			if !tt.check(o) {
				t.Errorf("overlay = %+v", o)
			}
			if (s.Revision != rev) != tt.changed {
				t.Errorf("revision changed = %v, want %v", s.Revision != rev, tt.changed)
			}
		})
	}
}

func TestSetFieldWithoutSelection(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := stateWith(text("HI", 0.5, 0.5))
	got := c.Reduce(s, SetField{Field: overlay.FieldRotation, Value: 45.0})
	if o, _ := got.Overlays.At(0); o.Rotation != 0 {
		t.Errorf("rotation = %v without selection", o.Rotation)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := reduceAll(c, stateWith(text("HI", 0.5, 0.5)), Select{0}, Select{7})
	if s.Selection.Valid() || s.Mode != ModeIdle {
		t.Errorf("state = %+v", s)
	}
}

func TestBaseColorAndAssets(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := stateWith(overlay.NewImage("logo.png", overlay.UV{U: 0.5, V: 0.5}, 100, 100))
	rev := s.Revision

	s = c.Reduce(s, SetBaseColor{"#000000"})
	if s.Revision != rev {
		t.Error("unchanged base color bumped revision")
	}
	s = c.Reduce(s, SetBaseColor{"#0038ff"})
	if s.BaseColor != "#0038ff" || s.Revision != rev+1 {
		t.Errorf("base color = %q revision = %d", s.BaseColor, s.Revision)
	}

	s = c.Reduce(s, AssetReady{Source: "other.png"})
	if s.Revision != rev+1 {
		t.Error("unrelated asset bumped revision")
	}
	s = c.Reduce(s, AssetReady{Source: "logo.png"})
	if s.Revision != rev+2 {
		t.Error("used asset did not bump revision")
	}
}

func TestCursorFor(t *testing.T) {
	c := NewController(ControllerConfig{})
	s := stateWith(text("a", 0.2, 0.2), text("b", 0.8, 0.8))
	sel := c.Reduce(s, Select{1})
	drag := reduceAll(c, sel, PointerDown{PointAt(0.8, 0.8)}, PointerMove{PointAt(0.7, 0.7)})

	tests := []struct {
		name  string
		state State
		hover int
		want  Cursor
	}{
		{"nothing", s, -1, CursorDefault},
		{"hover unselected", sel, 0, CursorPointer},
		{"hover selected", sel, 1, CursorMove},
		{"dragging", drag, -1, CursorGrabbing},
	}
	for _, tt := range tests {
		if got := CursorFor(tt.state, tt.hover); got != tt.want {
			t.Errorf("%s: CursorFor = %v, want %v", tt.name, got, tt.want)
		}
	}
}
