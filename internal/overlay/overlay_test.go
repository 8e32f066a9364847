package overlay

import (
	"testing"
)

func hiText() Overlay {
	o := NewText("HI", UV{0.5, 0.5}, 48, "#FF0000", "Arial")
	o.Rotation = 90
	o.Scale = 1.2
	return o
}

func TestAddAssignsIDsAndOrder(t *testing.T) {
	var s Snapshot
	s, i0 := s.Add(hiText())
	s, i1 := s.Add(NewImage("logo.png", UV{0.2, 0.3}, 200, 200))

	if i0 != 0 || i1 != 1 {
		t.Fatalf("Add() indexes = %d, %d, want 0, 1", i0, i1)
	}
	a, _ := s.At(0)
	b, _ := s.At(1)
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Errorf("ids not unique: %q %q", a.ID, b.ID)
	}
	if a.Kind != KindText || b.Kind != KindImage {
		t.Errorf("order not preserved: %v %v", a.Kind, b.Kind)
	}
}

func TestAddReplacesDuplicateID(t *testing.T) {
	o := hiText()
	o.ID = "fixed"
	s := NewSnapshot(o)
	s, i := s.Add(o)
	got, _ := s.At(i)
	if got.ID == "fixed" {
		t.Error("duplicate id was kept")
	}
}

func TestSnapshotImmutable(t *testing.T) {
	s1 := NewSnapshot(hiText())
	s2 := s1.SetField(0, FieldContent, "BYE")
	s3 := s2.Remove(0)
	s4, _ := s1.Add(hiText())

	if o, _ := s1.At(0); o.Content != "HI" {
		t.Errorf("SetField mutated the original snapshot: %q", o.Content)
	}
	if o, _ := s2.At(0); o.Content != "BYE" {
		t.Errorf("SetField result = %q, want BYE", o.Content)
	}
	if s2.Len() != 1 || s3.Len() != 0 {
		t.Errorf("Remove mutated its receiver: %d %d", s2.Len(), s3.Len())
	}
	if s1.Len() != 1 || s4.Len() != 2 {
		t.Errorf("Add mutated its receiver: %d %d", s1.Len(), s4.Len())
	}

	items := s1.Items()
	items[0].Content = "changed"
	if o, _ := s1.At(0); o.Content != "HI" {
		t.Error("Items() exposed internal storage")
	}
}

func TestOutOfRangeIsNoop(t *testing.T) {
	s := NewSnapshot(hiText())
	tests := []struct {
		name string
		op   func() Snapshot
	}{
		{"SetField negative", func() Snapshot { return s.SetField(-1, FieldRotation, 10.0) }},
		{"SetField past end", func() Snapshot { return s.SetField(5, FieldRotation, 10.0) }},
		{"Update past end", func() Snapshot { return s.Update(1, func(o *Overlay) { o.Scale = 3 }) }},
		{"Remove past end", func() Snapshot { return s.Remove(1) }},
		{"Remove negative", func() Snapshot { return s.Remove(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op()
			if got.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", got.Len())
			}
			o, _ := got.At(0)
			if o.Rotation != 90 || o.Scale != 1.2 {
				t.Errorf("overlay changed: %+v", o)
			}
		})
	}
}

func TestSetField(t *testing.T) {
	s := NewSnapshot(hiText(), NewImage("a.png", UV{0.1, 0.1}, 100, 100))

	tests := []struct {
		name  string
		index int
		field Field
		value any
		check func(Overlay) bool
	}{
		{"position clamps", 0, FieldPosition, UV{1.5, -2}, func(o Overlay) bool { return o.Position == UV{1, 0} }},
		{"rotation normalizes", 0, FieldRotation, -90.0, func(o Overlay) bool { return o.Rotation == 270 }},
		{"rotation wraps", 0, FieldRotation, 720.0, func(o Overlay) bool { return o.Rotation == 0 }},
		{"scale positive", 0, FieldScale, 2.0, func(o Overlay) bool { return o.Scale == 2 }},
		{"scale zero ignored", 0, FieldScale, 0.0, func(o Overlay) bool { return o.Scale == 1.2 }},
		{"wrong type ignored", 0, FieldScale, 2, func(o Overlay) bool { return o.Scale == 1.2 }},
		{"color valid", 0, FieldColor, "#00ff80", func(o Overlay) bool { return o.Color == "#00ff80" }},
		{"color invalid ignored", 0, FieldColor, "blue", func(o Overlay) bool { return o.Color == "#FF0000" }},
		{"font size", 0, FieldFontSize, 72, func(o Overlay) bool { return o.FontSize == 72 }},
		{"text field on image ignored", 1, FieldContent, "x", func(o Overlay) bool { return o.Content == "" }},
		{"image width", 1, FieldWidth, 150, func(o Overlay) bool { return o.Width == 150 }},
		{"image field on text ignored", 0, FieldWidth, 150, func(o Overlay) bool { return o.Width == 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SetField(tt.index, tt.field, tt.value)
			o, _ := got.At(tt.index)
			if !tt.check(o) {
				t.Errorf("SetField(%d, %v, %v) = %+v", tt.index, tt.field, tt.value, o)
			}
		})
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	s := NewSnapshot(hiText())
	before, _ := s.At(0)
	s = s.Update(0, func(o *Overlay) {
		o.ID = "hijack"
		o.Kind = KindImage
		o.Rotation = 450
	})
	after, _ := s.At(0)
	if after.ID != before.ID || after.Kind != KindText {
		t.Errorf("Update changed identity: %+v", after)
	}
	if after.Rotation != 90 {
		t.Errorf("Rotation = %v, want 90", after.Rotation)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		o       Overlay
		wantErr bool
	}{
		{"text ok", hiText(), false},
		{"image ok", NewImage("x.png", UV{}, 1, 1), false},
		{"empty content", NewText("  ", UV{}, 48, "#000", "Arial"), true},
		{"bad color", NewText("A", UV{}, 48, "nope", "Arial"), true},
		{"zero font", NewText("A", UV{}, 0, "#000", "Arial"), true},
		{"image no source", NewImage("", UV{}, 10, 10), true},
		{"image zero height", NewImage("x", UV{}, 10, 0), true},
		{"zero scale", Overlay{Kind: KindText, Content: "A", FontSize: 1, Color: "#000"}, true},
		{"unknown kind", Overlay{Kind: Kind(9), Scale: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.o.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {90, 90}, {360, 0}, {-1, 359}, {725, 5}, {-360, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); got != tt.want {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseKindAndField(t *testing.T) {
	if k, err := ParseKind("TEXT"); err != nil || k != KindText {
		t.Errorf("ParseKind(TEXT) = %v, %v", k, err)
	}
	if _, err := ParseKind("video"); err == nil {
		t.Error("ParseKind(video) should fail")
	}
	for f := FieldPosition; f <= FieldSource; f++ {
		got, ok := ParseField(f.String())
		if !ok || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.String(), got, ok)
		}
	}
}
