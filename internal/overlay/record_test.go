package overlay

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRecordRoundTripJSON(t *testing.T) {
	s := NewSnapshot(hiText(), NewImage("assets/logo.png", UV{0.25, 0.75}, 200, 120))

	data, err := json.Marshal(s.Records(SpaceUV))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for i, r := range recs {
		got, err := r.Overlay(SpaceUV)
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		want, _ := s.At(i)
		if got != want {
			t.Errorf("record %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestRecordPixelSpace(t *testing.T) {
	o := hiText()
	o.Position = UV{0.25, 0.75}

	r := ToRecord(o, SpacePixel)
	if r.Position[0] != 256 || r.Position[1] != 256 {
		t.Errorf("pixel position = %v, want [256 256]", r.Position)
	}

	back, err := r.Overlay(SpacePixel)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if back.Position != o.Position {
		t.Errorf("Position = %v, want %v", back.Position, o.Position)
	}
}

func TestRecordYAML(t *testing.T) {
	src := `
- kind: text
  position: [0.5, 0.5]
  rotation: 90
  scale: 1.2
  content: HI
  font_size: 48
  color: "#FF0000"
`
	var recs []Record
	if err := yaml.Unmarshal([]byte(src), &recs); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	o, err := recs[0].Overlay(SpaceUV)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if o.Content != "HI" || o.FontSize != 48 || o.Scale != 1.2 || o.Rotation != 90 {
		t.Errorf("decoded %+v", o)
	}
}

func TestRecordRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		r    Record
	}{
		{"missing kind", Record{Position: []float64{0, 0}}},
		{"missing position", Record{Kind: "text", Content: "A", FontSize: 10, Color: "#000"}},
		{"short position", Record{Kind: "text", Position: []float64{1}, Content: "A", FontSize: 10, Color: "#000"}},
		{"empty text", Record{Kind: "text", Position: []float64{0, 0}, FontSize: 10, Color: "#000"}},
		{"negative scale", Record{Kind: "text", Position: []float64{0, 0}, Scale: -1, Content: "A", FontSize: 10, Color: "#000"}},
		{"image without size", Record{Kind: "image", Position: []float64{0, 0}, Source: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.r.Overlay(SpaceUV); err == nil {
				t.Error("Overlay() error = nil, want error")
			}
		})
	}
}

func TestRecordDefaultsScale(t *testing.T) {
	r := Record{Kind: "image", Position: []float64{0.5, 0.5}, Source: "x", Width: 10, Height: 10}
	o, err := r.Overlay(SpaceUV)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if o.Scale != 1 {
		t.Errorf("Scale = %v, want 1", o.Scale)
	}
}
