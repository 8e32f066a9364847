package gpu

import "testing"

func TestRectNDC(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		vw, vh int
		want   [4]float32
	}{
		{"full viewport", Rect{0, 0, 800, 600}, 800, 600, [4]float32{-1, -1, 2, 2}},
		{"top right quarter", Rect{400, 0, 400, 300}, 800, 600, [4]float32{0, 0, 1, 1}},
		{"bottom left quarter", Rect{0, 300, 400, 300}, 800, 600, [4]float32{-1, -1, 1, 1}},
		{"empty viewport", Rect{0, 0, 10, 10}, 0, 0, [4]float32{}},
	}
	for _, tt := range tests {
		if got := tt.r.ndc(tt.vw, tt.vh); got != tt.want {
			t.Errorf("%s: ndc = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},
		{109, 69, true},
		{110, 20, false},
		{9, 30, false},
		{50, 70, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if x, y := r.Local(60, 45); x != 50 || y != 25 {
		t.Errorf("Local = %v,%v", x, y)
	}
}
