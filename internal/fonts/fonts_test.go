package fonts

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Arial", "Arial"},
		{"courier new", "Courier New"},
		{" Georgia ", "Georgia"},
		{"Wingdings", DefaultFamily},
		{"", DefaultFamily},
	}
	for _, tt := range tests {
		if got := Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFamilies(t *testing.T) {
	got := Families()
	if len(got) != 6 {
		t.Fatalf("Families() = %v, want 6 entries", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Errorf("Families() not sorted: %v", got)
		}
	}
}

func TestEveryFamilyParses(t *testing.T) {
	lib := NewLibrary()
	for _, name := range Families() {
		t.Run(name, func(t *testing.T) {
			m, err := lib.Measure(name, 48, "HI")
			if err != nil {
				t.Fatalf("Measure() error = %v", err)
			}
			if m.Advance <= 0 || m.Height() <= 0 {
				t.Errorf("Measure() = %+v, want positive extents", m)
			}
		})
	}
}

func TestMeasureScalesWithSize(t *testing.T) {
	lib := NewLibrary()
	small, err := lib.Measure("Arial", 24, "Your Text")
	if err != nil {
		t.Fatal(err)
	}
	large, err := lib.Measure("Arial", 96, "Your Text")
	if err != nil {
		t.Fatal(err)
	}
	if large.Advance < 3.5*small.Advance || large.Advance > 4.5*small.Advance {
		t.Errorf("advance at 96px = %v, want about 4x %v", large.Advance, small.Advance)
	}
}

func TestFaceCached(t *testing.T) {
	lib := NewLibrary()
	a, err := lib.Face("Arial", 48)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := lib.Face("arial", 48)
	if a != b {
		t.Error("Face() did not reuse the cached face")
	}
}

func TestFaceRejectsBadSize(t *testing.T) {
	if _, err := NewLibrary().Face("Arial", 0); err == nil {
		t.Error("Face(size 0) error = nil, want error")
	}
}
