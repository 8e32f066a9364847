package colorfill

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestIsTarget(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    bool
	}{
		{"pure white", 255, 255, 255, true},
		{"near white", 201, 201, 201, true},
		{"white threshold exclusive", 200, 255, 255, false},
		{"pure black", 0, 0, 0, true},
		{"near black", 54, 54, 54, true},
		{"black threshold exclusive", 55, 0, 0, false},
		{"mid gray", 128, 128, 128, false},
		{"saturated red", 255, 0, 0, false},
		{"mixed bright and dark", 250, 10, 250, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTarget(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("IsTarget(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestApplyPreservesAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	src.SetNRGBA(1, 0, color.NRGBA{10, 10, 10, 77})
	src.SetNRGBA(2, 0, color.NRGBA{128, 128, 128, 200})
	src.SetNRGBA(3, 0, color.NRGBA{230, 230, 230, 0})

	target := color.NRGBA{R: 12, G: 34, B: 56, A: 255}
	got := Apply(src, target)

	want := []color.NRGBA{
		{12, 34, 56, 255},
		{12, 34, 56, 77},
		{128, 128, 128, 200},
		{12, 34, 56, 0},
	}
	for x, w := range want {
		if c := got.NRGBAAt(x, 0); c != w {
			t.Errorf("pixel %d = %v, want %v", x, c, w)
		}
	}

	// Source must stay untouched.
	if c := src.NRGBAAt(0, 0); c != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("Apply modified its input: %v", c)
	}
}

func TestApplyExhaustiveChannels(t *testing.T) {
	// Sweep gray and off-gray triples across both thresholds.
	src := image.NewNRGBA(image.Rect(0, 0, 256, 3))
	for x := 0; x < 256; x++ {
		v := uint8(x)
		src.SetNRGBA(x, 0, color.NRGBA{v, v, v, 180})
		src.SetNRGBA(x, 1, color.NRGBA{v, 255, 0, 90})
		src.SetNRGBA(x, 2, color.NRGBA{v, v, 0, 255})
	}

	target := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	got := Apply(src, target)

	for y := 0; y < 3; y++ {
		for x := 0; x < 256; x++ {
			in := src.NRGBAAt(x, y)
			out := got.NRGBAAt(x, y)
			if out.A != in.A {
				t.Fatalf("(%d,%d) alpha = %d, want %d", x, y, out.A, in.A)
			}
			if IsTarget(in.R, in.G, in.B) {
				if out.R != 1 || out.G != 2 || out.B != 3 {
					t.Fatalf("(%d,%d) = %v, want target RGB", x, y, out)
				}
			} else if out != in {
				t.Fatalf("(%d,%d) = %v, want unchanged %v", x, y, out, in)
			}
		}
	}
}

func TestEngineCachesLastColor(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	e := NewEngine(src)

	red := color.NRGBA{255, 0, 0, 255}
	a, err := e.Fill(red)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	b, _ := e.Fill(red)
	if a != b {
		t.Error("Fill() with the same color should return the cached image")
	}

	c, _ := e.Fill(color.NRGBA{0, 255, 0, 255})
	if c == a {
		t.Error("Fill() with a new color should recolor")
	}
}

func TestEngineWithoutTemplate(t *testing.T) {
	e := NewEngine(nil)
	img, err := e.Fill(White)
	if err != nil || img != nil {
		t.Errorf("Fill() = %v, %v; want nil, nil", img, err)
	}
	if e.HasTemplate() {
		t.Error("HasTemplate() = true, want false")
	}
}

func TestEngineUnavailable(t *testing.T) {
	e := Unavailable(errors.New("bad png"))
	img, err := e.Fill(White)
	if img != nil {
		t.Error("unavailable engine returned an image")
	}
	if !errors.Is(err, ErrTemplateUnavailable) {
		t.Errorf("Fill() error = %v, want ErrTemplateUnavailable", err)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#000000", color.NRGBA{0, 0, 0, 255}, false},
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"#0038ff", color.NRGBA{0, 0x38, 0xff, 255}, false},
		{"e969c5", color.NRGBA{0xe9, 0x69, 0xc5, 255}, false},
		{"#fff", color.NRGBA{255, 255, 255, 255}, false},
		{"#1a2b3c80", color.NRGBA{0x1a, 0x2b, 0x3c, 255}, false},
		{"", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
		{"#+10000", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustHexOrWhite(t *testing.T) {
	if got := MustHexOrWhite("not a color"); got != White {
		t.Errorf("MustHexOrWhite(bad) = %v, want white", got)
	}
	if got := MustHexOrWhite("#224e22"); got != (color.NRGBA{0x22, 0x4e, 0x22, 255}) {
		t.Errorf("MustHexOrWhite(#224e22) = %v", got)
	}
}

func TestFormatHex(t *testing.T) {
	for _, s := range []string{"#ffffff", "#000000", "#323232", "#e969c5", "#00ff80"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q) error = %v", s, err)
		}
		if got := FormatHex(c); got != s {
			t.Errorf("FormatHex(ParseHex(%q)) = %q", s, got)
		}
	}
}
