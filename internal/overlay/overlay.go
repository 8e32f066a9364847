// Package overlay holds the ordered list of user-placed garment overlays.
//
// Positions are stored in canonical UV space with V pointing up. Surfaces
// that work in pixels convert through a Frame at their boundary.
package overlay

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Faultbox/merchkit/internal/colorfill"
)

// Kind identifies the overlay variant.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// String returns the persisted name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a persisted kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "text":
		return KindText, nil
	case "image":
		return KindImage, nil
	default:
		return 0, fmt.Errorf("unknown overlay kind %q", s)
	}
}

// UV is a point in canonical texture space.
type UV struct {
	U, V float64
}

// Clamp limits both axes to [0,1].
func (p UV) Clamp() UV {
	return UV{U: clamp01(p.U), V: clamp01(p.V)}
}

// In reports whether p lies inside the unit square.
func (p UV) In() bool {
	return p.U >= 0 && p.U <= 1 && p.V >= 0 && p.V <= 1
}

// Overlay is one placed text or image element. Sizes are canonical texture
// pixels at CanonicalSize and are scaled by the render resolution.
type Overlay struct {
	ID       string
	Kind     Kind
	Position UV
	Rotation float64 // degrees in [0,360), clockwise on screen
	Scale    float64

	// Text
	Content    string
	FontSize   int
	Color      string
	FontFamily string

	// Image
	Source string
	Width  int
	Height int
}

// NewText creates a text overlay at pos.
func NewText(content string, pos UV, fontSize int, color, family string) Overlay {
	return Overlay{
		Kind:       KindText,
		Position:   pos.Clamp(),
		Scale:      1,
		Content:    content,
		FontSize:   fontSize,
		Color:      color,
		FontFamily: family,
	}
}

// NewImage creates an image overlay at pos.
func NewImage(source string, pos UV, width, height int) Overlay {
	return Overlay{
		Kind:     KindImage,
		Position: pos.Clamp(),
		Scale:    1,
		Source:   source,
		Width:    width,
		Height:   height,
	}
}

var (
	errEmptyContent = errors.New("text overlay has empty content")
	errFontSize     = errors.New("text overlay font size must be positive")
	errImageSize    = errors.New("image overlay size must be positive")
	errEmptySource  = errors.New("image overlay has no source")
	errScale        = errors.New("overlay scale must be positive")
)

// Validate reports whether o can be persisted and rendered.
func (o Overlay) Validate() error {
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return errScale
	}
	if math.IsNaN(o.Position.U) || math.IsNaN(o.Position.V) || math.IsNaN(o.Rotation) {
		return errors.New("overlay transform is not a number")
	}
	switch o.Kind {
	case KindText:
		if strings.TrimSpace(o.Content) == "" {
			return errEmptyContent
		}
		if o.FontSize <= 0 {
			return errFontSize
		}
		if _, err := colorfill.ParseHex(o.Color); err != nil {
			return err
		}
	case KindImage:
		if o.Source == "" {
			return errEmptySource
		}
		if o.Width <= 0 || o.Height <= 0 {
			return errImageSize
		}
	default:
		return fmt.Errorf("unknown overlay kind %d", int(o.Kind))
	}
	return nil
}

// NormalizeDegrees maps any angle into [0,360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
