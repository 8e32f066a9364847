// Package fonts maps the customizer's font families onto embedded bold faces.
package fonts

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman12bold"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFamily is used for unknown family names.
const DefaultFamily = "Arial"

// maxCachedFaces bounds the face cache; drags at odd scales create many sizes.
const maxCachedFaces = 64

// families maps each selectable family onto the embedded face backing it.
var families = map[string][]byte{
	"Arial":           gobold.TTF,
	"Impact":          lmsans10bold.TTF,
	"Georgia":         lmroman10bold.TTF,
	"Courier New":     gomonobold.TTF,
	"Comic Sans MS":   gobolditalic.TTF,
	"Times New Roman": lmroman12bold.TTF,
}

// Families returns the selectable family names in sorted order.
func Families() []string {
	out := make([]string, 0, len(families))
	for name := range families {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the known family matching name case-insensitively, or
// DefaultFamily.
func Resolve(name string) string {
	name = strings.TrimSpace(name)
	for known := range families {
		if strings.EqualFold(known, name) {
			return known
		}
	}
	return DefaultFamily
}

// Metrics describes a laid out single line of text in pixels.
type Metrics struct {
	Advance float64 // horizontal extent of the text
	Ascent  float64
	Descent float64
}

// Height returns the ascent plus descent.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

type faceKey struct {
	family string
	size   float64
}

// Library parses embedded fonts lazily and caches faces by family and size.
// Faces it returns are not safe for concurrent use.
type Library struct {
	mu     sync.Mutex
	parsed map[string]*opentype.Font
	faces  map[faceKey]font.Face
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

var (
	sharedOnce sync.Once
	shared     *Library
)

// Shared returns the process-wide library.
func Shared() *Library {
	sharedOnce.Do(func() { shared = NewLibrary() })
	return shared
}

// Face returns a face for family at sizePx pixels. Unknown families resolve
// to DefaultFamily.
func (l *Library) Face(family string, sizePx float64) (font.Face, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size %v must be positive", sizePx)
	}
	family = Resolve(family)

	l.mu.Lock()
	defer l.mu.Unlock()

	key := faceKey{family: family, size: sizePx}
	if f, ok := l.faces[key]; ok {
		return f, nil
	}

	parsed, err := l.parse(family)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s face: %w", family, err)
	}

	if len(l.faces) >= maxCachedFaces {
		for k, f := range l.faces {
			f.Close()
			delete(l.faces, k)
		}
	}
	l.faces[key] = face
	return face, nil
}

func (l *Library) parse(family string) (*opentype.Font, error) {
	if f, ok := l.parsed[family]; ok {
		return f, nil
	}
	f, err := opentype.Parse(families[family])
	if err != nil {
		if family == DefaultFamily {
			return nil, fmt.Errorf("parsing %s: %w", family, err)
		}
		// Fall back to the default face.
		f, err = l.parse(DefaultFamily)
		if err != nil {
			return nil, err
		}
	}
	l.parsed[family] = f
	return f, nil
}

// Measure lays out text on one line with face.
func Measure(face font.Face, text string) Metrics {
	m := face.Metrics()
	return Metrics{
		Advance: toFloat(font.MeasureString(face, text)),
		Ascent:  toFloat(m.Ascent),
		Descent: toFloat(m.Descent),
	}
}

// Measure resolves a face and measures text with it.
func (l *Library) Measure(family string, sizePx float64, text string) (Metrics, error) {
	face, err := l.Face(family, sizePx)
	if err != nil {
		return Metrics{}, err
	}
	return Measure(face, text), nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
