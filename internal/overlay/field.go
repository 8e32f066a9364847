package overlay

import "github.com/Faultbox/merchkit/internal/colorfill"

// Field names an editable overlay property.
type Field int

const (
	FieldPosition   Field = iota // UV
	FieldRotation                // float64 degrees
	FieldScale                   // float64
	FieldContent                 // string, text only
	FieldFontSize                // int, text only
	FieldColor                   // hex string, text only
	FieldFontFamily              // string, text only
	FieldWidth                   // int, image only
	FieldHeight                  // int, image only
	FieldSource                  // string, image only
)

var fieldNames = [...]string{
	"position", "rotation", "scale", "content", "font_size",
	"color", "font_family", "width", "height", "source",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField parses a field name as printed by String.
func ParseField(s string) (Field, bool) {
	for i, n := range fieldNames {
		if n == s {
			return Field(i), true
		}
	}
	return 0, false
}

// SetField sets one property of the overlay at i. A bad index, a value of
// the wrong type, a value the field cannot hold, or a field that does not
// belong to the overlay's kind leaves the snapshot unchanged.
func (s Snapshot) SetField(i int, f Field, value any) Snapshot {
	o, ok := s.At(i)
	if !ok {
		return s
	}
	if !o.apply(f, value) {
		return s
	}
	return s.replace(i, normalize(o))
}

func (o *Overlay) apply(f Field, value any) bool {
	switch f {
	case FieldPosition:
		p, ok := value.(UV)
		if !ok {
			return false
		}
		o.Position = p.Clamp()
	case FieldRotation:
		d, ok := value.(float64)
		if !ok {
			return false
		}
		o.Rotation = NormalizeDegrees(d)
	case FieldScale:
		v, ok := value.(float64)
		if !ok || !(v > 0) {
			return false
		}
		o.Scale = v
	case FieldContent:
		v, ok := value.(string)
		if !ok || o.Kind != KindText {
			return false
		}
		o.Content = v
	case FieldFontSize:
		v, ok := value.(int)
		if !ok || v <= 0 || o.Kind != KindText {
			return false
		}
		o.FontSize = v
	case FieldColor:
		v, ok := value.(string)
		if !ok || o.Kind != KindText {
			return false
		}
		if _, err := colorfill.ParseHex(v); err != nil {
			return false
		}
		o.Color = v
	case FieldFontFamily:
		v, ok := value.(string)
		if !ok || o.Kind != KindText {
			return false
		}
		o.FontFamily = v
	case FieldWidth:
		v, ok := value.(int)
		if !ok || v <= 0 || o.Kind != KindImage {
			return false
		}
		o.Width = v
	case FieldHeight:
		v, ok := value.(int)
		if !ok || v <= 0 || o.Kind != KindImage {
			return false
		}
		o.Height = v
	case FieldSource:
		v, ok := value.(string)
		if !ok || v == "" || o.Kind != KindImage {
			return false
		}
		o.Source = v
	default:
		return false
	}
	return true
}
