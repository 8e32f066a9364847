package editor

import "github.com/Faultbox/merchkit/internal/overlay"

// Event is an input to Reduce.
type Event interface {
	event()
}

// Point is a pointer location resolved to canonical UV. Miss is set when
// the pointer is over the 3D view but no mesh surface was hit.
type Point struct {
	UV   overlay.UV
	Miss bool
}

// PointAt returns a resolved pointer location.
func PointAt(u, v float64) Point {
	return Point{UV: overlay.UV{U: u, V: v}}
}

// Missed is a pointer location that did not land on the surface.
var Missed = Point{Miss: true}

type (
	// PointerDown is a primary button press.
	PointerDown struct{ Point Point }

	// PointerMove is pointer motion, pressed or not.
	PointerMove struct{ Point Point }

	// PointerUp is a primary button release.
	PointerUp struct{}

	// AddText appends a text overlay at the surface center. Zero fields
	// take the controller defaults.
	AddText struct {
		Content  string
		FontSize int
		Color    string
		Family   string
	}

	// AddImage appends an image overlay at the surface center. Zero sizes
	// take the controller default.
	AddImage struct {
		Source        string
		Width, Height int
	}

	// Delete removes the selected overlay.
	Delete struct{}

	// Clear removes every overlay.
	Clear struct{}

	// SetField edits one property of the selected overlay.
	SetField struct {
		Field overlay.Field
		Value any
	}

	// Select selects the overlay at Index, or clears the selection when
	// Index is out of range.
	Select struct{ Index int }

	// QueueText arms text for placement by the next empty flat click.
	QueueText struct{ Content string }

	// SetBaseColor changes the garment fill color.
	SetBaseColor struct{ Color string }

	// AssetReady reports that an image source finished loading.
	AssetReady struct {
		Source string
		Err    error
	}
)

func (PointerDown) event()  {}
func (PointerMove) event()  {}
func (PointerUp) event()    {}
func (AddText) event()      {}
func (AddImage) event()     {}
func (Delete) event()       {}
func (Clear) event()        {}
func (SetField) event()     {}
func (Select) event()       {}
func (QueueText) event()    {}
func (SetBaseColor) event() {}
func (AssetReady) event()   {}
