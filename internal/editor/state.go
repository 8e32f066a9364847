// Package editor implements overlay hit-testing, dragging and property
// edits as a pure reducer, plus the Session that keeps the composited
// texture in step with the reducer state.
package editor

import "github.com/Faultbox/merchkit/internal/overlay"

// Mode is the pointer interaction mode.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeSelected
	ModeDragging
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSelected:
		return "selected"
	case ModeDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Surface identifies which editing surface the controller serves.
type Surface uint8

const (
	// SurfaceMesh edits directly on the 3D model through UV picking.
	SurfaceMesh Surface = iota
	// SurfaceFlat edits on the 2D canvas.
	SurfaceFlat
)

// State is the complete editor state. Values are never mutated in place;
// Reduce returns a new State.
type State struct {
	Overlays  overlay.Snapshot
	Selection overlay.Selection
	Mode      Mode
	Pressed   bool

	// PendingText is placed at the next empty click on the flat surface.
	PendingText string

	// BaseColor is the garment fill as a hex string.
	BaseColor string

	// Revision increments whenever anything that affects the texture
	// changes, excluding the selection.
	Revision uint64
}

// NewState returns an empty state with the given base color.
func NewState(baseColor string) State {
	return State{
		Overlays:  overlay.NewSnapshot(),
		Selection: overlay.NoSelection,
		BaseColor: baseColor,
	}
}

// Selected returns the selected overlay, if any.
func (s State) Selected() (overlay.Overlay, bool) {
	sel := s.Selection.Revalidate(s.Overlays)
	if !sel.Valid() {
		return overlay.Overlay{}, false
	}
	return s.Overlays.At(sel.Index)
}

// Cursor is the pointer affordance a surface should show.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorMove
	CursorGrabbing
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorMove:
		return "move"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// CursorFor derives the cursor from state and the overlay index under the
// pointer (-1 for none).
func CursorFor(s State, hover int) Cursor {
	if s.Mode == ModeDragging {
		return CursorGrabbing
	}
	if hover < 0 {
		return CursorDefault
	}
	if sel := s.Selection.Revalidate(s.Overlays); sel.Valid() && sel.Index == hover {
		return CursorMove
	}
	return CursorPointer
}
