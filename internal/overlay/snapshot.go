package overlay

import (
	"github.com/google/uuid"
)

// Snapshot is an immutable ordered overlay list. Later entries paint on top.
// Every operation returns a new Snapshot and leaves the receiver untouched.
type Snapshot struct {
	items []Overlay
}

// NewSnapshot builds a snapshot from overlays, assigning missing ids.
func NewSnapshot(overlays ...Overlay) Snapshot {
	var s Snapshot
	for _, o := range overlays {
		s, _ = s.Add(o)
	}
	return s
}

// Len returns the number of overlays.
func (s Snapshot) Len() int {
	return len(s.items)
}

// At returns the overlay at index i.
func (s Snapshot) At(i int) (Overlay, bool) {
	if i < 0 || i >= len(s.items) {
		return Overlay{}, false
	}
	return s.items[i], true
}

// Items returns a copy of the overlays in paint order.
func (s Snapshot) Items() []Overlay {
	out := make([]Overlay, len(s.items))
	copy(out, s.items)
	return out
}

// IndexOf returns the index of the overlay with id, or -1.
func (s Snapshot) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends o and returns the new snapshot and the overlay's index.
// An id is assigned when o has none or its id is already taken.
func (s Snapshot) Add(o Overlay) (Snapshot, int) {
	if o.ID == "" || s.IndexOf(o.ID) >= 0 {
		o.ID = uuid.NewString()
	}
	o = normalize(o)

	items := make([]Overlay, len(s.items), len(s.items)+1)
	copy(items, s.items)
	items = append(items, o)
	return Snapshot{items: items}, len(items) - 1
}

// Update applies fn to a copy of the overlay at i. The id and kind cannot
// be changed. Out of range indexes return s unchanged.
func (s Snapshot) Update(i int, fn func(*Overlay)) Snapshot {
	if i < 0 || i >= len(s.items) || fn == nil {
		return s
	}
	o := s.items[i]
	id, kind := o.ID, o.Kind
	fn(&o)
	o.ID, o.Kind = id, kind
	return s.replace(i, normalize(o))
}

// Remove drops the overlay at i and shifts later overlays down.
func (s Snapshot) Remove(i int) Snapshot {
	if i < 0 || i >= len(s.items) {
		return s
	}
	items := make([]Overlay, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)
	return Snapshot{items: items}
}

// Clear returns an empty snapshot.
func (s Snapshot) Clear() Snapshot {
	return Snapshot{}
}

func (s Snapshot) replace(i int, o Overlay) Snapshot {
	items := make([]Overlay, len(s.items))
	copy(items, s.items)
	items[i] = o
	return Snapshot{items: items}
}

func normalize(o Overlay) Overlay {
	o.Position = o.Position.Clamp()
	o.Rotation = NormalizeDegrees(o.Rotation)
	if !(o.Scale > 0) {
		o.Scale = 1
	}
	return o
}
