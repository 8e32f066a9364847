package overlay

// Selection references at most one overlay by index and id. Carrying the id
// lets a stale index be detected after the list changes.
type Selection struct {
	Index int
	ID    string
}

// NoSelection is the empty selection.
var NoSelection = Selection{Index: -1}

// Select returns a selection of index i in s, or NoSelection.
func Select(s Snapshot, i int) Selection {
	o, ok := s.At(i)
	if !ok {
		return NoSelection
	}
	return Selection{Index: i, ID: o.ID}
}

// Valid reports whether the selection references anything.
func (sel Selection) Valid() bool {
	return sel.Index >= 0 && sel.ID != ""
}

// Revalidate checks the selection against s. An overlay that moved keeps
// its selection at the new index; one that is gone clears it.
func (sel Selection) Revalidate(s Snapshot) Selection {
	if !sel.Valid() {
		return NoSelection
	}
	if o, ok := s.At(sel.Index); ok && o.ID == sel.ID {
		return sel
	}
	if i := s.IndexOf(sel.ID); i >= 0 {
		return Selection{Index: i, ID: sel.ID}
	}
	return NoSelection
}
