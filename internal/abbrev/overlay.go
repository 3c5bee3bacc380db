package abbrev

// Overlay records inserts and removals so they can be replayed on top of
// a table loaded later, such as a file reload.
//
// An Overlay is not safe for concurrent mutation. Once handed to a
// watcher or store it is only read.
type Overlay struct {
	edits []overlayEdit
}

type overlayEdit struct {
	abbr      string
	expansion string
	remove    bool
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Insert records an insert. An empty abbreviation is ignored.
func (o *Overlay) Insert(abbr, expansion string) {
	if abbr == "" {
		return
	}
	o.edits = append(o.edits, overlayEdit{abbr: abbr, expansion: expansion})
}

// Remove records a removal.
func (o *Overlay) Remove(abbr string) {
	o.edits = append(o.edits, overlayEdit{abbr: abbr, remove: true})
}

// Len returns the number of recorded edits.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.edits)
}

// Apply replays the edits on t in the order they were recorded.
// A nil overlay leaves t untouched.
func (o *Overlay) Apply(t *Table) {
	if o == nil {
		return
	}
	for _, e := range o.edits {
		if e.remove {
			t.Remove(e.abbr)
		} else {
			t.Insert(e.abbr, e.expansion)
		}
	}
}
