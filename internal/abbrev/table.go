package abbrev

import (
	"bufio"
	"io"
	"sort"
)

// Entry is one abbreviation and its expansion.
type Entry struct {
	Abbr      string
	Expansion string
}

// Table maps abbreviations to expansions.
//
// Keys are unique, matched exactly and case-sensitively. The empty string
// is never a key. A Table is not safe for concurrent mutation; expansion
// only reads it.
type Table struct {
	entries map[string]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]string)}
}

// Insert stores expansion under abbr, replacing any previous expansion.
// An empty abbr is ignored.
func (t *Table) Insert(abbr, expansion string) {
	if abbr == "" {
		return
	}
	if t.entries == nil {
		t.entries = make(map[string]string)
	}
	t.entries[abbr] = expansion
}

// Remove deletes abbr. Removing an absent key does nothing.
func (t *Table) Remove(abbr string) {
	delete(t.entries, abbr)
}

// Lookup returns the expansion registered for word.
// A nil table has no entries.
func (t *Table) Lookup(word string) (string, bool) {
	if t == nil {
		return "", false
	}
	expansion, ok := t.entries[word]
	return expansion, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns all entries sorted by abbreviation.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.entries))
	for abbr, expansion := range t.entries {
		out = append(out, Entry{Abbr: abbr, Expansion: expansion})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Abbr < out[j].Abbr
	})
	return out
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	if t == nil {
		return c
	}
	for abbr, expansion := range t.entries {
		c.entries[abbr] = expansion
	}
	return c
}

// Merge copies every entry of other into t. Entries of other win.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for abbr, expansion := range other.entries {
		t.Insert(abbr, expansion)
	}
}

// Equal returns true if both tables hold the same entries.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for abbr, expansion := range t.entriesOrNil() {
		if got, ok := other.Lookup(abbr); !ok || got != expansion {
			return false
		}
	}
	return true
}

func (t *Table) entriesOrNil() map[string]string {
	if t == nil {
		return nil
	}
	return t.entries
}

// WriteTo writes the table in the abbreviation file format, one
// "<abbr> <expansion>" line per entry, sorted by abbreviation.
// Expansions containing line breaks cannot round-trip and are written as-is.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, e := range t.Entries() {
		written, err := bw.WriteString(e.Abbr + " " + e.Expansion + "\n")
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
