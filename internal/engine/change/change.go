package change

import (
	"fmt"

	"github.com/dshills/abbrev/internal/engine/text"
)

// ByteOffset is an alias for text.ByteOffset for convenience.
type ByteOffset = text.ByteOffset

// Change substitutes the region [Start, End) of a document with Text.
// A nil Text deletes the region without inserting anything.
type Change struct {
	Start ByteOffset
	End   ByteOffset
	Text  *string
}

// Insert creates a change that inserts s at offset.
func Insert(offset ByteOffset, s string) Change {
	return Change{Start: offset, End: offset, Text: &s}
}

// Replace creates a change that replaces [start, end) with s.
func Replace(start, end ByteOffset, s string) Change {
	return Change{Start: start, End: end, Text: &s}
}

// Delete creates a change that removes [start, end).
func Delete(start, end ByteOffset) Change {
	return Change{Start: start, End: end}
}

// Replacement returns the inserted text, or "" for a pure deletion.
func (c Change) Replacement() string {
	if c.Text == nil {
		return ""
	}
	return *c.Text
}

// Span returns the replaced region.
func (c Change) Span() text.Span {
	return text.Span{Start: c.Start, End: c.End}
}

// IsInsert returns true if this is a pure insertion (empty region).
func (c Change) IsInsert() bool {
	return c.Start == c.End && c.Replacement() != ""
}

// IsDelete returns true if this is a pure deletion (no replacement text).
func (c Change) IsDelete() bool {
	return c.Start != c.End && c.Replacement() == ""
}

// IsNoOp returns true if this change does nothing.
func (c Change) IsNoOp() bool {
	return c.Start == c.End && c.Replacement() == ""
}

// Delta returns the change in document length caused by this change.
func (c Change) Delta() ByteOffset {
	return ByteOffset(len(c.Replacement())) - (c.End - c.Start)
}

// Equals returns true if both changes cover the same region with the same
// replacement. A nil Text and an empty Text are considered equal.
func (c Change) Equals(other Change) bool {
	return c.Start == other.Start && c.End == other.End &&
		c.Replacement() == other.Replacement()
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch {
	case c.Start == c.End:
		return fmt.Sprintf("Insert(%d, %q)", c.Start, c.Replacement())
	case c.Text == nil:
		return fmt.Sprintf("Delete%s", c.Span())
	default:
		return fmt.Sprintf("Replace%s with %q", c.Span(), c.Replacement())
	}
}
