package cursor

import (
	"fmt"

	"github.com/dshills/abbrev/internal/engine/text"
)

// ByteOffset is an alias for text.ByteOffset for convenience.
type ByteOffset = text.ByteOffset

// Hint is an optional rendering hint carried by a range, such as the
// visual column a cursor should return to after vertical movement.
// The engine preserves it but never interprets it.
type Hint struct {
	Column int
	Set    bool
}

// ColumnHint returns a hint for the given visual column.
func ColumnHint(col int) Hint {
	return Hint{Column: col, Set: true}
}

// Range represents a cursor or a range of selected text.
// Range is an immutable value type.
type Range struct {
	Anchor ByteOffset // Where the range started
	Head   ByteOffset // Active end (where typing occurs)
	Hint   Hint       // Rendering hint, opaque to the engine
}

// NewRange creates a range from anchor to head.
func NewRange(anchor, head ByteOffset) Range {
	return Range{Anchor: anchor, Head: head}
}

// Point creates a collapsed range (a cursor) at offset.
func Point(offset ByteOffset) Range {
	return Range{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the range has no extent (just a cursor).
func (r Range) IsEmpty() bool {
	return r.Anchor == r.Head
}

// Len returns the unsigned length of the range in bytes.
func (r Range) Len() ByteOffset {
	if r.Anchor <= r.Head {
		return r.Head - r.Anchor
	}
	return r.Anchor - r.Head
}

// Cursor returns the head position, where typing would occur.
func (r Range) Cursor() ByteOffset {
	return r.Head
}

// From returns the lower bound of the range.
func (r Range) From() ByteOffset {
	if r.Anchor <= r.Head {
		return r.Anchor
	}
	return r.Head
}

// To returns the upper bound of the range.
func (r Range) To() ByteOffset {
	if r.Anchor >= r.Head {
		return r.Anchor
	}
	return r.Head
}

// Span returns the range as a half-open text span (Start <= End).
func (r Range) Span() text.Span {
	return text.Span{Start: r.From(), End: r.To()}
}

// IsForward returns true if the range extends forward (head >= anchor).
func (r Range) IsForward() bool {
	return r.Head >= r.Anchor
}

// IsBackward returns true if the range extends backward (head < anchor).
func (r Range) IsBackward() bool {
	return r.Head < r.Anchor
}

// Extend returns a new range with the head moved to offset.
// The anchor remains fixed.
func (r Range) Extend(offset ByteOffset) Range {
	return Range{Anchor: r.Anchor, Head: offset, Hint: r.Hint}
}

// MoveTo returns a new collapsed range at offset.
func (r Range) MoveTo(offset ByteOffset) Range {
	return Range{Anchor: offset, Head: offset, Hint: r.Hint}
}

// WithHint returns a copy of the range carrying hint.
func (r Range) WithHint(h Hint) Range {
	r.Hint = h
	return r
}

// Collapse collapses the range to a cursor at the head.
func (r Range) Collapse() Range {
	return Range{Anchor: r.Head, Head: r.Head, Hint: r.Hint}
}

// Flip returns a range with anchor and head swapped.
func (r Range) Flip() Range {
	return Range{Anchor: r.Head, Head: r.Anchor, Hint: r.Hint}
}

// Overlaps returns true if this range overlaps with another.
func (r Range) Overlaps(other Range) bool {
	return r.From() < other.To() && other.From() < r.To()
}

// Merge merges two ranges into one forward range covering both.
func (r Range) Merge(other Range) Range {
	from := r.From()
	if other.From() < from {
		from = other.From()
	}
	to := r.To()
	if other.To() > to {
		to = other.To()
	}
	return Range{Anchor: from, Head: to, Hint: r.Hint}
}

// Clamp returns a range clamped to [0, maxOffset].
func (r Range) Clamp(maxOffset ByteOffset) Range {
	return Range{
		Anchor: clampOffset(r.Anchor, maxOffset),
		Head:   clampOffset(r.Head, maxOffset),
		Hint:   r.Hint,
	}
}

func clampOffset(off, maxOffset ByteOffset) ByteOffset {
	if off < 0 {
		return 0
	}
	if off > maxOffset {
		return maxOffset
	}
	return off
}

// String returns a string representation of the range.
func (r Range) String() string {
	if r.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", r.Head)
	}
	dir := "→"
	if r.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Range(%d%s%d)", r.Anchor, dir, r.Head)
}

// Equals returns true if two ranges have the same anchor and head.
// Hints are not compared.
func (r Range) Equals(other Range) bool {
	return r.Anchor == other.Anchor && r.Head == other.Head
}
