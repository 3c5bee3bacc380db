package text

import "fmt"

// ByteOffset represents a byte position in a document.
type ByteOffset = int64

// Span represents a byte range in a document.
// Start is inclusive, End is exclusive: [Start, End).
type Span struct {
	Start ByteOffset
	End   ByteOffset
}

// NewSpan creates a span from start and end offsets.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Len returns the length of the span in bytes.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// IsValid returns true if Start <= End and Start is not negative.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.Start <= s.End
}

// Contains returns true if the given offset is within the span.
func (s Span) Contains(offset ByteOffset) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps returns true if this span shares at least one byte with other.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}
