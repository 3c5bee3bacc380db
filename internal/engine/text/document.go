package text

import (
	"unicode/utf8"
)

// Document is a read-only, offset-addressable sequence of text.
// Implementations must be safe to read for the duration of a call; the
// engine never writes through this interface.
type Document interface {
	// Len returns the length of the document in bytes.
	Len() ByteOffset

	// Slice returns the text in [start, end). Offsets outside the
	// document are clamped.
	Slice(start, end ByteOffset) string
}

// StringDocument is a Document backed by a Go string.
type StringDocument string

// Len implements Document.
func (d StringDocument) Len() ByteOffset {
	return ByteOffset(len(d))
}

// Slice implements Document.
func (d StringDocument) Slice(start, end ByteOffset) string {
	start, end = Clamp(start, end, d.Len())
	return string(d[start:end])
}

// String returns the full content.
func (d StringDocument) String() string {
	return string(d)
}

// Clamp orders start and end and limits them to [0, length].
func Clamp(start, end, length ByteOffset) (ByteOffset, ByteOffset) {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start > end {
		start = end
	}
	return start, end
}

// Text returns the whole content of doc.
func Text(doc Document) string {
	return doc.Slice(0, doc.Len())
}

// RuneBefore decodes the rune ending at offset.
// Returns utf8.RuneError and size 0 at the start of the document.
func RuneBefore(doc Document, offset ByteOffset) (rune, int) {
	if offset <= 0 {
		return utf8.RuneError, 0
	}
	start := offset - utf8.UTFMax
	if start < 0 {
		start = 0
	}
	return utf8.DecodeLastRuneInString(doc.Slice(start, offset))
}

// RuneAt decodes the rune starting at offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func RuneAt(doc Document, offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= doc.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(doc.Slice(offset, offset+utf8.UTFMax))
}
