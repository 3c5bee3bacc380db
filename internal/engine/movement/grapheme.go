package movement

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/abbrev/internal/engine/text"
)

// graphemeWindow bounds how far the helpers read around an offset.
// Clusters longer than this are split, which only matters for pathological
// input such as long runs of combining marks.
const graphemeWindow = 128

// NextGraphemeStart returns the offset just past the grapheme cluster that
// starts at offset. At or past the end of doc it returns doc.Len().
func NextGraphemeStart(doc text.Document, offset text.ByteOffset) text.ByteOffset {
	n := doc.Len()
	if offset >= n {
		return n
	}
	if offset < 0 {
		return 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(doc.Slice(offset, offset+graphemeWindow), -1)
	if cluster == "" {
		return offset + 1
	}
	return offset + text.ByteOffset(len(cluster))
}

// PrevGraphemeStart returns the start of the grapheme cluster that ends at
// offset. At the start of doc it returns 0.
func PrevGraphemeStart(doc text.Document, offset text.ByteOffset) text.ByteOffset {
	if offset <= 0 {
		return 0
	}
	if n := doc.Len(); offset > n {
		offset = n
	}

	start := offset - graphemeWindow
	if start < 0 {
		start = 0
	}
	window := doc.Slice(start, offset)

	// Align to a rune boundary when the window cut a multi-byte rune
	skip := 0
	for skip < len(window) && skip < utf8.UTFMax && !utf8.RuneStart(window[skip]) {
		skip++
	}
	window = window[skip:]
	base := start + text.ByteOffset(skip)

	last := text.ByteOffset(0)
	state := -1
	pos := text.ByteOffset(0)
	for len(window) > 0 {
		var cluster string
		cluster, window, _, state = uniseg.FirstGraphemeClusterInString(window, state)
		last = pos
		pos += text.ByteOffset(len(cluster))
	}
	return base + last
}

// graphemeAt returns the cluster starting at offset and its end.
func graphemeAt(doc text.Document, offset text.ByteOffset) (string, text.ByteOffset) {
	end := NextGraphemeStart(doc, offset)
	return doc.Slice(offset, end), end
}

// graphemeBefore returns the cluster ending at offset and its start.
func graphemeBefore(doc text.Document, offset text.ByteOffset) (string, text.ByteOffset) {
	start := PrevGraphemeStart(doc, offset)
	return doc.Slice(start, offset), start
}
