package movement

import (
	"github.com/dshills/abbrev/internal/engine/cursor"
	"github.com/dshills/abbrev/internal/engine/text"
)

// WordMover moves a range to the start of the previous word.
//
// Given a range whose head sits on a character (block-cursor convention),
// MovePrevWordStart returns a range whose Head is the start of the word at
// or before that character and whose Anchor is the offset just after it.
// When no word exists the returned range is empty.
type WordMover interface {
	MovePrevWordStart(doc text.Document, r cursor.Range, count int) cursor.Range
}

// WordMoverFunc adapts an ordinary function to the WordMover interface.
type WordMoverFunc func(doc text.Document, r cursor.Range, count int) cursor.Range

// MovePrevWordStart implements WordMover.
func (f WordMoverFunc) MovePrevWordStart(doc text.Document, r cursor.Range, count int) cursor.Range {
	return f(doc, r, count)
}

// Words is the editor's default word motion.
type Words struct{}

// DefaultWords is the WordMover used when none is configured.
var DefaultWords WordMover = Words{}

// MovePrevWordStart implements WordMover.
//
// The scan starts just after the character under r.Head, skips any
// whitespace to its left, then consumes the run of same-class characters
// before it. Line endings stop the scan, so a motion never crosses into the
// previous line unless it starts on a line ending.
func (Words) MovePrevWordStart(doc text.Document, r cursor.Range, count int) cursor.Range {
	if count < 1 {
		count = 1
	}

	n := doc.Len()
	pos := r.Head
	if pos < 0 {
		pos = 0
	}
	if pos > n {
		pos = n
	}

	// Block cursor: the character under the head belongs to the motion
	anchor := NextGraphemeStart(doc, pos)
	head := anchor
	for i := 0; i < count; i++ {
		next := scanPrevWord(doc, head)
		if next == head {
			break
		}
		anchor, head = head, next
	}

	return cursor.Range{Anchor: anchor, Head: head, Hint: r.Hint}
}

// scanPrevWord returns the start of the word ending at or before offset,
// including any whitespace between that word and offset.
func scanPrevWord(doc text.Document, offset text.ByteOffset) text.ByteOffset {
	i := offset

	for i > 0 {
		g, start := graphemeBefore(doc, i)
		if Classify(g) != ClassWhitespace {
			break
		}
		i = start
	}
	if i == 0 {
		return i
	}

	g, start := graphemeBefore(doc, i)
	class := Classify(g)
	if class == ClassEOL {
		if i == offset {
			return start
		}
		return i
	}
	i = start

	for i > 0 {
		g, start := graphemeBefore(doc, i)
		if Classify(g) != class {
			break
		}
		i = start
	}
	return i
}

// MoveNextWordStart moves r.Head to the start of the next word. The
// returned range is forward: Anchor is the original head and Head is the
// new position.
func (Words) MoveNextWordStart(doc text.Document, r cursor.Range, count int) cursor.Range {
	if count < 1 {
		count = 1
	}

	n := doc.Len()
	pos := r.Head
	if pos < 0 {
		pos = 0
	}
	anchor := pos
	for c := 0; c < count && pos < n; c++ {
		g, end := graphemeAt(doc, pos)
		class := Classify(g)
		pos = end
		if class != ClassWhitespace && class != ClassEOL {
			for pos < n {
				g, end := graphemeAt(doc, pos)
				if Classify(g) != class {
					break
				}
				pos = end
			}
		}
		for pos < n {
			g, end := graphemeAt(doc, pos)
			if Classify(g) != ClassWhitespace {
				break
			}
			pos = end
		}
	}
	return cursor.Range{Anchor: anchor, Head: pos, Hint: r.Hint}
}
