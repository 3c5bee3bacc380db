package app

import (
	"github.com/dshills/abbrev/internal/engine/cursor"
	"github.com/dshills/abbrev/internal/engine/movement"
	"github.com/dshills/abbrev/internal/engine/text"
)

// Motion moves one range of a selection.
type Motion func(doc text.Document, r cursor.Range) cursor.Range

// Built-in motions. All of them collapse the range at the new position.
var (
	MotionLeft Motion = func(doc text.Document, r cursor.Range) cursor.Range {
		return r.MoveTo(movement.PrevGraphemeStart(doc, r.Cursor()))
	}

	MotionRight Motion = func(doc text.Document, r cursor.Range) cursor.Range {
		return r.MoveTo(movement.NextGraphemeStart(doc, r.Cursor()))
	}

	// MotionPrevWord lands on the start of the word left of the cursor.
	MotionPrevWord Motion = func(doc text.Document, r cursor.Range) cursor.Range {
		pos := r.Cursor()
		if pos == 0 {
			return r.MoveTo(0)
		}
		probe := cursor.Point(movement.PrevGraphemeStart(doc, pos))
		word := movement.DefaultWords.MovePrevWordStart(doc, probe, 1)
		return r.MoveTo(word.Head)
	}

	MotionNextWord Motion = func(doc text.Document, r cursor.Range) cursor.Range {
		return r.MoveTo(movement.Words{}.MoveNextWordStart(doc, r, 1).Head)
	}

	MotionLineStart Motion = func(doc text.Document, r cursor.Range) cursor.Range {
		pos := r.Cursor()
		for pos > 0 {
			prev := movement.PrevGraphemeStart(doc, pos)
			if movement.Classify(doc.Slice(prev, pos)) == movement.ClassEOL {
				break
			}
			pos = prev
		}
		return r.MoveTo(pos)
	}

	MotionLineEnd Motion = func(doc text.Document, r cursor.Range) cursor.Range {
		pos, n := r.Cursor(), doc.Len()
		for pos < n {
			next := movement.NextGraphemeStart(doc, pos)
			if movement.Classify(doc.Slice(pos, next)) == movement.ClassEOL {
				break
			}
			pos = next
		}
		return r.MoveTo(pos)
	}
)
