package abbrev

import (
	"github.com/dshills/abbrev/internal/engine/change"
	"github.com/dshills/abbrev/internal/engine/cursor"
	"github.com/dshills/abbrev/internal/engine/movement"
	"github.com/dshills/abbrev/internal/engine/text"
)

// minWordLen is the shortest candidate word that is looked up, in bytes.
// Any non-empty word qualifies, so single-character abbreviations work.
const minWordLen = 1

// Expander builds expansion transactions.
// The zero value uses movement.DefaultWords.
type Expander struct {
	mover movement.WordMover
}

// NewExpander creates an expander that finds words with mover.
// A nil mover selects movement.DefaultWords.
func NewExpander(mover movement.WordMover) *Expander {
	return &Expander{mover: mover}
}

func (e *Expander) wordMover() movement.WordMover {
	if e == nil || e.mover == nil {
		return movement.DefaultWords
	}
	return e.mover
}

// Build returns the transaction for typing ch with selection sel over doc.
//
// The transaction holds exactly one change per range of sel, in selection
// order, each computed against doc as it is now. A range whose preceding
// word is an abbreviation in table gets that word replaced by the
// expansion followed by ch; every other range gets ch inserted at its
// cursor. Build never fails; an empty selection yields an empty
// transaction and a nil table expands nothing.
func (e *Expander) Build(doc text.Document, sel cursor.Selection, table *Table, ch rune) change.Transaction {
	mover := e.wordMover()
	typed := string(ch)

	return change.ChangeBySelection(sel, func(r cursor.Range) change.Change {
		pos := r.Cursor()

		// Nothing precedes the start of the document
		if pos <= 0 {
			return change.Insert(pos, typed)
		}

		// Step one character left so the probe sits on the previous word
		probe := cursor.Point(movement.PrevGraphemeStart(doc, pos))
		word := mover.MovePrevWordStart(doc, probe, 1)
		if word.Len() < minWordLen {
			return change.Insert(pos, typed)
		}

		expansion, ok := table.Lookup(doc.Slice(word.From(), word.To()))
		if !ok {
			return change.Insert(pos, typed)
		}
		return change.Replace(word.From(), pos, expansion+typed)
	})
}

// ExpandOrInsert builds the transaction for typing ch using the default
// word motion.
func ExpandOrInsert(doc text.Document, sel cursor.Selection, table *Table, ch rune) change.Transaction {
	var e Expander
	return e.Build(doc, sel, table, ch)
}
