// Package history provides undo/redo for the editor engine.
//
// Every edit is recorded as an Entry holding the forward transaction, its
// inverse, and the selections before and after the edit. An abbreviation
// expansion across many cursors is one transaction and so one Entry:
//
//	h := history.New(1000)
//	before := buf.Snapshot()
//	buf.Apply(tx)
//	h.Record(history.NewEntry("insert", before, tx, sel, tx.MapSelection(sel)))
//
//	entry, err := h.Undo(buf) // restores entry.Before
//	entry, err = h.Redo(buf)  // restores entry.After
//
// Recording a new entry clears the redo stack.
package history
