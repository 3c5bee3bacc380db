// Package cursor provides the multi-cursor selection model.
//
// Range Model:
//
// A Range uses an anchor/head model where:
//   - Anchor: the position where the range started
//   - Head: the active end, where typing occurs
//
// When Anchor == Head the range is a collapsed cursor. A range can extend
// forward (head > anchor) or backward (head < anchor); word motions return
// backward ranges whose Head is the word start and whose Anchor is its end.
//
// Selection Model:
//
// A Selection is an ordered, immutable list of ranges with one primary
// range. Order is significant: code that builds one edit per range must
// emit the edits in selection order. Normalize sorts and merges ranges when
// the editor wants a canonical form after an edit.
//
// Basic usage:
//
//	sel := cursor.NewSelection(
//	    cursor.Point(3),
//	    cursor.Point(10),
//	)
//	for _, r := range sel.Ranges() {
//	    fmt.Println(r.Cursor())
//	}
//
// Thread Safety:
//
// Range and Selection are immutable value types and safe for concurrent use.
package cursor
