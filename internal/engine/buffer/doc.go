// Package buffer provides the editor's mutable text buffer.
//
// A Buffer owns the current text and hands out immutable Snapshots that
// implement text.Document. Edits arrive as change.Transactions built
// against a snapshot; Apply validates the whole transaction before touching
// the text, so a transaction is applied completely or not at all.
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. Snapshots never change.
package buffer
