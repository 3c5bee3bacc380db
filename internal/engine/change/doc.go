// Package change describes edits as data.
//
// A Change substitutes one region of a document. A Transaction is an
// ordered list of changes whose offsets all refer to the same original
// document, so that an editor can apply it as a single atomic edit and
// record a single undo step. Transactions are usually built with
// ChangeBySelection, which produces exactly one change per selection range
// and keeps them in selection order.
//
// Applying a transaction never re-reads intermediate state: every change is
// positioned against the snapshot the transaction was built from.
package change
