// Package movement implements word motions over a text.Document.
//
// Motions are pure functions of a document and a cursor.Range. They work
// on grapheme clusters, so a motion never stops inside a multi-byte
// character or between a base character and its combining marks.
//
// Characters fall into four classes: whitespace, line endings, word
// characters (letters, digits, marks and '_') and punctuation. A word is a
// maximal run of one non-whitespace class on a single line.
//
// Code that needs "the previous word" should depend on the WordMover
// interface rather than on Words directly, so that tests can substitute a
// deterministic stub.
package movement
